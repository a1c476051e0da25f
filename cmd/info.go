// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"docdb/cli/internal/config"
	"docdb/cli/internal/dsn"
	"docdb/cli/internal/logging"
)

// infoCmd shows the connection docdb would use, with secrets masked.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the current connection and where it comes from",
	Long: `The info command displays the connection docdb would use right now, after
applying flags, environment variables, the OS keychain and the config file.
Passwords and keys are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, source := resolveConnection(loadConfig())
		if conn.Host == "" {
			pterm.Warning.Println("No connection configured")
			pterm.Println("   Run: docdb connect, or pass --host")
			return nil
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Connection")).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println(connectionSummary(conn, source))
		pterm.Println()
		pterm.Println("To update this connection, run: docdb connect")
		return nil
	},
}

// connectionSummary renders conn for display. Secrets never appear in it.
func connectionSummary(conn config.Connection, source config.Source) string {
	rows := [][2]string{
		{"Host", logging.Mask(conn.Host)},
		{"Store", string(dsn.Detect(conn.Host))},
		{"Source", string(source)},
	}
	if conn.Database != "" {
		rows = append(rows, [2]string{"Database", conn.Database})
	}
	if conn.Collection != "" {
		rows = append(rows, [2]string{"Collection", conn.Collection})
	}
	if conn.Key != "" {
		rows = append(rows, [2]string{"Key", "***"})
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%-11s %s", r[0]+":", r[1])
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
