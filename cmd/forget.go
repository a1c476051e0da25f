// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"docdb/cli/internal/keychain"
)

// forgetCmd removes the connection saved by connect.
var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Remove the saved connection from the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Warning.Println("Secure storage is not available on this system.")
			return err
		}
		if err := km.ClearConnection(); err != nil {
			pterm.Error.Println("Failed to remove the saved connection.")
			return err
		}
		pterm.Success.Println("Saved connection removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}
