// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package messages prints the session's status notices and error reports.
package messages

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"docdb/cli/internal/logging"
	"docdb/cli/internal/neterrors"
)

// Messages renders user-facing notices. Status notices are printed only
// while enabled; errors are always printed.
type Messages struct {
	enabled bool
	out     io.Writer
	errOut  io.Writer
	info    *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// New returns Messages printing status to out and errors to errOut.
// Status notices start enabled.
func New(out, errOut io.Writer) *Messages {
	return &Messages{
		enabled: true,
		out:     out,
		errOut:  errOut,
		info:    pterm.Info.WithWriter(out),
		success: pterm.Success.WithWriter(out),
		failure: pterm.Error.WithWriter(errOut),
	}
}

// SetEnabled turns status notices on or off.
func (m *Messages) SetEnabled(enabled bool) { m.enabled = enabled }

// Enabled reports whether status notices are printed.
func (m *Messages) Enabled() bool { return m.enabled }

func (m *Messages) Connecting(host string) {
	if m.enabled {
		m.info.Println("Connecting to " + logging.Mask(host))
	}
}

func (m *Messages) Connected() {
	if m.enabled {
		m.success.Println("Connected")
	}
}

// Welcome prints the banner shown before the first interactive prompt.
func (m *Messages) Welcome(version string) {
	if !m.enabled {
		return
	}
	fmt.Fprintf(m.out, "docdb %s\n", version)
	fmt.Fprintln(m.out, "Type .help for commands and .exit to quit. End a line with \\ to continue it.")
}

// Error reports a failed command.
func (m *Messages) Error(err error) {
	if err != nil {
		m.failure.Println(logging.PresentError("", err))
	}
}

// ConnectionError reports a failed connection attempt, followed by hints
// for the likely cause.
func (m *Messages) ConnectionError(err error) {
	if err == nil {
		return
	}
	m.failure.Println(logging.PresentError("connection failed", err))
	cause := neterrors.Classify(err)
	logging.Debug("connection failure", "cause", cause.String())
	for _, h := range neterrors.Hints(cause) {
		fmt.Fprintln(m.errOut, "  "+h)
	}
}
