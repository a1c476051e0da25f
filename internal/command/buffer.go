// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package command joins raw input lines into logical commands.
//
// A line ending in a backslash continues on the next line. The backslash is
// dropped and the fragments are joined with "\r\n" once a line without the
// marker arrives.
package command

import "strings"

const (
	// ContinuationMarker at the very end of a raw line continues the command.
	ContinuationMarker = `\`
	// LineSeparator joins the fragments of a continued command.
	LineSeparator = "\r\n"
)

// Buffer accumulates line fragments until a command is complete.
// The zero value is ready to use.
type Buffer struct {
	pending []string
}

// AddLine adds one raw input line. It returns the completed command and true
// when the line ends a command, or "" and false when more input is needed.
//
// The marker is checked on the raw line, so a backslash followed by
// whitespace does not continue. An empty line is ignored and leaves any
// pending fragments in place. A run made only of whitespace is discarded
// and never reported as a command.
func (b *Buffer) AddLine(raw string) (string, bool) {
	raw = strings.TrimSuffix(raw, "\r")
	if raw == "" {
		return "", false
	}

	if strings.HasSuffix(raw, ContinuationMarker) {
		b.pending = append(b.pending, strings.TrimSuffix(raw, ContinuationMarker))
		return "", false
	}

	b.pending = append(b.pending, raw)
	cmd := strings.Join(b.pending, LineSeparator)
	b.pending = b.pending[:0]

	if strings.TrimSpace(cmd) == "" {
		return "", false
	}
	return cmd, true
}

// Pending returns the number of buffered fragments.
func (b *Buffer) Pending() int { return len(b.pending) }
