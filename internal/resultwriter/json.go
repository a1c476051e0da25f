// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package resultwriter

import (
	"encoding/json"
	"io"

	"docdb/cli/internal/result"
)

// JSONWriter prints each result set as one indented JSON array of objects.
type JSONWriter struct {
	lifecycle
	out io.Writer
}

// NewJSONWriter returns a JSONWriter on out.
func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

func (w *JSONWriter) Format() Format { return FormatJSON }

// Start opens the writer.
func (w *JSONWriter) Start() error { return w.start() }

// Write emits set as one indented JSON array, [] when it is empty.
func (w *JSONWriter) Write(set result.Set) error {
	if err := w.check(); err != nil {
		return err
	}
	if set == nil {
		set = result.Set{}
	}
	b, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.out.Write(b)
	return err
}

// End closes the writer.
func (w *JSONWriter) End() error { return w.end() }
