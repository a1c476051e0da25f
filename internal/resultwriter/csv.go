// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package resultwriter

import (
	"encoding/csv"
	"io"

	"docdb/cli/internal/result"
)

// recordWriter is the subset of *csv.Writer used by CSVWriter.
type recordWriter interface {
	Write(record []string) error
	Flush()
	Error() error
}

// CSVWriter prints each result set as a header record followed by one
// record per row.
type CSVWriter struct {
	lifecycle
	out    io.Writer
	stream recordWriter

	newStream func(io.Writer) recordWriter
}

// NewCSVWriter returns a CSVWriter on out.
func NewCSVWriter(out io.Writer) *CSVWriter {
	return &CSVWriter{
		out: out,
		newStream: func(w io.Writer) recordWriter {
			return csv.NewWriter(w)
		},
	}
}

func (w *CSVWriter) Format() Format { return FormatCSV }

// Start opens the writer. CSV has no header of its own.
func (w *CSVWriter) Start() error {
	if err := w.start(); err != nil {
		return err
	}
	w.stream = w.newStream(w.out)
	return nil
}

// Write emits the column names of the first row, then every row in that
// column order. Rows missing a column get an empty field.
func (w *CSVWriter) Write(set result.Set) error {
	if err := w.check(); err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}
	cols := set.Columns()
	if err := w.stream.Write(cols); err != nil {
		return err
	}
	for _, rec := range set {
		if err := w.stream.Write(rec.Row(cols)); err != nil {
			return err
		}
	}
	w.stream.Flush()
	return w.stream.Error()
}

// End flushes buffered records and closes the writer.
func (w *CSVWriter) End() error {
	if err := w.end(); err != nil {
		return err
	}
	w.stream.Flush()
	err := w.stream.Error()
	w.stream = nil
	return err
}
