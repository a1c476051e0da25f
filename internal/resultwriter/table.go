// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package resultwriter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"docdb/cli/internal/result"
)

// columnGap separates table columns.
const columnGap = "   "

// TableWriter prints each result set as a left-aligned text table with a
// dashed line under the header. Column widths are computed from the set
// being written; nothing carries over between Write calls.
type TableWriter struct {
	lifecycle
	out io.Writer

	// MaxWidth truncates cells wider than this many columns. Zero means
	// no limit.
	MaxWidth int
}

// NewTableWriter returns a TableWriter on out.
func NewTableWriter(out io.Writer) *TableWriter {
	return &TableWriter{out: out}
}

func (w *TableWriter) Format() Format { return FormatTable }

// Start opens the writer.
func (w *TableWriter) Start() error { return w.start() }

// Write renders set as aligned columns under a header and a dashed rule.
// Columns are sized by display width and capped at MaxWidth when set. An
// empty set prints nothing.
func (w *TableWriter) Write(set result.Set) error {
	if err := w.check(); err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}

	header := set.Columns()
	rows := make([][]string, len(set))
	for i, rec := range set {
		rows[i] = cleanCells(rec.Row(header))
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	if w.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], w.MaxWidth)
		}
	}

	dashes := make([]string, len(header))
	for i, width := range widths {
		dashes[i] = strings.Repeat("-", width)
	}

	var b strings.Builder
	w.writeLine(&b, header, widths)
	w.writeLine(&b, dashes, widths)
	for _, row := range rows {
		w.writeLine(&b, row, widths)
	}
	_, err := io.WriteString(w.out, b.String())
	return err
}

func (w *TableWriter) writeLine(b *strings.Builder, cells []string, widths []int) {
	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString(columnGap)
		}
		if runewidth.StringWidth(cell) > widths[i] {
			cell = runewidth.Truncate(cell, widths[i], "")
		}
		line.WriteString(runewidth.FillRight(cell, widths[i]))
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteByte('\n')
}

// End closes the writer.
func (w *TableWriter) End() error { return w.end() }

// cleanCells flattens line breaks so every record stays on one line.
func cleanCells(cells []string) []string {
	for i, c := range cells {
		if strings.ContainsAny(c, "\r\n\t") {
			cells[i] = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(c)
		}
	}
	return cells
}
