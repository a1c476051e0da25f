// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package resultwriter renders result sets in one of the supported output
// formats: JSON, XML, CSV or an aligned text table.
//
// Every writer follows the same lifecycle: Start once, Write any number of
// result sets, End once. Writers are bound to a single output stream and are
// not safe for concurrent use.
//
// The set of formats is closed. Writer carries an unexported method so only
// the types in this package implement it, and New switches over every Format,
// so adding a format means adding a constant, a type and a case here.
package resultwriter

import (
	stderrors "errors"
	"io"
	"strings"

	clierrors "docdb/cli/internal/errors"
	"docdb/cli/internal/result"
)

// Format identifies an output format.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
	FormatCSV
	FormatTable
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatCSV:
		return "csv"
	case FormatTable:
		return "table"
	}
	return "unknown"
}

var (
	// ErrInvalidFormat is returned for unrecognized format codes.
	ErrInvalidFormat = stderrors.New("invalid output format")
	// ErrNotStarted is returned by Write and End outside of Start/End.
	ErrNotStarted = stderrors.New("writer not started")
)

// Writer renders result sets in one format.
type Writer interface {
	Format() Format
	Start() error
	Write(set result.Set) error
	End() error

	sealed()
}

// Codes lists the accepted format codes in help order.
var Codes = []string{"j", "json", "x", "xml", "c", "csv", "t", "table"}

// ParseFormat maps a format code to a Format.
func ParseFormat(code string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "j", "json":
		return FormatJSON, nil
	case "x", "xml":
		return FormatXML, nil
	case "c", "csv":
		return FormatCSV, nil
	case "t", "table":
		return FormatTable, nil
	}
	return 0, clierrors.Wrap(clierrors.Format, "unknown format \""+code+"\" (use "+strings.Join(Codes, ", ")+")", ErrInvalidFormat)
}

// Create parses code and returns the matching writer on out.
func Create(code string, out io.Writer) (Writer, error) {
	f, err := ParseFormat(code)
	if err != nil {
		return nil, err
	}
	return New(f, out), nil
}

// New returns the writer for f. It panics on a Format value outside the
// declared constants.
func New(f Format, out io.Writer) Writer {
	switch f {
	case FormatJSON:
		return NewJSONWriter(out)
	case FormatXML:
		return NewXMLWriter(out)
	case FormatCSV:
		return NewCSVWriter(out)
	case FormatTable:
		return NewTableWriter(out)
	}
	panic("resultwriter: unhandled format " + f.String())
}

// IsTabular reports whether w renders human-oriented tables.
func IsTabular(w Writer) bool {
	_, ok := w.(*TableWriter)
	return ok
}

// lifecycle tracks Start/End for the embedding writer. A writer may run
// several Start/End cycles, one per command.
type lifecycle struct {
	active bool
}

func (l *lifecycle) start() error {
	if l.active {
		return stderrors.New("writer already started")
	}
	l.active = true
	return nil
}

func (l *lifecycle) check() error {
	if !l.active {
		return ErrNotStarted
	}
	return nil
}

func (l *lifecycle) end() error {
	if err := l.check(); err != nil {
		return err
	}
	l.active = false
	return nil
}

func (*lifecycle) sealed() {}
