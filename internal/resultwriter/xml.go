// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package resultwriter

import (
	"encoding/xml"
	"io"
	"strings"
	"unicode"

	"docdb/cli/internal/result"
)

const xmlDeclaration = `<?xml version="1.0"?>` + "\n"

var rootElement = xml.StartElement{Name: xml.Name{Local: "result"}}

// XMLWriter prints result sets as <item> elements inside a <result> root.
// The root is opened by Start and closed by End, so the document is
// well-formed however many sets are written in between.
type XMLWriter struct {
	lifecycle
	out io.Writer
	enc *xml.Encoder
}

// NewXMLWriter returns an XMLWriter on out.
func NewXMLWriter(out io.Writer) *XMLWriter {
	return &XMLWriter{out: out}
}

func (w *XMLWriter) Format() Format { return FormatXML }

// Start writes the XML declaration and opens the root element.
func (w *XMLWriter) Start() error {
	if err := w.start(); err != nil {
		return err
	}
	if _, err := io.WriteString(w.out, xmlDeclaration); err != nil {
		return err
	}
	w.enc = xml.NewEncoder(w.out)
	w.enc.Indent("", "    ")
	if err := w.enc.EncodeToken(rootElement); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Write emits one item element per row with a child per field.
func (w *XMLWriter) Write(set result.Set) error {
	if err := w.check(); err != nil {
		return err
	}
	item := xml.StartElement{Name: xml.Name{Local: "item"}}
	for _, rec := range set {
		if err := w.enc.EncodeToken(item); err != nil {
			return err
		}
		for _, f := range rec {
			el := xml.StartElement{Name: xml.Name{Local: elementName(f.Name)}}
			if err := w.enc.EncodeElement(result.Text(f.Value), el); err != nil {
				return err
			}
		}
		if err := w.enc.EncodeToken(item.End()); err != nil {
			return err
		}
	}
	return w.enc.Flush()
}

// End closes the root element.
func (w *XMLWriter) End() error {
	if err := w.end(); err != nil {
		return err
	}
	if err := w.enc.EncodeToken(rootElement.End()); err != nil {
		return err
	}
	if err := w.enc.Flush(); err != nil {
		return err
	}
	w.enc = nil
	_, err := io.WriteString(w.out, "\n")
	return err
}

// elementName turns a column name into a valid XML element name.
// Invalid characters become underscores and names that cannot start an
// element get an underscore prefix.
func elementName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
			b.WriteRune(r)
		case i == 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
			b.WriteRune('_')
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if len(out) >= 3 && strings.EqualFold(out[:3], "xml") {
		out = "_" + out
	}
	return out
}
