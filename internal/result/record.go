// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package result holds the record model shared by the stores and the writers.
// A Record is an ordered list of fields rather than a map, so the column order
// a backend returns survives all the way to the rendered output.
package result

import (
	"bytes"
	"encoding/json"
)

// Field is one named value of a record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered list of fields.
type Record []Field

// Set is an ordered sequence of records returned by one command.
type Set []Record

// Get returns the value for name and whether the record has it.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Columns returns the field names of the first record. Records are assumed to
// share the same shape.
func (s Set) Columns() []string {
	if len(s) == 0 {
		return nil
	}
	cols := make([]string, len(s[0]))
	for i, f := range s[0] {
		cols[i] = f.Name
	}
	return cols
}

// Row returns the canonical text of r's values in the order of cols.
// Columns r does not have are returned as empty strings.
func (r Record) Row(cols []string) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		if v, ok := r.Get(c); ok {
			row[i] = Text(v)
		}
	}
	return row
}

// MarshalJSON encodes the record as a JSON object keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(Normalize(f.Value))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewRecord builds a record from alternating name, value arguments.
// It is mostly a convenience for built-in commands and tests.
func NewRecord(kv ...any) Record {
	r := make(Record, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		name, _ := kv[i].(string)
		r = append(r, Field{Name: name, Value: kv[i+1]})
	}
	return r
}
