// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import "fmt"

// Kind identifies the document store a connection string points at.
type Kind string

const (
	KindPostgres      Kind = "postgresql"
	KindElasticsearch Kind = "elasticsearch"
	KindUnknown       Kind = "unknown"
)

// Info contains parsed information from a connection string.
type Info struct {
	Kind     Kind
	Scheme   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Params   map[string]string
	Original string
}

// ParseError represents an error that occurred during connection string parsing.
type ParseError struct {
	DSN    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid connection string: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid connection string: %s", e.Reason)
}

// NewParseError creates a new ParseError
func NewParseError(dsn, reason, hint string) *ParseError {
	return &ParseError{DSN: dsn, Reason: reason, Hint: hint}
}
