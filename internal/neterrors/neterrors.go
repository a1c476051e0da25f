// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package neterrors classifies store connection failures so they can be shown
// with troubleshooting hints.
package neterrors

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/olivere/elastic"
)

// Cause is the likely reason a connection failed.
type Cause int

const (
	Unknown Cause = iota
	Timeout
	DNS
	Refused
	TLS
	Auth
	Server
)

func (c Cause) String() string {
	switch c {
	case Timeout:
		return "timeout"
	case DNS:
		return "dns"
	case Refused:
		return "connection refused"
	case TLS:
		return "tls"
	case Auth:
		return "authentication"
	case Server:
		return "server error"
	}
	return "unknown"
}

// Classify inspects err and its chain.
func Classify(err error) Cause {
	if err == nil {
		return Unknown
	}
	switch {
	case isAuthError(err):
		return Auth
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return Refused
	case isTLSError(err):
		return TLS
	case isServerError(err):
		return Server
	}
	return Unknown
}

// Hints returns troubleshooting lines for c.
func Hints(c Cause) []string {
	switch c {
	case Timeout:
		return []string{
			"The store took too long to respond. Check that the host and port are right",
			"and that no firewall drops the traffic. connect_timeout_seconds in the config raises the limit.",
		}
	case DNS:
		return []string{"The host name could not be resolved. Check for typos in the URL."}
	case Refused:
		return []string{
			"Nothing is listening on that address. Check that the store is running",
			"and the port is right (5432 for PostgreSQL, 9200 for Elasticsearch).",
		}
	case TLS:
		return []string{
			"A secure connection could not be established. For PostgreSQL try sslmode=disable",
			"on local servers; for Elasticsearch check the certificate and the system clock.",
		}
	case Auth:
		return []string{"The store rejected the credentials. Check the user, password or --key."}
	case Server:
		return []string{"The store answered with a server error. Check its health and logs."}
	}
	return nil
}

func isAuthError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "28P01" || pgErr.Code == "28000"
	}
	var esErr *elastic.Error
	if errors.As(err, &esErr) {
		return esErr.Status == 401 || esErr.Status == 403
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "password authentication failed") ||
		strings.Contains(lower, "401 unauthorized")
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such host")
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "connection refused") || strings.Contains(lower, "no available connection")
}

func isTLSError(err error) bool {
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "tls") ||
		strings.Contains(lower, "ssl") ||
		strings.Contains(lower, "certificate") ||
		strings.Contains(lower, "handshake")
}

func isServerError(err error) bool {
	var esErr *elastic.Error
	if errors.As(err, &esErr) {
		return esErr.Status >= 500
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable")
}
