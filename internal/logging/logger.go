// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

var (
	loggerMu sync.RWMutex
	logger   = pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo).WithWriter(os.Stderr)
)

// Configure sets the minimum level and destination of the package logger.
// Unknown levels fall back to info.
func Configure(level string, w io.Writer) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = pterm.DefaultLogger.WithLevel(ParseLevel(level)).WithWriter(w)
}

// SetVerbose switches debug logging on or off.
func SetVerbose(verbose bool) {
	if verbose {
		Configure("debug", os.Stderr)
	}
}

// ParseLevel maps a config log level name to a pterm level.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}

func current() *pterm.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// args masks string-like values before they reach the log.
func args(l *pterm.Logger, kv []any) []pterm.LoggerArgument {
	masked := make([]any, len(kv))
	for i, v := range kv {
		switch x := v.(type) {
		case string:
			masked[i] = Mask(x)
		case error:
			masked[i] = Mask(x.Error())
		case fmt.Stringer:
			masked[i] = Mask(x.String())
		default:
			masked[i] = v
		}
	}
	return l.Args(masked...)
}

// Debug logs msg with key/value pairs at debug level.
func Debug(msg string, kv ...any) {
	l := current()
	l.Debug(msg, args(l, kv))
}

// Info logs msg with key/value pairs at info level.
func Info(msg string, kv ...any) {
	l := current()
	l.Info(msg, args(l, kv))
}

// Warn logs msg with key/value pairs at warn level.
func Warn(msg string, kv ...any) {
	l := current()
	l.Warn(msg, args(l, kv))
}
