// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, pterm.LogLevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, pterm.LogLevelWarn, ParseLevel("warning"))
	assert.Equal(t, pterm.LogLevelDisabled, ParseLevel("off"))
	assert.Equal(t, pterm.LogLevelInfo, ParseLevel("nonsense"))
}

func TestDebugMasksArguments(t *testing.T) {
	var buf bytes.Buffer
	Configure("debug", &buf)
	t.Cleanup(func() { Configure("info", os.Stderr) })

	Debug("connecting", "host", "postgres://u:p@h/db", "error", errors.New("password=hunter2"))

	out := buf.String()
	assert.Contains(t, out, "connecting")
	assert.Contains(t, out, "postgres://*:*@h/db")
	assert.NotContains(t, out, "hunter2")
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure("info", &buf)
	t.Cleanup(func() { Configure("info", os.Stderr) })

	Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestPresentError(t *testing.T) {
	assert.Empty(t, PresentError("ctx", nil))
	assert.Equal(t, "connect: dial postgres://*:*@h/db", PresentError("connect", errors.New("dial postgres://u:p@h/db")))
	assert.Equal(t, "boom", PresentError("", errors.New("boom")))
}
