// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session drives one docdb session: connect, then either run a
// single query or read, buffer and execute commands until end of input.
//
// The controller is single-threaded. Every step (connect, each command, each
// input line) is a blocking call, so at most one operation is outstanding and
// output from one command never interleaves with another's.
package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"docdb/cli/internal/command"
	"docdb/cli/internal/config"
	"docdb/cli/internal/logging"
	"docdb/cli/internal/resultwriter"
	"docdb/cli/internal/store"
)

// Connector opens a store.
type Connector interface {
	Connect(ctx context.Context, conn config.Connection) (store.Store, error)
}

// Runner executes completed commands.
type Runner interface {
	Run(ctx context.Context, text string) error
	Commands() []string
}

// LineReader supplies raw input lines. ReadLine returns io.EOF at end of
// input.
type LineReader interface {
	ReadLine() (string, error)
	SetContinuation(on bool)
	AddCommand(name string)
	Close() error
}

// Notifier renders status notices and errors.
type Notifier interface {
	SetEnabled(enabled bool)
	Connecting(host string)
	Connected()
	Welcome(version string)
	Error(err error)
	ConnectionError(err error)
}

// Options are the per-run settings resolved from flags, env and config.
type Options struct {
	Connection config.Connection
	// Query is run once instead of reading commands when HasQuery is set.
	Query    string
	HasQuery bool
	Format   string
	MaxWidth int
	Version  string
}

// Deps are the controller's collaborators.
type Deps struct {
	Connector  Connector
	NewInvoker func(st store.Store, w resultwriter.Writer, collection string) Runner
	NewPrompt  func() LineReader
	Messages   Notifier
	ShowHelp   func() error
	Out        io.Writer
}

// exitCommands end an interactive session when typed on a fresh line.
var exitCommands = []string{".exit", ".quit"}

// Controller runs a session.
type Controller struct {
	opts  Options
	deps  Deps
	state State
}

// NewController returns a Controller in the Connecting state. Nothing is
// read or run until Run is called.
func NewController(opts Options, deps Deps) *Controller {
	return &Controller{opts: opts, deps: deps, state: Connecting}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

func (c *Controller) setState(s State) {
	if c.state != s {
		logging.Debug("session state", "from", c.state.String(), "to", s.String())
	}
	c.state = s
}

// Run executes the session and returns the process exit code.
func (c *Controller) Run(ctx context.Context) int {
	c.setState(Connecting)
	defer c.setState(Exiting)

	conn := c.opts.Connection
	if strings.TrimSpace(conn.Host) == "" {
		logging.Debug("no host configured, showing help")
		if c.deps.ShowHelp != nil {
			if err := c.deps.ShowHelp(); err != nil {
				c.deps.Messages.Error(err)
			}
		}
		return ExitSuccess
	}

	interactive := !c.opts.HasQuery

	w, err := resultwriter.Create(c.opts.Format, c.deps.Out)
	if err != nil {
		c.deps.Messages.Error(err)
		return ExitFailure
	}
	if tw, ok := w.(*resultwriter.TableWriter); ok {
		tw.MaxWidth = c.opts.MaxWidth
	}
	c.deps.Messages.SetEnabled(interactive || resultwriter.IsTabular(w))

	c.deps.Messages.Connecting(conn.Host)
	st, err := c.deps.Connector.Connect(ctx, conn)
	if err != nil {
		c.deps.Messages.ConnectionError(err)
		return ExitFailure
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Debug("close store", "error", err.Error())
		}
	}()

	inv := c.deps.NewInvoker(st, w, conn.Collection)
	if !interactive {
		return c.runOnce(ctx, inv)
	}
	return c.loop(ctx, inv)
}

func (c *Controller) runOnce(ctx context.Context, inv Runner) int {
	c.setState(Executing)
	if err := inv.Run(ctx, c.opts.Query); err != nil {
		c.setState(ErrorReported)
		c.deps.Messages.Error(err)
		return ExitFailure
	}
	return ExitSuccess
}

func (c *Controller) loop(ctx context.Context, inv Runner) int {
	c.deps.Messages.Connected()
	c.deps.Messages.Welcome(c.opts.Version)

	p := c.deps.NewPrompt()
	defer func() { _ = p.Close() }()
	for _, name := range inv.Commands() {
		p.AddCommand(name)
	}
	for _, name := range exitCommands {
		p.AddCommand(name)
	}

	var buf command.Buffer
	hint := ExitSuccess
	for {
		continuing := buf.Pending() > 0
		if continuing {
			c.setState(BufferingContinuation)
		} else {
			c.setState(AwaitingInput)
		}
		p.SetContinuation(continuing)

		line, err := p.ReadLine()
		if err == io.EOF {
			return hint
		}
		if err != nil {
			c.deps.Messages.Error(fmt.Errorf("read input: %w", err))
			return ExitFailure
		}

		// Empty lines are skipped without touching a pending continuation.
		if strings.TrimSuffix(line, "\r") == "" {
			continue
		}
		if !continuing && isExitCommand(line) {
			return hint
		}

		cmd, complete := buf.AddLine(line)
		if !complete {
			continue
		}

		c.setState(Executing)
		if err := inv.Run(ctx, cmd); err != nil {
			c.setState(ErrorReported)
			c.deps.Messages.Error(err)
			hint = ExitFailure
			continue
		}
		hint = ExitSuccess
	}
}

func isExitCommand(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	for _, name := range exitCommands {
		if line == name {
			return true
		}
	}
	return false
}
