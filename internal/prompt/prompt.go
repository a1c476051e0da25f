// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package prompt reads command lines from the user.
//
// On a terminal it offers line editing, history and Tab completion of
// dot-commands through golang.org/x/term. The terminal is switched to raw
// mode only while a line is being read, so result output is written to a
// cooked terminal. Any other input is read line by line without prompts.
package prompt

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"docdb/cli/internal/terminal"
)

const (
	// Primary is shown when a new command starts.
	Primary = "docdb> "
	// Continuation is shown while a command spans several lines.
	Continuation = "   ...> "
)

// Prompt is a line source.
type Prompt struct {
	// raw switches the terminal to raw mode and returns the restore func.
	raw      func() (func(), error)
	term     *term.Terminal
	reader   *bufio.Reader
	commands []string
	current  string
}

// New returns a Prompt reading from in. Prompts and echo go to out when in
// is a terminal.
func New(in *os.File, out io.Writer) *Prompt {
	if !terminal.IsTerminal(in) {
		return NewReader(in)
	}
	fd := int(in.Fd())
	p := newTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, func() (func(), error) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		return func() { _ = term.Restore(fd, state) }, nil
	})
	if w, h, err := term.GetSize(fd); err == nil {
		_ = p.term.SetSize(w, h)
	}
	return p
}

func newTerminal(rw io.ReadWriter, raw func() (func(), error)) *Prompt {
	p := &Prompt{raw: raw, current: Primary}
	p.term = term.NewTerminal(rw, Primary)
	p.term.AutoCompleteCallback = p.complete
	return p
}

// NewReader returns a Prompt that reads plain lines from r.
func NewReader(r io.Reader) *Prompt {
	return &Prompt{reader: bufio.NewReader(r), current: Primary}
}

// ReadLine returns the next line without its trailing newline. It returns
// io.EOF at end of input. At a terminal that includes Ctrl-D on an empty
// line and Ctrl-C anywhere, even part-way through a line or a continued
// command; the unfinished text is dropped and the session ends.
func (p *Prompt) ReadLine() (string, error) {
	if p.term == nil {
		return p.readPlain()
	}
	restore, err := p.raw()
	if err != nil {
		return "", err
	}
	defer restore()
	return p.term.ReadLine()
}

func (p *Prompt) readPlain() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// SetContinuation switches between the primary and continuation prompts.
func (p *Prompt) SetContinuation(on bool) {
	p.current = Primary
	if on {
		p.current = Continuation
	}
	if p.term != nil {
		p.term.SetPrompt(p.current)
	}
}

// AddCommand registers name for Tab completion.
func (p *Prompt) AddCommand(name string) {
	for _, c := range p.commands {
		if c == name {
			return
		}
	}
	p.commands = append(p.commands, name)
	sort.Strings(p.commands)
}

// Close releases the prompt. The terminal is already restored after every
// read, so there is nothing left to undo.
func (p *Prompt) Close() error { return nil }

// complete expands a dot-command prefix at the start of the line to the
// longest prefix shared by every matching command.
func (p *Prompt) complete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' || pos != len(line) {
		return "", 0, false
	}
	if !strings.HasPrefix(line, ".") || strings.ContainsAny(line, " \t") {
		return "", 0, false
	}

	var matches []string
	for _, c := range p.commands {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return "", 0, false
	}

	expanded := matches[0]
	for _, m := range matches[1:] {
		expanded = commonPrefix(expanded, m)
	}
	if len(matches) == 1 {
		expanded += " "
	}
	if expanded == line {
		return "", 0, false
	}
	return expanded, len(expanded), true
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
