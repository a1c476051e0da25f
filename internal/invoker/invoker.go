// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package invoker executes completed commands against a store and renders
// their results through a result writer.
//
// Lines starting with '.' are built-in commands; everything else is handed to
// the store as a query against the current collection.
package invoker

import (
	"context"
	"strings"

	clierrors "docdb/cli/internal/errors"
	"docdb/cli/internal/logging"
	"docdb/cli/internal/result"
	"docdb/cli/internal/resultwriter"
)

// Store is the part of store.Store the invoker needs.
type Store interface {
	Collections(ctx context.Context) ([]string, error)
	Query(ctx context.Context, collection, text string) (result.Set, error)
	Get(ctx context.Context, collection, id string) (result.Set, error)
}

type builtin struct {
	name  string
	usage string
	help  string
	run   func(iv *Invoker, ctx context.Context, args []string) error
}

var builtins []builtin

func init() {
	builtins = []builtin{
		{".help", ".help", "list the built-in commands", (*Invoker).help},
		{".collections", ".collections", "list collections", (*Invoker).collections},
		{".tables", ".tables", "alias for .collections", (*Invoker).collections},
		{".use", ".use <collection>", "set the current collection", (*Invoker).use},
		{".get", ".get <id>", "fetch one document from the current collection", (*Invoker).get},
	}
}

// Invoker runs commands for one session.
type Invoker struct {
	store      Store
	out        resultwriter.Writer
	collection string
}

// New returns an Invoker writing to out with collection as the current
// collection.
func New(st Store, out resultwriter.Writer, collection string) *Invoker {
	return &Invoker{store: st, out: out, collection: strings.TrimSpace(collection)}
}

// Collection returns the current collection.
func (iv *Invoker) Collection() string { return iv.collection }

// Commands returns the names of the built-in commands.
func (iv *Invoker) Commands() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.name
	}
	return names
}

// Run executes text. Failures carry the Command error kind.
func (iv *Invoker) Run(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return clierrors.New(clierrors.Command, "empty command")
	}

	if strings.HasPrefix(text, ".") {
		fields := strings.Fields(text)
		name := strings.ToLower(fields[0])
		for _, b := range builtins {
			if b.name == name {
				logging.Debug("builtin", "command", name, "args", len(fields)-1)
				return b.run(iv, ctx, fields[1:])
			}
		}
		return clierrors.Newf(clierrors.Command, "unknown command %q: run .help for the list", fields[0])
	}

	logging.Debug("query", "collection", iv.collection, "text", text)
	set, err := iv.store.Query(ctx, iv.collection, text)
	if err != nil {
		return clierrors.Wrap(clierrors.Command, "query failed", err)
	}
	return iv.emit(set)
}

func (iv *Invoker) help(_ context.Context, _ []string) error {
	set := make(result.Set, 0, len(builtins)+1)
	for _, b := range builtins {
		set = append(set, result.NewRecord("command", b.usage, "description", b.help))
	}
	set = append(set, result.NewRecord("command", ".exit, .quit", "description", "end the session"))
	return iv.emit(set)
}

func (iv *Invoker) collections(ctx context.Context, _ []string) error {
	names, err := iv.store.Collections(ctx)
	if err != nil {
		return clierrors.Wrap(clierrors.Command, "cannot list collections", err)
	}
	set := make(result.Set, len(names))
	for i, n := range names {
		set[i] = result.NewRecord("name", n)
	}
	return iv.emit(set)
}

func (iv *Invoker) use(_ context.Context, args []string) error {
	if len(args) != 1 {
		return clierrors.New(clierrors.Command, "usage: .use <collection>")
	}
	iv.collection = args[0]
	return nil
}

func (iv *Invoker) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return clierrors.New(clierrors.Command, "usage: .get <id>")
	}
	set, err := iv.store.Get(ctx, iv.collection, args[0])
	if err != nil {
		return clierrors.Wrap(clierrors.Command, "get failed", err)
	}
	return iv.emit(set)
}

// emit renders set as one Start/Write/End cycle.
func (iv *Invoker) emit(set result.Set) error {
	if err := iv.out.Start(); err != nil {
		return clierrors.Wrap(clierrors.Command, "cannot write result", err)
	}
	werr := iv.out.Write(set)
	if err := iv.out.End(); werr == nil {
		werr = err
	}
	if werr != nil {
		return clierrors.Wrap(clierrors.Command, "cannot write result", werr)
	}
	return nil
}
