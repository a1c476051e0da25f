// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store connects to the document stores docdb can talk to and runs
// commands against them.
//
// Two backends are supported, selected by the host URL scheme:
//   - PostgreSQL (postgres://, postgresql://) over a pgx connection pool.
//     Collections are tables and queries are SQL; JSONB columns come back as
//     nested documents.
//   - Elasticsearch (http://, https://) over the olivere/elastic client.
//     Collections are indices and queries are query-string expressions or raw
//     JSON query bodies.
//
// Every backend returns result.Set values so the writers never see driver
// types.
package store

import (
	"context"
	"time"

	"docdb/cli/internal/config"
	"docdb/cli/internal/dsn"
	clierrors "docdb/cli/internal/errors"
	"docdb/cli/internal/logging"
	"docdb/cli/internal/result"
)

// Store is an open connection to a document store.
type Store interface {
	// Kind reports which backend this store talks to.
	Kind() dsn.Kind
	// Collections lists the collections visible to the connection.
	Collections(ctx context.Context) ([]string, error)
	// Query runs text against the store. collection is the current
	// collection and may be empty.
	Query(ctx context.Context, collection, text string) (result.Set, error)
	// Get fetches a single document by id.
	Get(ctx context.Context, collection, id string) (result.Set, error)
	// Close releases the connection.
	Close() error
}

// DetectKind reports which backend host selects.
func DetectKind(host string) dsn.Kind { return dsn.Detect(host) }

// Connector opens stores. The zero value uses default settings.
type Connector struct {
	// Timeout bounds connection setup and the reachability check.
	Timeout time.Duration
	// PageSize caps the number of documents a search returns.
	PageSize int
}

// NewConnector returns a Connector configured from c.
func NewConnector(c config.Config) *Connector {
	return &Connector{
		Timeout:  time.Duration(c.ConnectTimeoutSeconds) * time.Second,
		PageSize: c.PageSize,
	}
}

// Connect opens the store conn.Host points at and verifies it is reachable.
// All failures carry the Connection error kind.
func (c *Connector) Connect(ctx context.Context, conn config.Connection) (Store, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultConnectTimeoutSeconds) * time.Second
	}
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	kind := DetectKind(conn.Host)
	logging.Debug("connecting", "kind", string(kind), "host", conn.Host, "timeout", timeout.String())

	var (
		st  Store
		err error
	)
	switch kind {
	case dsn.KindPostgres:
		st, err = openPostgres(ctx, conn)
	case dsn.KindElasticsearch:
		st, err = openElastic(ctx, conn, pageSize)
	default:
		return nil, clierrors.Newf(clierrors.Connection,
			"unsupported host %q: use a postgres:// or http(s):// URL", logging.Mask(conn.Host))
	}
	if err != nil {
		return nil, clierrors.Wrap(clierrors.Connection, "cannot connect to "+logging.Mask(conn.Host), err)
	}
	logging.Debug("connected", "kind", string(kind))
	return st, nil
}
