// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docdb/cli/internal/config"
	"docdb/cli/internal/dsn"
	"docdb/cli/internal/result"
)

const listTablesSQL = `SELECT table_name
FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
ORDER BY table_name`

var errNoCollection = errors.New("no collection selected: run .use <name> first")

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, conn config.Connection) (*Postgres, error) {
	normalized, err := dsn.Normalize(conn.Host)
	if err != nil {
		return nil, err
	}
	cfg, err := pgxpool.ParseConfig(normalized)
	if err != nil {
		return nil, err
	}
	if conn.Database != "" {
		cfg.ConnConfig.Database = conn.Database
	}
	if conn.Key != "" {
		cfg.ConnConfig.Password = conn.Key
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Kind() dsn.Kind { return dsn.KindPostgres }

func (p *Postgres) Collections(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, listTablesSQL)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Query runs text as SQL. Statements that return no columns yield a single
// rows_affected record.
func (p *Postgres) Query(ctx context.Context, _ string, text string) (result.Set, error) {
	return p.query(ctx, text)
}

// Get selects the rows whose id column equals id.
func (p *Postgres) Get(ctx context.Context, collection, id string) (result.Set, error) {
	if collection == "" {
		return nil, errNoCollection
	}
	sql := "SELECT * FROM " + tableIdentifier(collection).Sanitize() + " WHERE id::text = $1"
	return p.query(ctx, sql, id)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) query(ctx context.Context, sql string, args ...any) (result.Set, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}

	var values [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		values = append(values, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(cols) == 0 {
		rows.Close()
		return result.Set{result.NewRecord("rows_affected", rows.CommandTag().RowsAffected())}, nil
	}
	return recordsFromRows(cols, values), nil
}

// recordsFromRows pairs each row's values with the column names.
func recordsFromRows(cols []string, rows [][]any) result.Set {
	set := make(result.Set, 0, len(rows))
	for _, vals := range rows {
		rec := make(result.Record, len(cols))
		for i, c := range cols {
			var v any
			if i < len(vals) {
				v = vals[i]
			}
			rec[i] = result.Field{Name: c, Value: columnValue(v)}
		}
		set = append(set, rec)
	}
	return set
}

// tableIdentifier splits an optionally schema-qualified table name.
func tableIdentifier(name string) pgx.Identifier {
	return pgx.Identifier(strings.Split(name, "."))
}

// columnValue unwraps pgtype values that have no natural Go form, such as
// numeric and interval, into their driver value.
func columnValue(v any) any {
	switch v.(type) {
	case nil, string, bool, int16, int32, int64, float32, float64, []byte, [16]byte,
		map[string]any, []any, time.Time:
		return v
	}
	if dv, ok := v.(driver.Valuer); ok {
		if out, err := dv.Value(); err == nil {
			return out
		}
	}
	return v
}
