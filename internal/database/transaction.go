// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/metrics"
)

// conn is the subset of *pgxpool.Conn a Queries handle needs.
type conn interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the data access handle bound to one connection. Every method
// runs in its own transaction: sequential calls are individually atomic but
// not jointly atomic.
type Queries struct {
	conn     conn
	defaults config.FixtureDefaults
	now      func() time.Time
}

func newQueries(c conn, defaults config.FixtureDefaults, now func() time.Time) *Queries {
	return &Queries{conn: c, defaults: defaults, now: now}
}

// inTx runs fn in a read-write transaction.
func (q *Queries) inTx(ctx context.Context, operation, table string, fn func(tx pgx.Tx) error) error {
	return q.inTxOptions(ctx, pgx.TxOptions{}, operation, table, fn)
}

// inTxOptions begins a transaction, runs fn, and commits. Any failure rolls
// back and is returned unchanged.
func (q *Queries) inTxOptions(ctx context.Context, opts pgx.TxOptions, operation, table string, fn func(tx pgx.Tx) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(operation, table, time.Since(start), err)
	}()

	tx, err := q.conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		rollbackQuietly(ctx, tx)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
