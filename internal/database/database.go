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
	"github.com/jackc/pgx/v5/pgxpool"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/logging"
	"github.com/tomtom215/calllogd/internal/metrics"
)

// DB owns the connection pool and hands out scoped Queries handles.
type DB struct {
	pool     *pgxpool.Pool
	cfg      *config.DatabaseConfig
	defaults config.FixtureDefaults
	breaker  *gobreaker.CircuitBreaker[*pgxpool.Conn]
	now      func() time.Time
}

// New creates the pool for cfg. No connection is opened until the first
// Connect, so New succeeds against a store that is still starting.
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	defaults, err := cfg.Fixtures.Defaults()
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixture defaults: %w", err)
	}

	poolCfg, err := buildPoolConfig(&cfg.Database)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &DB{
		pool:     pool,
		cfg:      &cfg.Database,
		defaults: defaults,
		now:      time.Now,
	}
	if cfg.Breaker.Enabled {
		db.breaker = newBreaker(&cfg.Breaker)
	}

	logging.Info().
		Str("target", cfg.Database.Redacted()).
		Int32("max_conns", poolCfg.MaxConns).
		Bool("circuit_breaker", cfg.Breaker.Enabled).
		Msg("Database pool created")

	return db, nil
}

// Close closes every pooled connection. It blocks until acquired
// connections are released.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Defaults returns the fixture defaults applied by inserts.
func (db *DB) Defaults() config.FixtureDefaults {
	return db.defaults
}

// Connect acquires a validated connection from the pool. The caller must
// Release it. Failures wrap ErrConnectivity.
func (db *DB) Connect(ctx context.Context) (*pgxpool.Conn, error) {
	acquire := func() (*pgxpool.Conn, error) {
		return db.pool.Acquire(ctx)
	}

	var (
		conn *pgxpool.Conn
		err  error
	)
	if db.breaker != nil {
		conn, err = db.breaker.Execute(acquire)
	} else {
		conn, err = acquire()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire connection: %w", ErrConnectivity, err)
	}
	return conn, nil
}

// IsUp reports whether a connection can be acquired. It dials the pool
// directly: health checks neither consult nor trip the circuit breaker. It
// never returns an error; failures are logged at debug level.
func (db *DB) IsUp(ctx context.Context) bool {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Database is down")
		return false
	}
	conn.Release()
	return true
}

// WaitUntilUp polls IsUp every interval until it succeeds or ctx is done.
func (db *DB) WaitUntilUp(ctx context.Context, interval time.Duration) error {
	if db.IsUp(ctx) {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: gave up waiting: %w", ErrConnectivity, ctx.Err())
		case <-ticker.C:
			if db.IsUp(ctx) {
				return nil
			}
		}
	}
}

// Queries runs fn with a Queries handle bound to one connection. The
// connection is released when fn returns, whatever the outcome.
func (db *DB) Queries(ctx context.Context, fn func(q *Queries) error) error {
	conn, err := db.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(newQueries(conn, db.defaults, db.now))
}

// Execute runs one statement outside the Queries abstraction. Parameters
// are bound by name with @name placeholders.
func (db *DB) Execute(ctx context.Context, query string, args pgx.NamedArgs) error {
	conn, err := db.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	start := time.Now()
	_, err = conn.Exec(ctx, query, args)
	metrics.RecordDBQuery("execute", "raw", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// PoolStats publishes pool occupancy and returns the acquired and total
// connection counts.
func (db *DB) PoolStats() (acquired, total int32) {
	stat := db.pool.Stat()
	acquired, total = stat.AcquiredConns(), stat.TotalConns()
	metrics.RecordPoolStats(acquired, total)
	return acquired, total
}

// BreakerState returns the circuit breaker state name, or "disabled".
func (db *DB) BreakerState() string {
	if db.breaker == nil {
		return "disabled"
	}
	return db.breaker.State().String()
}
