// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tomtom215/calllogd/internal/logging"
)

var (
	// ErrNotFound is returned when a lookup that requires a row finds none.
	ErrNotFound = errors.New("not found")

	// ErrConnectivity wraps failures to obtain a connection, including an
	// open circuit breaker.
	ErrConnectivity = errors.New("database unreachable")
)

// PostgreSQL SQLSTATE codes inspected by the helpers below.
const (
	pgUniqueViolation = "23505"
)

// IsUniqueViolation reports whether err carries a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// rollbackQuietly rolls back tx and logs the failure at debug level. A
// rollback after a failed statement is best-effort; the original error is
// what the caller needs.
func rollbackQuietly(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logging.Ctx(ctx).Debug().Err(err).Msg("Failed to roll back transaction")
	}
}

// closeBatchQuietly closes a batch result and ignores the error. Errors from
// the batch were already returned by the individual results.
func closeBatchQuietly(br pgx.BatchResults) {
	if br != nil {
		_ = br.Close()
	}
}
