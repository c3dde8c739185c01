// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// countAllSQL counts every mapped table in one statement.
var countAllSQL = buildCountAllSQL(Tables)

func buildCountAllSQL(tables []string) string {
	parts := make([]string, len(tables))
	for i, table := range tables {
		parts[i] = fmt.Sprintf("SELECT '%s' AS table_name, count(*) AS row_count FROM %s", table, table)
	}
	return strings.Join(parts, "\nUNION ALL\n")
}

// CountAll returns the row count of every mapped table. Counts come from one
// read-only snapshot, so they reflect committed rows only and are mutually
// consistent.
func (q *Queries) CountAll(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	err := q.inTxOptions(ctx, opts, "count_all", "*", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, countAllSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				table string
				count int64
			)
			if err := rows.Scan(&table, &count); err != nil {
				return err
			}
			counts[table] = count
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	return counts, nil
}
