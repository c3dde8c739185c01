// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package database implements the call detail record persistence layer on
PostgreSQL using pgx.

A DB owns a pgxpool.Pool. Connections are validated with a ping before they
are handed out and acquisition runs behind a gobreaker circuit breaker, so a
store that keeps refusing connections fails fast with ErrConnectivity until
the breaker half-opens.

# Scoped queries

Every data access operation lives on Queries, which is only reachable through
DB.Queries:

	err := db.Queries(ctx, func(q *database.Queries) error {
	    id, err := q.InsertCallLog(ctx, models.CallLog{})
	    if err != nil {
	        return err
	    }
	    _, err = q.InsertCallLogParticipant(ctx, models.CallLogParticipant{CallLogID: id})
	    return err
	})

Each Queries method runs in its own transaction. A failure rolls back that
method only; earlier methods in the same scope stay committed.

# Tables

Tables lists the twelve mapped tables. Child tables carry no foreign keys:
deleting a call log leaves its participants and recordings behind. The
statistics dimensions are protected by guarded deletes instead, which skip a
stat_queue or stat_agent row while facts still reference it.

# Raw statements

CEL rows are written with named-parameter SQL (pgx.NamedArgs) rather than the
typed helpers, and DB.Execute runs an arbitrary statement the same way.
*/
package database
