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
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tomtom215/calllogd/internal/logging"
	"github.com/tomtom215/calllogd/internal/metrics"
	"github.com/tomtom215/calllogd/internal/models"
	"github.com/tomtom215/calllogd/internal/validation"
)

// Guarded deletes remove a dimension row only when no fact references it.
// Each returns how many rows matched the id before the delete and how many
// were deleted, so a skip can be told apart from an absent row.
const (
	deleteStatQueueSQL = `
		WITH target AS (
			SELECT id FROM stat_queue WHERE id = $1
		), deleted AS (
			DELETE FROM stat_queue
			WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM stat_queue_periodic WHERE stat_queue_id = $1)
			  AND NOT EXISTS (SELECT 1 FROM stat_call_on_queue WHERE stat_queue_id = $1)
			RETURNING id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM deleted)`

	deleteStatAgentSQL = `
		WITH target AS (
			SELECT id FROM stat_agent WHERE id = $1
		), deleted AS (
			DELETE FROM stat_agent
			WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM stat_call_on_queue WHERE stat_agent_id = $1)
			RETURNING id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM deleted)`

	insertStatQueueSQL = `
		INSERT INTO stat_queue (id, name, tenant_uuid, queue_id, deleted)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`
)

// ensureStatQueue inserts q unless a row with its id exists, and reports
// whether it inserted.
func (q *Queries) ensureStatQueue(ctx context.Context, tx pgx.Tx, queue models.StatQueue) (bool, error) {
	queue.ApplyDefaults(q.defaults.MasterTenantUUID)
	if verr := validation.ValidateStruct(&queue); verr != nil {
		return false, fmt.Errorf("invalid stat queue: %w", verr)
	}
	tag, err := tx.Exec(ctx, insertStatQueueSQL, queue.ID, queue.Name, queue.TenantUUID, queue.QueueID, queue.Deleted)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// guardedDelete runs one of the guarded delete statements and reports
// whether the row was removed.
func (q *Queries) guardedDelete(ctx context.Context, table, query string, id int) (bool, error) {
	var existed, deleted int64
	err := q.inTx(ctx, "guarded_delete", table, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, id).Scan(&existed, &deleted)
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %d: %w", table, id, err)
	}

	if existed > 0 && deleted == 0 {
		metrics.RecordGuardedDeleteSkip(table)
		logging.Ctx(ctx).Debug().
			Str("table", table).
			Int("id", id).
			Msg("Delete skipped, row still referenced")
	}
	return deleted > 0, nil
}

// InsertStatQueue inserts queue unless a row with the same id exists, in
// which case it does nothing. The result reports whether a row was inserted.
func (q *Queries) InsertStatQueue(ctx context.Context, queue models.StatQueue) (bool, error) {
	var inserted bool
	err := q.inTx(ctx, "insert", "stat_queue", func(tx pgx.Tx) error {
		var err error
		inserted, err = q.ensureStatQueue(ctx, tx, queue)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert stat queue %d: %w", queue.ID, err)
	}
	return inserted, nil
}

// DeleteStatQueue deletes a queue dimension unless a periodic or
// call-on-queue row references it. A skipped delete is not an error; the
// result reports whether the row was removed.
func (q *Queries) DeleteStatQueue(ctx context.Context, id int) (bool, error) {
	return q.guardedDelete(ctx, "stat_queue", deleteStatQueueSQL, id)
}

// InsertStatAgent inserts agent unless a row with the same id exists. The
// result reports whether a row was inserted.
func (q *Queries) InsertStatAgent(ctx context.Context, agent models.StatAgent) (bool, error) {
	agent.ApplyDefaults(q.defaults.MasterTenantUUID)
	if verr := validation.ValidateStruct(&agent); verr != nil {
		return false, fmt.Errorf("invalid stat agent: %w", verr)
	}

	var inserted bool
	err := q.inTx(ctx, "insert", "stat_agent", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO stat_agent (id, name, tenant_uuid, agent_id, deleted)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			agent.ID, agent.Name, agent.TenantUUID, agent.AgentID, agent.Deleted,
		)
		if err != nil {
			return err
		}
		inserted = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert stat agent %d: %w", agent.ID, err)
	}
	return inserted, nil
}

// DeleteStatAgent deletes an agent dimension unless a call-on-queue row
// references it.
func (q *Queries) DeleteStatAgent(ctx context.Context, id int) (bool, error) {
	return q.guardedDelete(ctx, "stat_agent", deleteStatAgentSQL, id)
}

// InsertStatAgentPeriodic inserts s and returns its generated id. A zero
// Time becomes the configured stat baseline.
func (q *Queries) InsertStatAgentPeriodic(ctx context.Context, s models.StatAgentPeriodic) (int64, error) {
	if s.Time.IsZero() {
		s.Time = q.defaults.StatBaselineTime
	}
	if verr := validation.ValidateStruct(&s); verr != nil {
		return 0, fmt.Errorf("invalid stat agent periodic: %w", verr)
	}

	var id int64
	err := q.inTx(ctx, "insert", "stat_agent_periodic", func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO stat_agent_periodic (time, login_time, pause_time, wrapup_time, stat_agent_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			s.Time, durationToInterval(s.LoginTime), durationToInterval(s.PauseTime),
			durationToInterval(s.WrapupTime), s.StatAgentID,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert stat agent periodic: %w", err)
	}
	return id, nil
}

// DeleteStatAgentPeriodic deletes one agent periodic row.
func (q *Queries) DeleteStatAgentPeriodic(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, "stat_agent_periodic", `DELETE FROM stat_agent_periodic WHERE id = $1`, id)
}

// FindStatAgentPeriodic returns one agent periodic row, or nil, nil.
func (q *Queries) FindStatAgentPeriodic(ctx context.Context, id int64) (*models.StatAgentPeriodic, error) {
	var found *models.StatAgentPeriodic
	err := q.inTx(ctx, "find", "stat_agent_periodic", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, time, login_time, pause_time, wrapup_time, stat_agent_id
			FROM stat_agent_periodic WHERE id = $1`, id)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatAgentPeriodic, error) {
			var s models.StatAgentPeriodic
			var login, pause, wrapup pgtype.Interval
			var agentID *int
			err := row.Scan(&s.ID, &s.Time, &login, &pause, &wrapup, &agentID)
			s.LoginTime = intervalToDuration(login)
			s.PauseTime = intervalToDuration(pause)
			s.WrapupTime = intervalToDuration(wrapup)
			if agentID != nil {
				s.StatAgentID = *agentID
			}
			return s, err
		})
		if err != nil || len(list) == 0 {
			return err
		}
		found = &list[0]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find stat agent periodic %d: %w", id, err)
	}
	return found, nil
}

// InsertStatQueuePeriodic ensures the referenced queue exists, then inserts
// s and returns its generated id. A zero Time becomes the configured stat
// baseline.
func (q *Queries) InsertStatQueuePeriodic(ctx context.Context, s models.StatQueuePeriodic) (int64, error) {
	if s.Time.IsZero() {
		s.Time = q.defaults.StatBaselineTime
	}
	if verr := validation.ValidateStruct(&s); verr != nil {
		return 0, fmt.Errorf("invalid stat queue periodic: %w", verr)
	}

	var id int64
	err := q.inTx(ctx, "insert", "stat_queue_periodic", func(tx pgx.Tx) error {
		if _, err := q.ensureStatQueue(ctx, tx, s.DimensionQueue(q.defaults.MasterTenantUUID)); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			INSERT INTO stat_queue_periodic (
				time, answered, abandoned, total, "full", closed, joinempty, leaveempty,
				divert_ca_ratio, divert_waittime, timeout, stat_queue_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`,
			s.Time, s.Answered, s.Abandoned, s.Total, s.Full, s.Closed, s.JoinEmpty, s.LeaveEmpty,
			s.DivertCARatio, s.DivertWaitTime, s.Timeout, s.StatQueueID,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert stat queue periodic: %w", err)
	}
	return id, nil
}

// DeleteStatQueuePeriodic deletes one queue periodic row. The referenced
// queue is left for the caller to delete.
func (q *Queries) DeleteStatQueuePeriodic(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, "stat_queue_periodic", `DELETE FROM stat_queue_periodic WHERE id = $1`, id)
}

// InsertStatCallOnQueue ensures the referenced queue exists, then inserts c
// and returns its generated id. stat_agent_id is written only when
// StatAgentID points at a non-zero id.
func (q *Queries) InsertStatCallOnQueue(ctx context.Context, c models.StatCallOnQueue) (int64, error) {
	c.ApplyDefaults(q.now())
	if verr := validation.ValidateStruct(&c); verr != nil {
		return 0, fmt.Errorf("invalid stat call on queue: %w", verr)
	}

	var id int64
	err := q.inTx(ctx, "insert", "stat_call_on_queue", func(tx pgx.Tx) error {
		if _, err := q.ensureStatQueue(ctx, tx, c.DimensionQueue(q.defaults.MasterTenantUUID)); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			INSERT INTO stat_call_on_queue (
				callid, time, ringtime, talktime, waittime, status, stat_queue_id, stat_agent_id
			) VALUES ($1, $2, $3, $4, $5, $6::text::call_exit_type, $7, $8)
			RETURNING id`,
			c.CallID, c.Time, c.RingTime, c.TalkTime, c.WaitTime, string(c.Status), c.StatQueueID, c.StatAgentID,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert stat call on queue: %w", err)
	}
	return id, nil
}

// DeleteStatCallOnQueue deletes one call-on-queue row.
func (q *Queries) DeleteStatCallOnQueue(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, "stat_call_on_queue", `DELETE FROM stat_call_on_queue WHERE id = $1`, id)
}

func (q *Queries) deleteByID(ctx context.Context, table, query string, id int64) error {
	err := q.inTx(ctx, "delete", table, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", table, id, err)
	}
	return nil
}

// durationToInterval converts d to a PostgreSQL interval with microsecond
// precision and no day or month component.
func durationToInterval(d time.Duration) pgtype.Interval {
	return pgtype.Interval{Microseconds: d.Microseconds(), Valid: true}
}

// intervalToDuration converts an interval, counting a day as 24 hours and a
// month as 30 days. A NULL interval is zero.
func intervalToDuration(i pgtype.Interval) time.Duration {
	if !i.Valid {
		return 0
	}
	const day = 24 * time.Hour
	return time.Duration(i.Microseconds)*time.Microsecond +
		time.Duration(i.Days)*day +
		time.Duration(i.Months)*30*day
}

// FindStatQueue returns one queue dimension, or nil, nil.
func (q *Queries) FindStatQueue(ctx context.Context, id int) (*models.StatQueue, error) {
	var found *models.StatQueue
	err := q.inTx(ctx, "find", "stat_queue", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id, name, tenant_uuid, queue_id, deleted FROM stat_queue WHERE id = $1`, id)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatQueue, error) {
			var s models.StatQueue
			var queueID *int
			err := row.Scan(&s.ID, &s.Name, &s.TenantUUID, &queueID, &s.Deleted)
			if queueID != nil {
				s.QueueID = *queueID
			}
			return s, err
		})
		if err != nil || len(list) == 0 {
			return err
		}
		found = &list[0]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find stat queue %d: %w", id, err)
	}
	return found, nil
}

// FindStatAgent returns one agent dimension, or nil, nil.
func (q *Queries) FindStatAgent(ctx context.Context, id int) (*models.StatAgent, error) {
	var found *models.StatAgent
	err := q.inTx(ctx, "find", "stat_agent", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id, name, tenant_uuid, agent_id, deleted FROM stat_agent WHERE id = $1`, id)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatAgent, error) {
			var s models.StatAgent
			var agentID *int
			err := row.Scan(&s.ID, &s.Name, &s.TenantUUID, &agentID, &s.Deleted)
			if agentID != nil {
				s.AgentID = *agentID
			}
			return s, err
		})
		if err != nil || len(list) == 0 {
			return err
		}
		found = &list[0]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find stat agent %d: %w", id, err)
	}
	return found, nil
}
