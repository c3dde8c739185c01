// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/calllogd/internal/models"
	"github.com/tomtom215/calllogd/internal/validation"
)

const callLogColumns = `id, date, date_answer, date_end, tenant_uuid,
	source_name, source_exten, source_internal_exten, source_internal_context, source_line_identity,
	requested_name, requested_exten, requested_context, requested_internal_exten, requested_internal_context,
	destination_name, destination_exten, destination_internal_exten, destination_internal_context, destination_line_identity,
	direction, user_field, conversation_id`

const participantColumns = `uuid, call_log_id, user_uuid, line_id, role::text, tags, answered`

func scanCallLog(row pgx.Row) (models.CallLog, error) {
	var c models.CallLog
	var direction string
	err := row.Scan(
		&c.ID, &c.Date, &c.DateAnswer, &c.DateEnd, &c.TenantUUID,
		&c.SourceName, &c.SourceExten, &c.SourceInternalExten, &c.SourceInternalContext, &c.SourceLineIdentity,
		&c.RequestedName, &c.RequestedExten, &c.RequestedContext, &c.RequestedInternalExten, &c.RequestedInternalContext,
		&c.DestinationName, &c.DestinationExten, &c.DestinationInternalExten, &c.DestinationInternalContext, &c.DestinationLineIdentity,
		&direction, &c.UserField, &c.ConversationID,
	)
	c.Direction = models.CallDirection(direction)
	c.Participants = []models.CallLogParticipant{}
	return c, err
}

func scanParticipant(row pgx.Row) (models.CallLogParticipant, error) {
	var p models.CallLogParticipant
	var role string
	err := row.Scan(&p.UUID, &p.CallLogID, &p.UserUUID, &p.LineID, &role, &p.Tags, &p.Answered)
	p.Role = models.ParticipantRole(role)
	return p, err
}

// InsertCallLog inserts c and returns its generated id. A zero Date becomes
// the current time and a nil TenantUUID the master tenant.
func (q *Queries) InsertCallLog(ctx context.Context, c models.CallLog) (int64, error) {
	c.ApplyDefaults(q.defaults.MasterTenantUUID, q.now())
	if verr := validation.ValidateStruct(&c); verr != nil {
		return 0, fmt.Errorf("invalid call log: %w", verr)
	}

	var id int64
	err := q.inTx(ctx, "insert", "call_log", func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO call_log (
				date, date_answer, date_end, tenant_uuid,
				source_name, source_exten, source_internal_exten, source_internal_context, source_line_identity,
				requested_name, requested_exten, requested_context, requested_internal_exten, requested_internal_context,
				destination_name, destination_exten, destination_internal_exten, destination_internal_context, destination_line_identity,
				direction, user_field, conversation_id
			) VALUES (
				$1, $2, $3, $4,
				$5, $6, $7, $8, $9,
				$10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19,
				$20, $21, $22
			) RETURNING id`,
			c.Date, c.DateAnswer, c.DateEnd, c.TenantUUID,
			c.SourceName, c.SourceExten, c.SourceInternalExten, c.SourceInternalContext, c.SourceLineIdentity,
			c.RequestedName, c.RequestedExten, c.RequestedContext, c.RequestedInternalExten, c.RequestedInternalContext,
			c.DestinationName, c.DestinationExten, c.DestinationInternalExten, c.DestinationInternalContext, c.DestinationLineIdentity,
			string(c.Direction), c.UserField, c.ConversationID,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert call log: %w", err)
	}
	return id, nil
}

// DeleteCallLog deletes the call log row only. Participants and recordings
// are left in place.
func (q *Queries) DeleteCallLog(ctx context.Context, id int64) error {
	err := q.inTx(ctx, "delete", "call_log", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM call_log WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete call log %d: %w", id, err)
	}
	return nil
}

// ClearCallLogs deletes every call log. Reset tooling only.
func (q *Queries) ClearCallLogs(ctx context.Context) error {
	err := q.inTx(ctx, "clear", "call_log", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM call_log`)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear call logs: %w", err)
	}
	return nil
}

// InsertCallLogParticipant inserts p and returns its uuid. Role defaults to
// source. Several participants with the same role may be inserted.
func (q *Queries) InsertCallLogParticipant(ctx context.Context, p models.CallLogParticipant) (uuid.UUID, error) {
	p.ApplyDefaults()
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return uuid.Nil, fmt.Errorf("invalid call log participant: %w", verr)
	}

	err := q.inTx(ctx, "insert", "call_log_participant", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO call_log_participant (uuid, call_log_id, user_uuid, line_id, role, tags, answered)
			VALUES ($1, $2, $3, $4, $5::text::call_log_participant_role, $6, $7)`,
			p.UUID, p.CallLogID, p.UserUUID, p.LineID, string(p.Role), p.Tags, p.Answered,
		)
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert call log participant: %w", err)
	}
	return p.UUID, nil
}

// DeleteCallLogParticipants deletes the participants of a call log and
// returns how many rows were removed.
func (q *Queries) DeleteCallLogParticipants(ctx context.Context, callLogID int64) (int64, error) {
	var deleted int64
	err := q.inTx(ctx, "delete_by_call_log", "call_log_participant", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM call_log_participant WHERE call_log_id = $1`, callLogID)
		deleted = tag.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete participants of call log %d: %w", callLogID, err)
	}
	return deleted, nil
}

// FindAllCallLog returns every call log ordered by ascending date, each with
// its participants. Participants are loaded with one extra query.
func (q *Queries) FindAllCallLog(ctx context.Context) ([]models.CallLog, error) {
	var callLogs []models.CallLog
	err := q.inTx(ctx, "find_all", "call_log", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+callLogColumns+` FROM call_log ORDER BY date, id`)
		if err != nil {
			return err
		}
		callLogs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CallLog, error) {
			return scanCallLog(row)
		})
		if err != nil {
			return err
		}
		return attachParticipants(ctx, tx, callLogs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find call logs: %w", err)
	}
	return callLogs, nil
}

// FindLastCallLog returns the first call log in ascending date order, with
// its participants and its source and destination participants. The name is
// historical: callers rely on the earliest row. It returns nil, nil when the
// table is empty.
func (q *Queries) FindLastCallLog(ctx context.Context) (*models.CallLog, error) {
	var callLog *models.CallLog
	err := q.inTx(ctx, "find_last", "call_log", func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+callLogColumns+` FROM call_log ORDER BY date, id LIMIT 1`)
		c, err := scanCallLog(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		list := []models.CallLog{c}
		if err := attachParticipants(ctx, tx, list); err != nil {
			return err
		}
		if err := attachRoleParticipants(ctx, tx, &list[0]); err != nil {
			return err
		}
		callLog = &list[0]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find last call log: %w", err)
	}
	return callLog, nil
}

// attachParticipants loads the participants of every call log in one query.
func attachParticipants(ctx context.Context, tx pgx.Tx, callLogs []models.CallLog) error {
	if len(callLogs) == 0 {
		return nil
	}

	ids := make([]int64, len(callLogs))
	index := make(map[int64]int, len(callLogs))
	for i, c := range callLogs {
		ids[i] = c.ID
		index[c.ID] = i
	}

	rows, err := tx.Query(ctx, `
		SELECT `+participantColumns+`
		FROM call_log_participant
		WHERE call_log_id = ANY($1)
		ORDER BY call_log_id, role, uuid`, ids)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}
	participants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CallLogParticipant, error) {
		return scanParticipant(row)
	})
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}

	for _, p := range participants {
		i := index[p.CallLogID]
		callLogs[i].Participants = append(callLogs[i].Participants, p)
	}
	return nil
}

// attachRoleParticipants loads the source and destination participants of c
// with a single joined query.
func attachRoleParticipants(ctx context.Context, tx pgx.Tx, c *models.CallLog) error {
	var src, dst nullableParticipant
	err := tx.QueryRow(ctx, `
		SELECT
			s.uuid, s.call_log_id, s.user_uuid, s.line_id, s.role::text, s.tags, s.answered,
			d.uuid, d.call_log_id, d.user_uuid, d.line_id, d.role::text, d.tags, d.answered
		FROM call_log cl
		LEFT JOIN LATERAL (
			SELECT * FROM call_log_participant
			WHERE call_log_id = cl.id AND role = 'source'
			ORDER BY uuid LIMIT 1
		) s ON true
		LEFT JOIN LATERAL (
			SELECT * FROM call_log_participant
			WHERE call_log_id = cl.id AND role = 'destination'
			ORDER BY uuid LIMIT 1
		) d ON true
		WHERE cl.id = $1`, c.ID,
	).Scan(
		&src.UUID, &src.CallLogID, &src.UserUUID, &src.LineID, &src.Role, &src.Tags, &src.Answered,
		&dst.UUID, &dst.CallLogID, &dst.UserUUID, &dst.LineID, &dst.Role, &dst.Tags, &dst.Answered,
	)
	if err != nil {
		return fmt.Errorf("failed to load source and destination participants: %w", err)
	}
	c.SourceParticipant = src.participant()
	c.DestinationParticipant = dst.participant()
	return nil
}

// nullableParticipant receives the columns of an outer-joined participant.
type nullableParticipant struct {
	UUID      *uuid.UUID
	CallLogID *int64
	UserUUID  *uuid.UUID
	LineID    *int
	Role      *string
	Tags      []string
	Answered  *bool
}

func (n nullableParticipant) participant() *models.CallLogParticipant {
	if n.UUID == nil {
		return nil
	}
	p := &models.CallLogParticipant{
		UUID:     *n.UUID,
		UserUUID: n.UserUUID,
		LineID:   n.LineID,
		Tags:     n.Tags,
	}
	if n.CallLogID != nil {
		p.CallLogID = *n.CallLogID
	}
	if n.Role != nil {
		p.Role = models.ParticipantRole(*n.Role)
	}
	if n.Answered != nil {
		p.Answered = *n.Answered
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// GetCallLogUserUUIDs loads a call log with its participants and returns
// the user uuids of the participants that have one. It fails with
// ErrNotFound when the call log does not exist.
func (q *Queries) GetCallLogUserUUIDs(ctx context.Context, callLogID int64) ([]uuid.UUID, error) {
	var userUUIDs []uuid.UUID
	err := q.inTx(ctx, "get_user_uuids", "call_log", func(tx pgx.Tx) error {
		c, err := scanCallLog(tx.QueryRow(ctx, `SELECT `+callLogColumns+` FROM call_log WHERE id = $1`, callLogID))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		list := []models.CallLog{c}
		if err := attachParticipants(ctx, tx, list); err != nil {
			return err
		}
		userUUIDs = list[0].ParticipantUserUUIDs()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user uuids of call log %d: %w", callLogID, err)
	}
	return userUUIDs, nil
}

// GetCallLogTenantUUID returns the tenant owning a call log. It fails with
// ErrNotFound when the call log does not exist.
func (q *Queries) GetCallLogTenantUUID(ctx context.Context, callLogID int64) (uuid.UUID, error) {
	var tenantUUID uuid.UUID
	err := q.inTx(ctx, "get_tenant_uuid", "call_log", func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT tenant_uuid FROM call_log WHERE id = $1`, callLogID).Scan(&tenantUUID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get tenant of call log %d: %w", callLogID, err)
	}
	return tenantUUID, nil
}
