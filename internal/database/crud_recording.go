// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/calllogd/internal/models"
	"github.com/tomtom215/calllogd/internal/validation"
)

const recordingColumns = `uuid, start_time, end_time, path, call_log_id`

const insertRecordingSQL = `
	INSERT INTO recording (uuid, start_time, end_time, path, call_log_id)
	VALUES ($1, $2, $3, $4, $5)`

func scanRecording(row pgx.Row) (models.Recording, error) {
	var r models.Recording
	err := row.Scan(&r.UUID, &r.StartTime, &r.EndTime, &r.Path, &r.CallLogID)
	return r, err
}

func collectRecordings(rows pgx.Rows) ([]models.Recording, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Recording, error) {
		return scanRecording(row)
	})
}

func prepareRecording(r *models.Recording) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	if verr := validation.ValidateStruct(r); verr != nil {
		return fmt.Errorf("invalid recording: %w", verr)
	}
	return nil
}

// InsertRecording inserts r and returns its uuid.
func (q *Queries) InsertRecording(ctx context.Context, r models.Recording) (uuid.UUID, error) {
	if err := prepareRecording(&r); err != nil {
		return uuid.Nil, err
	}

	err := q.inTx(ctx, "insert", "recording", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertRecordingSQL, r.UUID, r.StartTime, r.EndTime, r.Path, r.CallLogID)
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert recording: %w", err)
	}
	return r.UUID, nil
}

// InsertRecordings inserts every recording in one transaction and one round
// trip, returning the uuids in input order.
func (q *Queries) InsertRecordings(ctx context.Context, recordings []models.Recording) ([]uuid.UUID, error) {
	if len(recordings) == 0 {
		return []uuid.UUID{}, nil
	}

	uuids := make([]uuid.UUID, len(recordings))
	batch := &pgx.Batch{}
	for i := range recordings {
		r := recordings[i]
		if err := prepareRecording(&r); err != nil {
			return nil, err
		}
		uuids[i] = r.UUID
		batch.Queue(insertRecordingSQL, r.UUID, r.StartTime, r.EndTime, r.Path, r.CallLogID)
	}

	err := q.inTx(ctx, "insert_all", "recording", func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		defer closeBatchQuietly(br)
		for range recordings {
			if _, err := br.Exec(); err != nil {
				return err
			}
		}
		return br.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert recordings: %w", err)
	}
	return uuids, nil
}

// DeleteRecording deletes one recording.
func (q *Queries) DeleteRecording(ctx context.Context, recordingUUID uuid.UUID) error {
	err := q.inTx(ctx, "delete", "recording", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM recording WHERE uuid = $1`, recordingUUID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete recording %s: %w", recordingUUID, err)
	}
	return nil
}

// DeleteRecordingByCallLogID deletes the recordings of a call log. Deleting
// none is not an error.
func (q *Queries) DeleteRecordingByCallLogID(ctx context.Context, callLogID int64) error {
	if _, err := q.DeleteRecordingsByCallLogIDs(ctx, []int64{callLogID}); err != nil {
		return err
	}
	return nil
}

// DeleteRecordingsByCallLogIDs deletes the recordings of every listed call
// log and returns how many rows were removed.
func (q *Queries) DeleteRecordingsByCallLogIDs(ctx context.Context, callLogIDs []int64) (int64, error) {
	if len(callLogIDs) == 0 {
		return 0, nil
	}

	var deleted int64
	err := q.inTx(ctx, "delete_by_call_log", "recording", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM recording WHERE call_log_id = ANY($1)`, callLogIDs)
		deleted = tag.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete recordings by call log: %w", err)
	}
	return deleted, nil
}

// DeleteAllRecordings deletes every recording and returns how many rows were
// removed.
func (q *Queries) DeleteAllRecordings(ctx context.Context) (int64, error) {
	var deleted int64
	err := q.inTx(ctx, "delete_all", "recording", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM recording`)
		deleted = tag.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete recordings: %w", err)
	}
	return deleted, nil
}

// ClearRecordings deletes every recording. Reset tooling only.
func (q *Queries) ClearRecordings(ctx context.Context) error {
	_, err := q.DeleteAllRecordings(ctx)
	return err
}

// FindAllRecordings returns the recordings of a call log ordered by start
// time, each with the call log attached when it still exists.
func (q *Queries) FindAllRecordings(ctx context.Context, callLogID int64) ([]models.Recording, error) {
	var recordings []models.Recording
	err := q.inTx(ctx, "find_all", "recording", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+recordingColumns+`
			FROM recording
			WHERE call_log_id = $1
			ORDER BY start_time, uuid`, callLogID)
		if err != nil {
			return err
		}
		recordings, err = collectRecordings(rows)
		if err != nil || len(recordings) == 0 {
			return err
		}

		c, err := scanCallLog(tx.QueryRow(ctx, `SELECT `+callLogColumns+` FROM call_log WHERE id = $1`, callLogID))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		for i := range recordings {
			recordings[i].CallLog = &c
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find recordings of call log %d: %w", callLogID, err)
	}
	return recordings, nil
}

// FindRecordingsByCallLogID returns the recordings of one call log without
// loading the call log.
func (q *Queries) FindRecordingsByCallLogID(ctx context.Context, callLogID int64) ([]models.Recording, error) {
	return q.FindRecordingsByCallLogIDs(ctx, []int64{callLogID})
}

// FindRecordingsByCallLogIDs returns the recordings of every listed call log.
func (q *Queries) FindRecordingsByCallLogIDs(ctx context.Context, callLogIDs []int64) ([]models.Recording, error) {
	if len(callLogIDs) == 0 {
		return []models.Recording{}, nil
	}

	var recordings []models.Recording
	err := q.inTx(ctx, "find_by_call_logs", "recording", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+recordingColumns+`
			FROM recording
			WHERE call_log_id = ANY($1)
			ORDER BY call_log_id, start_time, uuid`, callLogIDs)
		if err != nil {
			return err
		}
		recordings, err = collectRecordings(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find recordings by call log: %w", err)
	}
	return recordings, nil
}

// FindRecordingBy returns the first recording matching every set field of
// filter, or nil, nil when none matches.
func (q *Queries) FindRecordingBy(ctx context.Context, filter models.RecordingFilter) (*models.Recording, error) {
	var (
		conditions []string
		args       []any
	)
	query := `SELECT ` + recordingColumns + ` FROM recording`
	if !filter.IsEmpty() {
		if filter.UUID != uuid.Nil {
			args = append(args, filter.UUID)
			conditions = append(conditions, fmt.Sprintf("uuid = $%d", len(args)))
		}
		if filter.CallLogID != 0 {
			args = append(args, filter.CallLogID)
			conditions = append(conditions, fmt.Sprintf("call_log_id = $%d", len(args)))
		}
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY start_time, uuid LIMIT 1`

	var recording *models.Recording
	err := q.inTx(ctx, "find_by", "recording", func(tx pgx.Tx) error {
		r, err := scanRecording(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		recording = &r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find recording: %w", err)
	}
	return recording, nil
}
