// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/calllogd/internal/models"
	"github.com/tomtom215/calllogd/internal/validation"
)

// InsertExport inserts e and returns its uuid. Unset tenant, user,
// requested_at and status take the configured defaults.
func (q *Queries) InsertExport(ctx context.Context, e models.Export) (uuid.UUID, error) {
	e.ApplyDefaults(q.defaults.MasterTenantUUID, q.defaults.DefaultUserUUID, q.now())
	if e.UUID == uuid.Nil {
		e.UUID = uuid.New()
	}
	if verr := validation.ValidateStruct(&e); verr != nil {
		return uuid.Nil, fmt.Errorf("invalid export: %w", verr)
	}
	if !e.Status.Valid() {
		return uuid.Nil, fmt.Errorf("invalid export status %q", e.Status)
	}

	err := q.inTx(ctx, "insert", "export", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO export (uuid, tenant_uuid, user_uuid, requested_at, status, path, done_at)
			VALUES ($1, $2, $3, $4, $5::text::call_log_export_status, $6, $7)`,
			e.UUID, e.TenantUUID, e.UserUUID, e.RequestedAt, string(e.Status), e.Path, e.DoneAt,
		)
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert export: %w", err)
	}
	return e.UUID, nil
}

// DeleteExport deletes one export.
func (q *Queries) DeleteExport(ctx context.Context, exportUUID uuid.UUID) error {
	err := q.inTx(ctx, "delete", "export", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM export WHERE uuid = $1`, exportUUID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete export %s: %w", exportUUID, err)
	}
	return nil
}

// FindAllExports returns every export, or only those of tenantUUID when it
// is non-nil, ordered by request time.
func (q *Queries) FindAllExports(ctx context.Context, tenantUUID *uuid.UUID) ([]models.Export, error) {
	query := `SELECT uuid, tenant_uuid, user_uuid, requested_at, status::text, path, done_at FROM export`
	var args []any
	if tenantUUID != nil && *tenantUUID != uuid.Nil {
		query += ` WHERE tenant_uuid = $1`
		args = append(args, *tenantUUID)
	}
	query += ` ORDER BY requested_at, uuid`

	var exports []models.Export
	err := q.inTx(ctx, "find_all", "export", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		exports, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Export, error) {
			var e models.Export
			var status string
			err := row.Scan(&e.UUID, &e.TenantUUID, &e.UserUUID, &e.RequestedAt, &status, &e.Path, &e.DoneAt)
			e.Status = models.ExportStatus(status)
			return e, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find exports: %w", err)
	}
	return exports, nil
}
