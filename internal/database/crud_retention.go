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

// InsertRetention inserts the policy of one tenant. A second insert for the
// same tenant fails with a unique violation (see IsUniqueViolation).
func (q *Queries) InsertRetention(ctx context.Context, r models.Retention) error {
	if r.TenantUUID == uuid.Nil {
		r.TenantUUID = q.defaults.MasterTenantUUID
	}
	if verr := validation.ValidateStruct(&r); verr != nil {
		return fmt.Errorf("invalid retention: %w", verr)
	}

	err := q.inTx(ctx, "insert", "retention", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO retention (tenant_uuid, cdr_days, export_days, recording_days)
			VALUES ($1, $2, $3, $4)`,
			r.TenantUUID, r.CDRDays, r.ExportDays, r.RecordingDays,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to insert retention for tenant %s: %w", r.TenantUUID, err)
	}
	return nil
}

// DeleteRetention deletes the policy of one tenant.
func (q *Queries) DeleteRetention(ctx context.Context, tenantUUID uuid.UUID) error {
	err := q.inTx(ctx, "delete", "retention", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM retention WHERE tenant_uuid = $1`, tenantUUID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete retention for tenant %s: %w", tenantUUID, err)
	}
	return nil
}

// FindRetentions returns the policies of one tenant: zero or one row.
func (q *Queries) FindRetentions(ctx context.Context, tenantUUID uuid.UUID) ([]models.Retention, error) {
	var retentions []models.Retention
	err := q.inTx(ctx, "find", "retention", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT tenant_uuid, cdr_days, export_days, recording_days
			FROM retention
			WHERE tenant_uuid = $1`, tenantUUID)
		if err != nil {
			return err
		}
		retentions, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Retention, error) {
			var r models.Retention
			err := row.Scan(&r.TenantUUID, &r.CDRDays, &r.ExportDays, &r.RecordingDays)
			return r, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find retentions for tenant %s: %w", tenantUUID, err)
	}
	return retentions, nil
}
