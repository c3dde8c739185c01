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
)

// InsertTenant inserts a tenant. Inserting an existing tenant is a no-op.
func (q *Queries) InsertTenant(ctx context.Context, tenantUUID uuid.UUID) error {
	if tenantUUID == uuid.Nil {
		return fmt.Errorf("invalid tenant: uuid is required")
	}
	err := q.inTx(ctx, "insert", "tenant", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO tenant (uuid) VALUES ($1) ON CONFLICT (uuid) DO NOTHING`, tenantUUID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to insert tenant %s: %w", tenantUUID, err)
	}
	return nil
}

// DeleteTenant deletes a tenant row. Tenant-scoped rows are not touched.
func (q *Queries) DeleteTenant(ctx context.Context, tenantUUID uuid.UUID) error {
	err := q.inTx(ctx, "delete", "tenant", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM tenant WHERE uuid = $1`, tenantUUID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete tenant %s: %w", tenantUUID, err)
	}
	return nil
}

// FindAllTenants returns every tenant.
func (q *Queries) FindAllTenants(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := q.inTx(ctx, "find_all", "tenant", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT uuid FROM tenant ORDER BY uuid`)
		if err != nil {
			return err
		}
		tenants, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tenant, error) {
			var t models.Tenant
			err := row.Scan(&t.UUID)
			return t, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find tenants: %w", err)
	}
	return tenants, nil
}

// FindTenant returns one tenant, or nil, nil when it does not exist.
func (q *Queries) FindTenant(ctx context.Context, tenantUUID uuid.UUID) (*models.Tenant, error) {
	var tenant *models.Tenant
	err := q.inTx(ctx, "find", "tenant", func(tx pgx.Tx) error {
		var t models.Tenant
		err := tx.QueryRow(ctx, `SELECT uuid FROM tenant WHERE uuid = $1`, tenantUUID).Scan(&t.UUID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		tenant = &t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantUUID, err)
	}
	return tenant, nil
}
