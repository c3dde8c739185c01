// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import "github.com/google/uuid"

// Retention is the per-tenant policy controlling how long call data is kept.
// A nil day count means the platform default applies.
type Retention struct {
	TenantUUID    uuid.UUID `json:"tenant_uuid" validate:"uuid_set"`
	CDRDays       *int      `json:"cdr_days,omitempty" validate:"omitempty,gte=0"`
	ExportDays    *int      `json:"export_days,omitempty" validate:"omitempty,gte=0"`
	RecordingDays *int      `json:"recording_days,omitempty" validate:"omitempty,gte=0"`
}
