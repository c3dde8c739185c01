// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportStatus is the label an external job processor moves an export through.
// Storage does not enforce transitions.
type ExportStatus string

const (
	ExportPending    ExportStatus = "pending"
	ExportProcessing ExportStatus = "processing"
	ExportFinished   ExportStatus = "finished"
	ExportDeleted    ExportStatus = "deleted"
	ExportError      ExportStatus = "error"
)

// Valid reports whether s is a known status.
func (s ExportStatus) Valid() bool {
	switch s {
	case ExportPending, ExportProcessing, ExportFinished, ExportDeleted, ExportError:
		return true
	}
	return false
}

// Export is a bulk export job of call logs and recordings.
type Export struct {
	UUID        uuid.UUID    `json:"uuid"`
	TenantUUID  uuid.UUID    `json:"tenant_uuid" validate:"uuid_set"`
	UserUUID    uuid.UUID    `json:"user_uuid" validate:"uuid_set"`
	RequestedAt time.Time    `json:"requested_at" validate:"required"`
	Status      ExportStatus `json:"status"`
	Path        *string      `json:"path,omitempty"`
	DoneAt      *time.Time   `json:"done_at,omitempty"`
}

// ApplyDefaults fills a zero TenantUUID, UserUUID, RequestedAt and Status.
func (e *Export) ApplyDefaults(masterTenant, defaultUser uuid.UUID, now time.Time) {
	if e.TenantUUID == uuid.Nil {
		e.TenantUUID = masterTenant
	}
	if e.UserUUID == uuid.Nil {
		e.UserUUID = defaultUser
	}
	if e.RequestedAt.IsZero() {
		e.RequestedAt = now
	}
	if e.Status == "" {
		e.Status = ExportPending
	}
}
