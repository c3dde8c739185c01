// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import (
	"time"

	"github.com/google/uuid"
)

// Recording is a call recording owned by exactly one call log.
type Recording struct {
	UUID      uuid.UUID `json:"uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	Path      *string   `json:"path,omitempty"`
	CallLogID int64     `json:"call_log_id" validate:"gt=0"`

	// CallLog is attached by reads that load the owning call log.
	CallLog *CallLog `json:"call_log,omitempty"`
}

// RecordingFilter narrows a recording lookup. Zero-valued fields are ignored;
// set fields are combined with AND.
type RecordingFilter struct {
	UUID      uuid.UUID
	CallLogID int64
}

// IsEmpty reports whether no filter field is set.
func (f RecordingFilter) IsEmpty() bool {
	return f.UUID == uuid.Nil && f.CallLogID == 0
}
