// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package fixtures

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/models"
)

// DefaultRecordingCallLogID is the call log a standalone recording points
// at when none is given. No such call log needs to exist.
const DefaultRecordingCallLogID = 42

// CallLogSpec describes one call log fixture. Participant and recording
// call log ids are overwritten with the inserted call log id.
type CallLogSpec struct {
	CallLog      models.CallLog
	Participants []models.CallLogParticipant
	Recordings   []models.Recording
}

// CallLogFixture is what WithCallLog inserted.
type CallLogFixture struct {
	CallLog    models.CallLog
	Recordings []models.Recording
}

// WithCallLogs inserts n call logs for the master tenant, each with a
// source participant for participantUser when it is non-nil, and runs fn
// with their ids.
func (h *Harness) WithCallLogs(ctx context.Context, n int, participantUser *uuid.UUID, fn func(ids []int64) error) error {
	setup := func(ctx context.Context) ([]int64, error) {
		ids := make([]int64, 0, n)
		err := inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			for i := 0; i < n; i++ {
				id, err := q.InsertCallLog(ctx, models.CallLog{TenantUUID: h.defaults.MasterTenantUUID})
				if err != nil {
					return err
				}
				ids = append(ids, id)

				if participantUser != nil {
					user := *participantUser
					if _, err := q.InsertCallLogParticipant(ctx, models.CallLogParticipant{
						CallLogID: id,
						UserUUID:  &user,
					}); err != nil {
						return err
					}
				}
			}
			return nil
		})
		return ids, err
	}

	teardown := func(ctx context.Context, ids []int64) error {
		return inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			var errs []error
			for _, id := range ids {
				errs = append(errs, h.removeCallLog(ctx, q, id))
			}
			return errors.Join(errs...)
		})
	}

	return scoped(ctx, "call_logs", setup, teardown, fn)
}

// WithCallLog inserts one call log with its participants and recordings and
// runs fn with the inserted rows.
func (h *Harness) WithCallLog(ctx context.Context, spec CallLogSpec, fn func(CallLogFixture) error) error {
	setup := func(ctx context.Context) (CallLogFixture, error) {
		fixture := CallLogFixture{CallLog: spec.CallLog}
		now := h.now()
		fixture.CallLog.ApplyDefaults(h.defaults.MasterTenantUUID, now)

		err := inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			id, err := q.InsertCallLog(ctx, fixture.CallLog)
			if err != nil {
				return err
			}
			fixture.CallLog.ID = id

			for _, p := range spec.Participants {
				p.CallLogID = id
				p.ApplyDefaults()
				if p.UUID, err = q.InsertCallLogParticipant(ctx, p); err != nil {
					return err
				}
				fixture.CallLog.Participants = append(fixture.CallLog.Participants, p)
			}

			for _, r := range spec.Recordings {
				r = defaultRecording(r, now)
				r.CallLogID = id
				if r.UUID, err = q.InsertRecording(ctx, r); err != nil {
					return err
				}
				fixture.Recordings = append(fixture.Recordings, r)
			}
			return nil
		})
		return fixture, err
	}

	teardown := func(ctx context.Context, fixture CallLogFixture) error {
		if fixture.CallLog.ID == 0 {
			return nil
		}
		return inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			return h.removeCallLog(ctx, q, fixture.CallLog.ID)
		})
	}

	return scoped(ctx, "call_log", setup, teardown, fn)
}

// removeCallLog deletes a call log and the rows that point at it. Deletes
// do not cascade, so each table is cleared explicitly.
func (h *Harness) removeCallLog(ctx context.Context, q *database.Queries, id int64) error {
	if err := q.DeleteCallLog(ctx, id); err != nil {
		return err
	}
	if _, err := q.DeleteCallLogParticipants(ctx, id); err != nil {
		return err
	}
	return q.DeleteRecordingByCallLogID(ctx, id)
}

// WithExport inserts an export and runs fn with it. Unset fields take the
// master tenant, the default user, the current time and status pending.
func (h *Harness) WithExport(ctx context.Context, export models.Export, fn func(models.Export) error) error {
	setup := func(ctx context.Context) (models.Export, error) {
		e := export
		e.ApplyDefaults(h.defaults.MasterTenantUUID, h.defaults.DefaultUserUUID, h.now())
		err := inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			var err error
			e.UUID, err = q.InsertExport(ctx, e)
			return err
		})
		return e, err
	}

	teardown := func(ctx context.Context, e models.Export) error {
		if e.UUID == uuid.Nil {
			return nil
		}
		return inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			return q.DeleteExport(ctx, e.UUID)
		})
	}

	return scoped(ctx, "export", setup, teardown, fn)
}

// WithRecording inserts a recording and runs fn with it. It spans the last
// hour and belongs to DefaultRecordingCallLogID unless set.
func (h *Harness) WithRecording(ctx context.Context, recording models.Recording, fn func(models.Recording) error) error {
	setup := func(ctx context.Context) (models.Recording, error) {
		r := defaultRecording(recording, h.now())
		if r.CallLogID == 0 {
			r.CallLogID = DefaultRecordingCallLogID
		}
		err := inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			var err error
			r.UUID, err = q.InsertRecording(ctx, r)
			return err
		})
		return r, err
	}

	teardown := func(ctx context.Context, r models.Recording) error {
		if r.UUID == uuid.Nil {
			return nil
		}
		return inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			return q.DeleteRecording(ctx, r.UUID)
		})
	}

	return scoped(ctx, "recording", setup, teardown, fn)
}

// WithRetention inserts a retention policy, for the master tenant unless
// set, and runs fn with it.
func (h *Harness) WithRetention(ctx context.Context, retention models.Retention, fn func(models.Retention) error) error {
	inserted := false
	setup := func(ctx context.Context) (models.Retention, error) {
		r := retention
		if r.TenantUUID == uuid.Nil {
			r.TenantUUID = h.defaults.MasterTenantUUID
		}
		err := inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			return q.InsertRetention(ctx, r)
		})
		inserted = err == nil
		return r, err
	}

	// A failed insert may have hit another fixture's row; leave it alone.
	teardown := func(ctx context.Context, r models.Retention) error {
		if !inserted {
			return nil
		}
		return inScope(ctx, h.CallLogs, func(q *database.Queries) error {
			return q.DeleteRetention(ctx, r.TenantUUID)
		})
	}

	return scoped(ctx, "retention", setup, teardown, fn)
}

// defaultRecording fills the time span of r with the hour before now.
func defaultRecording(r models.Recording, now time.Time) models.Recording {
	if r.StartTime.IsZero() {
		r.StartTime = now.Add(-time.Hour)
	}
	if r.EndTime.IsZero() {
		r.EndTime = now
	}
	return r
}
