// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package fixtures

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/models"
)

const (
	// DefaultCELEventType is the event type of a CEL fixture when none is set.
	DefaultCELEventType = "eventtype"

	// processedCallLogID marks a CEL as already correlated to a call log.
	processedCallLogID = 1
)

// CELSpec describes one CEL fixture. Processed correlates the event to call
// log 1 unless CEL.CallLogID is set.
type CELSpec struct {
	CEL       models.CEL
	Processed bool
}

// WithCEL inserts a CEL row and runs fn with it. The event type defaults to
// "eventtype", the event time to now, and the unique and linked ids to
// random uuids.
func (h *Harness) WithCEL(ctx context.Context, spec CELSpec, fn func(models.CEL) error) error {
	setup := func(ctx context.Context) (models.CEL, error) {
		c := defaultCEL(spec, h.now())
		err := inScope(ctx, h.CEL, func(q *database.Queries) error {
			var err error
			c.ID, err = q.InsertCEL(ctx, c)
			return err
		})
		return c, err
	}

	teardown := func(ctx context.Context, c models.CEL) error {
		if c.ID == 0 {
			return nil
		}
		return inScope(ctx, h.CEL, func(q *database.Queries) error {
			return q.DeleteCEL(ctx, c.ID)
		})
	}

	return scoped(ctx, "cel", setup, teardown, fn)
}

func defaultCEL(spec CELSpec, now time.Time) models.CEL {
	c := spec.CEL
	if c.EventType == "" {
		c.EventType = DefaultCELEventType
	}
	if c.EventTime.IsZero() {
		c.EventTime = now
	}
	if c.UniqueID == "" {
		c.UniqueID = uuid.NewString()
	}
	if c.LinkedID == "" {
		c.LinkedID = uuid.NewString()
	}
	if spec.Processed && c.CallLogID == 0 {
		c.CallLogID = processedCallLogID
	}
	return c
}
