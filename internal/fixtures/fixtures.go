// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/logging"
)

// Harness inserts fixture rows and removes them again. Call logs, exports,
// recordings and retentions go to CallLogs; CEL and statistics rows go to
// CEL. Both may be the same DB.
type Harness struct {
	CallLogs *database.DB
	CEL      *database.DB

	defaults config.FixtureDefaults
	now      func() time.Time
}

// New returns a harness over the two stores. A nil cel reuses callLogs.
func New(callLogs, cel *database.DB) *Harness {
	if cel == nil {
		cel = callLogs
	}
	return &Harness{
		CallLogs: callLogs,
		CEL:      cel,
		defaults: callLogs.Defaults(),
		now:      time.Now,
	}
}

// Defaults returns the values fixtures fill in for unset fields.
func (h *Harness) Defaults() config.FixtureDefaults {
	return h.defaults
}

// scoped runs setup, then fn, then teardown. Teardown runs on every exit
// path, including a failed setup (with whatever setup produced) and a test
// helper calling runtime.Goexit. Errors from all three are joined.
func scoped[T any](
	ctx context.Context,
	name string,
	setup func(ctx context.Context) (T, error),
	teardown func(ctx context.Context, v T) error,
	fn func(v T) error,
) (err error) {
	v, setupErr := setup(ctx)

	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		if terr := teardown(cleanupCtx, v); terr != nil {
			logging.Ctx(ctx).Warn().Err(terr).Str("fixture", name).Msg("Fixture teardown failed")
			err = errors.Join(err, fmt.Errorf("%s teardown: %w", name, terr))
		}
	}()

	if setupErr != nil {
		return fmt.Errorf("%s setup: %w", name, setupErr)
	}
	return fn(v)
}

// inScope runs fn in one Queries scope of db.
func inScope(ctx context.Context, db *database.DB, fn func(q *database.Queries) error) error {
	return db.Queries(ctx, fn)
}
