// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package fixtures

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/models"
)

func testDefaults(t *testing.T) config.FixtureDefaults {
	t.Helper()
	defaults, err := config.Default().Fixtures.Defaults()
	require.NoError(t, err)
	return defaults
}

func TestScoped_RunsInOrder(t *testing.T) {
	var steps []string

	err := scoped(context.Background(), "thing",
		func(context.Context) (int, error) {
			steps = append(steps, "setup")
			return 7, nil
		},
		func(_ context.Context, v int) error {
			steps = append(steps, "teardown")
			assert.Equal(t, 7, v)
			return nil
		},
		func(v int) error {
			steps = append(steps, "fn")
			return nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"setup", "fn", "teardown"}, steps)
}

func TestScoped_TeardownAfterCallbackError(t *testing.T) {
	errCallback := errors.New("assertion failed")
	tornDown := false

	err := scoped(context.Background(), "thing",
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context, int) error {
			tornDown = true
			return nil
		},
		func(int) error { return errCallback },
	)

	assert.ErrorIs(t, err, errCallback)
	assert.True(t, tornDown)
}

func TestScoped_PartialSetupIsTornDown(t *testing.T) {
	errSetup := errors.New("second insert failed")
	var tornDown []int64
	called := false

	err := scoped(context.Background(), "call_logs",
		func(context.Context) ([]int64, error) { return []int64{1}, errSetup },
		func(_ context.Context, ids []int64) error {
			tornDown = ids
			return nil
		},
		func([]int64) error {
			called = true
			return nil
		},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errSetup)
	assert.Contains(t, err.Error(), "call_logs setup")
	assert.False(t, called)
	assert.Equal(t, []int64{1}, tornDown)
}

func TestScoped_JoinsTeardownError(t *testing.T) {
	errCallback := errors.New("callback")
	errTeardown := errors.New("delete failed")

	err := scoped(context.Background(), "export",
		func(context.Context) (string, error) { return "x", nil },
		func(context.Context, string) error { return errTeardown },
		func(string) error { return errCallback },
	)

	assert.ErrorIs(t, err, errCallback)
	assert.ErrorIs(t, err, errTeardown)
	assert.Contains(t, err.Error(), "export teardown")
}

func TestScoped_TeardownOnGoexit(t *testing.T) {
	var wg sync.WaitGroup
	tornDown := false

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = scoped(context.Background(), "thing",
			func(context.Context) (int, error) { return 1, nil },
			func(context.Context, int) error {
				tornDown = true
				return nil
			},
			func(int) error {
				runtime.Goexit()
				return nil
			},
		)
	}()
	wg.Wait()

	assert.True(t, tornDown)
}

func TestScoped_TeardownIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := scoped(ctx, "thing",
		func(context.Context) (int, error) { return 1, nil },
		func(ctx context.Context, _ int) error { return ctx.Err() },
		func(int) error {
			cancel()
			return nil
		},
	)

	assert.NoError(t, err)
}

func TestDefaultRecording(t *testing.T) {
	now := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	r := defaultRecording(models.Recording{}, now)
	assert.Equal(t, now.Add(-time.Hour), r.StartTime)
	assert.Equal(t, now, r.EndTime)

	start := now.Add(-10 * time.Minute)
	r = defaultRecording(models.Recording{StartTime: start}, now)
	assert.Equal(t, start, r.StartTime)
}

func TestDefaultCEL(t *testing.T) {
	now := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	c := defaultCEL(CELSpec{}, now)
	assert.Equal(t, DefaultCELEventType, c.EventType)
	assert.Equal(t, now, c.EventTime)
	assert.NotEqual(t, c.UniqueID, c.LinkedID)
	_, err := uuid.Parse(c.UniqueID)
	assert.NoError(t, err)
	assert.Zero(t, c.CallLogID)

	c = defaultCEL(CELSpec{Processed: true}, now)
	assert.Equal(t, int64(1), c.CallLogID)

	c = defaultCEL(CELSpec{CEL: models.CEL{CallLogID: 9, LinkedID: "l"}, Processed: true}, now)
	assert.Equal(t, int64(9), c.CallLogID)
	assert.Equal(t, "l", c.LinkedID)
}

func TestDefaultStatDimensions(t *testing.T) {
	defaults := testDefaults(t)

	q := defaultStatQueue(models.StatQueue{}, defaults)
	assert.Equal(t, models.StatQueue{ID: 1, Name: "queue", TenantUUID: defaults.MasterTenantUUID, QueueID: 1}, q)

	q = defaultStatQueue(models.StatQueue{QueueID: 4}, defaults)
	assert.Equal(t, 4, q.ID)

	a := defaultStatAgent(models.StatAgent{ID: 8}, defaults)
	assert.Equal(t, 8, a.ID)
	assert.Equal(t, 1, a.AgentID)
	assert.Equal(t, "agent", a.Name)
}
