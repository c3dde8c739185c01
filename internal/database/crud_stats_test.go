// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestDurationToInterval(t *testing.T) {
	i := durationToInterval(90 * time.Minute)
	assert.True(t, i.Valid)
	assert.Equal(t, int64(90*60*1_000_000), i.Microseconds)
	assert.Zero(t, i.Days)
	assert.Zero(t, i.Months)

	assert.Equal(t, 90*time.Minute, intervalToDuration(i))
}

func TestIntervalToDuration(t *testing.T) {
	tests := []struct {
		name string
		in   pgtype.Interval
		want time.Duration
	}{
		{"null", pgtype.Interval{}, 0},
		{"zero", pgtype.Interval{Valid: true}, 0},
		{"microseconds", pgtype.Interval{Microseconds: 1_500_000, Valid: true}, 1500 * time.Millisecond},
		{"days", pgtype.Interval{Days: 2, Microseconds: 60_000_000, Valid: true}, 48*time.Hour + time.Minute},
		{"months", pgtype.Interval{Months: 1, Valid: true}, 30 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intervalToDuration(tt.in))
		})
	}
}

func TestGuardedDeleteStatements(t *testing.T) {
	assert.Contains(t, deleteStatQueueSQL, "stat_queue_periodic WHERE stat_queue_id = $1")
	assert.Contains(t, deleteStatQueueSQL, "stat_call_on_queue WHERE stat_queue_id = $1")
	assert.Contains(t, deleteStatAgentSQL, "stat_call_on_queue WHERE stat_agent_id = $1")
	assert.NotContains(t, deleteStatAgentSQL, "stat_agent_periodic")
	assert.Contains(t, insertStatQueueSQL, "ON CONFLICT (id) DO NOTHING")
}
