// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/calllogd/internal/logging"
	"github.com/tomtom215/calllogd/internal/metrics"
)

// HealthChecker is the part of *database.DB the health monitor uses.
type HealthChecker interface {
	IsUp(ctx context.Context) bool
	PoolStats() (acquired, total int32)
	BreakerState() string
}

// HealthMonitorService polls the store's liveness check on a fixed
// interval, publishes the result as metrics, and logs up/down transitions.
//
// Example usage:
//
//	svc := services.NewHealthMonitorService(db, 15*time.Second)
//	tree.AddDataService(svc)
type HealthMonitorService struct {
	checker  HealthChecker
	interval time.Duration
	name     string

	checks atomic.Int64
	state  atomic.Int32
}

// Health states tracked between checks.
const (
	stateUnknown int32 = iota
	stateUp
	stateDown
)

// NewHealthMonitorService creates a health monitor. A non-positive interval
// becomes 15 seconds.
func NewHealthMonitorService(checker HealthChecker, interval time.Duration) *HealthMonitorService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &HealthMonitorService{
		checker:  checker,
		interval: interval,
		name:     "db-health-monitor",
	}
}

// Serve implements suture.Service. It checks once immediately, then on every
// tick until ctx is canceled.
func (h *HealthMonitorService) Serve(ctx context.Context) error {
	h.check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.check(ctx)
		}
	}
}

// check runs one liveness check bounded by the polling interval.
func (h *HealthMonitorService) check(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	up := h.checker.IsUp(checkCtx)
	h.checks.Add(1)
	metrics.RecordHealthCheck(up)
	acquired, total := h.checker.PoolStats()
	metrics.RecordPoolStats(acquired, total)

	next := stateDown
	if up {
		next = stateUp
	}
	prev := h.state.Swap(next)
	if prev == next {
		return
	}

	if up {
		logging.Info().
			Int32("acquired_conns", acquired).
			Int32("total_conns", total).
			Msg("Database is up")
		return
	}
	logging.Warn().
		Str("breaker", h.checker.BreakerState()).
		Bool("was_up", prev == stateUp).
		Msg("Database is unreachable")
}

// Up reports the result of the last check. It is false before the first.
func (h *HealthMonitorService) Up() bool {
	return h.state.Load() == stateUp
}

// Checks returns how many checks have run.
func (h *HealthMonitorService) Checks() int64 {
	return h.checks.Load()
}

// String implements fmt.Stringer for supervisor events.
func (h *HealthMonitorService) String() string {
	return h.name
}
