// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/calllogd/internal/logging"
	"github.com/tomtom215/calllogd/internal/metrics"
)

// fakeChecker reports whatever up holds.
type fakeChecker struct {
	up    atomic.Bool
	calls atomic.Int32
}

func (f *fakeChecker) IsUp(context.Context) bool {
	f.calls.Add(1)
	return f.up.Load()
}

func (f *fakeChecker) PoolStats() (acquired, total int32) { return 1, 4 }

func (f *fakeChecker) BreakerState() string { return "open" }

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return &buf
}

func TestHealthMonitorService_Interface(t *testing.T) {
	var _ suture.Service = (*HealthMonitorService)(nil)
}

func TestNewHealthMonitorService_DefaultInterval(t *testing.T) {
	svc := NewHealthMonitorService(&fakeChecker{}, 0)
	if svc.interval != 15*time.Second {
		t.Errorf("expected default interval 15s, got %v", svc.interval)
	}
	if svc.String() != "db-health-monitor" {
		t.Errorf("expected 'db-health-monitor', got %q", svc.String())
	}
	if svc.Up() {
		t.Error("monitor must not report up before the first check")
	}
}

func TestHealthMonitorService_Check(t *testing.T) {
	logs := captureLogs(t)
	checker := &fakeChecker{}
	svc := NewHealthMonitorService(checker, time.Second)
	ctx := context.Background()

	svc.check(ctx)
	if svc.Up() {
		t.Error("expected down")
	}
	if got := testutil.ToFloat64(metrics.DBUp); got != 0 {
		t.Errorf("expected DBUp 0, got %v", got)
	}
	if !strings.Contains(logs.String(), "Database is unreachable") {
		t.Errorf("expected down transition to be logged, got %q", logs.String())
	}

	// Same state: no new log line.
	logs.Reset()
	svc.check(ctx)
	if logs.Len() != 0 {
		t.Errorf("expected no log without a transition, got %q", logs.String())
	}

	checker.up.Store(true)
	svc.check(ctx)
	if !svc.Up() {
		t.Error("expected up")
	}
	if got := testutil.ToFloat64(metrics.DBUp); got != 1 {
		t.Errorf("expected DBUp 1, got %v", got)
	}
	if !strings.Contains(logs.String(), "Database is up") {
		t.Errorf("expected up transition to be logged, got %q", logs.String())
	}
	if got := testutil.ToFloat64(metrics.DBPoolTotalConns); got != 4 {
		t.Errorf("expected total conns 4, got %v", got)
	}
	if svc.Checks() != 3 {
		t.Errorf("expected 3 checks, got %d", svc.Checks())
	}
}

func TestHealthMonitorService_Serve(t *testing.T) {
	captureLogs(t)
	checker := &fakeChecker{}
	checker.up.Store(true)
	svc := NewHealthMonitorService(checker, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for checker.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if checker.calls.Load() < 3 {
		t.Fatalf("expected repeated checks, got %d", checker.calls.Load())
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
