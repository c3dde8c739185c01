// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		errorType string
	}{
		{"success", "find_all", "call_log", nil, ""},
		{"unique violation", "insert", "export", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"wrapped timeout", "count_all", "tenant", fmt.Errorf("failed to count: %w", context.DeadlineExceeded), "timeout"},
		{"other", "delete", "cel", errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CollectAndCount(DBQueryDuration)
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)
			if after := testutil.CollectAndCount(DBQueryDuration); after < before {
				t.Errorf("histogram series shrank: %d -> %d", before, after)
			}

			if tt.err == nil {
				return
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errorType))
			if got < 1 {
				t.Errorf("DBQueryErrors{%s,%s,%s} = %v, want >= 1", tt.operation, tt.table, tt.errorType, got)
			}
		})
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{context.Canceled, "canceled"},
		{&pgconn.PgError{Code: "23503"}, "foreign_key_violation"},
		{&pgconn.PgError{Code: "23502"}, "not_null_violation"},
		{&pgconn.PgError{Code: "40001"}, "serialization_failure"},
		{&pgconn.PgError{Code: "42P01"}, "pg_42P01"},
		{fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"}), "unique_violation"},
		{errors.New("plain"), "other"},
	}
	for _, tt := range tests {
		if got := ErrorType(tt.err); got != tt.want {
			t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordGuardedDeleteSkip(t *testing.T) {
	before := testutil.ToFloat64(DBGuardedDeleteSkips.WithLabelValues("stat_queue"))
	RecordGuardedDeleteSkip("stat_queue")
	RecordGuardedDeleteSkip("stat_queue")
	after := testutil.ToFloat64(DBGuardedDeleteSkips.WithLabelValues("stat_queue"))
	if after-before != 2 {
		t.Errorf("skips increased by %v, want 2", after-before)
	}
}

func TestRecordHealthCheck(t *testing.T) {
	RecordHealthCheck(true)
	if got := testutil.ToFloat64(DBUp); got != 1 {
		t.Errorf("DBUp = %v after success, want 1", got)
	}

	downBefore := testutil.ToFloat64(DBHealthChecks.WithLabelValues("down"))
	RecordHealthCheck(false)
	if got := testutil.ToFloat64(DBUp); got != 0 {
		t.Errorf("DBUp = %v after failure, want 0", got)
	}
	if got := testutil.ToFloat64(DBHealthChecks.WithLabelValues("down")); got != downBefore+1 {
		t.Errorf("down checks = %v, want %v", got, downBefore+1)
	}
}

func TestRecordPoolStats(t *testing.T) {
	RecordPoolStats(3, 7)
	if got := testutil.ToFloat64(DBPoolAcquiredConns); got != 3 {
		t.Errorf("acquired = %v, want 3", got)
	}
	if got := testutil.ToFloat64(DBPoolTotalConns); got != 7 {
		t.Errorf("total = %v, want 7", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	RecordBreakerTransition("postgres-test", "closed", "open", 2)
	if got := testutil.ToFloat64(DBBreakerState.WithLabelValues("postgres-test")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(DBBreakerTransitions.WithLabelValues("postgres-test", "closed", "open")); got != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}
}

func TestRecordDBQuery_HistogramSamples(t *testing.T) {
	observer := DBQueryDuration.WithLabelValues("histogram_sample", "stat_queue")
	before := sampleCount(t, observer)

	RecordDBQuery("histogram_sample", "stat_queue", 20*time.Millisecond, nil)
	RecordDBQuery("histogram_sample", "stat_queue", 40*time.Millisecond, nil)

	if got := sampleCount(t, observer); got != before+2 {
		t.Errorf("sample count = %d, want %d", got, before+2)
	}
}

func sampleCount(t *testing.T, observer prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := observer.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", observer)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
