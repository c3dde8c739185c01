// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calllogd_db_query_duration_seconds",
			Help:    "Duration of PostgreSQL data access operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllogd_db_query_errors_total",
			Help: "Total number of failed data access operations",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBGuardedDeleteSkips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllogd_db_guarded_delete_skips_total",
			Help: "Deletes of statistics dimensions skipped because facts still reference them",
		},
		[]string{"table"},
	)

	DBPoolAcquiredConns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calllogd_db_pool_acquired_connections",
			Help: "Connections currently acquired from the pool",
		},
	)

	DBPoolTotalConns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calllogd_db_pool_total_connections",
			Help: "Connections currently held by the pool, idle or acquired",
		},
	)

	DBUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calllogd_db_up",
			Help: "Whether the last liveness check succeeded (1) or not (0)",
		},
	)

	DBHealthChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllogd_db_health_checks_total",
			Help: "Total number of liveness checks",
		},
		[]string{"result"}, // up, down
	)

	// Circuit Breaker Metrics
	DBBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "calllogd_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	DBBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllogd_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "calllogd_app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records the duration of one data access operation and, when
// err is non-nil, its error class.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, ErrorType(err)).Inc()
	}
}

// ErrorType classifies err into a low-cardinality label value.
func ErrorType(err error) string {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case "23505":
			return "unique_violation"
		case "23503":
			return "foreign_key_violation"
		case "23502":
			return "not_null_violation"
		case "40001":
			return "serialization_failure"
		default:
			return "pg_" + pgErr.Code
		}
	case pgconn.SafeToRetry(err):
		return "connection"
	default:
		return "other"
	}
}

// RecordGuardedDeleteSkip counts a dimension delete that was skipped.
func RecordGuardedDeleteSkip(table string) {
	DBGuardedDeleteSkips.WithLabelValues(table).Inc()
}

// RecordHealthCheck records the outcome of one liveness check.
func RecordHealthCheck(up bool) {
	if up {
		DBUp.Set(1)
		DBHealthChecks.WithLabelValues("up").Inc()
		return
	}
	DBUp.Set(0)
	DBHealthChecks.WithLabelValues("down").Inc()
}

// RecordPoolStats publishes pool occupancy.
func RecordPoolStats(acquired, total int32) {
	DBPoolAcquiredConns.Set(float64(acquired))
	DBPoolTotalConns.Set(float64(total))
}

// RecordBreakerTransition publishes a circuit breaker state change. States
// are 0=closed, 1=half-open, 2=open.
func RecordBreakerTransition(name, from, to string, toState float64) {
	DBBreakerState.WithLabelValues(name).Set(toState)
	DBBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
