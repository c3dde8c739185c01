// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package metrics provides Prometheus instrumentation for the persistence core.

Metrics are registered on the default registry through promauto and exposed
by the supervisor's HTTP service at /metrics.

# Available Metrics

Data access:
  - calllogd_db_query_duration_seconds (histogram): labels operation, table
  - calllogd_db_query_errors_total (counter): labels operation, table, error_type
  - calllogd_db_guarded_delete_skips_total (counter): label table

Pool and liveness:
  - calllogd_db_pool_acquired_connections (gauge)
  - calllogd_db_pool_total_connections (gauge)
  - calllogd_db_up (gauge): 1 when the last liveness check succeeded
  - calllogd_db_health_checks_total (counter): label result (up, down)

Circuit breaker:
  - calllogd_circuit_breaker_state (gauge): 0=closed, 1=half-open, 2=open
  - calllogd_circuit_breaker_state_transitions_total (counter)

# Error Types

RecordDBQuery labels failures with ErrorType: canceled, timeout,
unique_violation, foreign_key_violation, not_null_violation,
serialization_failure, pg_<sqlstate>, connection or other.
*/
package metrics
