// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package config provides configuration loading for the call log persistence core.

Configuration is layered with koanf: built-in defaults, then an optional YAML
file (CONFIG_PATH, config.yaml, /etc/calllogd/config.yaml), then environment
variables. Later layers win.

# Environment Variables

Database (DatabaseConfig):
  - DB_URI: full connection string, overrides the fields below
  - DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME
  - DB_SSLMODE: disable, allow, prefer, require, verify-ca, verify-full
  - DB_MAX_CONNS, DB_MIN_CONNS: pool sizing
  - DB_CONNECT_TIMEOUT, DB_MAX_CONN_LIFETIME, DB_MAX_CONN_IDLE_TIME, DB_HEALTH_CHECK_PERIOD

Fixture defaults (FixtureConfig):
  - MASTER_TENANT_UUID: tenant for call logs, exports, retention and stats
  - DEFAULT_USER_UUID: owner of exports created without a user
  - STAT_BASELINE_TIME: "2006-01-02 15:04:05" timestamp for periodic stats

Circuit breaker (BreakerConfig):
  - BREAKER_ENABLED, BREAKER_FAILURE_THRESHOLD, BREAKER_OPEN_TIMEOUT
  - BREAKER_INTERVAL, BREAKER_HALF_OPEN_REQUESTS

Monitor (MonitorConfig):
  - MONITOR_INTERVAL: liveness check period
  - METRICS_ADDR: listen address of the /metrics endpoint
  - MONITOR_SHUTDOWN_TIMEOUT

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	pool, err := database.New(ctx, cfg)

The connection string is derived with DatabaseConfig.ConnString and logged
through DatabaseConfig.Redacted.
*/
package config
