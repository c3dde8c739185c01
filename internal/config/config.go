// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StatTimeLayout is the layout of FixtureConfig.StatBaselineTime.
const StatTimeLayout = "2006-01-02 15:04:05"

// Config holds the complete configuration of the persistence core and its
// maintenance tooling.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Fixtures FixtureConfig  `koanf:"fixtures"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Monitor  MonitorConfig  `koanf:"monitor"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig describes the PostgreSQL target and pool sizing.
type DatabaseConfig struct {
	// URI, when set, overrides the individual connection fields.
	URI               string        `koanf:"uri"`
	User              string        `koanf:"user" validate:"required_without=URI"`
	Password          string        `koanf:"password"`
	Host              string        `koanf:"host" validate:"required_without=URI"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Name              string        `koanf:"name" validate:"required_without=URI"`
	SSLMode           string        `koanf:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32         `koanf:"max_conns" validate:"min=1"`
	MinConns          int32         `koanf:"min_conns" validate:"min=0"`
	ConnectTimeout    time.Duration `koanf:"connect_timeout"`
	MaxConnLifetime   time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `koanf:"health_check_period"`
}

// FixtureConfig holds the implicit defaults applied by the data access layer
// and the fixture helpers: the tenant a call log belongs to when none is
// given, the user owning exports, and the timestamp given to periodic
// statistics rows that do not carry one.
type FixtureConfig struct {
	MasterTenantUUID string `koanf:"master_tenant_uuid" validate:"required,uuid"`
	DefaultUserUUID  string `koanf:"default_user_uuid" validate:"required,uuid"`
	StatBaselineTime string `koanf:"stat_baseline_time" validate:"required"`
}

// FixtureDefaults is the parsed form of FixtureConfig.
type FixtureDefaults struct {
	MasterTenantUUID uuid.UUID
	DefaultUserUUID  uuid.UUID
	StatBaselineTime time.Time
}

// Defaults parses the fixture configuration.
func (f FixtureConfig) Defaults() (FixtureDefaults, error) {
	tenant, err := uuid.Parse(f.MasterTenantUUID)
	if err != nil {
		return FixtureDefaults{}, fmt.Errorf("invalid master tenant uuid %q: %w", f.MasterTenantUUID, err)
	}
	user, err := uuid.Parse(f.DefaultUserUUID)
	if err != nil {
		return FixtureDefaults{}, fmt.Errorf("invalid default user uuid %q: %w", f.DefaultUserUUID, err)
	}
	baseline, err := time.ParseInLocation(StatTimeLayout, f.StatBaselineTime, time.UTC)
	if err != nil {
		return FixtureDefaults{}, fmt.Errorf("invalid stat baseline time %q: %w", f.StatBaselineTime, err)
	}
	return FixtureDefaults{
		MasterTenantUUID: tenant,
		DefaultUserUUID:  user,
		StatBaselineTime: baseline,
	}, nil
}

// BreakerConfig configures the circuit breaker guarding connection acquisition.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
	OpenTimeout      time.Duration `koanf:"open_timeout"`
	Interval         time.Duration `koanf:"interval"`
	HalfOpenRequests uint32        `koanf:"half_open_requests" validate:"min=1"`
}

// MonitorConfig configures the supervised health monitor.
type MonitorConfig struct {
	Interval        time.Duration `koanf:"interval"`
	MetricsAddr     string        `koanf:"metrics_addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
