// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/calllogd/config.yaml",
	"/etc/calllogd/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

const (
	// DefaultMasterTenantUUID is the tenant used when a fixture does not name one.
	DefaultMasterTenantUUID = "eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"
	// DefaultUserUUID owns exports created without an explicit user.
	DefaultUserUUID = "11111111-1111-1111-1111-111111111111"
	// DefaultStatBaselineTime is the time given to periodic stats rows without one.
	DefaultStatBaselineTime = "2020-10-01 14:00:00"
)

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			User:              "asterisk",
			Password:          "proformatique",
			Host:              "localhost",
			Port:              5432,
			Name:              "asterisk",
			SSLMode:           "disable",
			MaxConns:          10,
			MinConns:          0,
			ConnectTimeout:    5 * time.Second,
			MaxConnLifetime:   time.Hour,
			MaxConnIdleTime:   30 * time.Minute,
			HealthCheckPeriod: time.Minute,
		},
		Fixtures: FixtureConfig{
			MasterTenantUUID: DefaultMasterTenantUUID,
			DefaultUserUUID:  DefaultUserUUID,
			StatBaselineTime: DefaultStatBaselineTime,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
			Interval:         time.Minute,
			HalfOpenRequests: 1,
		},
		Monitor: MonitorConfig{
			Interval:        15 * time.Second,
			MetricsAddr:     ":9464",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without reading a file or the
// environment. Tests and tooling use it as a base.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration in three layers: struct defaults, an
// optional YAML file, then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// DB_HOST -> database.host, MASTER_TENANT_UUID -> fixtures.master_tenant_uuid
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first existing
// entry of DefaultConfigPaths, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Database
	"db_uri":                 "database.uri",
	"db_user":                "database.user",
	"db_password":            "database.password",
	"db_host":                "database.host",
	"db_port":                "database.port",
	"db_name":                "database.name",
	"db_sslmode":             "database.ssl_mode",
	"db_max_conns":           "database.max_conns",
	"db_min_conns":           "database.min_conns",
	"db_connect_timeout":     "database.connect_timeout",
	"db_max_conn_lifetime":   "database.max_conn_lifetime",
	"db_max_conn_idle_time":  "database.max_conn_idle_time",
	"db_health_check_period": "database.health_check_period",

	// Fixture defaults
	"master_tenant_uuid": "fixtures.master_tenant_uuid",
	"default_user_uuid":  "fixtures.default_user_uuid",
	"stat_baseline_time": "fixtures.stat_baseline_time",

	// Circuit breaker
	"breaker_enabled":            "breaker.enabled",
	"breaker_failure_threshold":  "breaker.failure_threshold",
	"breaker_open_timeout":       "breaker.open_timeout",
	"breaker_interval":           "breaker.interval",
	"breaker_half_open_requests": "breaker.half_open_requests",

	// Monitor
	"monitor_interval":         "monitor.interval",
	"metrics_addr":             "monitor.metrics_addr",
	"monitor_shutdown_timeout": "monitor.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
