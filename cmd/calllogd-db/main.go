// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

// Package main is calllogd-db, the maintenance tool for the call log and
// queue statistics database.
//
// # Commands
//
//	calllogd-db ping                 exit status 1 when the database is down
//	calllogd-db wait                 block until the database accepts connections
//	calllogd-db schema               create missing tables
//	calllogd-db count                print row counts of every table as JSON
//	calllogd-db reset                delete all call logs and recordings
//	calllogd-db exec SQL [k=v ...]   run one statement with named arguments
//	calllogd-db monitor              supervise health checks and serve /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (DB_HOST, DB_PORT, DB_URI, LOG_LEVEL, ...)
//   - Config file (config.yaml, or the file named by CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	export DB_HOST=postgres DB_USER=asterisk DB_PASSWORD=secret
//	calllogd-db wait --timeout 60s && calllogd-db schema
//	calllogd-db exec "DELETE FROM cel WHERE uniqueid = @uid" uid=1600000000.1
//
// # Signal Handling
//
// monitor stops on SIGINT and SIGTERM. The metrics server gets
// MONITOR_SHUTDOWN_TIMEOUT to drain before the process exits.
package main

import (
	"os"

	"github.com/tomtom215/calllogd/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
