// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

// Package logging provides the zerolog-based logger shared by calllogd.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("table", "call_log").Msg("Cleared table")
//	logging.Ctx(ctx).Debug().Err(err).Msg("Database is down")
//
// # Configuration
//
// Environment Variables (read through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// The SlogHandler adapter lets slog consumers such as sutureslog write
// through the same zerolog stream.
//
// Always terminate event chains with Msg() or Send(); an unterminated
// chain is never written.
package logging
