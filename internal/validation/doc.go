// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

// Package validation wraps go-playground/validator v10 with a singleton
// instance and readable error messages.
//
// It validates configuration (internal/config) and the insert parameter
// structs of internal/models before any statement reaches PostgreSQL, so
// an out-of-range participant role or export status fails in Go with a
// field-level message instead of as an enum cast error from the server.
//
// Custom tags:
//   - uuid_set: the uuid.UUID (or *uuid.UUID) must be present and not uuid.Nil
package validation
