// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

// Package testinfra provides container infrastructure for integration tests.
//
// Tests built with the integration tag run the data access layer against a
// real PostgreSQL server started with testcontainers-go:
//
//	func TestCallLogs(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    require.NoError(t, err)
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(ctx, pg.Config())
//	    require.NoError(t, err)
//	    require.NoError(t, db.CreateSchema(ctx))
//	}
//
// Tests are skipped when Docker is unavailable. The first run downloads the
// PostgreSQL image.
package testinfra
