// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package services provides suture.Service implementations run by the
calllogd supervisor tree.

HealthMonitorService polls the database liveness check, publishes
calllogd_db_up and pool gauges, and logs up/down transitions once each.

HTTPServerService adapts an *http.Server (ListenAndServe/Shutdown) to
suture's Serve(ctx) pattern. NewMetricsServer builds the server it usually
wraps: Prometheus metrics on /metrics and a static /healthz.

Return values follow suture's contract:

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted with backoff
	ctx.Err()   -> shutdown requested
*/
package services
