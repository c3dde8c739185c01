// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package supervisor provides process supervision for calllogd using suture v4.

The tree has two layers so a failing database monitor never takes down the
metrics endpoint and the reverse:

	RootSupervisor ("calllogd")
	├── DataSupervisor ("data-layer")
	│   └── HealthMonitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (metrics + healthz)

Crashed services are restarted with suture's backoff. Supervisor events
(start, failure, backoff) are logged through the sutureslog hook, which
writes into the zerolog-backed slog logger from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewHealthMonitorService(db, 15*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(services.NewMetricsServer(":9464"), 10*time.Second))
	return tree.Serve(ctx)

Serve blocks until ctx is canceled. UnstoppedServiceReport lists services
that did not stop within the configured shutdown timeout.
*/
package supervisor
