// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package main

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/logging"
	"github.com/tomtom215/calllogd/internal/metrics"
	"github.com/tomtom215/calllogd/internal/supervisor"
	"github.com/tomtom215/calllogd/internal/supervisor/services"
)

func newMonitorCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Run database health checks and serve Prometheus metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runMonitor(ctx, opts.cfg)
		},
	}
}

// runMonitor blocks until ctx is canceled.
func runMonitor(ctx context.Context, cfg *config.Config) error {
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	treeCfg := supervisor.DefaultTreeConfig()
	if cfg.Monitor.ShutdownTimeout > 0 {
		treeCfg.ShutdownTimeout = cfg.Monitor.ShutdownTimeout
	}
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewHealthMonitorService(db, cfg.Monitor.Interval))
	if cfg.Monitor.MetricsAddr != "" {
		server := services.NewMetricsServer(cfg.Monitor.MetricsAddr)
		tree.AddAPIService(services.NewHTTPServerService(server, treeCfg.ShutdownTimeout))
	}

	logging.Info().
		Str("version", version).
		Str("metrics_addr", cfg.Monitor.MetricsAddr).
		Dur("interval", cfg.Monitor.Interval).
		Msg("Starting monitor")

	// A canceled ctx is a requested shutdown whatever error suture reports.
	err = tree.Serve(ctx)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervisor stopped: %w", err)
	}

	if report, repErr := tree.UnstoppedServiceReport(); repErr == nil && len(report) > 0 {
		logging.Warn().Int("services", len(report)).Msg("Some services did not stop in time")
	}
	logging.Info().Msg("Monitor stopped")
	return nil
}
