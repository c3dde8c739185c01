// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/logging"
)

// rootOptions holds global flags and the state loaded before every command.
type rootOptions struct {
	Timeout  time.Duration
	LogLevel string

	cfg *config.Config
}

// newRootCommand creates the calllogd-db command tree.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "calllogd-db",
		Short:         "Maintain the calllogd call log and statistics database",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "overall deadline for one-shot commands")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL")

	cmd.AddCommand(newPingCommand(opts))
	cmd.AddCommand(newWaitCommand(opts))
	cmd.AddCommand(newSchemaCommand(opts))
	cmd.AddCommand(newCountCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newExecCommand(opts))
	cmd.AddCommand(newMonitorCommand(opts))

	return cmd
}

// load reads the configuration and initializes logging from it.
func (o *rootOptions) load() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	o.cfg = cfg
	return nil
}

// withDB opens the pool, runs fn under the command deadline, and closes the
// pool afterwards.
func (o *rootOptions) withDB(parent context.Context, fn func(ctx context.Context, db *database.DB) error) error {
	ctx, cancel := context.WithTimeout(parent, o.Timeout)
	defer cancel()

	db, err := database.New(ctx, o.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}
