// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/logging"
)

// errDatabaseDown is returned by ping so main exits non-zero.
var errDatabaseDown = errors.New("database is down")

func newPingCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Report whether the database accepts connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
				if !db.IsUp(ctx) {
					fmt.Fprintln(cmd.OutOrStdout(), "down")
					return errDatabaseDown
				}
				fmt.Fprintln(cmd.OutOrStdout(), "up")
				return nil
			})
		},
	}
}

func newWaitCommand(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until the database accepts connections or --timeout expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
				start := time.Now()
				if err := db.WaitUntilUp(ctx, interval); err != nil {
					return err
				}
				logging.Info().Dur("waited", time.Since(start)).Msg("Database is up")
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between connection attempts")
	return cmd
}

func newSchemaCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create missing tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
				if err := db.CreateSchema(ctx); err != nil {
					return err
				}
				logging.Info().Int("tables", len(database.Tables)).Msg("Schema is in place")
				return nil
			})
		},
	}
}

func newCountCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the row count of every table as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
				var counts map[string]int64
				err := db.Queries(ctx, func(q *database.Queries) error {
					var err error
					counts, err = q.CountAll(ctx)
					return err
				})
				if err != nil {
					return err
				}
				return writeCounts(cmd.OutOrStdout(), counts)
			})
		},
	}
}

// writeCounts prints counts as indented JSON with sorted keys.
func writeCounts(w io.Writer, counts map[string]int64) error {
	out, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every call log and recording",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes data; pass --yes to confirm")
			}
			return opts.withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
				err := db.Queries(ctx, func(q *database.Queries) error {
					if err := q.ClearCallLogs(ctx); err != nil {
						return err
					}
					return q.ClearRecordings(ctx)
				})
				if err != nil {
					return err
				}
				logging.Info().Msg("Call logs and recordings cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newExecCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec SQL [name=value ...]",
		Short: "Run one statement with @name arguments",
		Long: `Run a single SQL statement outside the data access layer.

Arguments are bound by name: "DELETE FROM cel WHERE uniqueid = @uid" uid=42.
The literal value NULL binds SQL NULL.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := parseNamedArgs(args[1:])
			if err != nil {
				return err
			}
			return opts.withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
				if err := db.Execute(ctx, args[0], named); err != nil {
					return err
				}
				logging.Info().Int("args", len(named)).Msg("Statement executed")
				return nil
			})
		},
	}
}
