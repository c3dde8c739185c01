// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/calllogd/internal/logging"
)

// Tables lists every table the data access layer maps, in the order CountAll
// reports them.
var Tables = []string{
	"tenant",
	"call_log",
	"call_log_participant",
	"recording",
	"retention",
	"export",
	"cel",
	"stat_agent",
	"stat_agent_periodic",
	"stat_queue",
	"stat_queue_periodic",
	"stat_call_on_queue",
}

// schemaStatements create the mapped tables. Each statement is idempotent.
// Child tables carry no foreign keys to their parents: deletes never
// cascade, and the statistics guards are enforced by the delete statements.
var schemaStatements = []string{
	`DO $$ BEGIN
		CREATE TYPE call_log_participant_role AS ENUM ('source', 'destination');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE call_log_export_status AS ENUM ('pending', 'processing', 'finished', 'deleted', 'error');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE call_exit_type AS ENUM (
			'full', 'closed', 'joinempty', 'leaveempty', 'divert_ca_ratio',
			'divert_waittime', 'answered', 'abandoned', 'timeout'
		);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS tenant (
		uuid uuid PRIMARY KEY
	)`,

	`CREATE TABLE IF NOT EXISTS call_log (
		id serial PRIMARY KEY,
		date timestamptz NOT NULL,
		date_answer timestamptz,
		date_end timestamptz,
		tenant_uuid uuid NOT NULL,
		source_name varchar(255) NOT NULL DEFAULT '',
		source_exten varchar(255) NOT NULL DEFAULT '',
		source_internal_exten text NOT NULL DEFAULT '',
		source_internal_context text NOT NULL DEFAULT '',
		source_line_identity varchar(255) NOT NULL DEFAULT '',
		requested_name text NOT NULL DEFAULT '',
		requested_exten varchar(255) NOT NULL DEFAULT '',
		requested_context varchar(255) NOT NULL DEFAULT '',
		requested_internal_exten text NOT NULL DEFAULT '',
		requested_internal_context text NOT NULL DEFAULT '',
		destination_name varchar(255) NOT NULL DEFAULT '',
		destination_exten varchar(255) NOT NULL DEFAULT '',
		destination_internal_exten text NOT NULL DEFAULT '',
		destination_internal_context text NOT NULL DEFAULT '',
		destination_line_identity varchar(255) NOT NULL DEFAULT '',
		direction varchar(8) NOT NULL DEFAULT 'internal'
			CHECK (direction IN ('inbound', 'internal', 'outbound')),
		user_field varchar(255) NOT NULL DEFAULT '',
		conversation_id varchar(255) NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS call_log__idx__date ON call_log (date)`,
	`CREATE INDEX IF NOT EXISTS call_log__idx__tenant_uuid ON call_log (tenant_uuid)`,

	`CREATE TABLE IF NOT EXISTS call_log_participant (
		uuid uuid PRIMARY KEY,
		call_log_id integer NOT NULL,
		user_uuid uuid,
		line_id integer,
		role call_log_participant_role NOT NULL,
		tags varchar(128)[] NOT NULL DEFAULT '{}',
		answered boolean NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS call_log_participant__idx__call_log_id ON call_log_participant (call_log_id)`,
	`CREATE INDEX IF NOT EXISTS call_log_participant__idx__user_uuid ON call_log_participant (user_uuid)`,

	`CREATE TABLE IF NOT EXISTS recording (
		uuid uuid PRIMARY KEY,
		start_time timestamptz NOT NULL,
		end_time timestamptz NOT NULL,
		path text,
		call_log_id integer NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS recording__idx__call_log_id ON recording (call_log_id)`,

	`CREATE TABLE IF NOT EXISTS retention (
		tenant_uuid uuid PRIMARY KEY,
		cdr_days integer,
		export_days integer,
		recording_days integer
	)`,

	`CREATE TABLE IF NOT EXISTS export (
		uuid uuid PRIMARY KEY,
		tenant_uuid uuid NOT NULL,
		user_uuid uuid NOT NULL,
		requested_at timestamptz NOT NULL,
		status call_log_export_status NOT NULL,
		path text,
		done_at timestamptz
	)`,
	`CREATE INDEX IF NOT EXISTS export__idx__tenant_uuid ON export (tenant_uuid)`,

	`CREATE TABLE IF NOT EXISTS cel (
		id serial PRIMARY KEY,
		eventtype varchar(30) NOT NULL,
		eventtime timestamp NOT NULL,
		userdeftype varchar(255) NOT NULL,
		cid_name varchar(80) NOT NULL,
		cid_num varchar(80) NOT NULL,
		cid_ani varchar(80) NOT NULL,
		cid_rdnis varchar(80) NOT NULL,
		cid_dnid varchar(80) NOT NULL,
		exten varchar(80) NOT NULL,
		context varchar(80) NOT NULL,
		channame varchar(80) NOT NULL,
		appname varchar(80) NOT NULL,
		appdata varchar(512) NOT NULL,
		amaflags integer NOT NULL,
		accountcode varchar(20) NOT NULL,
		peeraccount varchar(20) NOT NULL,
		uniqueid varchar(150) NOT NULL,
		linkedid varchar(150) NOT NULL,
		userfield varchar(255) NOT NULL,
		peer varchar(80) NOT NULL,
		call_log_id integer,
		extra text
	)`,
	`CREATE INDEX IF NOT EXISTS cel__idx__linkedid ON cel (linkedid)`,
	`CREATE INDEX IF NOT EXISTS cel__idx__call_log_id ON cel (call_log_id)`,

	`CREATE TABLE IF NOT EXISTS stat_agent (
		id integer PRIMARY KEY,
		name varchar(128) NOT NULL,
		tenant_uuid uuid NOT NULL,
		agent_id integer,
		deleted boolean NOT NULL DEFAULT false
	)`,

	`CREATE TABLE IF NOT EXISTS stat_agent_periodic (
		id serial PRIMARY KEY,
		time timestamptz NOT NULL,
		login_time interval NOT NULL DEFAULT '00:00:00',
		pause_time interval NOT NULL DEFAULT '00:00:00',
		wrapup_time interval NOT NULL DEFAULT '00:00:00',
		stat_agent_id integer
	)`,
	`CREATE INDEX IF NOT EXISTS stat_agent_periodic__idx__stat_agent_id ON stat_agent_periodic (stat_agent_id)`,

	`CREATE TABLE IF NOT EXISTS stat_queue (
		id integer PRIMARY KEY,
		name varchar(128) NOT NULL,
		tenant_uuid uuid NOT NULL,
		queue_id integer,
		deleted boolean NOT NULL DEFAULT false
	)`,

	`CREATE TABLE IF NOT EXISTS stat_queue_periodic (
		id serial PRIMARY KEY,
		time timestamptz NOT NULL,
		answered integer NOT NULL DEFAULT 0,
		abandoned integer NOT NULL DEFAULT 0,
		total integer NOT NULL DEFAULT 0,
		"full" integer NOT NULL DEFAULT 0,
		closed integer NOT NULL DEFAULT 0,
		joinempty integer NOT NULL DEFAULT 0,
		leaveempty integer NOT NULL DEFAULT 0,
		divert_ca_ratio integer NOT NULL DEFAULT 0,
		divert_waittime integer NOT NULL DEFAULT 0,
		timeout integer NOT NULL DEFAULT 0,
		stat_queue_id integer
	)`,
	`CREATE INDEX IF NOT EXISTS stat_queue_periodic__idx__stat_queue_id ON stat_queue_periodic (stat_queue_id)`,

	`CREATE TABLE IF NOT EXISTS stat_call_on_queue (
		id serial PRIMARY KEY,
		callid varchar(32) NOT NULL,
		time timestamptz NOT NULL,
		ringtime integer NOT NULL DEFAULT 0,
		talktime integer NOT NULL DEFAULT 0,
		waittime integer NOT NULL DEFAULT 0,
		status call_exit_type NOT NULL,
		stat_queue_id integer,
		stat_agent_id integer
	)`,
	`CREATE INDEX IF NOT EXISTS stat_call_on_queue__idx__stat_queue_id ON stat_call_on_queue (stat_queue_id)`,
	`CREATE INDEX IF NOT EXISTS stat_call_on_queue__idx__stat_agent_id ON stat_call_on_queue (stat_agent_id)`,
}

// CreateSchema creates the mapped tables when they do not exist. Migration
// tooling owns production schemas; this serves tests and local bring-up.
func (db *DB) CreateSchema(ctx context.Context) error {
	return db.Queries(ctx, func(q *Queries) error {
		return q.inTx(ctx, "create_schema", "*", func(tx pgx.Tx) error {
			for _, stmt := range schemaStatements {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("failed to create schema: %w", err)
				}
			}
			logging.Ctx(ctx).Info().Int("tables", len(Tables)).Msg("Schema ensured")
			return nil
		})
	})
}
