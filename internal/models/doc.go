// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package models defines the entities persisted by the data access layer.

Two groups of tables share one store but have independent lifecycles:

Call history:
  - Tenant: isolation boundary
  - CallLog: call detail record, owns CallLogParticipant and Recording rows
  - Retention: one policy row per tenant
  - Export: bulk export job with an ExportStatus label

Queue statistics derived from call event logs:
  - CEL: raw call event log row
  - StatQueue, StatAgent: dimension rows with caller supplied ids
  - StatQueuePeriodic, StatAgentPeriodic, StatCallOnQueue: fact rows

Entities double as insert parameters. Zero-valued fields mean "use the
default"; each type documents its defaults and exposes ApplyDefaults where
defaults depend on configuration or the current time. Struct tags carry the
go-playground/validator rules checked before a row is written.
*/
package models
