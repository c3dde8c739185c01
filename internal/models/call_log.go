// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolation boundary for call logs, exports and retention policies.
type Tenant struct {
	UUID uuid.UUID `json:"uuid" validate:"uuid_set"`
}

// CallDirection classifies a call relative to the tenant.
type CallDirection string

const (
	DirectionInbound  CallDirection = "inbound"
	DirectionInternal CallDirection = "internal"
	DirectionOutbound CallDirection = "outbound"
)

// CallLog is a call detail record.
//
// Date defaults to the insertion time and TenantUUID to the master tenant
// when left zero. Participants, SourceParticipant and DestinationParticipant
// are populated by reads only; inserts ignore them.
type CallLog struct {
	ID         int64      `json:"id"`
	Date       time.Time  `json:"date"`
	DateAnswer *time.Time `json:"date_answer,omitempty"`
	DateEnd    *time.Time `json:"date_end,omitempty"`
	TenantUUID uuid.UUID  `json:"tenant_uuid"`

	SourceName            string `json:"source_name,omitempty" validate:"max=255"`
	SourceExten           string `json:"source_exten,omitempty" validate:"max=255"`
	SourceInternalExten   string `json:"source_internal_exten,omitempty" validate:"max=255"`
	SourceInternalContext string `json:"source_internal_context,omitempty" validate:"max=255"`
	SourceLineIdentity    string `json:"source_line_identity,omitempty" validate:"max=255"`

	RequestedName            string `json:"requested_name,omitempty" validate:"max=255"`
	RequestedExten           string `json:"requested_exten,omitempty" validate:"max=255"`
	RequestedContext         string `json:"requested_context,omitempty" validate:"max=255"`
	RequestedInternalExten   string `json:"requested_internal_exten,omitempty" validate:"max=255"`
	RequestedInternalContext string `json:"requested_internal_context,omitempty" validate:"max=255"`

	DestinationName            string `json:"destination_name,omitempty" validate:"max=255"`
	DestinationExten           string `json:"destination_exten,omitempty" validate:"max=255"`
	DestinationInternalExten   string `json:"destination_internal_exten,omitempty" validate:"max=255"`
	DestinationInternalContext string `json:"destination_internal_context,omitempty" validate:"max=255"`
	DestinationLineIdentity    string `json:"destination_line_identity,omitempty" validate:"max=255"`

	Direction      CallDirection `json:"direction" validate:"omitempty,oneof=inbound internal outbound"`
	UserField      string        `json:"user_field,omitempty" validate:"max=255"`
	ConversationID string        `json:"conversation_id,omitempty" validate:"max=255"`

	Participants           []CallLogParticipant `json:"participants"`
	SourceParticipant      *CallLogParticipant  `json:"source_participant,omitempty"`
	DestinationParticipant *CallLogParticipant  `json:"destination_participant,omitempty"`
}

// ApplyDefaults fills the zero-valued Date, TenantUUID and Direction.
func (c *CallLog) ApplyDefaults(masterTenant uuid.UUID, now time.Time) {
	if c.Date.IsZero() {
		c.Date = now
	}
	if c.TenantUUID == uuid.Nil {
		c.TenantUUID = masterTenant
	}
	if c.Direction == "" {
		c.Direction = DirectionInternal
	}
}

// ParticipantUserUUIDs returns the user uuid of every participant that has one,
// in participant order.
func (c *CallLog) ParticipantUserUUIDs() []uuid.UUID {
	uuids := make([]uuid.UUID, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p.UserUUID != nil {
			uuids = append(uuids, *p.UserUUID)
		}
	}
	return uuids
}

// ParticipantRole is the side of the call a participant was on.
type ParticipantRole string

const (
	RoleSource      ParticipantRole = "source"
	RoleDestination ParticipantRole = "destination"
)

// CallLogParticipant links a user line to a call log. At most one source and
// one destination per call log is a caller convention; storage does not
// enforce it.
type CallLogParticipant struct {
	UUID      uuid.UUID       `json:"uuid"`
	CallLogID int64           `json:"call_log_id" validate:"gt=0"`
	UserUUID  *uuid.UUID      `json:"user_uuid,omitempty"`
	LineID    *int            `json:"line_id,omitempty"`
	Role      ParticipantRole `json:"role" validate:"omitempty,oneof=source destination"`
	Tags      []string        `json:"tags"`
	Answered  bool            `json:"answered"`
}

// ApplyDefaults sets Role to source and Tags to an empty set when unset.
func (p *CallLogParticipant) ApplyDefaults() {
	if p.Role == "" {
		p.Role = RoleSource
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
