// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import (
	"time"

	"github.com/google/uuid"
)

// Default names given to dimension rows created implicitly.
const (
	DefaultStatQueueName = "queue"
	DefaultStatAgentName = "agent"
	DefaultCallID        = "123"
)

// StatQueue is the queue dimension referenced by queue facts. ID is caller
// supplied and usually equals QueueID.
type StatQueue struct {
	ID         int       `json:"id" validate:"gt=0"`
	Name       string    `json:"name" validate:"required,max=128"`
	TenantUUID uuid.UUID `json:"tenant_uuid" validate:"uuid_set"`
	QueueID    int       `json:"queue_id"`
	Deleted    bool      `json:"deleted"`
}

// StatAgent is the agent dimension referenced by call-on-queue facts.
type StatAgent struct {
	ID         int       `json:"id" validate:"gt=0"`
	Name       string    `json:"name" validate:"required,max=128"`
	TenantUUID uuid.UUID `json:"tenant_uuid" validate:"uuid_set"`
	AgentID    int       `json:"agent_id"`
	Deleted    bool      `json:"deleted"`
}

// ApplyDefaults fills a zero Name, TenantUUID and QueueID.
func (q *StatQueue) ApplyDefaults(masterTenant uuid.UUID) {
	if q.Name == "" {
		q.Name = DefaultStatQueueName
	}
	if q.TenantUUID == uuid.Nil {
		q.TenantUUID = masterTenant
	}
	if q.QueueID == 0 {
		q.QueueID = q.ID
	}
}

// ApplyDefaults fills a zero Name, TenantUUID and AgentID.
func (a *StatAgent) ApplyDefaults(masterTenant uuid.UUID) {
	if a.Name == "" {
		a.Name = DefaultStatAgentName
	}
	if a.TenantUUID == uuid.Nil {
		a.TenantUUID = masterTenant
	}
	if a.AgentID == 0 {
		a.AgentID = a.ID
	}
}

// StatQueuePeriodic holds queue counters aggregated over one period.
//
// Time defaults to the configured stat baseline when zero. QueueName and
// TenantUUID describe the StatQueue row created when StatQueueID does not
// exist yet; they are not stored on the fact.
type StatQueuePeriodic struct {
	ID             int64     `json:"id"`
	Time           time.Time `json:"time"`
	Answered       int       `json:"answered"`
	Abandoned      int       `json:"abandoned"`
	Total          int       `json:"total"`
	Full           int       `json:"full"`
	Closed         int       `json:"closed"`
	JoinEmpty      int       `json:"joinempty"`
	LeaveEmpty     int       `json:"leaveempty"`
	DivertCARatio  int       `json:"divert_ca_ratio"`
	DivertWaitTime int       `json:"divert_waittime"`
	Timeout        int       `json:"timeout"`
	StatQueueID    int       `json:"stat_queue_id" validate:"gt=0"`

	QueueName  string    `json:"-"`
	TenantUUID uuid.UUID `json:"-"`
}

// StatAgentPeriodic holds agent durations aggregated over one period.
// Time defaults to the configured stat baseline when zero.
type StatAgentPeriodic struct {
	ID          int64         `json:"id"`
	Time        time.Time     `json:"time"`
	LoginTime   time.Duration `json:"login_time"`
	PauseTime   time.Duration `json:"pause_time"`
	WrapupTime  time.Duration `json:"wrapup_time"`
	StatAgentID int           `json:"stat_agent_id" validate:"gt=0"`
}

// CallExitStatus is how a call left a queue.
type CallExitStatus string

const (
	CallExitFull           CallExitStatus = "full"
	CallExitClosed         CallExitStatus = "closed"
	CallExitJoinEmpty      CallExitStatus = "joinempty"
	CallExitLeaveEmpty     CallExitStatus = "leaveempty"
	CallExitDivertCARatio  CallExitStatus = "divert_ca_ratio"
	CallExitDivertWaitTime CallExitStatus = "divert_waittime"
	CallExitAnswered       CallExitStatus = "answered"
	CallExitAbandoned      CallExitStatus = "abandoned"
	CallExitTimeout        CallExitStatus = "timeout"
)

// StatCallOnQueue is one call's passage through a queue.
//
// CallID defaults to DefaultCallID, Status to answered and Time to the
// insertion time. StatAgentID is stored only when it points at a non-zero
// id. QueueName and
// TenantUUID describe the StatQueue row created when it does not exist yet.
type StatCallOnQueue struct {
	ID          int64          `json:"id"`
	CallID      string         `json:"callid" validate:"max=32"`
	Time        time.Time      `json:"time"`
	RingTime    int            `json:"ringtime"`
	TalkTime    int            `json:"talktime"`
	WaitTime    int            `json:"waittime"`
	Status      CallExitStatus `json:"status" validate:"omitempty,oneof=full closed joinempty leaveempty divert_ca_ratio divert_waittime answered abandoned timeout"`
	StatQueueID int            `json:"stat_queue_id" validate:"gt=0"`
	StatAgentID *int           `json:"stat_agent_id,omitempty"`

	QueueName  string    `json:"-"`
	TenantUUID uuid.UUID `json:"-"`
}

// ApplyDefaults fills the zero-valued CallID, Status and Time, and clears a
// StatAgentID pointing at 0.
func (s *StatCallOnQueue) ApplyDefaults(now time.Time) {
	if s.StatAgentID != nil && *s.StatAgentID == 0 {
		s.StatAgentID = nil
	}
	if s.CallID == "" {
		s.CallID = DefaultCallID
	}
	if s.Status == "" {
		s.Status = CallExitAnswered
	}
	if s.Time.IsZero() {
		s.Time = now
	}
}

// dimensionQueue returns the StatQueue row a queue fact requires, using
// QueueName (default "queue") and TenantUUID (default masterTenant).
func dimensionQueue(id int, name string, tenant, masterTenant uuid.UUID) StatQueue {
	if name == "" {
		name = DefaultStatQueueName
	}
	if tenant == uuid.Nil {
		tenant = masterTenant
	}
	return StatQueue{ID: id, Name: name, TenantUUID: tenant, QueueID: id}
}

// DimensionQueue returns the StatQueue row this fact references.
func (s *StatQueuePeriodic) DimensionQueue(masterTenant uuid.UUID) StatQueue {
	return dimensionQueue(s.StatQueueID, s.QueueName, s.TenantUUID, masterTenant)
}

// DimensionQueue returns the StatQueue row this fact references.
func (s *StatCallOnQueue) DimensionQueue(masterTenant uuid.UUID) StatQueue {
	return dimensionQueue(s.StatQueueID, s.QueueName, s.TenantUUID, masterTenant)
}
