// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/calllogd/internal/validation"
)

var (
	testMasterTenant = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")
	testUser         = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testNow          = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func TestCallLogApplyDefaults(t *testing.T) {
	var c CallLog
	c.ApplyDefaults(testMasterTenant, testNow)

	assert.Equal(t, testNow, c.Date)
	assert.Equal(t, testMasterTenant, c.TenantUUID)
	assert.Equal(t, DirectionInternal, c.Direction)

	tenant := uuid.New()
	date := testNow.Add(-time.Hour)
	explicit := CallLog{Date: date, TenantUUID: tenant, Direction: DirectionInbound}
	explicit.ApplyDefaults(testMasterTenant, testNow)

	assert.Equal(t, date, explicit.Date)
	assert.Equal(t, tenant, explicit.TenantUUID)
	assert.Equal(t, DirectionInbound, explicit.Direction)
}

func TestCallLogParticipantUserUUIDs(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	c := CallLog{Participants: []CallLogParticipant{
		{UserUUID: &u1},
		{UserUUID: nil},
		{UserUUID: &u2},
	}}

	assert.Equal(t, []uuid.UUID{u1, u2}, c.ParticipantUserUUIDs())
	assert.Empty(t, (&CallLog{}).ParticipantUserUUIDs())
}

func TestCallLogParticipantApplyDefaults(t *testing.T) {
	p := CallLogParticipant{CallLogID: 1}
	p.ApplyDefaults()
	assert.Equal(t, RoleSource, p.Role)
	assert.NotNil(t, p.Tags)

	d := CallLogParticipant{CallLogID: 1, Role: RoleDestination, Tags: []string{"rh"}}
	d.ApplyDefaults()
	assert.Equal(t, RoleDestination, d.Role)
	assert.Equal(t, []string{"rh"}, d.Tags)
}

func TestExportApplyDefaults(t *testing.T) {
	var e Export
	e.ApplyDefaults(testMasterTenant, testUser, testNow)

	assert.Equal(t, testMasterTenant, e.TenantUUID)
	assert.Equal(t, testUser, e.UserUUID)
	assert.Equal(t, testNow, e.RequestedAt)
	assert.Equal(t, ExportPending, e.Status)
	assert.Nil(t, validation.ValidateStruct(&e))
}

func TestExportStatusValid(t *testing.T) {
	for _, s := range []ExportStatus{ExportPending, ExportProcessing, ExportFinished, ExportDeleted, ExportError} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ExportStatus("cancelled").Valid())
	assert.False(t, ExportStatus("").Valid())
}

func TestCELValues_Defaults(t *testing.T) {
	c := CEL{EventType: "CHAN_START", EventTime: testNow, UniqueID: "u", LinkedID: "l"}
	v := c.Values()

	assert.Len(t, v, len(CELColumns))
	for _, col := range CELColumns {
		assert.Contains(t, v, col)
	}
	assert.Equal(t, DefaultCELCIDName, v["cid_name"])
	assert.Equal(t, DefaultCELCIDNum, v["cid_num"])
	assert.Equal(t, "", v["exten"])
	assert.Equal(t, 0, v["amaflags"])
	assert.Nil(t, v["call_log_id"], "unset call_log_id must be NULL")
	assert.Nil(t, v["extra"], "unset extra must be NULL")
}

func TestCELValues_Explicit(t *testing.T) {
	empty := ""
	c := CEL{
		EventType: "LINKEDID_END",
		EventTime: testNow,
		UniqueID:  "u",
		LinkedID:  "l",
		CIDName:   &empty,
		CallLogID: 12,
		Extra:     `{"extra":"value"}`,
	}
	v := c.Values()

	assert.Equal(t, "", v["cid_name"], "explicit empty cid_name is kept")
	assert.Equal(t, int64(12), v["call_log_id"])
	assert.Equal(t, `{"extra":"value"}`, v["extra"])
}

func TestStatDimensionDefaults(t *testing.T) {
	q := StatQueue{ID: 7}
	q.ApplyDefaults(testMasterTenant)
	assert.Equal(t, StatQueue{ID: 7, Name: "queue", TenantUUID: testMasterTenant, QueueID: 7}, q)

	a := StatAgent{ID: 3, Name: "Agent Smith"}
	a.ApplyDefaults(testMasterTenant)
	assert.Equal(t, StatAgent{ID: 3, Name: "Agent Smith", TenantUUID: testMasterTenant, AgentID: 3}, a)
}

func TestStatFactDimensionQueue(t *testing.T) {
	p := StatQueuePeriodic{StatQueueID: 7}
	assert.Equal(t, StatQueue{ID: 7, Name: "queue", TenantUUID: testMasterTenant, QueueID: 7}, p.DimensionQueue(testMasterTenant))

	tenant := uuid.New()
	c := StatCallOnQueue{StatQueueID: 2, QueueName: "support", TenantUUID: tenant}
	assert.Equal(t, StatQueue{ID: 2, Name: "support", TenantUUID: tenant, QueueID: 2}, c.DimensionQueue(testMasterTenant))
}

func TestStatCallOnQueueApplyDefaults(t *testing.T) {
	var c StatCallOnQueue
	c.ApplyDefaults(testNow)
	assert.Equal(t, "123", c.CallID)
	assert.Equal(t, CallExitAnswered, c.Status)
	assert.Equal(t, testNow, c.Time)
	assert.Nil(t, c.StatAgentID)
}

func TestStatCallOnQueueApplyDefaults_AgentID(t *testing.T) {
	zero, agent := 0, 5

	c := StatCallOnQueue{StatAgentID: &zero}
	c.ApplyDefaults(testNow)
	assert.Nil(t, c.StatAgentID, "agent id 0 means no agent")

	c = StatCallOnQueue{StatAgentID: &agent}
	c.ApplyDefaults(testNow)
	require.NotNil(t, c.StatAgentID)
	assert.Equal(t, 5, *c.StatAgentID)
}

func TestValidationTags(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"participant bad role", &CallLogParticipant{CallLogID: 1, Role: "observer"}, "Role must be one of"},
		{"participant missing call log", &CallLogParticipant{Role: RoleSource}, "CallLogID must be greater than 0"},
		{"recording ends before start", &Recording{CallLogID: 1, StartTime: testNow, EndTime: testNow.Add(-time.Minute)}, "EndTime"},
		{"retention nil tenant", &Retention{}, "TenantUUID must be a non-nil UUID"},
		{"cel missing eventtype", &CEL{EventTime: testNow, UniqueID: "u", LinkedID: "l"}, "EventType is required"},
		{"call on queue bad status", &StatCallOnQueue{StatQueueID: 1, Status: "lost"}, "Status must be one of"},
		{"queue nil tenant", &StatQueue{ID: 1, Name: "queue"}, "TenantUUID must be a non-nil UUID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateStruct(tt.value)
			require.NotNil(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCallLogJSON(t *testing.T) {
	u := uuid.New()
	c := CallLog{
		ID:           5,
		Date:         testNow,
		TenantUUID:   testMasterTenant,
		Direction:    DirectionOutbound,
		Participants: []CallLogParticipant{{UserUUID: &u, Role: RoleSource, Tags: []string{}}},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(5), decoded["id"])
	assert.Equal(t, "outbound", decoded["direction"])
	assert.NotContains(t, decoded, "source_name")
	assert.Len(t, decoded["participants"], 1)
}
