// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package models

import "time"

// Default values written for CEL columns the caller leaves unset.
const (
	DefaultCELCIDName = "default name"
	DefaultCELCIDNum  = "9999"
)

// CEL is a raw call event log row as written by the telephony switch.
//
// Text columns default to the empty string, except CIDName and CIDNum which
// default to DefaultCELCIDName and DefaultCELCIDNum when nil. A zero
// CallLogID and an empty Extra are stored as NULL, never as 0 or "".
type CEL struct {
	ID          int64     `json:"id"`
	EventType   string    `json:"eventtype" validate:"required,max=30"`
	EventTime   time.Time `json:"eventtime" validate:"required"`
	UniqueID    string    `json:"uniqueid" validate:"required,max=150"`
	LinkedID    string    `json:"linkedid" validate:"required,max=150"`
	UserDefType string    `json:"userdeftype"`
	CIDName     *string   `json:"cid_name,omitempty"`
	CIDNum      *string   `json:"cid_num,omitempty"`
	CIDAni      string    `json:"cid_ani"`
	CIDRdnis    string    `json:"cid_rdnis"`
	CIDDnid     string    `json:"cid_dnid"`
	Exten       string    `json:"exten"`
	Context     string    `json:"context"`
	ChanName    string    `json:"channame"`
	AppName     string    `json:"appname"`
	AppData     string    `json:"appdata"`
	AMAFlags    int       `json:"amaflags"`
	AccountCode string    `json:"accountcode"`
	PeerAccount string    `json:"peeraccount"`
	UserField   string    `json:"userfield"`
	Peer        string    `json:"peer"`
	CallLogID   int64     `json:"call_log_id,omitempty"`
	Extra       string    `json:"extra,omitempty"`
}

// CELColumns lists the insertable CEL columns in statement order.
var CELColumns = []string{
	"eventtype",
	"eventtime",
	"uniqueid",
	"linkedid",
	"userdeftype",
	"cid_name",
	"cid_num",
	"cid_ani",
	"cid_rdnis",
	"cid_dnid",
	"exten",
	"context",
	"channame",
	"appname",
	"appdata",
	"amaflags",
	"accountcode",
	"peeraccount",
	"userfield",
	"peer",
	"call_log_id",
	"extra",
}

// Values returns the column values of c keyed by CELColumns names, with
// defaults applied. call_log_id and extra map to nil when unset.
func (c *CEL) Values() map[string]any {
	cidName, cidNum := DefaultCELCIDName, DefaultCELCIDNum
	if c.CIDName != nil {
		cidName = *c.CIDName
	}
	if c.CIDNum != nil {
		cidNum = *c.CIDNum
	}

	var callLogID, extra any
	if c.CallLogID != 0 {
		callLogID = c.CallLogID
	}
	if c.Extra != "" {
		extra = c.Extra
	}

	return map[string]any{
		"eventtype":   c.EventType,
		"eventtime":   c.EventTime,
		"uniqueid":    c.UniqueID,
		"linkedid":    c.LinkedID,
		"userdeftype": c.UserDefType,
		"cid_name":    cidName,
		"cid_num":     cidNum,
		"cid_ani":     c.CIDAni,
		"cid_rdnis":   c.CIDRdnis,
		"cid_dnid":    c.CIDDnid,
		"exten":       c.Exten,
		"context":     c.Context,
		"channame":    c.ChanName,
		"appname":     c.AppName,
		"appdata":     c.AppData,
		"amaflags":    c.AMAFlags,
		"accountcode": c.AccountCode,
		"peeraccount": c.PeerAccount,
		"userfield":   c.UserField,
		"peer":        c.Peer,
		"call_log_id": callLogID,
		"extra":       extra,
	}
}
