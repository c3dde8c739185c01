// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/calllogd/internal/metrics"
	"github.com/tomtom215/calllogd/internal/models"
	"github.com/tomtom215/calllogd/internal/validation"
)

// The cel table belongs to the telephony switch. Its statements are kept as
// raw SQL run on the connection without an explicit transaction, and the
// column list is part of the contract with existing rows.
const (
	insertCELSQL = `INSERT INTO cel (
    eventtype,
    eventtime,
    uniqueid,
    linkedid,
    userdeftype,
    cid_name,
    cid_num,
    cid_ani,
    cid_rdnis,
    cid_dnid,
    exten,
    context,
    channame,
    appname,
    appdata,
    amaflags,
    accountcode,
    peeraccount,
    userfield,
    peer,
    call_log_id,
    extra
)
VALUES (
    @eventtype,
    @eventtime,
    @uniqueid,
    @linkedid,
    @userdeftype,
    @cid_name,
    @cid_num,
    @cid_ani,
    @cid_rdnis,
    @cid_dnid,
    @exten,
    @context,
    @channame,
    @appname,
    @appdata,
    @amaflags,
    @accountcode,
    @peeraccount,
    @userfield,
    @peer,
    @call_log_id,
    @extra
)
RETURNING id
`

	deleteCELSQL = `DELETE FROM cel WHERE id = @id`

	findCELSQL = `SELECT id, eventtype, eventtime, uniqueid, linkedid, userdeftype,
    cid_name, cid_num, cid_ani, cid_rdnis, cid_dnid, exten, context, channame,
    appname, appdata, amaflags, accountcode, peeraccount, userfield, peer,
    call_log_id, extra
FROM cel WHERE id = @id`
)

// InsertCEL inserts a call event log row and returns its id. Unset text
// columns are written as empty strings, cid_name and cid_num take their
// legacy defaults, and an unset call_log_id or extra is written as NULL.
func (q *Queries) InsertCEL(ctx context.Context, c models.CEL) (int64, error) {
	if verr := validation.ValidateStruct(&c); verr != nil {
		return 0, fmt.Errorf("invalid cel: %w", verr)
	}

	start := time.Now()
	var id int64
	err := q.conn.QueryRow(ctx, insertCELSQL, pgx.NamedArgs(c.Values())).Scan(&id)
	metrics.RecordDBQuery("insert", "cel", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cel: %w", err)
	}
	return id, nil
}

// DeleteCEL deletes one call event log row.
func (q *Queries) DeleteCEL(ctx context.Context, id int64) error {
	start := time.Now()
	_, err := q.conn.Exec(ctx, deleteCELSQL, pgx.NamedArgs{"id": id})
	metrics.RecordDBQuery("delete", "cel", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete cel %d: %w", id, err)
	}
	return nil
}

// FindCEL returns one call event log row, or nil, nil. NULL call_log_id and
// extra read back as 0 and "".
func (q *Queries) FindCEL(ctx context.Context, id int64) (*models.CEL, error) {
	var (
		c         models.CEL
		callLogID *int64
		extra     *string
	)
	start := time.Now()
	err := q.conn.QueryRow(ctx, findCELSQL, pgx.NamedArgs{"id": id}).Scan(
		&c.ID, &c.EventType, &c.EventTime, &c.UniqueID, &c.LinkedID, &c.UserDefType,
		&c.CIDName, &c.CIDNum, &c.CIDAni, &c.CIDRdnis, &c.CIDDnid, &c.Exten, &c.Context, &c.ChanName,
		&c.AppName, &c.AppData, &c.AMAFlags, &c.AccountCode, &c.PeerAccount, &c.UserField, &c.Peer,
		&callLogID, &extra,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.RecordDBQuery("find", "cel", time.Since(start), nil)
		return nil, nil
	}
	metrics.RecordDBQuery("find", "cel", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to find cel %d: %w", id, err)
	}
	if callLogID != nil {
		c.CallLogID = *callLogID
	}
	if extra != nil {
		c.Extra = *extra
	}
	return &c, nil
}

// CELIsNull reports which of call_log_id and extra are NULL for a row. It
// exists for checks that must tell NULL from zero values.
func (q *Queries) CELIsNull(ctx context.Context, id int64) (callLogIDNull, extraNull bool, err error) {
	err = q.conn.QueryRow(ctx,
		`SELECT call_log_id IS NULL, extra IS NULL FROM cel WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	).Scan(&callLogIDNull, &extraNull)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, false, fmt.Errorf("cel %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to inspect cel %d: %w", id, err)
	}
	return callLogIDNull, extraNull, nil
}
