// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

/*
Package fixtures provides scoped test data helpers on top of the database
package.

Each With* method inserts its rows in one Queries scope, runs the callback,
and removes the rows again in a fresh scope whatever the callback returned:

	h := fixtures.New(db, nil)
	err := h.WithCallLog(ctx, fixtures.CallLogSpec{
	    Participants: []models.CallLogParticipant{{UserUUID: &user}},
	    Recordings:   []models.Recording{{}},
	}, func(f fixtures.CallLogFixture) error {
	    // f.CallLog.ID, f.CallLog.Participants and f.Recordings are set
	    return nil
	})

Setup, callback and teardown errors are joined with errors.Join, so a
failing callback never hides a teardown failure. Teardown also runs when
setup fails part way, removing whatever was inserted, and when a testing
helper stops the goroutine.

Unset fields take the harness defaults: the master tenant and default user
from configuration, the statistics baseline time for periodic rows, and the
current time elsewhere. Removing a call log fixture also removes its
participants and recordings because deletes do not cascade.
*/
package fixtures
