// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/calllogd/internal/models"
)

func TestNullableParticipant(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, nullableParticipant{}.participant())
	})

	t.Run("present", func(t *testing.T) {
		id := uuid.New()
		user := uuid.New()
		callLogID := int64(3)
		role := "destination"
		answered := true
		line := 12

		p := nullableParticipant{
			UUID:      &id,
			CallLogID: &callLogID,
			UserUUID:  &user,
			LineID:    &line,
			Role:      &role,
			Answered:  &answered,
		}.participant()

		require.NotNil(t, p)
		assert.Equal(t, id, p.UUID)
		assert.Equal(t, int64(3), p.CallLogID)
		assert.Equal(t, &user, p.UserUUID)
		assert.Equal(t, 12, *p.LineID)
		assert.Equal(t, models.RoleDestination, p.Role)
		assert.True(t, p.Answered)
		assert.Equal(t, []string{}, p.Tags, "tags default to an empty list")
	})
}
