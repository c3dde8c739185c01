// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package main

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamedArgs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    pgx.NamedArgs
		wantErr string
	}{
		{
			name:  "none",
			pairs: nil,
			want:  pgx.NamedArgs{},
		},
		{
			name:  "plain values",
			pairs: []string{"uid=1600000000.1", "tenant=eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"},
			want: pgx.NamedArgs{
				"uid":    "1600000000.1",
				"tenant": "eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee",
			},
		},
		{
			name:  "value containing equals",
			pairs: []string{"extra=a=b"},
			want:  pgx.NamedArgs{"extra": "a=b"},
		},
		{
			name:  "at prefix and empty value",
			pairs: []string{"@path="},
			want:  pgx.NamedArgs{"path": ""},
		},
		{
			name:  "null literal",
			pairs: []string{"call_log_id=NULL"},
			want:  pgx.NamedArgs{"call_log_id": nil},
		},
		{
			name:    "missing equals",
			pairs:   []string{"uid"},
			wantErr: "is not name=value",
		},
		{
			name:    "empty name",
			pairs:   []string{"=42"},
			wantErr: "empty name",
		},
		{
			name:    "duplicate",
			pairs:   []string{"id=1", "@id=2"},
			wantErr: "given twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNamedArgs(tt.pairs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
