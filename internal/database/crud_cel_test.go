// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package database

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tomtom215/calllogd/internal/models"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// renderCELValues prints one column=value line per CEL column, in
// statement order, with NULL for nil values.
func renderCELValues(values map[string]any) string {
	var b strings.Builder
	for _, col := range models.CELColumns {
		v := values[col]
		var rendered string
		switch val := v.(type) {
		case nil:
			rendered = "NULL"
		case string:
			rendered = strconv.Quote(val)
		case time.Time:
			rendered = val.UTC().Format(time.RFC3339)
		default:
			rendered = fmt.Sprint(val)
		}
		fmt.Fprintf(&b, "%s=%s\n", col, rendered)
	}
	return b.String()
}

func TestInsertCELStatement(t *testing.T) {
	newGolden(t).Assert(t, "cel_insert_sql", []byte(insertCELSQL))
}

func TestInsertCELStatementBindsEveryColumn(t *testing.T) {
	for _, col := range models.CELColumns {
		assert.Contains(t, insertCELSQL, "\n    "+col, "column list is missing %s", col)
	}
	for _, col := range models.CELColumns {
		assert.Contains(t, insertCELSQL, "@"+col, "values are missing @%s", col)
	}
	assert.True(t, strings.HasSuffix(insertCELSQL, "RETURNING id\n"))
	assert.Equal(t, "DELETE FROM cel WHERE id = @id", deleteCELSQL)
}

func TestInsertCELDefaults(t *testing.T) {
	c := models.CEL{
		EventType: "eventtype",
		EventTime: time.Date(2020, 10, 1, 14, 0, 0, 0, time.UTC),
		UniqueID:  "1601560800.1",
		LinkedID:  "1601560800.1",
	}
	newGolden(t).Assert(t, "cel_insert_defaults", []byte(renderCELValues(c.Values())))
}

func TestInsertCELCorrelated(t *testing.T) {
	name := "Alice"
	c := models.CEL{
		EventType: "LINKEDID_END",
		EventTime: time.Date(2020, 10, 1, 14, 0, 0, 0, time.UTC),
		UniqueID:  "1601560800.2",
		LinkedID:  "1601560800.1",
		CIDName:   &name,
		Exten:     "1001",
		Context:   "default",
		AMAFlags:  3,
		CallLogID: 1,
		Extra:     `{"hangupcause":16}`,
	}
	newGolden(t).Assert(t, "cel_insert_correlated", []byte(renderCELValues(c.Values())))
}
