package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A Friday afternoon, so relative idioms have something fixed to hang off.
var now = time.Date(2025, 11, 7, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_NoHint(t *testing.T) {
	queries := []string{
		"total revenue",
		"best selling products",
		"how many orders did we get",
		"average order value",
		"sales by employee",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			hint := Resolve(q, now)
			assert.Equal(t, NoHint, hint.Kind)
		})
	}
}

func TestResolve_RelativeRanges(t *testing.T) {
	tests := []struct {
		query string
		start time.Time
		end   time.Time
	}{
		{"total revenue today", day(2025, 11, 7), now},
		{"past 3 days", now.AddDate(0, 0, -3), now},
		{"in the past 10 days", now.AddDate(0, 0, -10), now},
		{"last 2 weeks", now.AddDate(0, 0, -14), now},
		{"past three days", now.AddDate(0, 0, -3), now},
		{"sales 5 days ago", now.AddDate(0, 0, -5), now},
		{"last week", now.AddDate(0, 0, -7), now},
		{"past month", now.AddDate(0, 0, -30), now},
		{"this month", day(2025, 11, 1), now},
		{"this year", day(2025, 1, 1), now},
		// Nov 3 2025 is the Monday of the current week.
		{"this week", day(2025, 11, 3), now},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			hint := Resolve(tt.query, now)
			assert.Equal(t, ParsedRange, hint.Kind)
			assert.Equal(t, tt.start, hint.Start)
			assert.Equal(t, tt.end, hint.End)
		})
	}
}

func TestResolve_Yesterday(t *testing.T) {
	hint := Resolve("revenue yesterday", now)
	assert.Equal(t, ParsedRange, hint.Kind)
	assert.Equal(t, day(2025, 11, 6), hint.Start)
	// Previous full day: ends just before today's midnight.
	assert.True(t, hint.End.Before(day(2025, 11, 7)))
	assert.True(t, hint.End.After(day(2025, 11, 6)))
}

func TestResolve_AbsoluteDates(t *testing.T) {
	tests := []struct {
		query string
		want  time.Time
	}{
		{"sales on 6 nov", day(2025, 11, 6)},
		{"sales on nov 6", day(2025, 11, 6)},
		{"sales on 7th nov", day(2025, 11, 7)},
		{"sales on 6th of november", day(2025, 11, 6)},
		{"sales on nov 7 2024", day(2024, 11, 7)},
		{"sales on 2025-01-01", day(2025, 1, 1)},
		// Day-first reading of ambiguous numerics.
		{"sales on 6/7", day(2025, 7, 6)},
		// 13 cannot be a month, so month-then-day is tried.
		{"sales on 5/13", day(2025, 5, 13)},
		{"sales on 6-11-24", day(2024, 11, 6)},
		// Dec 25 has not happened yet relative to now: previous year.
		{"sales on 25 dec", day(2024, 12, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			hint := Resolve(tt.query, now)
			assert.Equal(t, ParsedRange, hint.Kind)
			assert.Equal(t, tt.want, hint.Start)
			// Absolute dates always span exactly their calendar day.
			assert.Equal(t, tt.want.Day(), hint.End.Day())
			assert.True(t, hint.Start.Before(hint.End))
		})
	}
}

func TestResolve_UnparseableHints(t *testing.T) {
	queries := []string{
		"revenue tomorrow",
		"sales next week",
		"past few days",
		"sales last friday",
		"revenue this quarter",
		"sales in january",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			hint := Resolve(q, now)
			assert.Equal(t, UnparseableHint, hint.Kind)
			assert.NotEmpty(t, hint.Raw)
		})
	}
}

func TestResolve_FirstPhraseWins(t *testing.T) {
	// Two date phrases: the first recognized one is used.
	hint := Resolve("revenue today compared to yesterday", now)
	assert.Equal(t, ParsedRange, hint.Kind)
	// "yesterday" wins here because the keyword pass checks it first,
	// which is the documented, stable order.
	assert.Equal(t, day(2025, 11, 6), hint.Start)
}

func TestResolve_StartNeverAfterEnd(t *testing.T) {
	queries := []string{
		"today", "yesterday", "past 1 days", "last 3 weeks",
		"this week", "nov 6", "2025-01-01", "past month",
	}
	for _, q := range queries {
		hint := Resolve(q, now)
		if assert.Equal(t, ParsedRange, hint.Kind, q) {
			assert.False(t, hint.Start.After(hint.End), q)
		}
	}
}
