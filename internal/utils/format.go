package utils

import (
	"fmt"
	"time"
)

// FormatDate renders a timestamp for user-facing text.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("Jan 02, 2006")
}

// FormatRange collapses same-day ranges to a single date.
func FormatRange(start, end time.Time) string {
	if start.IsZero() && end.IsZero() {
		return "unspecified"
	}
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return FormatDate(start)
	}
	return FormatDate(start) + " to " + FormatDate(end)
}

// USD renders a dollar amount with two decimals.
func USD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
