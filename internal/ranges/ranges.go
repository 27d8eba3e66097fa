// Package ranges builds the fixed reporting windows shown in the stats view.
// All windows end at the supplied now and start at a local midnight.
package ranges

import (
	"time"

	"github.com/tgienger/timeboard/internal/models"
)

const (
	LabelToday = "Today"
	LabelWeek  = "7D"
	LabelMonth = "Month"
)

// StartOfDay returns local midnight of the day containing t
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Today covers midnight through now
func Today(now time.Time) models.DateRange {
	return models.DateRange{Label: LabelToday, Start: StartOfDay(now), End: now}
}

// Last7Days covers six full days before today plus today so far
func Last7Days(now time.Time) models.DateRange {
	return models.DateRange{Label: LabelWeek, Start: StartOfDay(now).AddDate(0, 0, -6), End: now}
}

// CurrentMonth covers the first of the month through now
func CurrentMonth(now time.Time) models.DateRange {
	year, month, _ := now.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	return models.DateRange{Label: LabelMonth, Start: start, End: now}
}

// All returns the picker ranges in display order
func All(now time.Time) []models.DateRange {
	return []models.DateRange{Today(now), Last7Days(now), CurrentMonth(now)}
}

// ByLabel rebuilds the range with the given label against now.
// Unknown labels fall back to Today.
func ByLabel(label string, now time.Time) models.DateRange {
	switch label {
	case LabelWeek:
		return Last7Days(now)
	case LabelMonth:
		return CurrentMonth(now)
	}
	return Today(now)
}
