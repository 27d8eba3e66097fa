package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/timeboard/internal/models"
)

func TestGroupByDay(t *testing.T) {
	yesterday := midnight.AddDate(0, 0, -1)
	sessions := []models.Session{
		{ID: "3", Start: midnight.Add(10 * time.Hour)},
		{ID: "2", Start: midnight.Add(1 * time.Hour)},
		{ID: "1", Start: yesterday.Add(23 * time.Hour)},
	}

	groups := GroupByDay(sessions)
	require.Len(t, groups, 2)

	assert.True(t, groups[0].Day.Equal(midnight))
	assert.Equal(t, []string{"3", "2"}, []string{groups[0].Sessions[0].ID, groups[0].Sessions[1].ID})

	assert.True(t, groups[1].Day.Equal(yesterday))
	assert.Len(t, groups[1].Sessions, 1)

	assert.Empty(t, GroupByDay(nil))
}

func TestDayStrip(t *testing.T) {
	sessions := []models.Session{
		{ActivityID: "overnight", Start: midnight.Add(-2 * time.Hour), End: at(midnight.Add(6 * time.Hour))},
		{ActivityID: "lunch", Start: midnight.Add(12 * time.Hour), End: at(midnight.Add(13 * time.Hour))},
		{ActivityID: "running", Start: midnight.Add(14 * time.Hour)},
		{ActivityID: "yesterday", Start: midnight.Add(-5 * time.Hour), End: at(midnight.Add(-4 * time.Hour))},
	}

	segments := DayStrip(sessions, now, now)
	require.Len(t, segments, 3)

	assert.Equal(t, Segment{ActivityID: "overnight", From: 0, To: 0.25}, segments[0])
	assert.Equal(t, Segment{ActivityID: "lunch", From: 0.5, To: 13.0 / 24}, segments[1])
	assert.Equal(t, "running", segments[2].ActivityID)
	assert.InDelta(t, 14.0/24, segments[2].From, 1e-9)
	assert.InDelta(t, 15.0/24, segments[2].To, 1e-9)
}
