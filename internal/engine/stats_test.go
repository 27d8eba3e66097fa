package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/timeboard/internal/db"
	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/ranges"
)

func addActivity(t *testing.T, database *db.DB, id, category string) {
	t.Helper()
	_, err := database.CreateActivity(models.Activity{ID: id, Name: id, Category: category})
	require.NoError(t, err)
}

func TestAggregateStats(t *testing.T) {
	t.Run("closed session inside the range counts in full", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		addActivity(t, database, "code", "Work")
		addSession(t, database, "code", midnight.Add(9*time.Hour), at(midnight.Add(10*time.Hour+15*time.Minute)))

		stats, err := e.AggregateStats(ranges.Today(now))
		require.NoError(t, err)

		d := 75 * time.Minute
		assert.Equal(t, d, stats.Total)
		assert.Equal(t, []models.ActivityTotal{{ActivityID: "code", Duration: d}}, stats.Activities)
		assert.Equal(t, []models.CategoryTotal{{Category: "Work", Duration: d}}, stats.Categories)
		assert.Len(t, stats.Sessions, 1)
	})

	t.Run("session running past the range end is clipped", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		start := midnight.Add(14 * time.Hour)
		addSession(t, database, "code", start, at(midnight.Add(16*time.Hour)))

		r := models.DateRange{Start: midnight.Add(13 * time.Hour), End: now}
		stats, err := e.AggregateStats(r)
		require.NoError(t, err)
		assert.Equal(t, r.End.Sub(start), stats.Total)
	})

	t.Run("session starting at the range start and outlasting it counts the whole range", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		r := models.DateRange{Start: midnight.Add(8 * time.Hour), End: midnight.Add(9 * time.Hour)}
		addSession(t, database, "code", r.Start, at(midnight.Add(12*time.Hour)))

		stats, err := e.AggregateStats(r)
		require.NoError(t, err)
		assert.Equal(t, r.End.Sub(r.Start), stats.Total)
	})

	t.Run("sessions that started before the range are excluded", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		addSession(t, database, "code", midnight.Add(-time.Hour), at(midnight.Add(time.Hour)))

		stats, err := e.AggregateStats(ranges.Today(now))
		require.NoError(t, err)
		assert.Zero(t, stats.Total)
		assert.Empty(t, stats.Activities)
		assert.Empty(t, stats.Sessions)
	})

	t.Run("open session counts up to now", func(t *testing.T) {
		e, _, clk := setupEngine(t)
		_, err := e.StartActivity("code")
		require.NoError(t, err)
		clk.Advance(20 * time.Minute)

		stats, err := e.AggregateStats(ranges.Today(clk.Now()))
		require.NoError(t, err)
		assert.Equal(t, 20*time.Minute, stats.Total)
	})

	t.Run("orphans and uncategorized fall into Other", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		addActivity(t, database, "code", "Work")
		addActivity(t, database, "nap", "")
		addSession(t, database, "code", midnight.Add(1*time.Hour), at(midnight.Add(4*time.Hour)))
		addSession(t, database, "nap", midnight.Add(5*time.Hour), at(midnight.Add(6*time.Hour)))
		addSession(t, database, "deleted", midnight.Add(7*time.Hour), at(midnight.Add(9*time.Hour)))

		stats, err := e.AggregateStats(ranges.Today(now))
		require.NoError(t, err)

		assert.Equal(t, 6*time.Hour, stats.Total)
		assert.Equal(t, []models.ActivityTotal{
			{ActivityID: "code", Duration: 3 * time.Hour},
			{ActivityID: "deleted", Duration: 2 * time.Hour},
			{ActivityID: "nap", Duration: time.Hour},
		}, stats.Activities)
		assert.Equal(t, []models.CategoryTotal{
			{Category: DefaultCategory, Duration: 3 * time.Hour},
			{Category: "Work", Duration: 3 * time.Hour},
		}, stats.Categories)
	})

	t.Run("sessions come back newest first", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		a := addSession(t, database, "x", midnight.Add(1*time.Hour), at(midnight.Add(2*time.Hour)))
		b := addSession(t, database, "y", midnight.Add(3*time.Hour), at(midnight.Add(4*time.Hour)))
		c := addSession(t, database, "x", midnight.Add(5*time.Hour), at(midnight.Add(6*time.Hour)))

		stats, err := e.AggregateStats(ranges.Today(now))
		require.NoError(t, err)
		require.Len(t, stats.Sessions, 3)
		assert.Equal(t, []string{c.ID, b.ID, a.ID},
			[]string{stats.Sessions[0].ID, stats.Sessions[1].ID, stats.Sessions[2].ID})
	})

	t.Run("zero-length sessions are ignored", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		addSession(t, database, "x", midnight.Add(time.Hour), at(midnight.Add(time.Hour)))

		stats, err := e.AggregateStats(ranges.Today(now))
		require.NoError(t, err)
		assert.Zero(t, stats.Total)
		assert.Empty(t, stats.Sessions)
	})
}

func TestTodayComparison(t *testing.T) {
	t.Run("nil when nothing tracked today", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		addSession(t, database, "code", midnight.Add(-48*time.Hour), at(midnight.Add(-47*time.Hour)))

		result, err := e.TodayComparison()
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("top three against the flat 7 day average", func(t *testing.T) {
		e, database, _ := setupEngine(t)

		// Earlier this week
		addSession(t, database, "code", midnight.AddDate(0, 0, -6), at(midnight.AddDate(0, 0, -6).Add(7*time.Hour)))
		addSession(t, database, "gym", midnight.AddDate(0, 0, -2), at(midnight.AddDate(0, 0, -2).Add(time.Hour)))
		// Outside the 7 day window
		addSession(t, database, "code", midnight.AddDate(0, 0, -7), at(midnight.AddDate(0, 0, -7).Add(10*time.Hour)))

		// Today
		addSession(t, database, "code", midnight.Add(8*time.Hour), at(midnight.Add(11*time.Hour+30*time.Minute)))
		addSession(t, database, "gym", midnight.Add(12*time.Hour), at(midnight.Add(12*time.Hour+30*time.Minute)))
		addSession(t, database, "read", midnight.Add(13*time.Hour), at(midnight.Add(14*time.Hour)))
		addSession(t, database, "tv", midnight.Add(14*time.Hour), at(midnight.Add(14*time.Hour+10*time.Minute)))

		result, err := e.TodayComparison()
		require.NoError(t, err)
		require.Len(t, result, 3)

		codeWeek := 7*time.Hour + 3*time.Hour + 30*time.Minute
		assert.Equal(t, models.Comparison{
			ActivityID: "code",
			Today:      3*time.Hour + 30*time.Minute,
			Avg:        codeWeek / 7,
			Diff:       3*time.Hour + 30*time.Minute - codeWeek/7,
		}, result[0])

		assert.Equal(t, "read", result[1].ActivityID)
		assert.Equal(t, time.Hour, result[1].Today)
		assert.Equal(t, time.Hour/7, result[1].Avg)

		assert.Equal(t, "gym", result[2].ActivityID)
		assert.Equal(t, 30*time.Minute, result[2].Today)
		assert.Equal(t, 90*time.Minute/7, result[2].Avg)
		assert.Equal(t, 30*time.Minute-90*time.Minute/7, result[2].Diff)
	})
}

func TestOverlap(t *testing.T) {
	h := func(n int) time.Time { return midnight.Add(time.Duration(n) * time.Hour) }

	assert.Equal(t, time.Hour, overlap(h(1), h(2), h(0), h(5)))
	assert.Equal(t, time.Hour, overlap(h(0), h(5), h(1), h(2)))
	assert.Equal(t, 2*time.Hour, overlap(h(1), h(4), h(2), h(6)))
	assert.Zero(t, overlap(h(1), h(2), h(2), h(3)))
	assert.Zero(t, overlap(h(3), h(4), h(1), h(2)))
}
