package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/timeboard/internal/clock"
	"github.com/tgienger/timeboard/internal/db"
	"github.com/tgienger/timeboard/internal/models"
)

// 15:00 on a Saturday afternoon
var now = time.Date(2026, time.October, 3, 15, 0, 0, 0, time.Local)

var midnight = time.Date(2026, time.October, 3, 0, 0, 0, 0, time.Local)

func setupEngine(t *testing.T) (*Engine, *db.DB, *clock.Manual) {
	t.Helper()
	database, err := db.New(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	clk := clock.NewManual(now)
	return New(database, clk, nil), database, clk
}

func openCount(t *testing.T, database *db.DB) int {
	t.Helper()
	all, err := database.ListSessions()
	require.NoError(t, err)
	n := 0
	for _, s := range all {
		if s.IsOpen() {
			n++
		}
	}
	return n
}

func addSession(t *testing.T, database *db.DB, activityID string, start time.Time, end *time.Time) *models.Session {
	t.Helper()
	s, err := database.CreateSession(models.Session{ActivityID: activityID, Start: start, End: end})
	require.NoError(t, err)
	return s
}

func at(t time.Time) *time.Time { return &t }

func TestStartActivity(t *testing.T) {
	t.Run("switching closes the previous session", func(t *testing.T) {
		e, database, clk := setupEngine(t)

		first, err := e.StartActivity("A")
		require.NoError(t, err)

		clk.Advance(25 * time.Minute)
		t2 := clk.Now()
		second, err := e.StartActivity("B")
		require.NoError(t, err)

		all, err := database.ListSessions()
		require.NoError(t, err)
		require.Len(t, all, 2)

		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, "A", all[0].ActivityID)
		require.NotNil(t, all[0].End)
		assert.True(t, all[0].End.Equal(t2))

		assert.Equal(t, second.ID, all[1].ID)
		assert.Equal(t, "B", all[1].ActivityID)
		assert.True(t, all[1].Start.Equal(t2))
		assert.Nil(t, all[1].End)
	})

	t.Run("at most one open session after any sequence", func(t *testing.T) {
		e, database, clk := setupEngine(t)
		for _, id := range []string{"A", "B", "A", "A", "C", "B"} {
			_, err := e.StartActivity(id)
			require.NoError(t, err)
			assert.Equal(t, 1, openCount(t, database))
			clk.Advance(time.Minute)
		}
	})

	t.Run("same activity still closes and reopens", func(t *testing.T) {
		e, database, clk := setupEngine(t)
		_, err := e.StartActivity("A")
		require.NoError(t, err)
		clk.Advance(time.Minute)
		_, err = e.StartActivity("A")
		require.NoError(t, err)

		n, err := database.SessionCount()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, openCount(t, database))
	})
}

func TestStopActiveSession(t *testing.T) {
	e, database, clk := setupEngine(t)

	require.NoError(t, e.StopActiveSession(), "no-op when nothing is running")

	s, err := e.StartActivity("A")
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)
	require.NoError(t, e.StopActiveSession())

	active, err := database.ActiveSession()
	require.NoError(t, err)
	assert.Nil(t, active)

	got, err := database.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, e.Elapsed(*got))
}

func TestDeleteLastSession(t *testing.T) {
	t.Run("empty store is a no-op", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		require.NoError(t, e.DeleteLastSession())
		n, err := database.SessionCount()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("removes the open session without reopening the previous one", func(t *testing.T) {
		e, database, clk := setupEngine(t)
		first, err := e.StartActivity("A")
		require.NoError(t, err)
		clk.Advance(time.Minute)
		_, err = e.StartActivity("B")
		require.NoError(t, err)

		require.NoError(t, e.DeleteLastSession())

		all, err := database.ListSessions()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, first.ID, all[0].ID)
		assert.False(t, all[0].IsOpen())
	})
}

func TestClearTodaySessions(t *testing.T) {
	t.Run("truncates a session left open since yesterday", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		yesterday := addSession(t, database, "A", midnight.Add(-2*time.Hour), nil)

		require.NoError(t, e.ClearTodaySessions())

		got, err := database.GetSession(yesterday.ID)
		require.NoError(t, err)
		require.NotNil(t, got.End)
		assert.True(t, got.End.Equal(midnight))

		active, err := database.ActiveSession()
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("deletes today's sessions and keeps earlier ones", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		kept := addSession(t, database, "A", midnight.Add(-3*time.Hour), at(midnight.Add(-time.Hour)))
		addSession(t, database, "A", midnight, at(midnight.Add(time.Hour)))
		addSession(t, database, "B", midnight.Add(2*time.Hour), at(midnight.Add(3*time.Hour)))
		addSession(t, database, "C", midnight.Add(3*time.Hour), nil)

		require.NoError(t, e.ClearTodaySessions())

		all, err := database.ListSessions()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, kept.ID, all[0].ID)
	})

	t.Run("cleans up a second open session", func(t *testing.T) {
		e, database, _ := setupEngine(t)
		older := addSession(t, database, "A", midnight.Add(-5*time.Hour), nil)
		newer := addSession(t, database, "B", midnight.Add(-1*time.Hour), nil)

		require.NoError(t, e.ClearTodaySessions())

		got, err := database.GetSession(newer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.End.Equal(midnight))

		gone, err := database.GetSession(older.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		assert.Zero(t, openCount(t, database))
	})
}

type failingStore struct {
	Store
}

func (failingStore) ActiveSession() (*models.Session, error) {
	return nil, errors.New("database is locked")
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	e := New(failingStore{}, clock.NewManual(now), nil)

	_, err := e.StartActivity("A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find active session")
	assert.Contains(t, err.Error(), "database is locked")

	assert.Error(t, e.StopActiveSession())
	assert.Error(t, e.ClearTodaySessions())
}

func TestElapsed(t *testing.T) {
	e, _, _ := setupEngine(t)

	open := models.Session{Start: now.Add(-90 * time.Second)}
	assert.Equal(t, 90*time.Second, e.Elapsed(open))

	future := models.Session{Start: now.Add(time.Minute)}
	assert.Zero(t, e.Elapsed(future))
}
