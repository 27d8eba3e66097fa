// Package engine implements session tracking and time aggregation.
//
// The engine keeps no state of its own. Every operation reads from the
// Store, computes, and writes back. It relies on being driven by a single
// writer: nothing here guards against two StartActivity calls racing.
package engine

import (
	"fmt"
	"time"

	"github.com/tgienger/timeboard/internal/clock"
	"github.com/tgienger/timeboard/internal/logging"
	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/ranges"
)

// Store is the slice of the storage layer the engine needs
type Store interface {
	ListActivities() ([]models.Activity, error)

	ActiveSession() (*models.Session, error)
	CreateSession(s models.Session) (*models.Session, error)
	UpdateSession(id string, patch models.SessionPatch) error
	DeleteSession(id string) error
	DeleteLastSession() error
	DeleteSessionsSince(t time.Time) (int64, error)
	ListSessionsSince(t time.Time) ([]models.Session, error)
}

type Engine struct {
	store Store
	clock clock.Clock
	log   *logging.Logger
}

func New(store Store, clk clock.Clock, log *logging.Logger) *Engine {
	if clk == nil {
		clk = clock.System{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Engine{store: store, clock: clk, log: log}
}

// Now returns the engine's notion of the current time
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// StartActivity closes the open session, if any, and opens a new one for
// activityID. It always does both, even if activityID is already running.
func (e *Engine) StartActivity(activityID string) (*models.Session, error) {
	now := e.clock.Now()

	active, err := e.store.ActiveSession()
	if err != nil {
		return nil, fmt.Errorf("find active session: %w", err)
	}
	if active != nil {
		if err := e.store.UpdateSession(active.ID, models.SessionPatch{End: &now}); err != nil {
			return nil, fmt.Errorf("close session %s: %w", active.ID, err)
		}
	}

	session, err := e.store.CreateSession(models.Session{
		ActivityID: activityID,
		Start:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	e.log.Debugf("start_activity", "activity=%s session=%s", activityID, session.ID)
	return session, nil
}

// StopActiveSession closes the open session. No-op if nothing is running.
func (e *Engine) StopActiveSession() error {
	active, err := e.store.ActiveSession()
	if err != nil {
		return fmt.Errorf("find active session: %w", err)
	}
	if active == nil {
		return nil
	}

	now := e.clock.Now()
	if err := e.store.UpdateSession(active.ID, models.SessionPatch{End: &now}); err != nil {
		return fmt.Errorf("close session %s: %w", active.ID, err)
	}
	return nil
}

// DeleteLastSession removes the most recently started session, open or
// closed. The session it interrupted is not reopened.
func (e *Engine) DeleteLastSession() error {
	if err := e.store.DeleteLastSession(); err != nil {
		return fmt.Errorf("delete last session: %w", err)
	}
	return nil
}

// ClearTodaySessions deletes everything that started today. A session that
// started before midnight and is still open is cut off at midnight instead.
func (e *Engine) ClearTodaySessions() error {
	midnight := ranges.StartOfDay(e.clock.Now())

	active, err := e.store.ActiveSession()
	if err != nil {
		return fmt.Errorf("find active session: %w", err)
	}
	if active != nil && active.Start.Before(midnight) {
		if err := e.store.UpdateSession(active.ID, models.SessionPatch{End: &midnight}); err != nil {
			return fmt.Errorf("truncate session %s: %w", active.ID, err)
		}
	}

	deleted, err := e.store.DeleteSessionsSince(midnight)
	if err != nil {
		return fmt.Errorf("delete today's sessions: %w", err)
	}
	e.log.Infof("clear_today", "deleted=%d", deleted)

	// Only reachable if more than one session was open
	leftover, err := e.store.ActiveSession()
	if err != nil {
		return fmt.Errorf("find active session: %w", err)
	}
	if leftover != nil {
		e.log.Warnf("clear_today", "open session %s survived clear, deleting it", leftover.ID)
		if err := e.store.DeleteSession(leftover.ID); err != nil {
			return fmt.Errorf("delete leftover session %s: %w", leftover.ID, err)
		}
	}

	return nil
}

// Elapsed returns how long s has run, counting an open session up to now
func (e *Engine) Elapsed(s models.Session) time.Duration {
	return max(0, effectiveEnd(s, e.clock.Now()).Sub(s.Start))
}

func effectiveEnd(s models.Session, now time.Time) time.Time {
	if s.End != nil {
		return *s.End
	}
	return now
}
