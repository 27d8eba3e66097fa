// Package tracker holds the state the UI renders from and turns user actions
// into engine and storage calls. A failed action is logged and returned, and
// the state from before the action is kept.
package tracker

import (
	"slices"
	"time"

	"github.com/tgienger/timeboard/internal/engine"
	"github.com/tgienger/timeboard/internal/logging"
	"github.com/tgienger/timeboard/internal/models"
)

// UnknownActivity is shown for sessions whose activity has been deleted
const UnknownActivity = "Unknown"

// Store is everything the tracker needs from storage
type Store interface {
	engine.Store

	CreateActivity(a models.Activity) (*models.Activity, error)
	UpdateActivity(id string, patch models.ActivityPatch) error
	DeleteActivity(id string) error
	SaveActivities(activities []models.Activity) error
	SeedActivities() (bool, error)

	GetSettings() (models.Settings, error)
	SaveSettings(patch models.SettingsPatch) (models.Settings, error)
}

type Tracker struct {
	store  Store
	engine *engine.Engine
	log    *logging.Logger

	activities []models.Activity
	active     *models.Session
	settings   models.Settings
	stats      *models.Stats
	editMode   bool
}

func New(store Store, eng *engine.Engine, log *logging.Logger) *Tracker {
	if log == nil {
		log = logging.Discard()
	}
	return &Tracker{
		store:    store,
		engine:   eng,
		log:      log,
		settings: models.DefaultSettings(),
	}
}

// Initialize loads activities, the open session and settings. With seed set,
// an empty database gets the default activities first.
func (t *Tracker) Initialize(seed bool) error {
	if seed {
		seeded, err := t.store.SeedActivities()
		if err != nil {
			t.log.Error("initialize", err)
			return err
		}
		if seeded {
			t.log.Infof("initialize", "seeded default activities")
		}
	}

	activities, err := t.store.ListActivities()
	if err != nil {
		t.log.Error("initialize", err)
		return err
	}
	active, err := t.store.ActiveSession()
	if err != nil {
		t.log.Error("initialize", err)
		return err
	}
	settings, err := t.store.GetSettings()
	if err != nil {
		t.log.Error("initialize", err)
		return err
	}

	t.activities = activities
	t.active = active
	t.settings = settings
	return nil
}

func (t *Tracker) Activities() []models.Activity { return t.activities }
func (t *Tracker) Active() *models.Session       { return t.active }
func (t *Tracker) Settings() models.Settings     { return t.settings }
func (t *Tracker) Stats() *models.Stats          { return t.stats }
func (t *Tracker) EditMode() bool                { return t.editMode }
func (t *Tracker) Now() time.Time                { return t.engine.Now() }

// Activity looks up a loaded activity by ID
func (t *Tracker) Activity(id string) (models.Activity, bool) {
	i := slices.IndexFunc(t.activities, func(a models.Activity) bool { return a.ID == id })
	if i < 0 {
		return models.Activity{}, false
	}
	return t.activities[i], true
}

// ActivityName returns the display name for id, or "Unknown" if it was deleted
func (t *Tracker) ActivityName(id string) string {
	if a, ok := t.Activity(id); ok {
		return a.Name
	}
	return UnknownActivity
}

// ActiveActivity returns the activity being tracked, if any
func (t *Tracker) ActiveActivity() (models.Activity, bool) {
	if t.active == nil {
		return models.Activity{}, false
	}
	return t.Activity(t.active.ActivityID)
}

// Elapsed returns how long the open session has been running
func (t *Tracker) Elapsed() time.Duration {
	if t.active == nil {
		return 0
	}
	return t.engine.Elapsed(*t.active)
}

// SessionElapsed returns how long s ran, counting an open session up to now
func (t *Tracker) SessionElapsed(s models.Session) time.Duration {
	return t.engine.Elapsed(s)
}

func (t *Tracker) ToggleEditMode() {
	t.editMode = !t.editMode
}

// SelectActivity starts tracking id. Ignored in edit mode or when id is
// already the running activity.
func (t *Tracker) SelectActivity(id string) error {
	if t.editMode {
		return nil
	}
	if t.active != nil && t.active.ActivityID == id {
		return nil
	}

	session, err := t.engine.StartActivity(id)
	if err != nil {
		t.log.Error("select_activity", err)
		return err
	}
	t.active = session
	return nil
}

// StopActive ends the running session
func (t *Tracker) StopActive() error {
	if err := t.engine.StopActiveSession(); err != nil {
		t.log.Error("stop_active", err)
		return err
	}
	t.active = nil
	return nil
}

// DeleteLastSession undoes the most recent session
func (t *Tracker) DeleteLastSession() error {
	if err := t.engine.DeleteLastSession(); err != nil {
		t.log.Error("delete_last_session", err)
		return err
	}
	return t.refreshActive("delete_last_session")
}

// ClearToday removes everything tracked since midnight
func (t *Tracker) ClearToday() error {
	if err := t.engine.ClearTodaySessions(); err != nil {
		t.log.Error("clear_today", err)
		return err
	}
	return t.refreshActive("clear_today")
}

func (t *Tracker) refreshActive(operation string) error {
	active, err := t.store.ActiveSession()
	if err != nil {
		t.log.Error(operation, err)
		return err
	}
	t.active = active
	return nil
}

// LoadStats aggregates r and keeps the result for rendering
func (t *Tracker) LoadStats(r models.DateRange) (*models.Stats, error) {
	stats, err := t.engine.AggregateStats(r)
	if err != nil {
		t.log.Error("load_stats", err)
		return nil, err
	}
	t.stats = stats
	return stats, nil
}

// Comparison returns today's top activities against their 7 day average
func (t *Tracker) Comparison() ([]models.Comparison, error) {
	result, err := t.engine.TodayComparison()
	if err != nil {
		t.log.Error("today_comparison", err)
		return nil, err
	}
	return result, nil
}

// UpdateSettings saves a partial settings change
func (t *Tracker) UpdateSettings(patch models.SettingsPatch) error {
	settings, err := t.store.SaveSettings(patch)
	if err != nil {
		t.log.Error("update_settings", err)
		return err
	}
	t.settings = settings
	return nil
}
