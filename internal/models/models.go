package models

import "time"

// Activity is something the user can track time against
type Activity struct {
	ID       string
	Name     string
	Emoji    string
	Color    string // color tag, e.g. "blue"
	Order    int
	Category string // empty if uncategorized
}

// ActivityPatch holds the fields to change on an activity. Nil fields are left alone.
type ActivityPatch struct {
	Name     *string
	Emoji    *string
	Color    *string
	Order    *int
	Category *string
}

// Session is a single timed run of an activity
type Session struct {
	ID         string
	ActivityID string
	Start      time.Time
	End        *time.Time // nil while the session is open
}

// IsOpen reports whether tracking is still in progress
func (s Session) IsOpen() bool {
	return s.End == nil
}

// SessionPatch holds the fields to change on a session
type SessionPatch struct {
	ActivityID *string
	Start      *time.Time
	End        *time.Time
}

// Settings is the singleton application settings record
type Settings struct {
	AutoReminder     bool
	ReminderInterval time.Duration
}

// SettingsPatch is a partial settings update
type SettingsPatch struct {
	AutoReminder     *bool
	ReminderInterval *time.Duration
}

// DefaultReminderInterval is used until the user picks another one
const DefaultReminderInterval = time.Hour

// DefaultSettings returns the settings used when none have been saved
func DefaultSettings() Settings {
	return Settings{
		AutoReminder:     false,
		ReminderInterval: DefaultReminderInterval,
	}
}

// DateRange is a labelled [Start, End] window
type DateRange struct {
	Label string
	Start time.Time
	End   time.Time
}

// ActivityTotal is the time attributed to one activity in a range
type ActivityTotal struct {
	ActivityID string
	Duration   time.Duration
}

// CategoryTotal is the time attributed to one category in a range
type CategoryTotal struct {
	Category string
	Duration time.Duration
}

// Stats is the result of aggregating sessions over a range
type Stats struct {
	Range      DateRange
	Total      time.Duration
	Activities []ActivityTotal // descending duration
	Categories []CategoryTotal // descending duration
	Sessions   []Session       // descending start
}

// Comparison is today's time on an activity against its flat 7-day daily average
type Comparison struct {
	ActivityID string
	Today      time.Duration
	Avg        time.Duration
	Diff       time.Duration
}
