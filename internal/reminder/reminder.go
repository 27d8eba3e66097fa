// Package reminder decides when to ask the user whether they are still doing
// the activity being tracked. It only reads state; it never touches sessions.
package reminder

import (
	"time"

	"github.com/tgienger/timeboard/internal/models"
)

// Reminder tracks prompt state for the current open session
type Reminder struct {
	sessionID   string
	lastConfirm time.Time
	showing     bool
}

func New() *Reminder {
	return &Reminder{}
}

// Check reports whether a prompt should be raised now. It returns true once
// per interval: after the prompt is raised it stays quiet until Confirm.
func (r *Reminder) Check(now time.Time, active *models.Session, settings models.Settings) bool {
	if !settings.AutoReminder || active == nil || settings.ReminderInterval <= 0 {
		r.showing = false
		return false
	}

	if active.ID != r.sessionID {
		r.sessionID = active.ID
		r.lastConfirm = time.Time{}
		r.showing = false
	}

	if r.showing {
		return false
	}

	since := active.Start
	if !r.lastConfirm.IsZero() {
		since = r.lastConfirm
	}
	if now.Sub(since) >= settings.ReminderInterval {
		r.showing = true
		return true
	}
	return false
}

// Showing reports whether a prompt is currently raised
func (r *Reminder) Showing() bool {
	return r.showing
}

// Confirm dismisses the prompt and restarts the countdown from now
func (r *Reminder) Confirm(now time.Time) {
	r.lastConfirm = now
	r.showing = false
}
