package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/timeboard/internal/logging"
	"github.com/tgienger/timeboard/internal/reminder"
	"github.com/tgienger/timeboard/internal/tracker"
	"github.com/tgienger/timeboard/internal/ui/views"
)

// ReminderTick asks the app to check whether a reminder is due. It is sent
// from outside the program by the reminder ticker.
type ReminderTick struct{}

// tickMsg redraws the running timer
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type App struct {
	tracker  *tracker.Tracker
	reminder *reminder.Reminder
	log      *logging.Logger

	currentView views.Target
	track       *views.TrackView
	stats       *views.StatsView
	activities  *views.ActivitiesView
	settings    *views.SettingsView

	width  int
	height int
}

// NewApp creates the application around an initialized tracker
func NewApp(t *tracker.Tracker, log *logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		tracker:     t,
		reminder:    reminder.New(),
		log:         log,
		currentView: views.TargetTrack,
		track:       views.NewTrackView(t),
		stats:       views.NewStatsView(t),
		activities:  views.NewActivitiesView(t),
		settings:    views.NewSettingsView(t),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.track.Init(), tick())
}

// CurrentView returns the screen being shown
func (a *App) CurrentView() views.Target {
	return a.currentView
}

// ReminderShowing reports whether the reminder prompt is up
func (a *App) ReminderShowing() bool {
	return a.reminder.Showing()
}

func (a *App) view(target views.Target) tea.Model {
	switch target {
	case views.TargetStats:
		return a.stats
	case views.TargetActivities:
		return a.activities
	case views.TargetSettings:
		return a.settings
	}
	return a.track
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every view keeps its own size so switching never renders stale layout
		for _, v := range []tea.Model{a.track, a.stats, a.activities, a.settings} {
			v.Update(msg)
		}
		return a, nil

	case tickMsg:
		return a, tick()

	case ReminderTick:
		if a.reminder.Check(a.tracker.Now(), a.tracker.Active(), a.tracker.Settings()) {
			a.log.Debugf("reminder", "prompting for session %s", a.tracker.Active().ID)
		}
		return a, nil

	case views.SwitchView:
		a.currentView = msg.To
		_, cmd := a.view(msg.To).Update(views.Refresh{})
		return a, cmd

	case tea.KeyMsg:
		if a.reminder.Showing() {
			return a.updateReminder(msg)
		}
	}

	_, cmd := a.view(a.currentView).Update(msg)
	return a, cmd
}

func (a *App) updateReminder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "y", "Y", "enter", "esc":
		a.reminder.Confirm(a.tracker.Now())
	case "s", "S":
		a.reminder.Confirm(a.tracker.Now())
		a.currentView = views.TargetTrack
		_, cmd := a.track.Update(views.Refresh{})
		return a, cmd
	}
	return a, nil
}

func (a *App) View() string {
	if a.reminder.Showing() {
		label := tracker.UnknownActivity
		if activity, ok := a.tracker.ActiveActivity(); ok {
			label = activity.Name
		}
		return views.ReminderDialog(label, a.tracker.Elapsed(), a.width, a.height)
	}
	return a.view(a.currentView).View()
}
