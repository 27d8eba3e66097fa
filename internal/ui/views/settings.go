package views

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/tracker"
	"github.com/tgienger/timeboard/internal/ui/keys"
	"github.com/tgienger/timeboard/internal/ui/styles"
)

// IntervalPresets are the reminder intervals offered in settings
var IntervalPresets = []time.Duration{
	30 * time.Minute,
	time.Hour,
	2 * time.Hour,
	3 * time.Hour,
}

const (
	rowReminder = iota
	rowInterval
	rowClear
	rowCount
)

// SettingsView edits reminder settings and clears today's sessions
type SettingsView struct {
	tracker *tracker.Tracker
	styles  *styles.Styles
	keys    keys.KeyMap

	width           int
	height          int
	cursor          int
	confirmingClear bool
	status          string
}

func NewSettingsView(t *tracker.Tracker) *SettingsView {
	return &SettingsView{
		tracker: t,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
	}
}

func (v *SettingsView) Init() tea.Cmd {
	return nil
}

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case Refresh:
		v.confirmingClear = false
		return v, nil

	case tea.KeyMsg:
		if v.confirmingClear {
			return v.updateConfirmClear(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Settings):
			return v, switchTo(TargetTrack)
		case key.Matches(msg, v.keys.Up):
			v.cursor = (v.cursor + rowCount - 1) % rowCount
		case key.Matches(msg, v.keys.Down), key.Matches(msg, v.keys.Tab):
			v.cursor = (v.cursor + 1) % rowCount
		case key.Matches(msg, v.keys.Left):
			if v.cursor == rowInterval {
				v.shiftInterval(-1)
			}
		case key.Matches(msg, v.keys.Right):
			if v.cursor == rowInterval {
				v.shiftInterval(1)
			}
		case key.Matches(msg, v.keys.Enter):
			switch v.cursor {
			case rowReminder:
				enabled := !v.tracker.Settings().AutoReminder
				v.setStatus(v.tracker.UpdateSettings(models.SettingsPatch{AutoReminder: &enabled}))
			case rowInterval:
				v.shiftInterval(1)
			case rowClear:
				v.confirmingClear = true
			}
		}
	}
	return v, nil
}

func (v *SettingsView) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingClear = false
		v.setStatus(v.tracker.ClearToday())
		return v, nil
	case "n", "N", "esc":
		v.confirmingClear = false
	}
	return v, nil
}

// shiftInterval steps through the presets, wrapping at either end. A saved
// interval that is not a preset starts from the first one.
func (v *SettingsView) shiftInterval(delta int) {
	idx := slices.Index(IntervalPresets, v.tracker.Settings().ReminderInterval)
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + delta + len(IntervalPresets)) % len(IntervalPresets)
	}
	interval := IntervalPresets[idx]
	v.setStatus(v.tracker.UpdateSettings(models.SettingsPatch{ReminderInterval: &interval}))
}

// presetLabel renders "30m" or "2h"
func presetLabel(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", d/time.Hour)
	}
	return fmt.Sprintf("%dm", d/time.Minute)
}

func (v *SettingsView) setStatus(err error) {
	if err != nil {
		v.status = "Could not save: " + err.Error()
		return
	}
	v.status = ""
}

func (v *SettingsView) View() string {
	s := v.styles
	if v.confirmingClear {
		return confirmDialog(s, "Clear Today?",
			"Every session tracked since midnight will be deleted.",
			v.width, v.height)
	}

	settings := v.tracker.Settings()

	toggle := "Off"
	if settings.AutoReminder {
		toggle = "On"
	}

	var presets []string
	for _, p := range IntervalPresets {
		if p == settings.ReminderInterval {
			presets = append(presets, s.TabFocus.Render(presetLabel(p)))
		} else {
			presets = append(presets, s.Tab.Render(presetLabel(p)))
		}
	}

	rows := []string{
		"Auto reminder   " + toggle,
		"Interval        " + lipgloss.JoinHorizontal(lipgloss.Top, presets...),
		"Clear today's sessions",
	}
	for i := range rows {
		if i == v.cursor {
			rows[i] = s.ListSelected.Render(rows[i])
		} else {
			rows[i] = s.ListItem.Render(rows[i])
		}
	}

	sections := []string{
		s.Title.Render("Settings"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		helpLine(s,
			"↑/↓", "move",
			"↵", "toggle",
			"←/→", "interval",
			"esc", "back",
		),
	}
	if v.status != "" {
		sections = append(sections, s.Status.Render(v.status))
	}

	content := s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.CenterView(content, v.width, v.height)
}
