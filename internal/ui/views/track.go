package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tgienger/timeboard/internal/format"
	"github.com/tgienger/timeboard/internal/tracker"
	"github.com/tgienger/timeboard/internal/ui/keys"
	"github.com/tgienger/timeboard/internal/ui/styles"
)

// cellWidth is the inner width of one grid button; borders add two columns
const cellWidth = 16

// TrackView is the activity grid with the running timer
type TrackView struct {
	tracker *tracker.Tracker
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int
	cursor int
	status string

	showHelpPopup bool
}

func NewTrackView(t *tracker.Tracker) *TrackView {
	return &TrackView{
		tracker: t,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
	}
}

func (v *TrackView) Init() tea.Cmd {
	return nil
}

// Cursor returns the index of the highlighted activity
func (v *TrackView) Cursor() int {
	return v.cursor
}

func (v *TrackView) columns() int {
	return max(1, styles.ContentWidth(v.width)/(cellWidth+2))
}

func (v *TrackView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case Refresh:
		v.cursor = clamp(v.cursor, 0, max(0, len(v.tracker.Activities())-1))
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *TrackView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(v.tracker.Activities())
	cols := v.columns()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
	case key.Matches(msg, v.keys.Tab):
		return v, switchTo(TargetStats)
	case key.Matches(msg, v.keys.Settings):
		return v, switchTo(TargetSettings)
	case key.Matches(msg, v.keys.Edit):
		v.tracker.ToggleEditMode()
		return v, switchTo(TargetActivities)

	case key.Matches(msg, v.keys.Left):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Right):
		if v.cursor < n-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Up):
		if v.cursor-cols >= 0 {
			v.cursor -= cols
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor+cols < n {
			v.cursor += cols
		}

	case key.Matches(msg, v.keys.Enter):
		if v.cursor < n {
			v.setStatus(v.tracker.SelectActivity(v.tracker.Activities()[v.cursor].ID))
		}
	case key.Matches(msg, v.keys.Stop):
		v.setStatus(v.tracker.StopActive())
	case key.Matches(msg, v.keys.Undo):
		v.setStatus(v.tracker.DeleteLastSession())
	}
	return v, nil
}

func (v *TrackView) setStatus(err error) {
	if err != nil {
		v.status = "Something went wrong: " + err.Error()
		return
	}
	v.status = ""
}

func switchTo(target Target) tea.Cmd {
	return func() tea.Msg { return SwitchView{To: target} }
}

func (v *TrackView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	s := v.styles
	now := v.tracker.Now()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render("Timeboard"),
		"  ",
		s.TitleMuted.Render(now.Format("Mon, Jan 2")),
	)

	sections := []string{
		header,
		"",
		v.renderActive(),
		"",
		v.renderGrid(),
		v.renderHelp(),
	}
	if v.status != "" {
		sections = append(sections, s.Status.Render(v.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TrackView) renderActive() string {
	s := v.styles
	active := v.tracker.Active()
	if active == nil {
		return s.TitleMuted.Render("Not tracking. Pick an activity to start.")
	}

	label := tracker.UnknownActivity
	color := styles.Current.ForegroundDim
	if a, ok := v.tracker.ActiveActivity(); ok {
		label = activityLabel(a.Emoji, a.Name)
		color = styles.ActivityColor(a.Color)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(color).Render("● "),
		label,
		"  ",
		s.Timer.Render(format.DurationDetailed(v.tracker.Elapsed())),
		s.TitleMuted.Render(fmt.Sprintf("  since %s", format.Clock(active.Start))),
	)
}

func (v *TrackView) renderGrid() string {
	s := v.styles
	activities := v.tracker.Activities()
	if len(activities) == 0 {
		return s.TitleMuted.Render("No activities yet. Press 'e' to add some.")
	}

	var activeID string
	if active := v.tracker.Active(); active != nil {
		activeID = active.ActivityID
	}

	cols := v.columns()
	var rows []string
	var row []string
	for i, a := range activities {
		label := runewidth.Truncate(activityLabel(a.Emoji, a.Name), cellWidth-2, "…")

		var style lipgloss.Style
		switch {
		case a.ID == activeID:
			style = s.CellActive.Background(styles.ActivityColor(a.Color)).BorderForeground(styles.ActivityColor(a.Color))
		case i == v.cursor:
			style = s.CellSelected
		default:
			style = s.Cell
		}
		if a.ID == activeID && i == v.cursor {
			style = style.BorderForeground(styles.Current.BorderFocus)
		}

		row = append(row, style.Width(cellWidth).Render(label))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TrackView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return helpLine(v.styles,
		"↵", "track",
		"s", "stop",
		"u", "undo",
		"e", "edit",
		",", "settings",
		"tab", "stats",
		"q", "quit",
	)
}

func (v *TrackView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      start tracking the selected activity",
		s.HelpKey.Render("s") + "      stop tracking",
		s.HelpKey.Render("u") + "      undo the last session",
		s.HelpKey.Render("e") + "      edit activities",
		s.HelpKey.Render(",") + "      settings",
		s.HelpKey.Render("tab") + "    stats",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Panel.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
