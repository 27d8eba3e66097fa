package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tgienger/timeboard/internal/engine"
	"github.com/tgienger/timeboard/internal/format"
	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/ranges"
	"github.com/tgienger/timeboard/internal/tracker"
	"github.com/tgienger/timeboard/internal/ui/keys"
	"github.com/tgienger/timeboard/internal/ui/styles"
)

const (
	labelWidth = 18
	stripWidth = 48
)

// StatsView shows totals for a range as an overview or a timeline
type StatsView struct {
	tracker *tracker.Tracker
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	rangeLabel string
	timeline   bool
	byCategory bool
	scroll     int

	comparison []models.Comparison
	status     string
}

func NewStatsView(t *tracker.Tracker) *StatsView {
	return &StatsView{
		tracker:    t,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		rangeLabel: ranges.LabelToday,
	}
}

func (v *StatsView) Init() tea.Cmd {
	return nil
}

// RangeLabel returns the label of the selected range
func (v *StatsView) RangeLabel() string {
	return v.rangeLabel
}

// reload recomputes stats for the selected range against the current time
func (v *StatsView) reload() {
	now := v.tracker.Now()
	if _, err := v.tracker.LoadStats(ranges.ByLabel(v.rangeLabel, now)); err != nil {
		v.status = "Could not load stats: " + err.Error()
		return
	}

	v.comparison = nil
	if v.rangeLabel == ranges.LabelToday {
		comparison, err := v.tracker.Comparison()
		if err != nil {
			v.status = "Could not load comparison: " + err.Error()
			return
		}
		v.comparison = comparison
	}
	v.status = ""
}

func (v *StatsView) shiftRange(delta int) {
	all := ranges.All(v.tracker.Now())
	idx := 0
	for i, r := range all {
		if r.Label == v.rangeLabel {
			idx = i
		}
	}
	idx = clamp(idx+delta, 0, len(all)-1)
	if all[idx].Label == v.rangeLabel {
		return
	}
	v.rangeLabel = all[idx].Label
	v.scroll = 0
	v.reload()
}

func (v *StatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case Refresh:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.ShiftTab), key.Matches(msg, v.keys.Back):
			return v, switchTo(TargetTrack)
		case key.Matches(msg, v.keys.Left):
			v.shiftRange(-1)
		case key.Matches(msg, v.keys.Right):
			v.shiftRange(1)
		case key.Matches(msg, v.keys.ViewMode):
			v.timeline = !v.timeline
			v.scroll = 0
		case key.Matches(msg, v.keys.AggregateMode):
			v.byCategory = !v.byCategory
		case key.Matches(msg, v.keys.Up):
			if v.scroll > 0 {
				v.scroll--
			}
		case key.Matches(msg, v.keys.Down):
			v.scroll++
		}
	}
	return v, nil
}

func (v *StatsView) View() string {
	s := v.styles
	stats := v.tracker.Stats()

	var body []string
	switch {
	case stats == nil || len(stats.Sessions) == 0:
		body = []string{s.TitleMuted.Render("Nothing tracked in this range.")}
	case v.timeline:
		body = v.timelineLines(stats)
	default:
		body = v.overviewLines(stats)
	}

	// header takes 4 lines, help and status take 3
	visible := max(1, v.height-7)
	v.scroll = clamp(v.scroll, 0, max(0, len(body)-visible))
	end := min(len(body), v.scroll+visible)
	if v.height == 0 {
		end = len(body)
	}

	sections := []string{
		v.renderTabs(),
		v.renderModes(stats),
		"",
		strings.Join(body[v.scroll:end], "\n"),
		v.renderHelp(),
	}
	if v.status != "" {
		sections = append(sections, s.Status.Render(v.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *StatsView) renderTabs() string {
	var tabs []string
	for _, r := range ranges.All(v.tracker.Now()) {
		if r.Label == v.rangeLabel {
			tabs = append(tabs, v.styles.TabFocus.Render(r.Label))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(r.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *StatsView) renderModes(stats *models.Stats) string {
	s := v.styles
	mode := "Overview"
	if v.timeline {
		mode = "Timeline"
	}
	group := "by activity"
	if v.byCategory {
		group = "by category"
	}

	total := time.Duration(0)
	if stats != nil {
		total = stats.Total
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render("Total "+format.Duration(total)),
		s.TitleMuted.Render(fmt.Sprintf("  %s · %s", mode, group)),
	)
}

func (v *StatsView) overviewLines(stats *models.Stats) []string {
	s := v.styles
	barWidth := max(10, styles.ContentWidth(v.width)-labelWidth-20)

	var lines []string
	if v.byCategory {
		for i, c := range stats.Categories {
			color := styles.ActivityColor(styles.Palette[i%len(styles.Palette)])
			lines = append(lines, v.totalLine(c.Category, c.Duration, stats.Total, color, barWidth))
		}
	} else {
		for _, a := range stats.Activities {
			label, color := v.activityDisplay(a.ActivityID)
			lines = append(lines, v.totalLine(label, a.Duration, stats.Total, color, barWidth))
		}
	}

	if stats.Range.Label == ranges.LabelToday {
		lines = append(lines, "", s.Title.Render("Today"), v.dayStrip(stats))
	}

	if len(v.comparison) > 0 {
		lines = append(lines, "", s.Title.Render("Today vs 7D avg"))
		for _, c := range v.comparison {
			label, _ := v.activityDisplay(c.ActivityID)
			lines = append(lines, fmt.Sprintf("%s %8s  avg %-8s %s",
				pad(label, labelWidth),
				format.Duration(c.Today),
				format.Duration(c.Avg),
				v.diff(c.Diff),
			))
		}
	}
	return lines
}

func (v *StatsView) totalLine(label string, d, total time.Duration, color lipgloss.Color, barWidth int) string {
	fraction := 0.0
	if total > 0 {
		fraction = float64(d) / float64(total)
	}
	return fmt.Sprintf("%s %s %3d%% %s",
		pad(label, labelWidth),
		bar(fraction, barWidth, color),
		int(math.Round(fraction*100)),
		format.Duration(d),
	)
}

func (v *StatsView) diff(d time.Duration) string {
	switch {
	case d > 0:
		return v.styles.Up.Render("↑ " + format.Duration(d))
	case d < 0:
		return v.styles.Down.Render("↓ " + format.Duration(-d))
	}
	return v.styles.TitleMuted.Render("=")
}

// dayStrip draws today's sessions on a 24h bar
func (v *StatsView) dayStrip(stats *models.Stats) string {
	now := v.tracker.Now()
	cells := make([]string, stripWidth)
	for i := range cells {
		cells[i] = v.styles.TitleMuted.Render("·")
	}

	for _, seg := range engine.DayStrip(stats.Sessions, now, now) {
		_, color := v.activityDisplay(seg.ActivityID)
		from := int(seg.From * stripWidth)
		to := max(from+1, int(math.Ceil(seg.To*stripWidth)))
		for i := from; i < min(to, stripWidth); i++ {
			cells[i] = lipgloss.NewStyle().Foreground(color).Render("█")
		}
	}

	quarter := stripWidth / 4
	axis := fmt.Sprintf("%-*s%-*s%-*s%-*s24", quarter, "0", quarter, "6", quarter, "12", quarter, "18")
	return strings.Join(cells, "") + "\n" + v.styles.TitleMuted.Render(axis)
}

func (v *StatsView) timelineLines(stats *models.Stats) []string {
	s := v.styles
	var lines []string
	for i, group := range engine.GroupByDay(stats.Sessions) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, s.Title.Render(format.Date(group.Day)))

		for _, session := range group.Sessions {
			end := "now"
			if session.End != nil {
				end = format.Clock(*session.End)
			}
			label, color := v.activityDisplay(session.ActivityID)
			lines = append(lines, fmt.Sprintf("  %s %s–%-5s %s %s",
				lipgloss.NewStyle().Foreground(color).Render("▌"),
				format.Clock(session.Start),
				end,
				pad(label, labelWidth),
				s.TitleMuted.Render(format.Duration(v.tracker.SessionElapsed(session))),
			))
		}
	}
	return lines
}

// activityDisplay returns the label and color for an activity id, falling
// back to "Unknown" for deleted activities
func (v *StatsView) activityDisplay(id string) (string, lipgloss.Color) {
	if a, ok := v.tracker.Activity(id); ok {
		return activityLabel(a.Emoji, a.Name), styles.ActivityColor(a.Color)
	}
	return tracker.UnknownActivity, styles.Current.ForegroundDim
}

func (v *StatsView) renderHelp() string {
	return helpLine(v.styles,
		"←/→", "range",
		"v", "overview/timeline",
		"c", "activity/category",
		"tab", "track",
	)
}

func bar(fraction float64, width int, color lipgloss.Color) string {
	filled := clamp(int(math.Round(fraction*float64(width))), 0, width)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Current.Border).Render(strings.Repeat("░", width-filled))
}

// pad truncates or right-pads s to exactly width cells
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
