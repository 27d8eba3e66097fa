package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/timeboard/internal/format"
	"github.com/tgienger/timeboard/internal/ui/styles"
)

// ReminderDialog renders the "still doing it?" prompt over the current screen
func ReminderDialog(label string, elapsed time.Duration, width, height int) string {
	s := styles.NewStyles()
	contentWidth := styles.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(fmt.Sprintf("Still doing %s?", label)),
		"",
		s.TitleMuted.Render("Running for "+format.Duration(elapsed)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Keep going "),
			"  ",
			s.Button.Render(" S - Switch "),
		),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Panel.Render(content),
	)
	return styles.CenterView(centered, width, height)
}
