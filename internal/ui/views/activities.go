package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/tracker"
	"github.com/tgienger/timeboard/internal/ui/keys"
	"github.com/tgienger/timeboard/internal/ui/styles"
)

type activityItem struct {
	activity models.Activity
}

func (i activityItem) Title() string       { return activityLabel(i.activity.Emoji, i.activity.Name) }
func (i activityItem) Description() string { return i.activity.Category }
func (i activityItem) FilterValue() string { return i.activity.Name }

type activityDelegate struct {
	styles *styles.Styles
	width  int
}

func (d activityDelegate) Height() int                               { return 1 }
func (d activityDelegate) Spacing() int                              { return 0 }
func (d activityDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d activityDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	a, ok := item.(activityItem)
	if !ok {
		return
	}

	width := max(d.width-4, 20)
	style := d.styles.ListItem
	if index == m.Index() {
		style = d.styles.ListSelected
	}

	swatch := lipgloss.NewStyle().Foreground(styles.ActivityColor(a.activity.Color)).Render("●")
	category := a.Description()
	if category == "" {
		category = "-"
	}
	line := fmt.Sprintf("%2d %s %s", a.activity.Order, swatch, pad(a.Title(), labelWidth+4))
	fmt.Fprint(w, style.Width(width).Render(line+"  "+d.styles.TitleMuted.Render(category)))
}

// Form field positions
const (
	fieldName = iota
	fieldEmoji
	fieldColor
	fieldCategory
	fieldSave
	fieldCount
)

// ActivitiesView lists activities for editing
type ActivitiesView struct {
	tracker  *tracker.Tracker
	list     list.Model
	delegate *activityDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	status   string

	editing          bool
	editID           string // empty while creating
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	nameInput     textinput.Model
	emojiInput    textinput.Model
	categoryInput textinput.Model
	colorIdx      int
	focusIdx      int

	showHelpPopup bool
}

func NewActivitiesView(t *tracker.Tracker) *ActivitiesView {
	s := styles.NewStyles()

	nameInput := textinput.New()
	nameInput.Placeholder = "Activity name"
	nameInput.CharLimit = 40

	emojiInput := textinput.New()
	emojiInput.Placeholder = "Emoji (optional)"
	emojiInput.CharLimit = 8

	categoryInput := textinput.New()
	categoryInput.Placeholder = "Category (optional)"
	categoryInput.CharLimit = 40

	delegate := &activityDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Activities"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &ActivitiesView{
		tracker:       t,
		list:          l,
		delegate:      delegate,
		styles:        s,
		keys:          keys.DefaultKeyMap(),
		nameInput:     nameInput,
		emojiInput:    emojiInput,
		categoryInput: categoryInput,
	}
	v.syncItems()
	return v
}

func (v *ActivitiesView) Init() tea.Cmd {
	return nil
}

// syncItems copies the tracker's activities into the list
func (v *ActivitiesView) syncItems() {
	activities := v.tracker.Activities()
	items := make([]list.Item, len(activities))
	for i, a := range activities {
		items[i] = activityItem{activity: a}
	}
	v.list.SetItems(items)
}

// leave turns edit mode off and returns to the grid
func (v *ActivitiesView) leave() tea.Cmd {
	if v.tracker.EditMode() {
		v.tracker.ToggleEditMode()
	}
	return switchTo(TargetTrack)
}

func (v *ActivitiesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case Refresh:
		v.syncItems()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Edit):
			return v, v.leave()
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.New):
			v.startForm(models.Activity{Color: styles.Palette[0]})
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(activityItem); ok {
				v.startForm(item.activity)
				return v, textinput.Blink
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(activityItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.activity.ID
				v.deleteTargetName = item.activity.Name
				return v, nil
			}
		case key.Matches(msg, v.keys.MoveUp):
			v.move(-1)
			return v, nil
		case key.Matches(msg, v.keys.MoveDown):
			v.move(1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ActivitiesView) move(delta int) {
	idx := v.list.Index()
	if err := v.tracker.Move(idx, delta); err != nil {
		v.status = "Could not reorder: " + err.Error()
		return
	}
	v.status = ""
	v.syncItems()
	v.list.Select(clamp(idx+delta, 0, len(v.list.Items())-1))
}

func (v *ActivitiesView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.tracker.DeleteActivity(v.deleteTargetID); err != nil {
			v.status = "Could not delete: " + err.Error()
			return v, nil
		}
		v.status = ""
		v.syncItems()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ActivitiesView) startForm(a models.Activity) {
	v.editing = true
	v.editID = a.ID
	v.focusIdx = fieldName
	v.nameInput.SetValue(a.Name)
	v.emojiInput.SetValue(a.Emoji)
	v.categoryInput.SetValue(a.Category)
	v.colorIdx = 0
	for i, c := range styles.Palette {
		if c == a.Color {
			v.colorIdx = i
		}
	}
	v.updateFocus()
}

func (v *ActivitiesView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		v.status = ""
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.save()

	case key.Matches(msg, v.keys.ShiftTab):
		v.focusIdx = (v.focusIdx + fieldCount - 1) % fieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % fieldCount
		v.updateFocus()
		return v, nil

	case v.focusIdx == fieldColor && (msg.String() == "left" || msg.String() == "h"):
		v.colorIdx = (v.colorIdx + len(styles.Palette) - 1) % len(styles.Palette)
		return v, nil

	case v.focusIdx == fieldColor && (msg.String() == "right" || msg.String() == "l"):
		v.colorIdx = (v.colorIdx + 1) % len(styles.Palette)
		return v, nil

	case msg.String() == "enter":
		if v.focusIdx == fieldSave {
			return v, v.save()
		}
		v.focusIdx++
		v.updateFocus()
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case fieldName:
		v.nameInput, cmd = v.nameInput.Update(msg)
	case fieldEmoji:
		v.emojiInput, cmd = v.emojiInput.Update(msg)
	case fieldCategory:
		v.categoryInput, cmd = v.categoryInput.Update(msg)
	}
	return v, cmd
}

func (v *ActivitiesView) updateFocus() {
	v.nameInput.Blur()
	v.emojiInput.Blur()
	v.categoryInput.Blur()
	switch v.focusIdx {
	case fieldName:
		v.nameInput.Focus()
	case fieldEmoji:
		v.emojiInput.Focus()
	case fieldCategory:
		v.categoryInput.Focus()
	}
}

// save creates or updates the activity in the form
func (v *ActivitiesView) save() tea.Cmd {
	name := strings.TrimSpace(v.nameInput.Value())
	if name == "" {
		v.status = "Name is required"
		return nil
	}
	emoji := strings.TrimSpace(v.emojiInput.Value())
	category := strings.TrimSpace(v.categoryInput.Value())
	color := styles.Palette[v.colorIdx]

	var err error
	if v.editID == "" {
		_, err = v.tracker.AddActivity(models.Activity{
			Name:     name,
			Emoji:    emoji,
			Color:    color,
			Category: category,
		})
	} else {
		err = v.tracker.UpdateActivity(v.editID, models.ActivityPatch{
			Name:     &name,
			Emoji:    &emoji,
			Color:    &color,
			Category: &category,
		})
	}
	if err != nil {
		v.status = "Could not save: " + err.Error()
		return nil
	}

	v.status = ""
	v.editing = false
	v.syncItems()
	if v.editID == "" {
		v.list.Select(len(v.list.Items()) - 1)
	}
	return nil
}

func (v *ActivitiesView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return confirmDialog(v.styles, "Delete Activity?",
			fmt.Sprintf("\"%s\" will be removed. Tracked time is kept.", v.deleteTargetName),
			v.width, v.height)
	}

	if v.editing {
		return v.renderForm()
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	if v.status != "" {
		content += "\n" + v.styles.Status.Render(v.status)
	}
	return styles.CenterView(content, v.width, v.height)
}

func (v *ActivitiesView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Activities"),
		"",
		s.TitleMuted.Render("Press 'n' to add your first activity"),
		"",
		s.ButtonPrimary.Render(" New Activity "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ActivitiesView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	inputStyles := make([]lipgloss.Style, fieldCount)
	for i := range inputStyles {
		inputStyles[i] = s.Input
	}
	btnStyle := s.Button
	if v.focusIdx == fieldSave {
		btnStyle = s.ButtonFocused
	} else {
		inputStyles[v.focusIdx] = s.InputFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	var swatches []string
	for i, c := range styles.Palette {
		mark := "○"
		if i == v.colorIdx {
			mark = "●"
		}
		swatches = append(swatches, lipgloss.NewStyle().Foreground(styles.ActivityColor(c)).Render(mark))
	}
	colorRow := strings.Join(swatches, " ") + "  " + styles.Palette[v.colorIdx]

	title := "New Activity"
	if v.editID != "" {
		title = "Edit Activity"
	}

	sections := []string{
		s.Title.Render(title),
		"",
		"Name:",
		inputStyles[fieldName].Width(inputWidth).Render(v.nameInput.View()),
		"Emoji:",
		inputStyles[fieldEmoji].Width(inputWidth).Render(v.emojiInput.View()),
		"Color:",
		inputStyles[fieldColor].Width(inputWidth).Render(colorRow),
		"Category:",
		inputStyles[fieldCategory].Width(inputWidth).Render(v.categoryInput.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←/→: color • Ctrl+S: save • Esc: cancel"),
	}
	if v.status != "" {
		sections = append(sections, s.Status.Render(v.status))
	}

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ActivitiesView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return helpLine(v.styles,
		"↵", "edit",
		"n", "new",
		"d", "del",
		"K/J", "move",
		"esc", "done",
	)
}

func (v *ActivitiesView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      edit activity",
		s.HelpKey.Render("n") + "      new activity",
		s.HelpKey.Render("d") + "      delete activity",
		s.HelpKey.Render("K/J") + "    move up/down",
		s.HelpKey.Render("esc") + "    back to tracking",
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
