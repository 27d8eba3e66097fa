package tracker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tgienger/timeboard/internal/models"
)

// AddActivity creates an activity at the end of the list
func (t *Tracker) AddActivity(a models.Activity) (*models.Activity, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return nil, fmt.Errorf("activity name is required")
	}
	a.ID = ""
	a.Order = len(t.activities) + 1

	created, err := t.store.CreateActivity(a)
	if err != nil {
		t.log.Error("add_activity", err)
		return nil, err
	}
	t.activities = append(slices.Clone(t.activities), *created)
	return created, nil
}

// UpdateActivity applies patch to an activity. Order is managed by Reorder
// and is ignored here.
func (t *Tracker) UpdateActivity(id string, patch models.ActivityPatch) error {
	patch.Order = nil
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("activity name is required")
	}

	if err := t.store.UpdateActivity(id, patch); err != nil {
		t.log.Error("update_activity", err)
		return err
	}

	activities := slices.Clone(t.activities)
	for i := range activities {
		if activities[i].ID == id {
			applyPatch(&activities[i], patch)
		}
	}
	t.activities = activities
	return nil
}

// DeleteActivity removes an activity and closes the gap it leaves in the
// ordering. Sessions recorded against it are kept.
func (t *Tracker) DeleteActivity(id string) error {
	if err := t.store.DeleteActivity(id); err != nil {
		t.log.Error("delete_activity", err)
		return err
	}

	remaining := slices.DeleteFunc(slices.Clone(t.activities), func(a models.Activity) bool {
		return a.ID == id
	})
	t.activities = remaining

	if renumber(remaining) {
		if err := t.store.SaveActivities(remaining); err != nil {
			t.log.Error("delete_activity", err)
			return err
		}
	}
	return nil
}

// Reorder puts activities in the order of ids and renumbers them 1..n.
// Activities missing from ids keep their relative order at the end.
func (t *Tracker) Reorder(ids []string) error {
	reordered := make([]models.Activity, 0, len(t.activities))
	placed := map[string]bool{}
	for _, id := range ids {
		if a, ok := t.Activity(id); ok && !placed[id] {
			reordered = append(reordered, a)
			placed[id] = true
		}
	}
	for _, a := range t.activities {
		if !placed[a.ID] {
			reordered = append(reordered, a)
		}
	}
	renumber(reordered)

	if err := t.store.SaveActivities(reordered); err != nil {
		t.log.Error("reorder_activities", err)
		return err
	}
	t.activities = reordered
	return nil
}

// Move shifts the activity at index from by delta places
func (t *Tracker) Move(from, delta int) error {
	to := from + delta
	if from < 0 || from >= len(t.activities) || to < 0 || to >= len(t.activities) {
		return nil
	}

	ids := make([]string, len(t.activities))
	for i, a := range t.activities {
		ids[i] = a.ID
	}
	ids[from], ids[to] = ids[to], ids[from]
	return t.Reorder(ids)
}

// renumber sets Order to 1..n and reports whether anything changed
func renumber(activities []models.Activity) bool {
	changed := false
	for i := range activities {
		if activities[i].Order != i+1 {
			activities[i].Order = i + 1
			changed = true
		}
	}
	return changed
}

func applyPatch(a *models.Activity, patch models.ActivityPatch) {
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Emoji != nil {
		a.Emoji = *patch.Emoji
	}
	if patch.Color != nil {
		a.Color = *patch.Color
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
}
