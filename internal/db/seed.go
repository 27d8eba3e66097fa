package db

import (
	"github.com/google/uuid"
	"github.com/tgienger/timeboard/internal/models"
)

var defaultActivities = []models.Activity{
	{Name: "Work/Code", Emoji: "👨‍💻", Color: "blue"},
	{Name: "Investment", Emoji: "📈", Color: "green"},
	{Name: "Workout", Emoji: "🏋️", Color: "orange"},
	{Name: "Traffic", Emoji: "🚗", Color: "gray"},
	{Name: "GF", Emoji: "❤️", Color: "pink"},
	{Name: "Chilling", Emoji: "😌", Color: "purple"},
	{Name: "Gaming", Emoji: "🎮", Color: "indigo"},
	{Name: "Scrolling", Emoji: "📱", Color: "yellow"},
	{Name: "Eating", Emoji: "🍽", Color: "red"},
	{Name: "Housework", Emoji: "🧹", Color: "teal"},
}

// SeedActivities inserts the default activities into an empty database in
// one transaction. It reports whether anything was inserted.
func (db *DB) SeedActivities() (bool, error) {
	count, err := db.ActivityCount()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	activities := make([]models.Activity, len(defaultActivities))
	for i, a := range defaultActivities {
		a.ID = uuid.New().String()
		a.Order = i + 1
		activities[i] = a
	}
	if err := db.SaveActivities(activities); err != nil {
		return false, err
	}
	return true, nil
}
