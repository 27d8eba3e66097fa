package db

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tgienger/timeboard/internal/models"
)

const activityColumns = "id, name, emoji, color, sort_order, category"

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(row scanner) (models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.Name, &a.Emoji, &a.Color, &a.Order, &a.Category)
	return a, err
}

// CreateActivity inserts an activity, assigning an ID if it has none
func (db *DB) CreateActivity(a models.Activity) (*models.Activity, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	_, err := db.Exec(`
		INSERT INTO activities (id, name, emoji, color, sort_order, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Emoji, a.Color, a.Order, a.Category)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// GetActivity retrieves an activity by ID. Returns nil without error if it doesn't exist.
func (db *DB) GetActivity(id string) (*models.Activity, error) {
	a, err := scanActivity(db.QueryRow("SELECT "+activityColumns+" FROM activities WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActivities returns all activities in display order
func (db *DB) ListActivities() ([]models.Activity, error) {
	rows, err := db.Query("SELECT " + activityColumns + " FROM activities ORDER BY sort_order ASC, name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// UpdateActivity applies the non-nil fields of patch
func (db *DB) UpdateActivity(id string, patch models.ActivityPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Emoji != nil {
		sets = append(sets, "emoji = ?")
		args = append(args, *patch.Emoji)
	}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	if patch.Order != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.Order)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := db.Exec("UPDATE activities SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// DeleteActivity deletes an activity. Its sessions are kept.
func (db *DB) DeleteActivity(id string) error {
	_, err := db.Exec("DELETE FROM activities WHERE id = ?", id)
	return err
}

// SaveActivities upserts all given activities in one transaction
func (db *DB) SaveActivities(activities []models.Activity) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO activities (id, name, emoji, color, sort_order, category)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			emoji = excluded.emoji,
			color = excluded.color,
			sort_order = excluded.sort_order,
			category = excluded.category
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range activities {
		if _, err := stmt.Exec(a.ID, a.Name, a.Emoji, a.Color, a.Order, a.Category); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ActivityCount returns the number of activities
func (db *DB) ActivityCount() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count)
	return count, err
}
