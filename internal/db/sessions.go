package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tgienger/timeboard/internal/models"
)

const sessionColumns = "id, activity_id, start_ms, end_ms"

func scanSession(row scanner) (models.Session, error) {
	var (
		s       models.Session
		startMs int64
		endMs   sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.ActivityID, &startMs, &endMs); err != nil {
		return s, err
	}
	s.Start = time.UnixMilli(startMs)
	if endMs.Valid {
		end := time.UnixMilli(endMs.Int64)
		s.End = &end
	}
	return s, nil
}

func (db *DB) querySessions(query string, args ...any) ([]models.Session, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func endMillis(end *time.Time) any {
	if end == nil {
		return nil
	}
	return end.UnixMilli()
}

// CreateSession inserts a session, assigning an ID if it has none
func (db *DB) CreateSession(s models.Session) (*models.Session, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	_, err := db.Exec(`
		INSERT INTO sessions (id, activity_id, start_ms, end_ms) VALUES (?, ?, ?, ?)
	`, s.ID, s.ActivityID, s.Start.UnixMilli(), endMillis(s.End))
	if err != nil {
		return nil, err
	}

	// Hand back what a later read would return
	s.Start = time.UnixMilli(s.Start.UnixMilli())
	if s.End != nil {
		end := time.UnixMilli(s.End.UnixMilli())
		s.End = &end
	}
	return &s, nil
}

// GetSession retrieves a session by ID. Returns nil without error if it doesn't exist.
func (db *DB) GetSession(id string) (*models.Session, error) {
	s, err := scanSession(db.QueryRow("SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessions returns every session, oldest first
func (db *DB) ListSessions() ([]models.Session, error) {
	return db.querySessions("SELECT " + sessionColumns + " FROM sessions ORDER BY start_ms ASC, rowid ASC")
}

// ListSessionsSince returns sessions that started at or after t, oldest first
func (db *DB) ListSessionsSince(t time.Time) ([]models.Session, error) {
	return db.querySessions(`
		SELECT `+sessionColumns+` FROM sessions
		WHERE start_ms >= ?
		ORDER BY start_ms ASC, rowid ASC
	`, t.UnixMilli())
}

// ActiveSession returns the open session, or nil if nothing is being tracked.
// If several are open the most recently started one wins.
func (db *DB) ActiveSession() (*models.Session, error) {
	s, err := scanSession(db.QueryRow(`
		SELECT ` + sessionColumns + ` FROM sessions
		WHERE end_ms IS NULL
		ORDER BY start_ms DESC, rowid DESC
		LIMIT 1
	`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSession applies the non-nil fields of patch
func (db *DB) UpdateSession(id string, patch models.SessionPatch) error {
	var sets []string
	var args []any

	if patch.ActivityID != nil {
		sets = append(sets, "activity_id = ?")
		args = append(args, *patch.ActivityID)
	}
	if patch.Start != nil {
		sets = append(sets, "start_ms = ?")
		args = append(args, patch.Start.UnixMilli())
	}
	if patch.End != nil {
		sets = append(sets, "end_ms = ?")
		args = append(args, patch.End.UnixMilli())
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := db.Exec("UPDATE sessions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// DeleteSession deletes a session
func (db *DB) DeleteSession(id string) error {
	_, err := db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

// DeleteLastSession deletes the most recently started session, if any
func (db *DB) DeleteLastSession() error {
	_, err := db.Exec(`
		DELETE FROM sessions WHERE id = (
			SELECT id FROM sessions ORDER BY start_ms DESC, rowid DESC LIMIT 1
		)
	`)
	return err
}

// DeleteSessionsSince deletes every session that started at or after t and
// returns how many were removed
func (db *DB) DeleteSessionsSince(t time.Time) (int64, error) {
	result, err := db.Exec("DELETE FROM sessions WHERE start_ms >= ?", t.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SessionCount returns the number of sessions
func (db *DB) SessionCount() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}
