package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tgienger/timeboard/internal/models"
)

//go:embed schema.sql
var schema string

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

const (
	settingAutoReminder     = "auto_reminder"
	settingReminderInterval = "reminder_interval_ms"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New opens the database at path and initializes the schema
func New(path string) (*DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// Single writer. Also keeps an in-memory database on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db}, nil
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetSettings returns the stored settings, filling in defaults for anything
// missing or unreadable
func (db *DB) GetSettings() (models.Settings, error) {
	s := models.DefaultSettings()

	auto, err := db.GetSetting(settingAutoReminder)
	if err != nil {
		return s, err
	}
	if v, err := strconv.ParseBool(auto); err == nil {
		s.AutoReminder = v
	}

	interval, err := db.GetSetting(settingReminderInterval)
	if err != nil {
		return s, err
	}
	if ms, err := strconv.ParseInt(interval, 10, 64); err == nil && ms > 0 {
		s.ReminderInterval = time.Duration(ms) * time.Millisecond
	}

	return s, nil
}

// SaveSettings merges patch into the stored settings and returns the result
func (db *DB) SaveSettings(patch models.SettingsPatch) (models.Settings, error) {
	if patch.AutoReminder != nil {
		if err := db.SetSetting(settingAutoReminder, strconv.FormatBool(*patch.AutoReminder)); err != nil {
			return models.Settings{}, err
		}
	}
	if patch.ReminderInterval != nil {
		ms := patch.ReminderInterval.Milliseconds()
		if err := db.SetSetting(settingReminderInterval, strconv.FormatInt(ms, 10)); err != nil {
			return models.Settings{}, err
		}
	}
	return db.GetSettings()
}
