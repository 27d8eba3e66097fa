package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults under XDG data dir", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir := t.TempDir()
		t.Setenv("XDG_DATA_HOME", dir)
		t.Setenv("TIMEBOARD_DB_PATH", "")
		t.Setenv("TIMEBOARD_LOG_FILE", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("TIMEBOARD_REMINDER_SCHEDULE", "")
		t.Setenv("TIMEBOARD_SEED", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "timeboard", "timeboard.db"), cfg.DBPath)
		assert.Equal(t, filepath.Join(dir, "timeboard", "timeboard.log"), cfg.LogFile)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "@every 1m", cfg.ReminderSchedule)
		assert.True(t, cfg.Seed)
		assert.False(t, cfg.EnvFileLoaded)
		assert.NoDirExists(t, filepath.Join(dir, "timeboard"), "directories are created by whoever writes there")
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())
		t.Setenv("TIMEBOARD_DB_PATH", "/tmp/tb.db")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("TIMEBOARD_REMINDER_SCHEDULE", "@every 30s")
		t.Setenv("TIMEBOARD_SEED", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/tb.db", cfg.DBPath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "@every 30s", cfg.ReminderSchedule)
		assert.False(t, cfg.Seed)
	})

	t.Run("reads .env without overriding the environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(".env", []byte("TIMEBOARD_REMINDER_SCHEDULE=@every 5m\nLOG_LEVEL=debug\n"), 0644))

		t.Setenv("XDG_DATA_HOME", dir)
		t.Setenv("LOG_LEVEL", "warn")
		// restored by t.Setenv's cleanup
		t.Setenv("TIMEBOARD_REMINDER_SCHEDULE", "")
		require.NoError(t, os.Unsetenv("TIMEBOARD_REMINDER_SCHEDULE"))

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.EnvFileLoaded)
		assert.Equal(t, "@every 5m", cfg.ReminderSchedule)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("unreadable .env is an error", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.Mkdir(".env", 0755))
		t.Setenv("XDG_DATA_HOME", dir)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load .env")
	})

	t.Run("overridden paths never touch the data dir", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir := t.TempDir()
		t.Setenv("XDG_DATA_HOME", dir)
		t.Setenv("TIMEBOARD_DB_PATH", filepath.Join(dir, "db", "tb.db"))
		t.Setenv("TIMEBOARD_LOG_FILE", filepath.Join(dir, "logs", "tb.log"))
		t.Setenv("LOG_LEVEL", "")

		_, err := Load()
		require.NoError(t, err)
		assert.NoDirExists(t, filepath.Join(dir, "timeboard"))
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())
		t.Setenv("LOG_LEVEL", "loud")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad bool falls back to default", func(t *testing.T) {
		t.Setenv("TIMEBOARD_SEED", "maybe")
		assert.True(t, getEnvAsBool("TIMEBOARD_SEED", true))
	})
}
