package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath           string
	LogFile          string
	LogLevel         string
	ReminderSchedule string
	Seed             bool

	// EnvFileLoaded is false when there was no .env to read
	EnvFileLoaded bool
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// A missing .env is normal; an unreadable one is not
	envLoaded := true
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		envLoaded = false
	}

	dbPath, err := getEnvAsDataFile("TIMEBOARD_DB_PATH", "timeboard.db")
	if err != nil {
		return nil, err
	}
	logFile, err := getEnvAsDataFile("TIMEBOARD_LOG_FILE", "timeboard.log")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:           dbPath,
		LogFile:          logFile,
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		ReminderSchedule: getEnv("TIMEBOARD_REMINDER_SCHEDULE", "@every 1m"),
		Seed:             getEnvAsBool("TIMEBOARD_SEED", true),
		EnvFileLoaded:    envLoaded,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("TIMEBOARD_DB_PATH is required")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	if c.ReminderSchedule == "" {
		return fmt.Errorf("TIMEBOARD_REMINDER_SCHEDULE is required")
	}

	return nil
}

// dataDir returns the XDG data directory for the app. Callers that write
// there create it themselves.
func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(base, "timeboard"), nil
}

// getEnvAsDataFile returns the env value for key, or name inside the data
// directory when unset
func getEnvAsDataFile(key, name string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
