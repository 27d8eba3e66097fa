package logging

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Logger writes operation-tagged lines such as
// "[error] operation=start_activity error=..."
type Logger struct {
	out   *log.Logger
	level Level
}

// New creates a logger writing to w
func New(w io.Writer, level Level) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), level: level}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) Debugf(operation string, format string, args ...any) {
	l.printf(LevelDebug, "debug", operation, format, args...)
}

func (l *Logger) Infof(operation string, format string, args ...any) {
	l.printf(LevelInfo, "info", operation, format, args...)
}

func (l *Logger) Warnf(operation string, format string, args ...any) {
	l.printf(LevelWarn, "warn", operation, format, args...)
}

// Error logs err against the operation that produced it
func (l *Logger) Error(operation string, err error) {
	l.printf(LevelError, "error", operation, "error=%v", err)
}

func (l *Logger) printf(level Level, tag, operation, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	l.out.Printf("[%s] operation=%s "+format, append([]any{tag, operation}, args...)...)
}
