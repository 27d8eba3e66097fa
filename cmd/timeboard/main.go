package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/timeboard/internal/clock"
	"github.com/tgienger/timeboard/internal/config"
	"github.com/tgienger/timeboard/internal/db"
	"github.com/tgienger/timeboard/internal/engine"
	"github.com/tgienger/timeboard/internal/logging"
	"github.com/tgienger/timeboard/internal/reminder"
	"github.com/tgienger/timeboard/internal/tracker"
	"github.com/tgienger/timeboard/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	report := flag.String("report", "", "print totals for today, 7d or month and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("timeboard %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	// deferred cleanup in run must finish before os.Exit
	if err := run(*report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(report string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogFile, "timeboard")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log := logging.New(logFile, logging.ParseLevel(cfg.LogLevel))
	if !cfg.EnvFileLoaded {
		log.Debugf("config", "no .env file found, using environment variables")
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Error("open_database", err)
		return fmt.Errorf("initializing database: %w", err)
	}
	defer database.Close()

	if report != "" {
		return runReport(os.Stdout, database, clock.System{}, log, report)
	}

	eng := engine.New(database, clock.System{}, log)
	t := tracker.New(database, eng, log)
	if err := t.Initialize(cfg.Seed); err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	// Create and run the application
	app := ui.NewApp(t, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	ticker, err := reminder.NewTicker(cfg.ReminderSchedule, func() {
		p.Send(ui.ReminderTick{})
	}, log)
	if err != nil {
		return fmt.Errorf("scheduling reminders: %w", err)
	}
	ticker.Start()
	defer ticker.Stop()

	log.Infof("startup", "db=%s activities=%d", cfg.DBPath, len(t.Activities()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// runReport prints totals for the named range. It only reads: an empty
// database is reported as empty, not seeded.
func runReport(w io.Writer, store tracker.Store, clk clock.Clock, log *logging.Logger, name string) error {
	r, err := reportRange(name, clk.Now())
	if err != nil {
		return err
	}

	t := tracker.New(store, engine.New(store, clk, log), log)
	if err := t.Initialize(false); err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	stats, err := t.LoadStats(r)
	if err != nil {
		return err
	}
	return writeReport(w, stats, t.ActivityName)
}
