package reminder

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/tgienger/timeboard/internal/logging"
)

// Ticker calls a function on a cron schedule, e.g. "@every 1m"
type Ticker struct {
	cron *cron.Cron
	log  *logging.Logger
}

// NewTicker schedules fn. Nothing runs until Start.
func NewTicker(spec string, fn func(), log *logging.Logger) (*Ticker, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, fn); err != nil {
		return nil, fmt.Errorf("schedule reminder check %q: %w", spec, err)
	}
	return &Ticker{cron: c, log: log}, nil
}

func (t *Ticker) Start() {
	t.log.Infof("reminder", "ticker started")
	t.cron.Start()
}

// Stop halts the schedule and waits for a running check to finish
func (t *Ticker) Stop() {
	<-t.cron.Stop().Done()
	t.log.Infof("reminder", "ticker stopped")
}
