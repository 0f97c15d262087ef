// Package maintenance runs periodic housekeeping for the document store.
package maintenance

import (
	"time"

	"github.com/devlinkr/devlinkr-be/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// GCRunner triggers value-log garbage collection on a cron schedule.
type GCRunner struct {
	store    *store.Store
	schedule cron.Schedule
	done     chan bool
}

// NewGCRunner parses the cron expression and creates a runner.
func NewGCRunner(s *store.Store, spec string) (*GCRunner, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &GCRunner{
		store:    s,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the runner's loop. It blocks until Stop is called.
func (r *GCRunner) Run() {
	log.Info().Msg("Starting store GC runner")
	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping store GC runner")
			return
		case <-timer.C:
			if err := r.store.RunGC(); err != nil {
				log.Warn().Err(err).Msg("Store GC pass failed")
			}
		}
	}
}

// Stop halts the runner.
func (r *GCRunner) Stop() {
	r.done <- true
}
