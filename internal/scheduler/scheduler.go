package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Resetter is the part of the engine the scheduler drives.
type Resetter interface {
	EnsureResets(ctx context.Context) error
}

// Scheduler periodically asks the engine to perform any pending day or week
// rollover. The check itself is idempotent, so the tick interval only bounds
// how stale the boards can get, not correctness.
type Scheduler struct {
	cron     *cron.Cron
	resetter Resetter
	interval time.Duration
}

func New(resetter Resetter, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		resetter: resetter,
		interval: interval,
	}
}

// Start registers the rollover job and begins ticking. It also runs one
// check immediately so a long-stopped machine catches up without waiting
// for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	job := func() {
		log.Debug("rollover check tick")
		if err := s.resetter.EnsureResets(ctx); err != nil {
			log.WithError(err).Error("rollover check failed")
		}
	}
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("schedule rollover job: %w", err)
	}
	job()
	s.cron.Start()
	log.WithField("interval", s.interval).Info("rollover scheduler started")
	return nil
}

// Stop halts the ticker and waits for an in-flight check to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Info("rollover scheduler stopped")
}
