// Package scheduler triggers periodic aggregation runs.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps robfig/cron around a single run function.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	run    func(ctx context.Context)
	logger *zap.SugaredLogger
}

func New(intervalHours int, run func(ctx context.Context), logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		run:    run,
		logger: logger,
	}
}

// Start registers the job and fires one run immediately so a fresh install
// has data without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Infow("scheduler started", "spec", s.spec)

	go s.run(ctx)
	return nil
}

// Stop shuts the scheduler down; already-running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}
