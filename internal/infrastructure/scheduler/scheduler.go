// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one unit of periodic work.
type Job interface {
	// Name returns a stable job name, used for logging.
	Name() string

	// Run executes the job once.
	Run(ctx context.Context) error
}

// Scheduler wraps a cron runner with per-job logging, panic recovery and a
// run timeout.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration
}

// Config contains scheduler configuration.
type Config struct {
	// Logger for structured logging
	Logger *slog.Logger

	// JobTimeout bounds a single job run (default 2m).
	JobTimeout time.Duration
}

// New creates a scheduler. Jobs are registered with AddJob before Start.
func New(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}

	return &Scheduler{
		cron:    cron.New(),
		logger:  cfg.Logger,
		timeout: cfg.JobTimeout,
	}
}

// AddJob schedules a job with a cron spec ("0 7 * * *" etc).
func (s *Scheduler) AddJob(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(job)
	})
	if err != nil {
		return err
	}

	s.logger.Info("job scheduled", "job", job.Name(), "spec", spec)
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", "job", job.Name(), "panic", r)
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("job failed", "job", job.Name(), "duration", time.Since(start), "error", err)
		return
	}

	s.logger.Info("job completed", "job", job.Name(), "duration", time.Since(start))
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
