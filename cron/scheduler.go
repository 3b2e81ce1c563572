// Package cron runs ingest passes on recurring schedules using
// robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. The context is canceled when the
// scheduler stops.
type Job func(ctx context.Context) error

// Scheduler runs named jobs on standard five-field cron specs.
// A job whose previous run has not finished is skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// NewScheduler creates a scheduler evaluating specs in loc.
func NewScheduler(logger *slog.Logger, loc *time.Location) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Add registers job under name. It returns EINVALID for a malformed
// spec and ECONFLICT if name is already scheduled.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if name == "" {
		return newsgrab.Errorf(newsgrab.EINVALID, "job name required")
	}
	if job == nil {
		return newsgrab.Errorf(newsgrab.EINVALID, "job %q has no function", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return newsgrab.Errorf(newsgrab.ECONFLICT, "job %q already scheduled", name)
	}

	id, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.logger.Info("job started", "job", name)
		if err := job(s.ctx); err != nil {
			s.logger.Error("job failed", "job", name, "error", err, "duration", time.Since(start))
			return
		}
		s.logger.Info("job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return newsgrab.Errorf(newsgrab.EINVALID, "job %q: invalid schedule %q: %v", name, spec, err)
	}
	s.jobs[name] = id
	return nil
}

// Next returns the next run time of the named job.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels the context passed to running jobs and
// waits for them to return or for ctx to be done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
