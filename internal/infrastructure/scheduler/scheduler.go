// Package scheduler runs periodic maintenance jobs for the roommate
// marketplace, such as flushing buffered profile views and warming the
// location suggestion cache.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOB INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Job is a unit of periodic work.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Run executes the job. The context is cancelled when the scheduler
	// is stopping.
	Run(ctx context.Context) error
}

// scheduledJob pairs a Job with its interval and run stats.
type scheduledJob struct {
	job      Job
	interval time.Duration

	runCount  int64
	failCount int64
	lastRun   time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULER
// ══════════════════════════════════════════════════════════════════════════════

// Scheduler executes registered jobs at fixed intervals, one goroutine per
// job. A panicking or failing job is logged and retried on its next tick;
// it never takes the process down.
type Scheduler struct {
	mu      sync.Mutex
	logger  *slog.Logger
	jobs    map[string]*scheduledJob
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates an empty scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger: logger,
		jobs:   make(map[string]*scheduledJob),
	}
}

// Register adds a job to be run every interval. Registration after Start
// is an error, as is a duplicate name or non-positive interval.
func (s *Scheduler) Register(job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: job %q has non-positive interval %s", job.Name(), interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler: cannot register %q while running", job.Name())
	}
	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("scheduler: job %q already registered", job.Name())
	}

	s.jobs[job.Name()] = &scheduledJob{job: job, interval: interval}
	return nil
}

// Start launches all registered jobs. It returns immediately; jobs run
// until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler: already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, sj := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(runCtx, sj)
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// runLoop ticks one job until the context is cancelled.
func (s *Scheduler) runLoop(ctx context.Context, sj *scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(sj.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, sj)
		}
	}
}

// runJob executes a single run with panic recovery and stats.
func (s *Scheduler) runJob(ctx context.Context, sj *scheduledJob) {
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("scheduler: job %q panicked: %v", sj.job.Name(), r)
			}
		}()
		return sj.job.Run(ctx)
	}()

	s.mu.Lock()
	sj.runCount++
	sj.lastRun = start
	if err != nil {
		sj.failCount++
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("job failed",
			"job", sj.job.Name(),
			"duration", time.Since(start).String(),
			"error", err,
		)
		return
	}
	s.logger.Debug("job completed",
		"job", sj.job.Name(),
		"duration", time.Since(start).String(),
	)
}
