// Package jobs contains the periodic maintenance jobs run by the scheduler.
package jobs

import (
	"context"

	"github.com/roomie-hub/roomie-hub/internal/metrics"
)

// ViewFlusher drains buffered profile view counts into durable storage.
type ViewFlusher interface {
	Flush(ctx context.Context) (int, error)
}

// FlushViewsJob moves view counts buffered in Redis into postgres, so a hot
// profile costs one UPDATE per interval instead of one per view.
type FlushViewsJob struct {
	flusher ViewFlusher
}

// NewFlushViewsJob creates the job.
func NewFlushViewsJob(flusher ViewFlusher) *FlushViewsJob {
	return &FlushViewsJob{flusher: flusher}
}

// Name implements scheduler.Job.
func (j *FlushViewsJob) Name() string { return "flush-views" }

// Run implements scheduler.Job.
func (j *FlushViewsJob) Run(ctx context.Context) error {
	flushed, err := j.flusher.Flush(ctx)
	if flushed > 0 {
		metrics.ProfileViewsFlushed.Add(float64(flushed))
	}
	return err
}
