package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcJob adapts a function to the Job interface.
type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

func (j *funcJob) Name() string                  { return j.name }
func (j *funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func waitForSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job run")
	}
}

func TestScheduler_RunsJobsAtInterval(t *testing.T) {
	ran := make(chan struct{}, 10)
	job := &funcJob{name: "tick", fn: func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	}}

	s := NewScheduler(nil)
	require.NoError(t, s.Register(job, 10*time.Millisecond))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	waitForSignal(t, ran)
	waitForSignal(t, ran)
}

func TestScheduler_PanickingJobKeepsTicking(t *testing.T) {
	ran := make(chan struct{}, 10)
	job := &funcJob{name: "explosive", fn: func(ctx context.Context) error {
		ran <- struct{}{}
		panic("boom")
	}}

	s := NewScheduler(nil)
	require.NoError(t, s.Register(job, 10*time.Millisecond))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	// The panic on the first run must not stop subsequent runs.
	waitForSignal(t, ran)
	waitForSignal(t, ran)
}

func TestScheduler_RegisterValidation(t *testing.T) {
	job := &funcJob{name: "job", fn: func(ctx context.Context) error { return nil }}

	s := NewScheduler(nil)
	assert.Error(t, s.Register(job, 0), "non-positive interval")

	require.NoError(t, s.Register(job, time.Second))
	assert.Error(t, s.Register(job, time.Second), "duplicate name")

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	other := &funcJob{name: "late", fn: func(ctx context.Context) error { return nil }}
	assert.Error(t, s.Register(other, time.Second), "registration after start")
}

func TestScheduler_StopWaitsAndIsIdempotent(t *testing.T) {
	started := make(chan struct{}, 1)
	job := &funcJob{name: "slow", fn: func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		return nil
	}}

	s := NewScheduler(nil)
	require.NoError(t, s.Register(job, 5*time.Millisecond))
	require.NoError(t, s.Start(context.Background()))

	waitForSignal(t, started)
	s.Stop()
	s.Stop()
}
