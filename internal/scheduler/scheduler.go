// Package scheduler drives the update job on a fixed-delay interval.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is one update pass.
type Job func(ctx context.Context) error

// Scheduler runs Job, sleeps Interval, repeats until ctx is cancelled.
// Job errors are logged and swallowed; the loop never stops on its own.
// Fixed delay, not fixed rate: cadence drifts by the job's own duration.
type Scheduler struct {
	Interval time.Duration
	Job      Job
	Log      *zap.Logger

	// Sleep is injectable for tests; nil means a ctx-aware timer sleep.
	Sleep func(ctx context.Context, d time.Duration)
}

func (s *Scheduler) Run(ctx context.Context) {
	sleep := s.Sleep
	if sleep == nil {
		sleep = waitFor
	}
	for {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := s.Job(ctx); err != nil {
			s.Log.Error("update iteration failed", zap.Error(err))
		} else {
			s.Log.Debug("update iteration done", zap.Duration("took", time.Since(start)))
		}
		sleep(ctx, s.Interval)
	}
}

func waitFor(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
