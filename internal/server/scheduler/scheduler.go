// Package scheduler runs Lightway's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lightway/internal/logging"
)

// JobTimeout bounds a single run of a job.
const JobTimeout = 30 * time.Second

// Job is one periodic task. Run reports how many records it affected.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (int, error)
}

// Runner drives a fixed set of jobs, each on its own ticker. Failures are
// logged and the job keeps its schedule.
type Runner struct {
	log  logging.Logger
	jobs []Job
}

func NewRunner(log logging.Logger, jobs ...Job) *Runner {
	return &Runner{log: log, jobs: jobs}
}

// Run starts every job and blocks until ctx is cancelled and all job
// goroutines have returned. A job with a non-positive interval is rejected
// before anything starts.
func (r *Runner) Run(ctx context.Context) error {
	for _, j := range r.jobs {
		if j.Interval <= 0 {
			return fmt.Errorf("job %q: interval must be positive, got %s", j.Name, j.Interval)
		}
	}

	var wg sync.WaitGroup
	for _, j := range r.jobs {
		wg.Add(1)
		go func(j Job) {
			defer wg.Done()
			r.loop(ctx, j)
		}(j)
	}

	r.log.Info(ctx, "scheduler started", "jobs", len(r.jobs))
	wg.Wait()
	r.log.Info(context.Background(), "scheduler stopped")
	return nil
}

func (r *Runner) loop(ctx context.Context, j Job) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RunOnce(ctx, j)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce executes j a single time and logs the outcome. A panic inside the
// job is recovered and logged as a failure.
func (r *Runner) RunOnce(ctx context.Context, j Job) {
	log := r.log.With("job", j.Name)

	ctx, cancel := context.WithTimeout(ctx, JobTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			log.Error(ctx, "job panicked", "panic", fmt.Sprint(p))
		}
	}()

	n, err := j.Run(ctx)
	switch {
	case err != nil:
		log.Error(ctx, "job failed", "error", err)
	case n > 0:
		log.Info(ctx, "job done", "count", n)
	default:
		log.Debug(ctx, "job done", "count", n)
	}
}
