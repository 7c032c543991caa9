// Package jobs drives the recurring maintenance work: stake decay, the
// absence penalty, and the two weekly planners. Schedules are pure
// functions of the clock, so every process computes the same run times;
// the job_runs table decides which process actually gets each run.
package jobs

import (
	"context"
	"log"
	"time"
)

// Job is one recurring piece of maintenance. Next returns the first
// scheduled instant strictly after the given time.
type Job struct {
	Name string
	Next func(after time.Time) time.Time
	Run  func(ctx context.Context) error
}

type Runner struct {
	store *Store
	jobs  []Job
	now   func() time.Time
}

func NewRunner(store *Store, jobs []Job) *Runner {
	return &Runner{
		store: store,
		jobs:  jobs,
		now:   time.Now,
	}
}

// Start launches one loop per job. Loops exit when the context is
// cancelled.
func (r *Runner) Start(ctx context.Context) {
	for _, job := range r.jobs {
		go r.loop(ctx, job)
	}
	log.Printf("[jobs] started %d job loops", len(r.jobs))
}

func (r *Runner) loop(ctx context.Context, job Job) {
	for {
		next := job.Next(r.now())
		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(r.now())):
			r.runOnce(ctx, job, next)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, job Job, scheduled time.Time) {
	claimed, err := r.store.ClaimRun(job.Name, dateOf(scheduled))
	if err != nil {
		log.Printf("[jobs] WARN: failed to claim %s run: %v", job.Name, err)
		return
	}
	if !claimed {
		log.Printf("[jobs] %s already ran today, skipping", job.Name)
		return
	}

	start := r.now()
	if err := job.Run(ctx); err != nil {
		log.Printf("[jobs] WARN: %s failed: %v", job.Name, err)
		return
	}
	log.Printf("[jobs] %s finished in %s", job.Name, r.now().Sub(start).Round(time.Millisecond))
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ── Schedules ───────────────────────────────────────────

// Every anchors an interval to the Unix epoch, so run times are the same
// no matter when the process started.
func Every(interval time.Duration) func(time.Time) time.Time {
	epoch := time.Unix(0, 0).UTC()
	return func(after time.Time) time.Time {
		steps := int64(after.Sub(epoch)/interval) + 1
		return epoch.Add(time.Duration(steps) * interval)
	}
}

// WeeklyOn fires once a week on the given weekday at the given UTC hour.
func WeeklyOn(day time.Weekday, hour int) func(time.Time) time.Time {
	return func(after time.Time) time.Time {
		after = after.UTC()
		t := time.Date(after.Year(), after.Month(), after.Day(), hour, 0, 0, 0, time.UTC)
		for t.Weekday() != day || !t.After(after) {
			t = t.AddDate(0, 0, 1)
		}
		return t
	}
}
