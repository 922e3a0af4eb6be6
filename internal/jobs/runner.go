package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var ErrNoJobs = errors.New("No jobs on the execution list!")

type Job func(ctx context.Context) error

// Runner executes its jobs in the order they were added.
type Runner struct {
	name   string
	jobs   []Job
	logger zerolog.Logger
}

func (r *Runner) Name() string {
	return r.name
}

func (r *Runner) AddJob(job Job) {
	r.jobs = append(r.jobs, job)
}

// Run stops at the first failing job. It fails with ErrNoJobs when nothing
// was added.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.jobs) == 0 {
		return ErrNoJobs
	}
	for i, job := range r.jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := job(ctx); err != nil {
			r.logger.Error().Err(err).Str("runner", r.name).Int("job", i).Msg("job failed")
			return fmt.Errorf("job %d of %s: %w", i, r.name, err)
		}
	}
	r.logger.Debug().Str("runner", r.name).Int("jobs", len(r.jobs)).Msg("jobs done")
	return nil
}

// RunWithTimeout runs the jobs under a deadline of timeout.
func (r *Runner) RunWithTimeout(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return r.Run(ctx)
}

func NewRunner(name string, logger zerolog.Logger) *Runner {
	return &Runner{
		name:   name,
		logger: logger,
	}
}
