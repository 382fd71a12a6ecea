package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/app"
)

// Runner periodically expires open jobs whose deadline has passed. The
// underlying service call is idempotent, so overlapping schedulers are
// harmless.
type Runner struct {
	jobs     *app.JobService
	interval time.Duration
	logger   *slog.Logger
}

func NewRunner(jobs *app.JobService, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{jobs: jobs, interval: interval, logger: logger}
}

// Run blocks until ctx is done. One sweep fires immediately on start.
func (r *Runner) Run(ctx context.Context) {
	r.sweep(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	expired, err := r.jobs.ExpireStale(ctx)
	if err != nil {
		r.logger.Error("job expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		r.logger.Info("job expiry sweep", "expired", expired)
	}
}
