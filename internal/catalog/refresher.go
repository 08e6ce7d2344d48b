package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds a single scheduled refresh.
const refreshTimeout = time.Minute

type staleRefresher interface {
	RefreshIfNeeded(ctx context.Context) (bool, error)
}

// Refresher runs RefreshIfNeeded on a cron schedule.
type Refresher struct {
	cron   *cron.Cron
	svc    staleRefresher
	logger *slog.Logger
}

// NewRefresher parses schedule (standard five-field cron syntax or a
// descriptor such as "@hourly") and registers the refresh job.
func NewRefresher(svc staleRefresher, schedule string, logger *slog.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:   cron.New(),
		svc:    svc,
		logger: logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and returns a context that is done once a running
// refresh has finished.
func (r *Refresher) Stop() context.Context {
	return r.cron.Stop()
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	refreshed, err := r.svc.RefreshIfNeeded(ctx)
	if err != nil {
		r.logger.Error("scheduled catalog refresh failed", "error", err)
		return
	}
	if refreshed {
		r.logger.Info("scheduled catalog refresh completed")
	}
}
