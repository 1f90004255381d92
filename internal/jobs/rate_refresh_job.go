package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RateRefreshJob periodically pulls a fresh exchange-rate table from the
// rate source and swaps it into the shared holder. Settlement readers
// always see a complete table, never a half-updated one.
type RateRefreshJob struct {
	source ports.RateSource
	holder *services.RateHolder
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRateRefreshJob creates a rate refresh job with the given cron spec.
func NewRateRefreshJob(
	source ports.RateSource,
	holder *services.RateHolder,
	spec string,
	logger *slog.Logger,
) *RateRefreshJob {
	return &RateRefreshJob{
		source: source,
		holder: holder,
		spec:   spec,
		cron:   cron.New(),
		logger: logger.With("component", "rate_refresh_job"),
	}
}

// Start refreshes the table once immediately, then on the cron schedule.
// A failed refresh keeps the previous table in place.
func (j *RateRefreshJob) Start() error {
	j.refresh()

	if _, err := j.cron.AddFunc(j.spec, j.refresh); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rate refresh job started", "schedule", j.spec)
	return nil
}

// Stop stops the rate refresh job.
func (j *RateRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rate refresh job stopped")
}

func (j *RateRefreshJob) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	table, err := j.source.Fetch(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Rate refresh failed, keeping previous table", "error", err)
		return
	}

	j.holder.Replace(table)
	j.logger.InfoContext(ctx, "Rate table refreshed", "currencies", len(table))
}
