package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// statsReadTimeout bounds the projection read issued by each tick.
const statsReadTimeout = 5 * time.Second

// OrderStatsJob periodically logs the number of orders per lifecycle state.
// The counts come from the store projection, so the job observes every
// command the store has acknowledged.
type OrderStatsJob struct {
	store  ports.OrderStore
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOrderStatsJob creates a job that reports order counts every ten seconds.
func NewOrderStatsJob(store ports.OrderStore, logger *slog.Logger) *OrderStatsJob {
	return &OrderStatsJob{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "order_stats_job"),
	}
}

// Start begins the stats job to run every ten seconds.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsReadTimeout)
		defer cancel()

		counts, statsErr := j.store.Stats(ctx)
		if statsErr != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", statsErr)
			return
		}

		j.logger.InfoContext(ctx, "Order stats",
			"created", counts[order.StateCreated],
			"paid", counts[order.StatePaid],
			"in_fulfillment", counts[order.StateInFulfillment],
			"closed", counts[order.StateClosed],
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (running every ten seconds)")
	return nil
}

// Stop stops the stats job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
