package cmd

import (
	"context"
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres/eventlog"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/coordinator"
	"ordering/internal/core/orderstore"
	"ordering/internal/fulfillment"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived actors and hands out wired handlers.
// Construction replays the event log, so a root only exists once the store
// projection is caught up.
type CompositionRoot struct {
	config      Config
	store       *orderstore.Store
	fulfillment *fulfillment.Service
	coordinator *coordinator.Coordinator
	logger      *slog.Logger
}

// NewCompositionRoot builds the full object graph: durable event log, order
// store, fulfillment service and coordinator.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	eventLog := eventlog.NewGormEventLog(gormDB)

	store, err := orderstore.New(ctx, eventLog, config.MailboxSize, logger)
	if err != nil {
		return nil, err
	}

	fulfillmentSvc := fulfillment.New(config.FulfillmentDelay, config.MailboxSize, logger)
	workflow := coordinator.New(store, fulfillmentSvc, config.AskTimeout, config.MailboxSize, logger)

	return &CompositionRoot{
		config:      config,
		store:       store,
		fulfillment: fulfillmentSvc,
		coordinator: workflow,
		logger:      logger,
	}, nil
}

// CreateHTTPServer wires the HTTP gateway with its command and query handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		commands.NewCreateOrderCommandHandler(c.store),
		commands.NewChangeOrderStateCommandHandler(c.coordinator),
		queries.NewGetOrderQueryHandler(c.store),
	)
}

// CreateJobManager wires the scheduled jobs against the order store.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.store, c.logger)
}

// Stop terminates the actors in dependency order.
func (c *CompositionRoot) Stop() {
	c.coordinator.Stop()
	c.fulfillment.Stop()
	c.store.Stop()
}
