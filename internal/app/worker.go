package app

import (
	"context"
	"fmt"

	"investor-service/internal/infrastructure/messaging"
	"investor-service/internal/usecase"

	"go.uber.org/zap"
)

// RunWorker consumes profile lifecycle events and runs the scheduled jobs
// until ctx is cancelled or the broker connection drops.
func RunWorker(ctx context.Context, c *Container) error {
	cfg := c.Config
	logger := c.Logger.Named("worker")

	scheduler := NewScheduler(
		usecase.NewMeetingCompletion(c.Meetings, cfg.Scheduler.MeetingCompletionGrace, logger),
		cfg.Scheduler.MeetingCompletionSchedule,
		logger,
	)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		<-scheduler.Stop().Done()
		logger.Info("scheduler stopped")
	}()

	consumer, err := messaging.NewConsumer(cfg.Messaging.URL, logger)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Warn("failed to close consumer", zap.Error(err))
		}
	}()

	router := messaging.NewRouter(usecase.NewProfileCleanup(c.Results, c.Startups, logger), logger)
	return consumer.Consume(ctx, cfg.Messaging.Exchange, cfg.Messaging.Queue, messaging.RoutingKeys, router.Route)
}
