// Package app assembles the announcement handler from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/event-announcer/common/config"
	"github.com/event-announcer/common/db"
	"github.com/event-announcer/common/logger"
	"github.com/event-announcer/common/metrics"
	"github.com/event-announcer/common/notify"
	"github.com/event-announcer/services/announcement-lambda/handler"
	"github.com/event-announcer/services/announcement-lambda/repository"
	"github.com/event-announcer/services/announcement-lambda/usecase"
)

// Build wires gateway, reader, use case and handler. The returned cleanup
// closes the optional database pool.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) (*handler.AnnouncementHandler, func(), error) {
	cleanup := func() {}

	var gateway notify.Gateway
	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("NOTIFY_BACKEND=memory: announcements are not delivered")
		gateway = notify.NewMemoryGateway()
	default:
		snsGateway, err := notify.NewSNSGateway(ctx, cfg.Region)
		if err != nil {
			return nil, cleanup, err
		}
		gateway = snsGateway
	}

	var reader repository.EventReader = repository.NewFixtureReader()
	if cfg.EventsDSN != "" {
		conn, err := db.Open(ctx, cfg.EventsDSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("events reader: %w", err)
		}
		cleanup = func() { conn.Close() }
		reader = repository.NewMySQLReader(conn)
		log.Info("Reading recent events from MySQL")
	}

	if !cfg.TopicFromEnv {
		log.Warn("SNS_TOPIC_ARN environment variable not set, using fallback %s", cfg.TopicARN)
	}

	uc := usecase.NewAnnouncementUseCase(gateway, reader, cfg, log)
	return handler.NewAnnouncementHandler(uc, log, rec), cleanup, nil
}
