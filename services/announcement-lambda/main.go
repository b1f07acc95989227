package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/event-announcer/common/config"
	"github.com/event-announcer/common/logger"
	"github.com/event-announcer/services/announcement-lambda/app"
)

// For AWS Lambda deployment
func main() {
	cfg := config.Load()

	announcementHandler, cleanup, err := app.Build(context.Background(), cfg, logger.Default(), nil)
	if err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}
	defer cleanup()

	// Lambda handler for API Gateway proxy events
	lambda.Start(announcementHandler.Handle)
}
