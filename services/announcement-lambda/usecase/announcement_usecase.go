package usecase

import (
	"context"
	"strings"

	"github.com/event-announcer/common/config"
	"github.com/event-announcer/common/logger"
	"github.com/event-announcer/common/notify"
	"github.com/event-announcer/services/announcement-lambda/models"
	"github.com/event-announcer/services/announcement-lambda/repository"
)

// AnnouncementUseCase formats announcements and drives the notification gateway
type AnnouncementUseCase struct {
	gateway notify.Gateway
	reader  repository.EventReader
	cfg     *config.Config
	log     *logger.Logger
}

// NewAnnouncementUseCase wires the use case. A nil logger uses the default.
func NewAnnouncementUseCase(gateway notify.Gateway, reader repository.EventReader, cfg *config.Config, log *logger.Logger) *AnnouncementUseCase {
	if log == nil {
		log = logger.Default()
	}
	return &AnnouncementUseCase{
		gateway: gateway,
		reader:  reader,
		cfg:     cfg,
		log:     log,
	}
}

// ============================================================
// ListEvents - recent announcements from the reader
// ============================================================
func (uc *AnnouncementUseCase) ListEvents(ctx context.Context) ([]models.EventRecord, error) {
	return uc.reader.RecentEvents(ctx)
}

// ============================================================
// PublishAnnouncement - format and publish one announcement
// Returns the message id assigned by the notification service
// ============================================================
func (uc *AnnouncementUseCase) PublishAnnouncement(ctx context.Context, ann *models.EventAnnouncement) (string, error) {
	log := uc.log.WithContext(ctx)

	topic := uc.cfg.TopicARN
	if !uc.cfg.TopicFromEnv {
		log.Warn("SNS_TOPIC_ARN environment variable not set, using fallback")
	}

	message := BuildMessage(ann)
	subject := BuildSubject(ann)

	log.Info("Publishing message to SNS topic: %s", topic)
	messageID, err := uc.gateway.Publish(ctx, topic, message, subject)
	if err != nil {
		log.LogNotification(logger.NotificationLog{Operation: "publish", Topic: topic, Error: err.Error()})
		return "", err
	}

	log.LogNotification(logger.NotificationLog{Operation: "publish", Topic: topic, ID: messageID, Success: true})
	return messageID, nil
}

// ============================================================
// Subscribe - enroll an endpoint on the configured topic
// ============================================================
func (uc *AnnouncementUseCase) Subscribe(ctx context.Context, req *models.SubscriptionRequest) (string, error) {
	log := uc.log.WithContext(ctx)
	topic := uc.cfg.TopicARN

	arn, err := uc.gateway.Subscribe(ctx, topic, req.Protocol, req.Endpoint)
	if err != nil {
		log.LogNotification(logger.NotificationLog{Operation: "subscribe", Topic: topic, Error: err.Error()})
		return "", err
	}

	log.LogNotification(logger.NotificationLog{Operation: "subscribe", Topic: topic, ID: arn, Success: true})
	return arn, nil
}

// ============================================================
// Unsubscribe - remove a subscriber by its subscription arn
// ============================================================
func (uc *AnnouncementUseCase) Unsubscribe(ctx context.Context, req *models.UnsubscriptionRequest) error {
	log := uc.log.WithContext(ctx)

	if err := uc.gateway.Unsubscribe(ctx, req.SubscriptionArn); err != nil {
		log.LogNotification(logger.NotificationLog{Operation: "unsubscribe", ID: req.SubscriptionArn, Error: err.Error()})
		return err
	}

	log.LogNotification(logger.NotificationLog{Operation: "unsubscribe", ID: req.SubscriptionArn, Success: true})
	return nil
}

// BuildMessage renders the announcement body sent to subscribers.
// Time and location lines appear only when set.
func BuildMessage(ann *models.EventAnnouncement) string {
	lines := []string{
		"🎉 NEW EVENT ANNOUNCEMENT 🎉",
		"",
		"📅 Event: " + ann.Title,
		"📝 Description: " + ann.Description,
		"📆 Date: " + ann.Date,
	}

	if ann.Time != "" {
		lines = append(lines, "🕐 Time: "+ann.Time)
	}
	if ann.Location != "" {
		lines = append(lines, "📍 Location: "+ann.Location)
	}

	lines = append(lines,
		"",
		"Don't miss out on this exciting event!",
		"",
		"---",
		"This is an automated notification from the Event Announcement System",
	)

	return strings.Join(lines, "\n")
}

// BuildSubject returns "Event Announcement: <title>[ - <date>]"
func BuildSubject(ann *models.EventAnnouncement) string {
	subject := "Event Announcement: " + ann.Title
	if ann.Date != "" {
		subject += " - " + ann.Date
	}
	return subject
}
