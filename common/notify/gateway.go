// Package notify is the call-through to the publish/subscribe notification service.
package notify

import (
	"context"
	"errors"
)

// Gateway publishes to a topic and manages its subscriptions
type Gateway interface {
	Publish(ctx context.Context, topic, message, subject string) (messageID string, err error)
	Subscribe(ctx context.Context, topic, protocol, endpoint string) (subscriptionARN string, err error)
	Unsubscribe(ctx context.Context, subscriptionARN string) error
}

var (
	ErrTopicNotFound        = errors.New("topic does not exist")
	ErrSubscriptionNotFound = errors.New("subscription does not exist")
	ErrInvalidEndpoint      = errors.New("invalid parameter: endpoint")
)
