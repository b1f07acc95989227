package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/event-announcer/common/logger"
)

// Subscription is a subscriber registered on a MemoryGateway topic
type Subscription struct {
	ARN      string
	Topic    string
	Protocol string
	Endpoint string
}

// Message is a message published on a MemoryGateway topic
type Message struct {
	ID      string
	Topic   string
	Subject string
	Body    string
}

// MemoryGateway is an in-process topic used by the local server.
// Topics are created on first use.
type MemoryGateway struct {
	mu            sync.Mutex
	subscriptions map[string]Subscription
	messages      []Message
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		subscriptions: make(map[string]Subscription),
	}
}

func (g *MemoryGateway) Publish(ctx context.Context, topic, message, subject string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", ErrTopicNotFound
	}

	msg := Message{ID: uuid.NewString(), Topic: topic, Subject: subject, Body: message}

	g.mu.Lock()
	g.messages = append(g.messages, msg)
	fanout := 0
	for _, s := range g.subscriptions {
		if s.Topic == topic {
			fanout++
		}
	}
	g.mu.Unlock()

	logger.Default().WithContext(ctx).Debug("[memory] published %s to %d subscriber(s)", msg.ID, fanout)
	return msg.ID, nil
}

func (g *MemoryGateway) Subscribe(ctx context.Context, topic, protocol, endpoint string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", ErrTopicNotFound
	}
	if strings.TrimSpace(endpoint) == "" {
		return "", ErrInvalidEndpoint
	}

	sub := Subscription{
		ARN:      fmt.Sprintf("%s:%s", topic, uuid.NewString()),
		Topic:    topic,
		Protocol: protocol,
		Endpoint: endpoint,
	}

	g.mu.Lock()
	g.subscriptions[sub.ARN] = sub
	g.mu.Unlock()

	return sub.ARN, nil
}

func (g *MemoryGateway) Unsubscribe(ctx context.Context, subscriptionARN string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.subscriptions[subscriptionARN]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(g.subscriptions, subscriptionARN)
	return nil
}

// Subscriptions returns the current subscribers of topic
func (g *MemoryGateway) Subscriptions(topic string) []Subscription {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []Subscription
	for _, s := range g.subscriptions {
		if s.Topic == topic {
			out = append(out, s)
		}
	}
	return out
}

// Messages returns everything published so far
func (g *MemoryGateway) Messages() []Message {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Message, len(g.messages))
	copy(out, g.messages)
	return out
}
