package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/event-announcer/common/config"
	"github.com/event-announcer/common/logger"
)

func TestBuild_MemoryBackend(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&logger.Config{Level: logger.DEBUG, Output: &buf, TimeFormat: time.RFC3339})
	cfg := &config.Config{TopicARN: config.FallbackTopicARN, Backend: config.BackendMemory}

	h, cleanup, err := Build(context.Background(), cfg, log, nil)
	require.NoError(t, err)
	defer cleanup()

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/events/subscribe",
		Body:       `{"protocol":"sms","endpoint":"+15555550100"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, buf.String(), "using fallback")
}
