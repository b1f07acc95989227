package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	publishIn     *sns.PublishInput
	subscribeIn   *sns.SubscribeInput
	unsubscribeIn *sns.UnsubscribeInput
	err           error
}

func (f *fakeSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.publishIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-42")}, nil
}

func (f *fakeSNS) Subscribe(ctx context.Context, in *sns.SubscribeInput, _ ...func(*sns.Options)) (*sns.SubscribeOutput, error) {
	f.subscribeIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.SubscribeOutput{SubscriptionArn: aws.String("pending confirmation")}, nil
}

func (f *fakeSNS) Unsubscribe(ctx context.Context, in *sns.UnsubscribeInput, _ ...func(*sns.Options)) (*sns.UnsubscribeOutput, error) {
	f.unsubscribeIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.UnsubscribeOutput{}, nil
}

func TestSNSGateway_Publish(t *testing.T) {
	fake := &fakeSNS{}
	g := newSNSGatewayWithClient(fake)

	id, err := g.Publish(context.Background(), "arn:topic", "body", "Event Announcement: Party - 2024-12-20")
	require.NoError(t, err)

	assert.Equal(t, "msg-42", id)
	assert.Equal(t, "arn:topic", aws.ToString(fake.publishIn.TopicArn))
	assert.Equal(t, "body", aws.ToString(fake.publishIn.Message))
	assert.Equal(t, "Event Announcement: Party - 2024-12-20", aws.ToString(fake.publishIn.Subject))
}

func TestSNSGateway_Subscribe(t *testing.T) {
	fake := &fakeSNS{}
	g := newSNSGatewayWithClient(fake)

	arn, err := g.Subscribe(context.Background(), "arn:topic", "sms", "+15555550100")
	require.NoError(t, err)

	assert.Equal(t, "pending confirmation", arn)
	assert.Equal(t, "sms", aws.ToString(fake.subscribeIn.Protocol))
	assert.Equal(t, "+15555550100", aws.ToString(fake.subscribeIn.Endpoint))
}

func TestSNSGateway_Unsubscribe(t *testing.T) {
	fake := &fakeSNS{}
	g := newSNSGatewayWithClient(fake)

	require.NoError(t, g.Unsubscribe(context.Background(), "arn:topic:abc"))
	assert.Equal(t, "arn:topic:abc", aws.ToString(fake.unsubscribeIn.SubscriptionArn))
}

func TestSNSGateway_PropagatesErrors(t *testing.T) {
	boom := errors.New("AuthorizationError: not allowed")
	g := newSNSGatewayWithClient(&fakeSNS{err: boom})
	ctx := context.Background()

	_, err := g.Publish(ctx, "t", "m", "s")
	assert.ErrorIs(t, err, boom)

	_, err = g.Subscribe(ctx, "t", "email", "a@b.co")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, g.Unsubscribe(ctx, "arn"), boom)
}
