package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// snsAPI is the subset of the SNS client the gateway uses
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	Unsubscribe(ctx context.Context, params *sns.UnsubscribeInput, optFns ...func(*sns.Options)) (*sns.UnsubscribeOutput, error)
}

// SNSGateway implements Gateway on Amazon SNS
type SNSGateway struct {
	client snsAPI
}

// NewSNSGateway loads the default AWS credential chain. An empty region
// leaves region resolution to the SDK (AWS_REGION inside Lambda).
func NewSNSGateway(ctx context.Context, region string) (*SNSGateway, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SNSGateway{client: sns.NewFromConfig(cfg)}, nil
}

func newSNSGatewayWithClient(client snsAPI) *SNSGateway {
	return &SNSGateway{client: client}
}

func (g *SNSGateway) Publish(ctx context.Context, topic, message, subject string) (string, error) {
	out, err := g.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topic),
		Message:  aws.String(message),
		Subject:  aws.String(subject),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (g *SNSGateway) Subscribe(ctx context.Context, topic, protocol, endpoint string) (string, error) {
	out, err := g.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: aws.String(topic),
		Protocol: aws.String(protocol),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.SubscriptionArn), nil
}

func (g *SNSGateway) Unsubscribe(ctx context.Context, subscriptionARN string) error {
	_, err := g.client.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriptionARN),
	})
	return err
}
