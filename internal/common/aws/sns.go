// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// EventDocumentGenerated is the event type attribute on published messages.
const EventDocumentGenerated = "document.generated"

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// DocumentGeneratedEvent is the message body sent after a document is stored.
type DocumentGeneratedEvent struct {
	ApplicationID   string `json:"applicationId"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
	State           string `json:"state,omitempty"`
	Location        string `json:"location"`
	SizeBytes       int    `json:"sizeBytes"`
	GeneratedAt     string `json:"generatedAt"`
}

type EventPublisher struct {
	client   SNSAPI
	topicARN string
}

func NewEventPublisher(client SNSAPI, topicARN string) *EventPublisher {
	return &EventPublisher{client: client, topicARN: topicARN}
}

func NewEventPublisherFromConfig(cfg awssdk.Config, topicARN string) *EventPublisher {
	return NewEventPublisher(sns.NewFromConfig(cfg), topicARN)
}

// PublishDocumentGenerated returns the SNS message id.
func (p *EventPublisher) PublishDocumentGenerated(ctx context.Context, event DocumentGeneratedEvent) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(p.topicARN),
		Message:  awssdk.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(EventDocumentGenerated),
			},
			"applicationId": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(event.ApplicationID),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", EventDocumentGenerated, err)
	}
	return awssdk.ToString(out.MessageId), nil
}
