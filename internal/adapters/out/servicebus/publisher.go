// Package servicebus publishes booking and sheet lifecycle events to an
// Azure Service Bus topic or queue.
package servicebus

import (
	"context"
	"time"

	"freight/internal/core/ports"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/pkg/errors"
)

const contentType = "application/json"

// messageSender is the part of *azservicebus.Sender the publisher uses.
type messageSender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// Publisher implements ports.EventPublisher. The outbox id becomes the
// Service Bus message id, so duplicate detection on the entity drops
// messages the relay sends twice.
type Publisher struct {
	client *azservicebus.Client
	sender messageSender
	source string
}

func NewPublisher(connectionString, entity, source string) (*Publisher, error) {
	if connectionString == "" {
		return nil, errors.New("Azure Service Bus connection string is empty")
	}

	client, err := azservicebus.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus client")
	}

	sender, err := client.NewSender(entity, nil)
	if err != nil {
		_ = client.Close(context.Background())
		return nil, errors.Wrap(err, "failed to create Service Bus sender")
	}

	return &Publisher{client: client, sender: sender, source: source}, nil
}

// NewPublisherWithSender is used by tests and by callers that manage the
// client themselves.
func NewPublisherWithSender(sender messageSender, source string) *Publisher {
	return &Publisher{sender: sender, source: source}
}

func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	messageID := msg.ID
	subject := msg.Type
	ct := contentType

	err := p.sender.SendMessage(ctx, &azservicebus.Message{
		MessageID:   &messageID,
		Subject:     &subject,
		ContentType: &ct,
		Body:        msg.Payload,
		ApplicationProperties: map[string]any{
			"source":         p.source,
			"aggregate_type": msg.AggregateType,
			"aggregate_id":   msg.AggregateID,
			"occurred_at":    msg.OccurredAt.UTC().Format(time.RFC3339Nano),
		},
	}, nil)
	return errors.Wrapf(err, "failed to send %s message %s", msg.Type, msg.ID)
}

func (p *Publisher) Close(ctx context.Context) error {
	if p.sender != nil {
		if err := p.sender.Close(ctx); err != nil {
			return errors.Wrap(err, "failed to close Service Bus sender")
		}
	}
	if p.client != nil {
		return errors.Wrap(p.client.Close(ctx), "failed to close Service Bus client")
	}
	return nil
}
