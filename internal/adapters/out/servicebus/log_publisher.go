package servicebus

import (
	"context"

	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// LogPublisher stands in for Publisher when no Service Bus is configured.
// Messages are logged and count as published.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(zap.String("component", "log_publisher"))}
}

func (p *LogPublisher) Publish(_ context.Context, msg ports.OutboxMessage) error {
	p.logger.Debug("event published",
		zap.String("message_id", msg.ID),
		zap.String("type", msg.Type),
		zap.String("aggregate_id", msg.AggregateID))
	return nil
}
