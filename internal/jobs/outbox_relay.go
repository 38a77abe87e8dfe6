package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultBatchSize is how many outbox messages one tick relays at most.
const DefaultBatchSize = 100

// OutboxRelay moves stored domain events to the publisher and keeps the
// booking search index in step. Messages are handled oldest first; the
// first failure ends the batch so a booking's status change never overtakes
// its creation. A message published but not yet stamped is sent again on
// the next tick.
type OutboxRelay struct {
	outbox    ports.Outbox
	publisher ports.EventPublisher
	index     ports.BookingIndex
	batchSize int
	now       func() time.Time
	logger    *zap.Logger
}

func NewOutboxRelay(
	outbox ports.Outbox,
	publisher ports.EventPublisher,
	index ports.BookingIndex,
	batchSize int,
	logger *zap.Logger,
) *OutboxRelay {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		index:     index,
		batchSize: batchSize,
		now:       time.Now,
		logger:    logger.With(zap.String("component", "outbox_relay")),
	}
}

// RelayOnce handles one batch and returns how many messages it completed.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	pending, err := r.outbox.Pending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	for i, msg := range pending {
		if err = r.relay(ctx, msg); err != nil {
			return i, fmt.Errorf("relay %s %s: %w", msg.Type, msg.ID, err)
		}
	}
	return len(pending), nil
}

func (r *OutboxRelay) relay(ctx context.Context, msg ports.OutboxMessage) error {
	if err := r.publisher.Publish(ctx, msg); err != nil {
		return err
	}
	if err := r.project(ctx, msg); err != nil {
		return err
	}
	if err := r.outbox.MarkPublished(ctx, msg.ID, r.now()); err != nil {
		return err
	}

	r.logger.Debug("outbox message relayed",
		zap.String("message_id", msg.ID),
		zap.String("type", msg.Type),
		zap.String("aggregate_id", msg.AggregateID))
	return nil
}

// project applies booking messages to the search index.
func (r *OutboxRelay) project(ctx context.Context, msg ports.OutboxMessage) error {
	switch msg.Type {
	case ports.BookingCreatedMessage:
		var doc ports.BookingDocument
		if err := json.Unmarshal(msg.Payload, &doc); err != nil {
			return fmt.Errorf("decode booking document: %w", err)
		}
		return r.index.Index(ctx, doc)

	case ports.BookingStatusChangedMessage:
		var change ports.BookingStatusChange
		if err := json.Unmarshal(msg.Payload, &change); err != nil {
			return fmt.Errorf("decode status change: %w", err)
		}
		return r.index.UpdateStatus(ctx, change.BookingID, change.To, change.ChangedAt)
	}
	return nil
}
