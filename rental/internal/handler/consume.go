package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type invalidateFunc func(ctx context.Context) error

// Consumer drops the station snapshot whenever any replica commits a
// rental or admin change.
type Consumer struct {
	invalidate invalidateFunc
	log        *zap.Logger
	ready      chan bool
}

func NewConsumer(invalidate invalidateFunc, log *zap.Logger) *Consumer {
	return &Consumer{
		invalidate: invalidate,
		log:        log.Named("consumer"),
		ready:      make(chan bool),
	}
}

// Ready is closed once the first session is set up.
func (consumer *Consumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			consumer.handle(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (consumer *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	var event kafka.RentalEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		consumer.log.Error("decode event", zap.Error(err))
		return
	}
	if err := consumer.invalidate(ctx); err != nil {
		// the snapshot expires on its own
		consumer.log.Warn("invalidate stations", zap.String("event", event.ID), zap.Error(err))
		return
	}
	consumer.log.Debug("event consumed",
		zap.String("id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Int("station", event.StationID),
		zap.Time("timestamp", message.Timestamp))
}
