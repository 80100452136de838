package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/alerquim/commerce-platform/pkg/tracing"
)

// Publisher writes JSON events to per-event topics. Messages are keyed by
// aggregate or request id so all traffic for one key stays on one partition.
type Publisher struct {
	log    *slog.Logger
	writer *kafka.Writer
}

func NewPublisher(log *slog.Logger, brokers []string) *Publisher {
	return &Publisher{
		log: log,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, topic string, key uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key.String()),
		Value:   payload,
		Headers: tracing.InjectKafkaHeaders(ctx, nil),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("publish failed", "topic", topic, "key", key, "err", err)
		return err
	}
	p.log.Debug("event published", "topic", topic, "key", key)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
