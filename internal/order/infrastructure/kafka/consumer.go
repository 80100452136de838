package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/alerquim/commerce-platform/internal/events"
	"github.com/alerquim/commerce-platform/internal/order/application"
	"github.com/alerquim/commerce-platform/pkg/tracing"
)

// ValidationResponseConsumer listens for stock validation responses and
// resolves the matching pending validation. Malformed payloads are logged and
// committed; the waiting caller will time out instead. Orphan responses
// (unknown or already resolved request ids, expected under at-least-once
// delivery) are logged at info and dropped.
type ValidationResponseConsumer struct {
	log         *slog.Logger
	reader      *kafka.Reader
	validations *application.ValidationManager
	tracer      trace.Tracer
}

func NewValidationResponseConsumer(log *slog.Logger, brokers []string, group string, validations *application.ValidationManager) *ValidationResponseConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   events.TopicStockValidationResponse,
		GroupID: group,
	})
	return &ValidationResponseConsumer{
		log:         log,
		reader:      r,
		validations: validations,
		tracer:      otel.Tracer("order-validation-consumer"),
	}
}

func (c *ValidationResponseConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		_, span := c.tracer.Start(msgCtx, "ConsumeStockValidationResponse")

		var resp events.StockValidationResponse
		if err := json.Unmarshal(msg.Value, &resp); err != nil {
			c.log.Warn("dropping malformed validation response", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}
		if resp.RequestID == uuid.Nil {
			c.log.Warn("dropping validation response without request id")
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if c.validations.Complete(resp.RequestID, resp.IsValid, resp.Message) {
			c.log.Info("validation response delivered", "request_id", resp.RequestID, "is_valid", resp.IsValid)
		} else {
			c.log.Info("orphan validation response ignored", "request_id", resp.RequestID)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

// CancellationConsumer applies catalog-initiated cancellations: when the
// decrement applier found the stock gone at apply time it publishes an
// order-cancelled trigger, and this consumer transitions the order.
type CancellationConsumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	svc    *application.Service
	tracer trace.Tracer
}

func NewCancellationConsumer(log *slog.Logger, brokers []string, group string, svc *application.Service) *CancellationConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   events.TopicOrderCancelled,
		GroupID: group,
	})
	return &CancellationConsumer{
		log:    log,
		reader: r,
		svc:    svc,
		tracer: otel.Tracer("order-cancellation-consumer"),
	}
}

func (c *CancellationConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "ConsumeOrderCancelled")

		var ev events.OrderCancelled
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.log.Warn("dropping malformed cancellation", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		// Re-cancelling is expected on redelivery; log and move on.
		if err := c.svc.CancelOrder(msgCtx, ev.OrderID); err != nil {
			c.log.Warn("cancellation not applied", "order_id", ev.OrderID, "err", err)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}
