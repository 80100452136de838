package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/alerquim/commerce-platform/internal/catalog/application"
	"github.com/alerquim/commerce-platform/internal/events"
	"github.com/alerquim/commerce-platform/pkg/idempotency"
	"github.com/alerquim/commerce-platform/pkg/tracing"
)

// ValidationRequestConsumer is the validation responder: it evaluates each
// stock validation request against the ledger and publishes the response.
// Malformed or empty-item requests are dropped with a warning and never
// retried; the requester will time out.
type ValidationRequestConsumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	svc    *application.Service
	tracer trace.Tracer
}

func NewValidationRequestConsumer(log *slog.Logger, brokers []string, group string, svc *application.Service) *ValidationRequestConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   events.TopicStockValidationRequest,
		GroupID: group,
	})
	return &ValidationRequestConsumer{
		log:    log,
		reader: r,
		svc:    svc,
		tracer: otel.Tracer("catalog-validation-consumer"),
	}
}

func (c *ValidationRequestConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "ConsumeStockValidationRequest")

		var req events.StockValidationRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			c.log.Warn("dropping malformed validation request", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}
		if len(req.Items) == 0 {
			c.log.Warn("dropping validation request without items", "request_id", req.RequestID)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.svc.RespondToValidation(msgCtx, req.RequestID, req.Items); err != nil {
			c.log.Error("validation response not published", "request_id", req.RequestID, "err", err)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

// OrderCreatedConsumer is the decrement applier. Stock is re-checked at apply
// time because validation and decrement are separated by network latency and
// other orders may have consumed the stock in between; when the re-check
// fails it publishes the order-cancelled trigger instead of decrementing.
//
// Delivery is at least once. With a dedup store configured, redelivered
// offsets are skipped before any decrement; without one, a redelivery
// decrements again. Business-level dedup of producer-side duplicates remains
// an open extension point.
type OrderCreatedConsumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	svc    *application.Service
	dedup  *idempotency.Store
	tracer trace.Tracer
}

// NewOrderCreatedConsumer builds the applier. dedup may be nil to disable
// redelivery skipping.
func NewOrderCreatedConsumer(log *slog.Logger, brokers []string, group string, svc *application.Service, dedup *idempotency.Store) *OrderCreatedConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   events.TopicOrderCreated,
		GroupID: group,
	})
	return &OrderCreatedConsumer{
		log:    log,
		reader: r,
		svc:    svc,
		dedup:  dedup,
		tracer: otel.Tracer("catalog-order-consumer"),
	}
}

func (c *OrderCreatedConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if c.dedup != nil {
			key := c.dedup.OffsetKey(msg.Topic, msg.Partition, msg.Offset)
			seen, err := c.dedup.Seen(ctx, key)
			if err != nil {
				c.log.Error("dedup check failed", "key", key, "err", err)
			} else if seen {
				c.log.Info("duplicate delivery skipped", "key", key)
				_ = c.reader.CommitMessages(ctx, msg)
				continue
			}
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "ConsumeOrderCreated")

		var ev events.OrderCreated
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.log.Warn("dropping malformed order created event", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}
		if len(ev.Items) == 0 {
			c.log.Warn("dropping order created event without items", "order_id", ev.OrderID)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.svc.ApplyOrderCreated(msgCtx, ev.OrderID, ev.Items); err != nil {
			c.log.Error("order created event not applied", "order_id", ev.OrderID, "err", err)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}
