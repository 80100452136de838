package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/alerquim/commerce-platform/internal/events"
	"github.com/alerquim/commerce-platform/internal/order/domain"
	"github.com/alerquim/commerce-platform/pkg/metrics"
)

const DefaultValidationTimeout = 10 * time.Second

// ErrValidationTimeout is returned when no stock validation response arrives
// within the deadline. The request is not retried; the caller may.
var ErrValidationTimeout = errors.New("timed out waiting for stock validation, try again")

// StockRejectedError carries the catalog's reason for refusing an order.
type StockRejectedError struct {
	Reason string
}

func (e *StockRejectedError) Error() string {
	return fmt.Sprintf("stock validation failed: %s", e.Reason)
}

type CreateOrderRequest struct {
	CustomerDocument string
	SellerName       string
	Items            []events.OrderItem
}

type OrderView struct {
	ID               uuid.UUID          `json:"id"`
	CustomerDocument string             `json:"customerDocument"`
	SellerName       string             `json:"sellerName"`
	Status           string             `json:"status"`
	Items            []events.OrderItem `json:"items"`
}

// Service drives the stock validation saga: publish a validation request,
// wait for the correlated response, then persist and announce the order, or
// abort without side effects.
type Service struct {
	log         *slog.Logger
	repo        OrderRepository
	publisher   EventPublisher
	validations *ValidationManager
	timeout     time.Duration
	tracer      trace.Tracer
}

func NewService(log *slog.Logger, repo OrderRepository, publisher EventPublisher, validations *ValidationManager) *Service {
	return &Service{
		log:         log,
		repo:        repo,
		publisher:   publisher,
		validations: validations,
		timeout:     DefaultValidationTimeout,
		tracer:      otel.Tracer("order-service"),
	}
}

// WithValidationTimeout overrides the response deadline. Zero or negative
// values are ignored.
func (s *Service) WithValidationTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "CreateOrder")
	defer span.End()

	order, err := domain.NewOrder(req.CustomerDocument, req.SellerName)
	if err != nil {
		return OrderView{}, err
	}
	if len(req.Items) == 0 {
		return OrderView{}, domain.ErrNoItems
	}
	for _, item := range req.Items {
		orderItem, err := domain.NewOrderItem(item.ProductID, item.Quantity)
		if err != nil {
			return OrderView{}, err
		}
		if err := order.AddItem(orderItem); err != nil {
			return OrderView{}, err
		}
	}

	requestID := uuid.New()
	wait, err := s.validations.Begin(requestID)
	if err != nil {
		return OrderView{}, err
	}

	request := events.StockValidationRequest{RequestID: requestID, Items: req.Items}
	if err := s.publisher.Publish(ctx, events.TopicStockValidationRequest, requestID, request); err != nil {
		s.validations.Cancel(requestID)
		return OrderView{}, fmt.Errorf("publish validation request: %w", err)
	}
	s.log.Info("stock validation requested", "request_id", requestID, "items", len(req.Items))

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case result := <-wait:
		if !result.Valid {
			metrics.OrdersRejected.Inc()
			s.log.Info("stock validation rejected", "request_id", requestID, "reason", result.Message)
			return OrderView{}, &StockRejectedError{Reason: result.Message}
		}
		s.log.Info("stock validation confirmed", "request_id", requestID)
	case <-timer.C:
		s.validations.Cancel(requestID)
		metrics.OrdersTimedOut.Inc()
		s.log.Warn("stock validation timed out", "request_id", requestID, "timeout", s.timeout)
		return OrderView{}, ErrValidationTimeout
	case <-ctx.Done():
		s.validations.Cancel(requestID)
		return OrderView{}, ctx.Err()
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return OrderView{}, fmt.Errorf("save order: %w", err)
	}

	created := events.OrderCreated{
		OrderID:          order.ID,
		CustomerDocument: order.CustomerDocument,
		SellerName:       order.SellerName,
		Items:            req.Items,
	}
	if err := s.publisher.Publish(ctx, events.TopicOrderCreated, order.ID, created); err != nil {
		return OrderView{}, fmt.Errorf("publish order created: %w", err)
	}
	metrics.OrdersCreated.Inc()
	s.log.Info("order created", "order_id", order.ID)

	return viewOf(order), nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (OrderView, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return viewOf(order), nil
}

func (s *Service) ListOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewOf(o))
	}
	return views, nil
}

// CancelOrder transitions an order to cancelled and announces it. A missing
// order is a silent no-op: the cancellation trigger may arrive for an order
// this instance never persisted.
func (s *Service) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			s.log.Info("cancel for unknown order ignored", "order_id", id)
			return nil
		}
		return err
	}
	if err := order.MarkAsCancelled(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("save cancelled order: %w", err)
	}
	if err := s.publisher.Publish(ctx, events.TopicOrderCancelled, order.ID, events.OrderCancelled{OrderID: order.ID}); err != nil {
		return fmt.Errorf("publish order cancelled: %w", err)
	}
	metrics.OrdersCancelled.Inc()
	s.log.Info("order cancelled", "order_id", id)
	return nil
}

func viewOf(o *domain.Order) OrderView {
	items := make([]events.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, events.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderView{
		ID:               o.ID,
		CustomerDocument: o.CustomerDocument,
		SellerName:       o.SellerName,
		Status:           string(o.Status),
		Items:            items,
	}
}
