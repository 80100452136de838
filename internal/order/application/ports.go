package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alerquim/commerce-platform/internal/order/domain"
)

// ErrOrderNotFound is returned by repositories when no order has the id.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Save(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

// EventPublisher is the fire-and-forget side of the message channel. Delivery
// is at least once; there is no response and no cross-topic ordering.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key uuid.UUID, event any) error
}
