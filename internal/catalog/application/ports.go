package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/alerquim/commerce-platform/internal/catalog/domain"
)

type ProductRepository interface {
	Add(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock performs check-and-subtract atomically for one product
	// and records the movement, so two concurrent decrements can never both
	// pass a stale sufficiency check. Returns domain.ErrInsufficientStock or
	// domain.ErrProductNotFound when the decrement cannot apply.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int, reference string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, key uuid.UUID, event any) error
}
