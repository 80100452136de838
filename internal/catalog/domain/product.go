package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is the catalog aggregate root. Its stock ledger is mutated only
// through AddStock and RemoveStock so the movement log stays consistent with
// the quantity on hand.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	CreatedAt   time.Time
	UpdatedAt   time.Time

	stock Stock
}

func NewProduct(name, description string, price Money) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
		stock:       EmptyStock(),
	}, nil
}

// RestoreProduct rehydrates a persisted product.
func RestoreProduct(id uuid.UUID, name, description string, price Money, quantity int, movements []StockMovement, createdAt, updatedAt time.Time) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		stock:       RestoreStock(quantity, movements),
	}
}

func (p *Product) Update(name, description string, price Money) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	p.Name = name
	p.Description = description
	p.Price = price
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Product) StockQuantity() int { return p.stock.Quantity() }

func (p *Product) StockMovements() []StockMovement { return p.stock.Movements() }

// PendingMovements returns the movements recorded since the aggregate was
// loaded. The repository persists exactly these on Update.
func (p *Product) PendingMovements() []StockMovement { return p.stock.PendingMovements() }

func (p *Product) HasStock(quantity int) bool { return p.stock.Has(quantity) }

func (p *Product) AddStock(quantity int, invoice string) error {
	if err := p.stock.Add(quantity, invoice); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Product) RemoveStock(quantity int, reference string) error {
	if err := p.stock.Remove(quantity, reference); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}
