package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var (
	ErrCustomerDocumentRequired = errors.New("customer document is required")
	ErrSellerRequired           = errors.New("seller name is required")
	ErrNoItems                  = errors.New("order must have at least one item")
	ErrInvalidQuantity          = errors.New("quantity must be greater than zero")
	ErrDuplicateItem            = errors.New("product already added to order")
	ErrAlreadyCancelled         = errors.New("order already cancelled")
	ErrNotCompletable           = errors.New("only created orders can be completed")
)

type OrderItem struct {
	ProductID uuid.UUID
	Quantity  int
}

func NewOrderItem(productID uuid.UUID, quantity int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	return OrderItem{ProductID: productID, Quantity: quantity}, nil
}

// Order is created only after the stock validation round trip confirmed every
// line item. A product appears at most once per order; cancelled is terminal.
type Order struct {
	ID               uuid.UUID
	CustomerDocument string
	SellerName       string
	Items            []OrderItem
	Status           OrderStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewOrder(customerDocument, sellerName string) (*Order, error) {
	if strings.TrimSpace(customerDocument) == "" {
		return nil, ErrCustomerDocumentRequired
	}
	if strings.TrimSpace(sellerName) == "" {
		return nil, ErrSellerRequired
	}
	now := time.Now().UTC()
	return &Order{
		ID:               uuid.New(),
		CustomerDocument: customerDocument,
		SellerName:       sellerName,
		Status:           StatusCreated,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (o *Order) AddItem(item OrderItem) error {
	for _, existing := range o.Items {
		if existing.ProductID == item.ProductID {
			return ErrDuplicateItem
		}
	}
	o.Items = append(o.Items, item)
	return nil
}

func (o *Order) MarkAsCancelled() error {
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (o *Order) MarkAsCompleted() error {
	if o.Status != StatusCreated {
		return ErrNotCompletable
	}
	o.Status = StatusCompleted
	o.UpdatedAt = time.Now().UTC()
	return nil
}
