package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewOrderValidation(t *testing.T) {
	if _, err := NewOrder("", "seller"); !errors.Is(err, ErrCustomerDocumentRequired) {
		t.Errorf("expected ErrCustomerDocumentRequired, got %v", err)
	}
	if _, err := NewOrder("12345678900", "  "); !errors.Is(err, ErrSellerRequired) {
		t.Errorf("expected ErrSellerRequired, got %v", err)
	}

	o, err := NewOrder("12345678900", "seller")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != StatusCreated {
		t.Errorf("expected status created, got %s", o.Status)
	}
}

func TestOrderItemQuantityMustBePositive(t *testing.T) {
	for _, qty := range []int{0, -2} {
		if _, err := NewOrderItem(uuid.New(), qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestOrderRejectsDuplicateProduct(t *testing.T) {
	o, _ := NewOrder("12345678900", "seller")
	productID := uuid.New()

	item, _ := NewOrderItem(productID, 1)
	if err := o.AddItem(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup, _ := NewOrderItem(productID, 3)
	if err := o.AddItem(dup); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("expected ErrDuplicateItem, got %v", err)
	}
	if len(o.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(o.Items))
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	o, _ := NewOrder("12345678900", "seller")

	if err := o.MarkAsCancelled(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.MarkAsCancelled(); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("expected ErrAlreadyCancelled, got %v", err)
	}
	if o.Status != StatusCancelled {
		t.Errorf("expected status cancelled, got %s", o.Status)
	}
}

func TestCompleteOnlyFromCreated(t *testing.T) {
	o, _ := NewOrder("12345678900", "seller")
	if err := o.MarkAsCompleted(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.MarkAsCompleted(); !errors.Is(err, ErrNotCompletable) {
		t.Errorf("expected ErrNotCompletable, got %v", err)
	}

	cancelled, _ := NewOrder("12345678900", "seller")
	_ = cancelled.MarkAsCancelled()
	if err := cancelled.MarkAsCompleted(); !errors.Is(err, ErrNotCompletable) {
		t.Errorf("expected ErrNotCompletable on cancelled order, got %v", err)
	}
}
