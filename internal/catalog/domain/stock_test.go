package domain

import (
	"errors"
	"testing"
)

func TestStockAdd(t *testing.T) {
	s := EmptyStock()
	if err := s.Add(10, "NF-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Quantity() != 10 {
		t.Errorf("expected quantity 10, got %d", s.Quantity())
	}
	if len(s.Movements()) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(s.Movements()))
	}
	if s.Movements()[0].Quantity != 10 {
		t.Errorf("expected movement quantity 10, got %d", s.Movements()[0].Quantity)
	}
	if s.Movements()[0].Reference != "NF-001" {
		t.Errorf("expected reference NF-001, got %q", s.Movements()[0].Reference)
	}
}

func TestStockAddRejectsInvalidInput(t *testing.T) {
	s := EmptyStock()
	if err := s.Add(0, "NF-001"); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if err := s.Add(-5, "NF-001"); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for negative, got %v", err)
	}
	if err := s.Add(5, "   "); !errors.Is(err, ErrInvoiceRequired) {
		t.Errorf("expected ErrInvoiceRequired, got %v", err)
	}
	if s.Quantity() != 0 || len(s.Movements()) != 0 {
		t.Error("rejected adds must not mutate the ledger")
	}
}

func TestStockRemove(t *testing.T) {
	s := EmptyStock()
	_ = s.Add(10, "NF-001")

	if err := s.Remove(4, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Quantity() != 6 {
		t.Errorf("expected quantity 6, got %d", s.Quantity())
	}
	if len(s.Movements()) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(s.Movements()))
	}
	if s.Movements()[1].Quantity != -4 {
		t.Errorf("expected negative movement -4, got %d", s.Movements()[1].Quantity)
	}
}

func TestStockRemoveInsufficient(t *testing.T) {
	s := EmptyStock()
	_ = s.Add(3, "NF-001")

	if err := s.Remove(4, "order-1"); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if s.Quantity() != 3 {
		t.Errorf("failed remove must not change quantity, got %d", s.Quantity())
	}
}

func TestStockRemoveRejectsInvalidQuantity(t *testing.T) {
	s := EmptyStock()
	_ = s.Add(3, "NF-001")

	for _, qty := range []int{0, -1} {
		if err := s.Remove(qty, "order-1"); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestQuantityEqualsMovementSum(t *testing.T) {
	s := EmptyStock()
	_ = s.Add(10, "NF-001")
	_ = s.Add(5, "NF-002")
	_ = s.Remove(7, "order-1")
	_ = s.Remove(20, "order-2") // rejected, no movement
	_ = s.Remove(8, "order-3")

	sum := 0
	for _, m := range s.Movements() {
		sum += m.Quantity
	}
	if sum != s.Quantity() {
		t.Errorf("quantity %d != movement sum %d", s.Quantity(), sum)
	}
	if s.Quantity() < 0 {
		t.Errorf("quantity went negative: %d", s.Quantity())
	}
	if s.Quantity() != 0 {
		t.Errorf("expected final quantity 0, got %d", s.Quantity())
	}
}

func TestStockHas(t *testing.T) {
	s := EmptyStock()
	_ = s.Add(5, "NF-001")

	if !s.Has(5) {
		t.Error("expected Has(5) true at quantity 5")
	}
	if s.Has(6) {
		t.Error("expected Has(6) false at quantity 5")
	}
	if err := s.Remove(5, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Has(5) {
		t.Error("expected Has(5) false after removing all 5")
	}
}

func TestPendingMovementsTrackOnlyNewEntries(t *testing.T) {
	s := RestoreStock(10, []StockMovement{{Quantity: 10, Reference: "NF-001"}})
	if len(s.PendingMovements()) != 0 {
		t.Fatalf("expected no pending movements after restore, got %d", len(s.PendingMovements()))
	}
	if err := s.Remove(3, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(5, "NF-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pending := s.PendingMovements()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending movements, got %d", len(pending))
	}
	if pending[0].Quantity != -3 || pending[1].Quantity != 5 {
		t.Errorf("unexpected pending quantities: %d, %d", pending[0].Quantity, pending[1].Quantity)
	}
	if len(s.Movements()) != 3 {
		t.Errorf("expected full log of 3 movements, got %d", len(s.Movements()))
	}
}
