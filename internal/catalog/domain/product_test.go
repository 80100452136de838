package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustMoney(t *testing.T, v float64) Money {
	t.Helper()
	m, err := MoneyFromFloat(v)
	if err != nil {
		t.Fatalf("money from %v: %v", v, err)
	}
	return m
}

func TestNewProductValidation(t *testing.T) {
	price := mustMoney(t, 9.90)

	if _, err := NewProduct("", "desc", price); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if _, err := NewProduct("Widget", "  ", price); !errors.Is(err, ErrDescriptionRequired) {
		t.Errorf("expected ErrDescriptionRequired, got %v", err)
	}

	p, err := NewProduct("Widget", "a widget", price)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StockQuantity() != 0 {
		t.Errorf("new product must start with empty stock, got %d", p.StockQuantity())
	}
}

func TestMoneyRejectsNonPositive(t *testing.T) {
	if _, err := MoneyFromFloat(0); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice for zero, got %v", err)
	}
	if _, err := MoneyFromFloat(-1.5); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice for negative, got %v", err)
	}
}

func TestMoneyRounding(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(10.999))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "11.00" {
		t.Errorf("expected 11.00, got %s", m.String())
	}
}

func TestProductStockLifecycle(t *testing.T) {
	p, _ := NewProduct("Widget", "a widget", mustMoney(t, 5))

	if err := p.AddStock(8, "NF-100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.HasStock(8) || p.HasStock(9) {
		t.Errorf("unexpected HasStock result at quantity %d", p.StockQuantity())
	}
	if err := p.RemoveStock(3, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StockQuantity() != 5 {
		t.Errorf("expected 5 on hand, got %d", p.StockQuantity())
	}
	if len(p.StockMovements()) != 2 {
		t.Errorf("expected 2 movements, got %d", len(p.StockMovements()))
	}
}

func TestProductUpdateValidation(t *testing.T) {
	p, _ := NewProduct("Widget", "a widget", mustMoney(t, 5))

	if err := p.Update("", "desc", mustMoney(t, 6)); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if err := p.Update("Gadget", "a gadget", mustMoney(t, 6)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Gadget" {
		t.Errorf("expected updated name, got %q", p.Name)
	}
}
