package domain

import (
	"strings"
	"time"
)

// StockMovement is one entry of the append-only movement log. Quantity is
// signed: positive for additions, negative for decrements. Magnitude must be
// positive and every movement references a document (an invoice for
// additions, an order id for decrements).
type StockMovement struct {
	Quantity  int
	Reference string
	At        time.Time
}

func newMovement(quantity int, reference string) (StockMovement, error) {
	if quantity == 0 {
		return StockMovement{}, ErrInvalidQuantity
	}
	if strings.TrimSpace(reference) == "" {
		return StockMovement{}, ErrInvoiceRequired
	}
	return StockMovement{Quantity: quantity, Reference: reference, At: time.Now().UTC()}, nil
}

// Stock tracks quantity on hand plus its movement log. Quantity always equals
// the sum of movement quantities and never goes negative. pending holds the
// movements appended since the aggregate was loaded, so persistence can write
// just those.
type Stock struct {
	quantity  int
	movements []StockMovement
	pending   []StockMovement
}

func EmptyStock() Stock { return Stock{} }

// RestoreStock rebuilds a ledger from persisted movements.
func RestoreStock(quantity int, movements []StockMovement) Stock {
	return Stock{quantity: quantity, movements: movements}
}

func (s *Stock) Quantity() int { return s.quantity }

func (s *Stock) Movements() []StockMovement { return s.movements }

// PendingMovements returns the movements appended since load.
func (s *Stock) PendingMovements() []StockMovement { return s.pending }

func (s *Stock) Has(quantity int) bool { return s.quantity >= quantity }

func (s *Stock) Add(quantity int, invoice string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	m, err := newMovement(quantity, invoice)
	if err != nil {
		return err
	}
	s.quantity += quantity
	s.movements = append(s.movements, m)
	s.pending = append(s.pending, m)
	return nil
}

func (s *Stock) Remove(quantity int, reference string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.quantity < quantity {
		return ErrInsufficientStock
	}
	m, err := newMovement(-quantity, reference)
	if err != nil {
		return err
	}
	s.quantity -= quantity
	s.movements = append(s.movements, m)
	s.pending = append(s.pending, m)
	return nil
}
