package domain

import "github.com/shopspring/decimal"

// Money is a positive amount rounded to two decimal places.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if !amount.IsPositive() {
		return Money{}, ErrInvalidPrice
	}
	return Money{amount: amount.Round(2)}, nil
}

func MoneyFromFloat(v float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(v))
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }

func (m Money) String() string { return m.amount.StringFixed(2) }
