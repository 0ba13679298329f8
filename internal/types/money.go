// README: Common money value object used across modules.
package types

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money is an amount rounded to cents in one currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney rounds v half away from zero to two decimal places.
func NewMoney(v float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(v).Round(2), Currency: currency}
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}
}

func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

func (m Money) IsZero() bool { return m.Amount.IsZero() }

// String renders the amount with space-grouped thousands and a decimal
// comma, e.g. "1 234,50 EUR".
func (m Money) String() string {
	s := humanize.FormatFloat("# ###,##", m.Amount.InexactFloat64())
	if m.Currency == "" {
		return s
	}
	return s + " " + m.Currency
}
