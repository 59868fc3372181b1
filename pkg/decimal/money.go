package decimal

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Sum adds up amounts.
func Sum(amounts ...decimal.Decimal) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Money{total}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Thousands expresses the amount in thousands of dollars.
func (m Money) Thousands() Money {
	return Money{m.Decimal.Div(thousand)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String returns the plain fixed-point form used in data files
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as dollars with thousands separators, e.g. $1,234.57.
func (m Money) Format() string {
	return m.sign() + "$" + humanize.FormatFloat("#,###.##", m.Round().Abs().InexactFloat64())
}

// FormatThousands renders the amount in whole thousands, e.g. $1,235k.
func (m Money) FormatThousands() string {
	return m.sign() + "$" + humanize.Comma(m.Abs().Div(thousand).Round(0).IntPart()) + "k"
}

func (m Money) sign() string {
	if m.IsNegative() {
		return "-"
	}
	return ""
}
