package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultYears is the horizon of an offers file that does not set one.
const DefaultYears = 4

// DefaultPaydays are the days of the month salary is paid.
func DefaultPaydays() []int { return []int{1, 15} }

// Granularity controls how the horizon is cut into output points.
type Granularity string

const (
	Monthly Granularity = "monthly"
	Annual  Granularity = "annual"
)

// PeriodsPerYear returns how many points one year produces.
func (g Granularity) PeriodsPerYear() (int, error) {
	switch g {
	case Monthly, "":
		return 12, nil
	case Annual:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: granularity %q must be monthly or annual", ErrInvalidInput, string(g))
	}
}

// SeriesKind names one plotted quantity of an offer.
type SeriesKind string

const (
	SeriesCash   SeriesKind = "cash"
	SeriesEquity SeriesKind = "equity"
	SeriesTotal  SeriesKind = "total"
	SeriesTax    SeriesKind = "tax"
)

// AllSeries lists the series kinds in data-column order.
func AllSeries() []SeriesKind {
	return []SeriesKind{SeriesCash, SeriesEquity, SeriesTotal, SeriesTax}
}

// DefaultSeries is plotted when the comparison does not pick any.
func DefaultSeries() []SeriesKind { return []SeriesKind{SeriesCash, SeriesTotal} }

// IncomeKind classifies an income event.
type IncomeKind string

const (
	IncomeSalary  IncomeKind = "salary"
	IncomeBonus   IncomeKind = "bonus"
	IncomeSigning IncomeKind = "signing"
	IncomeVesting IncomeKind = "vesting"
)

// IsEquity reports whether the income comes from an equity grant.
func (k IncomeKind) IsEquity() bool { return k == IncomeVesting }

// IncomeEvent is a single gross payment.
type IncomeEvent struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Kind   IncomeKind      `json:"kind"`
}

// Comparison is the caller's complete, immutable description of a run.
type Comparison struct {
	Title     string    `yaml:"title,omitempty" json:"title,omitempty"`
	StartDate time.Time `yaml:"start_date" json:"start_date"`
	// NoTaxes reports gross income as net; taxes are on by default.
	NoTaxes bool `yaml:"no_taxes,omitempty" json:"no_taxes,omitempty"`
	// NoAMT skips the alternative minimum tax override.
	NoAMT bool `yaml:"no_amt,omitempty" json:"no_amt,omitempty"`
	// ShowThousands labels the plot in thousands of dollars instead of dollars.
	ShowThousands bool `yaml:"show_thousands,omitempty" json:"show_thousands,omitempty"`
	// HideAmounts removes tick labels so only relative values are visible.
	HideAmounts bool        `yaml:"hide_amounts,omitempty" json:"hide_amounts,omitempty"`
	Offers      []Offer     `yaml:"offers" json:"offers"`
	Years       int         `yaml:"years,omitempty" json:"years,omitempty"`
	Granularity Granularity `yaml:"granularity,omitempty" json:"granularity,omitempty"`
	Paydays     []int       `yaml:"paydays,omitempty" json:"paydays,omitempty"`
	// AlreadyEarnedFirstYear is income earned earlier in the starting
	// calendar year; it moves the first year up the brackets without being plotted.
	AlreadyEarnedFirstYear decimal.Decimal `yaml:"already_earned_first_year,omitempty" json:"already_earned_first_year,omitempty"`
	AlreadyEarnedState     string          `yaml:"already_earned_state,omitempty" json:"already_earned_state,omitempty"`
	Series                 []SeriesKind    `yaml:"series,omitempty" json:"series,omitempty"`
}

// WithDefaults returns a copy with unset optional fields filled in. The
// horizon is not optional.
func (c Comparison) WithDefaults() Comparison {
	if c.Granularity == "" {
		c.Granularity = Monthly
	}
	if len(c.Paydays) == 0 {
		c.Paydays = DefaultPaydays()
	}
	if len(c.Series) == 0 {
		c.Series = DefaultSeries()
	}
	return c
}

// SeriesPoint holds cumulative amounts at the end of one period.
// Total is cumulative net income (cash plus equity, after tax).
type SeriesPoint struct {
	Date   time.Time       `json:"date"`
	Cash   decimal.Decimal `json:"cash"`
	Equity decimal.Decimal `json:"equity"`
	Total  decimal.Decimal `json:"total"`
	Tax    decimal.Decimal `json:"tax"`
}

// Value returns the cumulative amount of the given series kind.
func (p SeriesPoint) Value(kind SeriesKind) decimal.Decimal {
	switch kind {
	case SeriesCash:
		return p.Cash
	case SeriesEquity:
		return p.Equity
	case SeriesTax:
		return p.Tax
	default:
		return p.Total
	}
}

// OfferSeries is the projected trajectory of one offer.
type OfferSeries struct {
	Name   string        `json:"name"`
	State  string        `json:"state"`
	Color  string        `json:"color"`
	Points []SeriesPoint `json:"points"`
}

// Final returns the last point, or a zero point for an empty series.
func (s OfferSeries) Final() SeriesPoint {
	if len(s.Points) == 0 {
		return SeriesPoint{Cash: decimal.Zero, Equity: decimal.Zero, Total: decimal.Zero, Tax: decimal.Zero}
	}
	return s.Points[len(s.Points)-1]
}

// ComparisonResult is everything a formatter needs to render a comparison.
type ComparisonResult struct {
	Title         string        `json:"title,omitempty"`
	StartDate     time.Time     `json:"start_date"`
	Years         int           `json:"years"`
	Granularity   Granularity   `json:"granularity"`
	TaxesEnabled  bool          `json:"taxes_enabled"`
	ShowThousands bool          `json:"show_thousands"`
	HideAmounts   bool          `json:"hide_amounts"`
	Series        []SeriesKind  `json:"series"`
	Offers        []OfferSeries `json:"offers"`
}
