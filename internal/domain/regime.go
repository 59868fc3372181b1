package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one step of a progressive schedule: income above Threshold is
// taxed at Rate until the next bracket's threshold.
type Bracket struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// Exemption is an amount excluded from income that phases out linearly
// between PhaseOutBegin and PhaseOutEnd. A zero PhaseOutEnd disables the phase-out.
type Exemption struct {
	Amount        decimal.Decimal `json:"amount"`
	PhaseOutBegin decimal.Decimal `json:"phase_out_begin"`
	PhaseOutEnd   decimal.Decimal `json:"phase_out_end"`
}

// Effective returns the exemption left after the phase-out at income.
func (e Exemption) Effective(income decimal.Decimal) decimal.Decimal {
	width := e.PhaseOutEnd.Sub(e.PhaseOutBegin)
	if !width.IsPositive() {
		return e.Amount
	}
	phaseOut := income.Sub(e.PhaseOutBegin).Div(width)
	phaseOut = decimal.Min(decimal.Max(phaseOut, decimal.Zero), decimal.NewFromInt(1))
	return e.Amount.Mul(decimal.NewFromInt(1).Sub(phaseOut))
}

// PayrollTax is a flat tax on wages up to WageCap. A zero cap means uncapped.
type PayrollTax struct {
	Name    string          `json:"name"`
	Rate    decimal.Decimal `json:"rate"`
	WageCap decimal.Decimal `json:"wage_cap"`
}

// AMTSchedule is the alternative minimum tax: its own exemption and rates,
// applied to income without the regular deductions.
type AMTSchedule struct {
	Exemption Exemption `json:"exemption"`
	Brackets  []Bracket `json:"brackets"`
}

// TaxRegime is the complete tax table of one jurisdiction for one year.
type TaxRegime struct {
	Jurisdiction      string          `json:"jurisdiction"`
	Year              int             `json:"year"`
	Brackets          []Bracket       `json:"brackets"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	PersonalExemption Exemption       `json:"personal_exemption"`
	Payroll           []PayrollTax    `json:"payroll"`
	AMT               *AMTSchedule    `json:"amt,omitempty"`
}

// Clone returns a deep copy so callers cannot alter shared tables.
func (r TaxRegime) Clone() TaxRegime {
	out := r
	out.Brackets = append([]Bracket(nil), r.Brackets...)
	out.Payroll = append([]PayrollTax(nil), r.Payroll...)
	if r.AMT != nil {
		amt := *r.AMT
		amt.Brackets = append([]Bracket(nil), r.AMT.Brackets...)
		out.AMT = &amt
	}
	return out
}

// Validate enforces thresholds strictly increasing from zero and
// non-negative rates on every schedule of the regime.
func (r TaxRegime) Validate() error {
	if err := validateBrackets(r.Brackets); err != nil {
		return fmt.Errorf("%s income tax: %w", r.Jurisdiction, err)
	}
	if r.AMT != nil {
		if err := validateBrackets(r.AMT.Brackets); err != nil {
			return fmt.Errorf("%s AMT: %w", r.Jurisdiction, err)
		}
	}
	for _, p := range r.Payroll {
		if p.Rate.IsNegative() || p.WageCap.IsNegative() {
			return fmt.Errorf("%w: %s %s payroll tax has a negative rate or cap", ErrInvalidInput, r.Jurisdiction, p.Name)
		}
	}
	return nil
}

func validateBrackets(brackets []Bracket) error {
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: bracket %d has negative rate %s", ErrInvalidInput, i, b.Rate)
		}
		if i == 0 {
			if !b.Threshold.IsZero() {
				return fmt.Errorf("%w: first bracket must start at zero, got %s", ErrInvalidInput, b.Threshold)
			}
			continue
		}
		if !b.Threshold.GreaterThan(brackets[i-1].Threshold) {
			return fmt.Errorf("%w: bracket thresholds must be strictly increasing (%s after %s)",
				ErrInvalidInput, b.Threshold, brackets[i-1].Threshold)
		}
	}
	return nil
}
