package calculation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// BracketTax applies a progressive schedule: each slice of income between
// consecutive thresholds is taxed at that bracket's rate, and income above
// the last threshold is taxed at the top rate without bound.
func BracketTax(income decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	tax := decimal.Zero
	for i, b := range brackets {
		if income.LessThanOrEqual(b.Threshold) {
			break
		}
		upper := income
		if i+1 < len(brackets) && brackets[i+1].Threshold.LessThan(income) {
			upper = brackets[i+1].Threshold
		}
		tax = tax.Add(upper.Sub(b.Threshold).Mul(b.Rate))
	}
	return tax
}

// TaxableIncome is gross income less the personal exemption (after
// phase-out) and the standard deduction, floored at zero.
func TaxableIncome(income decimal.Decimal, regime domain.TaxRegime) decimal.Decimal {
	exemption := regime.PersonalExemption.Effective(income)
	return decimal.Max(decimal.Zero, income.Sub(exemption).Sub(regime.StandardDeduction))
}

// StandardTax is the regular income tax of the regime.
func StandardTax(income decimal.Decimal, regime domain.TaxRegime) decimal.Decimal {
	return BracketTax(TaxableIncome(income, regime), regime.Brackets)
}

// AlternativeMinimumTax applies the regime's AMT schedule to income less
// the phased-out AMT exemption. Regimes without AMT return zero.
func AlternativeMinimumTax(income decimal.Decimal, regime domain.TaxRegime) decimal.Decimal {
	if regime.AMT == nil {
		return decimal.Zero
	}
	base := decimal.Max(decimal.Zero, income.Sub(regime.AMT.Exemption.Effective(income)))
	return BracketTax(base, regime.AMT.Brackets)
}

// IncomeTax returns the annual income tax owed: the standard tax, or the
// AMT when it is larger and amtEnabled.
func IncomeTax(income decimal.Decimal, regime domain.TaxRegime, amtEnabled bool) (decimal.Decimal, error) {
	tax, _, err := incomeTax(income, regime, amtEnabled)
	return tax, err
}

func incomeTax(income decimal.Decimal, regime domain.TaxRegime, amtEnabled bool) (decimal.Decimal, bool, error) {
	if income.IsNegative() {
		return decimal.Zero, false, fmt.Errorf("%w: negative income %s", domain.ErrInvalidInput, income)
	}
	standard := StandardTax(income, regime)
	if !amtEnabled {
		return standard, false, nil
	}
	if amt := AlternativeMinimumTax(income, regime); amt.GreaterThan(standard) {
		return amt, true, nil
	}
	return standard, false, nil
}

// PayrollTax sums the regime's payroll taxes on wages, each capped at its
// wage base.
func PayrollTax(wages decimal.Decimal, regime domain.TaxRegime) decimal.Decimal {
	tax := decimal.Zero
	if !wages.IsPositive() {
		return tax
	}
	for _, p := range regime.Payroll {
		taxed := wages
		if p.WageCap.IsPositive() {
			taxed = decimal.Min(wages, p.WageCap)
		}
		tax = tax.Add(taxed.Mul(p.Rate))
	}
	return tax
}

// TaxBreakdown itemises the taxes of one calendar year.
type TaxBreakdown struct {
	Year             int
	Income           decimal.Decimal
	FederalIncomeTax decimal.Decimal
	StateIncomeTax   decimal.Decimal
	FederalPayroll   decimal.Decimal
	StatePayroll     decimal.Decimal
	AMTApplied       bool
}

// Total returns every tax in the breakdown combined.
func (b TaxBreakdown) Total() decimal.Decimal {
	return b.FederalIncomeTax.Add(b.StateIncomeTax).Add(b.FederalPayroll).Add(b.StatePayroll)
}

// EffectiveRate returns total tax over income, zero when there is no income.
func (b TaxBreakdown) EffectiveRate() decimal.Decimal {
	if !b.Income.IsPositive() {
		return decimal.Zero
	}
	return b.Total().Div(b.Income)
}

// TaxCalculator combines the federal regime with state regimes.
type TaxCalculator struct {
	Federal    domain.TaxRegime
	AMTEnabled bool
	Logger     Logger
}

// NewTaxCalculator creates a calculator on the built-in federal tables with AMT on.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{
		Federal:    FederalRegime(),
		AMTEnabled: true,
		Logger:     NopLogger{},
	}
}

// TotalTax computes federal and state income tax plus both payroll taxes
// on the same gross income earned in one state.
func (tc *TaxCalculator) TotalTax(income decimal.Decimal, state domain.TaxRegime) (TaxBreakdown, error) {
	return tc.totalTax(0, income, []stateIncome{{regime: state, income: income}})
}

// YearTax computes the taxes of one calendar year in which income was
// earned in one or more states. Federal tax sees the combined income;
// each state taxes only what was earned there.
func (tc *TaxCalculator) YearTax(year int, incomeByState map[string]decimal.Decimal) (TaxBreakdown, error) {
	codes := make([]string, 0, len(incomeByState))
	for code := range incomeByState {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	total := decimal.Zero
	states := make([]stateIncome, 0, len(codes))
	for _, code := range codes {
		regime, err := LookupStateRegime(code)
		if err != nil {
			return TaxBreakdown{}, err
		}
		states = append(states, stateIncome{regime: regime, income: incomeByState[code]})
		total = total.Add(incomeByState[code])
	}
	return tc.totalTax(year, total, states)
}

type stateIncome struct {
	regime domain.TaxRegime
	income decimal.Decimal
}

func (tc *TaxCalculator) totalTax(year int, income decimal.Decimal, states []stateIncome) (TaxBreakdown, error) {
	federal, amtApplied, err := incomeTax(income, tc.Federal, tc.AMTEnabled)
	if err != nil {
		return TaxBreakdown{}, err
	}
	b := TaxBreakdown{
		Year:             year,
		Income:           income,
		FederalIncomeTax: federal,
		StateIncomeTax:   decimal.Zero,
		FederalPayroll:   PayrollTax(income, tc.Federal),
		StatePayroll:     decimal.Zero,
		AMTApplied:       amtApplied,
	}
	for _, s := range states {
		stateTax, _, err := incomeTax(s.income, s.regime, tc.AMTEnabled)
		if err != nil {
			return TaxBreakdown{}, fmt.Errorf("state %q: %w", s.regime.Jurisdiction, err)
		}
		b.StateIncomeTax = b.StateIncomeTax.Add(stateTax)
		b.StatePayroll = b.StatePayroll.Add(PayrollTax(s.income, s.regime))
	}
	if amtApplied {
		tc.logger().Infof("AMT applies: year %d income %s standard tax %s AMT %s",
			year, income.StringFixed(2), StandardTax(income, tc.Federal).StringFixed(2), federal.StringFixed(2))
	}
	return b, nil
}

func (tc *TaxCalculator) logger() Logger {
	if tc.Logger == nil {
		return NopLogger{}
	}
	return tc.Logger
}
