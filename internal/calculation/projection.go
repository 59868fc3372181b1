package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/domain"
	"github.com/valleyjudge/offer-comparison/pkg/dateutil"
)

// ProjectionParams are the comparison-wide settings applied to each offer.
type ProjectionParams struct {
	Start        time.Time
	Years        int
	Granularity  domain.Granularity
	Paydays      []int
	TaxesEnabled bool
	// NoAMT disables the alternative minimum tax override.
	NoAMT bool
	// AlreadyEarnedFirstYear is taxed with the first calendar year's income
	// in AlreadyEarnedState (the offer's state when empty) but is not plotted.
	AlreadyEarnedFirstYear decimal.Decimal
	AlreadyEarnedState     string
}

// ParamsFromComparison extracts the projection settings of a comparison.
func ParamsFromComparison(cmp domain.Comparison) ProjectionParams {
	cmp = cmp.WithDefaults()
	return ProjectionParams{
		Start:                  cmp.StartDate,
		Years:                  cmp.Years,
		Granularity:            cmp.Granularity,
		Paydays:                cmp.Paydays,
		TaxesEnabled:           !cmp.NoTaxes,
		NoAMT:                  cmp.NoAMT,
		AlreadyEarnedFirstYear: cmp.AlreadyEarnedFirstYear,
		AlreadyEarnedState:     cmp.AlreadyEarnedState,
	}
}

// taxedEvent is an income event with its after-tax value.
type taxedEvent struct {
	domain.IncomeEvent
	Net decimal.Decimal
}

// Project computes the cumulative income series of one offer.
//
// The horizon is cut into Years*PeriodsPerYear periods anchored on the start
// date. An event belongs to the period (periodStart, periodEnd]: an event on
// a boundary counts toward the period it closes, and the start date itself
// belongs to the first period. One point is emitted per period, dated at
// the period end.
func (ce *CalculationEngine) Project(offer domain.Offer, p ProjectionParams) ([]domain.SeriesPoint, error) {
	if p.Years <= 0 {
		return nil, fmt.Errorf("%w: horizon must be at least one year, got %d", domain.ErrInvalidInput, p.Years)
	}
	ppy, err := p.Granularity.PeriodsPerYear()
	if err != nil {
		return nil, err
	}
	if err := offer.Validate(); err != nil {
		return nil, err
	}
	if _, err := LookupStateRegime(offer.State); err != nil {
		return nil, fmt.Errorf("offer %s: %w", offer.Name, err)
	}
	if p.AlreadyEarnedFirstYear.IsNegative() {
		return nil, fmt.Errorf("%w: already earned income %s is negative", domain.ErrInvalidInput, p.AlreadyEarnedFirstYear)
	}

	start := dateutil.Day(p.Start)
	bounds := dateutil.Boundaries(start, p.Years*ppy, 12/ppy)
	end := bounds[len(bounds)-1]
	// Taxes need every calendar year that the horizon touches in full.
	taxEnd := dateutil.BeginningOfYear(dateutil.AddYears(end, 1))

	events, err := ce.IncomeEvents(offer, start, end, taxEnd, p.Paydays)
	if err != nil {
		return nil, err
	}
	taxed, err := ce.applyTaxes(offer, events, p)
	if err != nil {
		return nil, err
	}

	periods := len(bounds) - 1
	points := make([]domain.SeriesPoint, periods)
	cash, equity, tax := decimal.Zero, decimal.Zero, decimal.Zero
	idx := 0
	for i := 0; i < periods; i++ {
		for idx < len(taxed) && !taxed[idx].Date.After(bounds[i+1]) {
			ev := taxed[idx]
			if ev.Kind.IsEquity() {
				equity = equity.Add(ev.Net)
			} else {
				cash = cash.Add(ev.Net)
			}
			tax = tax.Add(ev.Amount.Sub(ev.Net))
			idx++
		}
		points[i] = domain.SeriesPoint{
			Date:   bounds[i+1],
			Cash:   cash,
			Equity: equity,
			Total:  cash.Add(equity),
			Tax:    tax,
		}
	}
	return points, nil
}

// IncomeEvents gathers the gross income of an offer: cash pay through
// taxEnd and the vesting of its grants and of refreshers issued before end.
// Events are sorted by date; the sort is stable so same-day events keep
// their generation order.
func (ce *CalculationEngine) IncomeEvents(offer domain.Offer, start, end, taxEnd time.Time, paydays []int) ([]domain.IncomeEvent, error) {
	events, err := PayEvents(offer, start, taxEnd, paydays)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", offer.Name, err)
	}
	refreshers, err := RefresherGrants(offer, start, end)
	if err != nil {
		return nil, err
	}
	for i, g := range append(append([]domain.RsuGrant(nil), offer.Grants...), refreshers...) {
		vests, err := GenerateVests(g, start)
		if err != nil {
			return nil, fmt.Errorf("offer %s: grant %d: %w", offer.Name, i, err)
		}
		for _, v := range vests {
			if v.Date.Before(taxEnd) {
				events = append(events, v)
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

// applyTaxes nets every event at the effective tax rate of its calendar
// year: net = amount * (1 - yearTax/yearIncome).
func (ce *CalculationEngine) applyTaxes(offer domain.Offer, events []domain.IncomeEvent, p ProjectionParams) ([]taxedEvent, error) {
	out := make([]taxedEvent, len(events))
	for i, ev := range events {
		out[i] = taxedEvent{IncomeEvent: ev, Net: ev.Amount}
	}
	if !p.TaxesEnabled {
		return out, nil
	}

	calc := ce.taxCalculator()
	calc.AMTEnabled = !p.NoAMT

	byYear := map[int]map[string]decimal.Decimal{}
	add := func(year int, state string, amount decimal.Decimal) {
		if byYear[year] == nil {
			byYear[year] = map[string]decimal.Decimal{}
		}
		code := NormalizeJurisdiction(state)
		byYear[year][code] = byYear[year][code].Add(amount)
	}
	if p.AlreadyEarnedFirstYear.IsPositive() {
		state := p.AlreadyEarnedState
		if state == "" {
			state = offer.State
		}
		add(p.Start.Year(), state, p.AlreadyEarnedFirstYear)
	}
	for _, ev := range events {
		add(ev.Date.Year(), offer.State, ev.Amount)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	rates := make(map[int]decimal.Decimal, len(byYear))
	for _, year := range years {
		b, err := calc.YearTax(year, byYear[year])
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", offer.Name, err)
		}
		rates[year] = b.EffectiveRate()
		ce.logger().Debugf("offer %s year %d: income %s tax %s (federal %s, state %s, payroll %s) rate %s%%",
			offer.Name, year, b.Income.StringFixed(2), b.Total().StringFixed(2),
			b.FederalIncomeTax.StringFixed(2), b.StateIncomeTax.StringFixed(2),
			b.FederalPayroll.Add(b.StatePayroll).StringFixed(2),
			b.EffectiveRate().Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	for i := range out {
		rate := rates[out[i].Date.Year()]
		out[i].Net = out[i].Amount.Sub(out[i].Amount.Mul(rate))
	}
	return out, nil
}
