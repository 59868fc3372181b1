package calculation

import (
	"fmt"

	"github.com/valleyjudge/offer-comparison/internal/domain"
	"github.com/valleyjudge/offer-comparison/pkg/dateutil"
)

// CalculationEngine orchestrates offer projections
type CalculationEngine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine on the built-in tax tables
func NewCalculationEngine() *CalculationEngine {
	logger := NopLogger{}
	taxCalc := NewTaxCalculator()
	taxCalc.Logger = logger
	return &CalculationEngine{
		TaxCalc: taxCalc,
		Logger:  logger,
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	if ce.TaxCalc != nil {
		ce.TaxCalc.Logger = l
	}
}

// logger returns the engine logger; a zero-value engine logs nothing.
func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// taxCalculator returns a copy of the engine's calculator, falling back to
// the built-in tables for a zero-value engine.
func (ce *CalculationEngine) taxCalculator() TaxCalculator {
	if ce.TaxCalc == nil {
		calc := NewTaxCalculator()
		calc.Logger = ce.logger()
		return *calc
	}
	return *ce.TaxCalc
}

// Compare projects every offer of the comparison. All offers are validated
// before any projection runs, so a bad offer never yields a partial result.
func (ce *CalculationEngine) Compare(cmp domain.Comparison) (*domain.ComparisonResult, error) {
	cmp = cmp.WithDefaults()
	if cmp.Years <= 0 {
		return nil, fmt.Errorf("%w: horizon must be at least one year, got %d", domain.ErrInvalidInput, cmp.Years)
	}
	if cmp.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", domain.ErrInvalidInput)
	}
	if len(cmp.Offers) == 0 {
		return nil, fmt.Errorf("%w: no offers to compare", domain.ErrInvalidInput)
	}
	for _, s := range cmp.Series {
		if !isSeriesKind(s) {
			return nil, fmt.Errorf("%w: unknown series %q", domain.ErrInvalidInput, string(s))
		}
	}
	for _, o := range cmp.Offers {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, err := LookupStateRegime(o.State); err != nil {
			return nil, fmt.Errorf("offer %s: %w", o.Name, err)
		}
	}
	if cmp.AlreadyEarnedState != "" {
		if _, err := LookupStateRegime(cmp.AlreadyEarnedState); err != nil {
			return nil, fmt.Errorf("already earned state: %w", err)
		}
	}

	params := ParamsFromComparison(cmp)
	colors := domain.AssignColors(cmp.Offers)
	result := &domain.ComparisonResult{
		Title:         cmp.Title,
		StartDate:     dateutil.Day(params.Start),
		Years:         cmp.Years,
		Granularity:   cmp.Granularity,
		TaxesEnabled:  params.TaxesEnabled,
		ShowThousands: cmp.ShowThousands,
		HideAmounts:   cmp.HideAmounts,
		Series:        append([]domain.SeriesKind(nil), cmp.Series...),
		Offers:        make([]domain.OfferSeries, 0, len(cmp.Offers)),
	}
	for i, o := range cmp.Offers {
		points, err := ce.Project(o, params)
		if err != nil {
			return nil, err
		}
		ce.logger().Debugf("offer %s: %d points, final net %s", o.Name, len(points), finalTotal(points))
		if finalTotal(points) == "0.00" {
			ce.logger().Warnf("offer %s pays nothing over the %d year horizon", o.Name, cmp.Years)
		}
		result.Offers = append(result.Offers, domain.OfferSeries{
			Name:   o.Name,
			State:  o.State,
			Color:  colors[i],
			Points: points,
		})
	}
	return result, nil
}

func isSeriesKind(s domain.SeriesKind) bool {
	for _, k := range domain.AllSeries() {
		if s == k {
			return true
		}
	}
	return false
}

func finalTotal(points []domain.SeriesPoint) string {
	if len(points) == 0 {
		return "0.00"
	}
	return points[len(points)-1].Total.StringFixed(2)
}
