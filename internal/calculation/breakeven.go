package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// CrossoverResult describes the point where the cumulative net income of
// one offer catches up with another's.
type CrossoverResult struct {
	// Leader is the offer ahead after the crossover.
	Leader   string `json:"leader"`
	Trailing string `json:"trailing"`

	// PeriodIndex is the 0-based index of the point that closes the period
	// in which the crossover happens.
	PeriodIndex int `json:"period_index"`

	// Fraction (0..1) of the period elapsed at the crossover
	Fraction decimal.Decimal `json:"fraction_of_period"`

	// Date is the interpolated crossover date, truncated to the day.
	Date time.Time `json:"date"`

	// Cumulative net income of the leader at the crossover
	CumulativeAmount decimal.Decimal `json:"cumulative_amount"`
}

// CalculateCumulativeBreakEven finds the first crossover of the cumulative
// net totals of two offers. The series must share their period dates, as
// every series of one comparison does. A crossover within a period is
// placed by linear interpolation of the difference between the totals; an
// exact tie at a period end counts only when the order actually flips
// there. Returns nil, nil when the lead never changes.
func CalculateCumulativeBreakEven(start time.Time, a, b domain.OfferSeries) (*CrossoverResult, error) {
	if len(a.Points) == 0 || len(b.Points) == 0 {
		return nil, fmt.Errorf("%w: offer %s or %s has an empty series", domain.ErrInvalidInput, a.Name, b.Name)
	}
	n := len(a.Points)
	if len(b.Points) < n {
		n = len(b.Points)
	}

	prevDate := start
	prevDiff := decimal.Zero
	// lastSign is the sign of the last non-zero difference seen.
	lastSign := 0
	for i := 0; i < n; i++ {
		pa, pb := a.Points[i], b.Points[i]
		if !pa.Date.Equal(pb.Date) {
			return nil, fmt.Errorf("%w: series of %s and %s are not aligned at point %d", domain.ErrInvalidInput, a.Name, b.Name, i)
		}
		currDiff := pa.Total.Sub(pb.Total)
		sign := currDiff.Sign()

		if sign != 0 && lastSign != 0 && sign != lastSign {
			// diff(t) = prevDiff + t*(currDiff-prevDiff) crosses zero at t.
			t := clampUnit(prevDiff.Neg().Div(currDiff.Sub(prevDiff)))
			leader, trailing := a, b
			if sign < 0 {
				leader, trailing = b, a
			}
			prevTotal := decimal.Zero
			if i > 0 {
				prevTotal = leader.Points[i-1].Total
			}
			gain := leader.Points[i].Total.Sub(prevTotal)
			return &CrossoverResult{
				Leader:           leader.Name,
				Trailing:         trailing.Name,
				PeriodIndex:      i,
				Fraction:         t,
				Date:             interpolateDate(prevDate, pa.Date, t),
				CumulativeAmount: prevTotal.Add(gain.Mul(t)),
			}, nil
		}
		if sign != 0 {
			lastSign = sign
		}
		prevDiff = currDiff
		prevDate = pa.Date
	}
	return nil, nil
}

// clampUnit limits t to [0,1].
func clampUnit(t decimal.Decimal) decimal.Decimal {
	if t.IsNegative() {
		return decimal.Zero
	}
	if one := decimal.NewFromInt(1); t.GreaterThan(one) {
		return one
	}
	return t
}

func interpolateDate(from, to time.Time, t decimal.Decimal) time.Time {
	days := decimal.NewFromInt(int64(to.Sub(from).Hours() / 24))
	offset := int(days.Mul(t).IntPart())
	return from.AddDate(0, 0, offset)
}
