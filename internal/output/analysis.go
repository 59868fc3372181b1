package output

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/calculation"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// Recommendation encapsulates the selection result of the best offer.
type Recommendation struct {
	OfferName string
	// FinalNet is the best offer's cumulative net income at the horizon.
	FinalNet decimal.Decimal
	RunnerUp string
	// NetIncomeChange is how far the best offer finishes ahead of the runner up.
	NetIncomeChange  decimal.Decimal
	PercentageChange decimal.Decimal
	// Crossover is the first time the lead between the two changed hands,
	// nil when one of them led throughout.
	Crossover *calculation.CrossoverResult
}

// AnalyzeOffers determines the offer with the highest cumulative net income
// at the end of the horizon. Ties keep the earlier offer.
func AnalyzeOffers(results *domain.ComparisonResult) Recommendation {
	if results == nil || len(results.Offers) == 0 {
		return Recommendation{}
	}
	ranks := append([]domain.OfferSeries(nil), results.Offers...)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Final().Total.GreaterThan(ranks[j].Final().Total) })
	best := ranks[0]
	rec := Recommendation{OfferName: best.Name, FinalNet: best.Final().Total}
	if len(ranks) == 1 {
		return rec
	}

	runnerUp := ranks[1]
	rec.RunnerUp = runnerUp.Name
	rec.NetIncomeChange = best.Final().Total.Sub(runnerUp.Final().Total)
	if base := runnerUp.Final().Total; !base.IsZero() {
		rec.PercentageChange = rec.NetIncomeChange.Div(base).Mul(decimal.NewFromInt(100))
	}
	if c, err := calculation.CalculateCumulativeBreakEven(results.StartDate, best, runnerUp); err == nil {
		rec.Crossover = c
	}
	return rec
}
