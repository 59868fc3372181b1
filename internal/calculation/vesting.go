package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/domain"
	"github.com/valleyjudge/offer-comparison/pkg/dateutil"
)

// GrantStart resolves when a grant's clock starts relative to the
// comparison start date.
func GrantStart(grant domain.RsuGrant, comparisonStart time.Time) (time.Time, error) {
	start := dateutil.Day(comparisonStart)
	grantStart := dateutil.AddMonths(start, grant.StartAfterMonths)
	if !grant.Start.IsZero() {
		grantStart = dateutil.Day(grant.Start)
	}
	if grantStart.Before(start) {
		return time.Time{}, fmt.Errorf("%w: grant starts %s, before the job starts %s",
			domain.ErrInvalidGrant, grantStart.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return grantStart, nil
}

// GenerateVests lists the vesting events of a grant.
//
// Without vesting dates there is one event per year on each anniversary of
// the grant start, worth Total*fraction[i]. With vesting dates the first
// year's fraction vests at the one year cliff and every later year's
// fraction is split evenly over the next len(dates) vesting days. The last
// installment of a year takes the rounding remainder, so the events always
// sum to exactly Total*sum(fractions).
func GenerateVests(grant domain.RsuGrant, comparisonStart time.Time) ([]domain.IncomeEvent, error) {
	if err := grant.Validate(); err != nil {
		return nil, err
	}
	start, err := GrantStart(grant, comparisonStart)
	if err != nil {
		return nil, err
	}
	fractions := grant.Fractions()

	if len(grant.VestingDates) == 0 {
		events := make([]domain.IncomeEvent, 0, len(fractions))
		for i, f := range fractions {
			events = append(events, vest(dateutil.AddYears(start, i+1), grant.Total.Mul(f)))
		}
		return events, nil
	}

	cliff := dateutil.AddYears(start, 1)
	events := []domain.IncomeEvent{vest(cliff, grant.Total.Mul(fractions[0]))}
	days := domain.SortedMonthDays(grant.VestingDates)
	next := vestingDays(days, cliff)
	n := decimal.NewFromInt(int64(len(days)))
	for _, f := range fractions[1:] {
		yearAmount := grant.Total.Mul(f)
		installment := yearAmount.Div(n)
		paid := decimal.Zero
		for i := range days {
			amount := installment
			if i == len(days)-1 {
				amount = yearAmount.Sub(paid)
			}
			paid = paid.Add(amount)
			events = append(events, vest(next(), amount))
		}
	}
	return events, nil
}

func vest(date time.Time, amount decimal.Decimal) domain.IncomeEvent {
	return domain.IncomeEvent{Date: date, Amount: amount, Kind: domain.IncomeVesting}
}

// vestingDays returns an iterator over the occurrences of days strictly
// after the given date, in calendar order. days must be sorted and valid.
func vestingDays(days []domain.MonthDay, after time.Time) func() time.Time {
	year := after.Year()
	idx := 0
	return func() time.Time {
		for {
			if idx == len(days) {
				idx = 0
				year++
			}
			candidate := days[idx].In(year)
			idx++
			if candidate.After(after) {
				return candidate
			}
		}
	}
}

// RefresherGrants issues a refresher grant on every refresher day in
// [start, end), on the vesting schedule of the offer's first grant.
func RefresherGrants(offer domain.Offer, start, end time.Time) ([]domain.RsuGrant, error) {
	if !offer.RefresherAmount.IsPositive() || len(offer.RefresherDates) == 0 {
		return nil, nil
	}
	if len(offer.Grants) == 0 {
		return nil, fmt.Errorf("%w: offer %s: refresher specified with no initial grant", domain.ErrInvalidGrant, offer.Name)
	}
	template := offer.Grants[0]
	var grants []domain.RsuGrant
	for day := dateutil.Day(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		for _, md := range offer.RefresherDates {
			if md.Matches(day) {
				grants = append(grants, domain.RsuGrant{
					Total:        offer.RefresherAmount,
					Vesting:      template.Vesting,
					VestingDates: template.VestingDates,
					Start:        day,
				})
				break
			}
		}
	}
	return grants, nil
}
