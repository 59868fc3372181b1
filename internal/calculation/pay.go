package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/domain"
	"github.com/valleyjudge/offer-comparison/pkg/dateutil"
)

// bonusYearDays is the length of the bonus year used to prorate the first
// bonus installment.
const bonusYearDays = 365

// PayEvents generates the cash income of an offer for every day in
// [start, end): salary on each payday, bonus installments on bonus days and
// the signing bonus on the start date, which pays no salary.
//
// Each payday pays base/(12*len(paydays)). A payday past the end of a short
// month falls on the month's last day. A bonus installment pays
// bonus/len(bonusDates), scaled down by the share of the installment period
// actually worked when the job started less than one period earlier.
func PayEvents(offer domain.Offer, start, end time.Time, paydays []int) ([]domain.IncomeEvent, error) {
	if len(paydays) == 0 {
		paydays = domain.DefaultPaydays()
	}
	seen := make(map[int]bool, len(paydays))
	var days []int
	for _, p := range paydays {
		if p < 1 || p > 31 {
			return nil, fmt.Errorf("%w: payday %d is not a day of the month", domain.ErrInvalidInput, p)
		}
		if !seen[p] {
			seen[p] = true
			days = append(days, p)
		}
	}
	paycheck := offer.Base.Div(decimal.NewFromInt(int64(12 * len(days))))

	bonusDates := offer.BonusSchedule()
	installment := offer.Bonus.Div(decimal.NewFromInt(int64(len(bonusDates))))
	periodDays := decimal.NewFromInt(bonusYearDays).Div(decimal.NewFromInt(int64(len(bonusDates))))
	one := decimal.NewFromInt(1)

	start = dateutil.Day(start)
	var events []domain.IncomeEvent
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if day.Equal(start) {
			if offer.SigningBonus.IsPositive() {
				events = append(events, domain.IncomeEvent{Date: day, Amount: offer.SigningBonus, Kind: domain.IncomeSigning})
			}
		} else if paycheck.IsPositive() {
			for i := paychecksOn(day, days); i > 0; i-- {
				events = append(events, domain.IncomeEvent{Date: day, Amount: paycheck, Kind: domain.IncomeSalary})
			}
		}
		if !installment.IsPositive() {
			continue
		}
		for _, md := range bonusDates {
			if !md.Matches(day) {
				continue
			}
			worked := decimal.NewFromInt(int64(dateutil.DaysBetween(start, day))).Div(periodDays)
			amount := installment.Mul(decimal.Min(one, worked))
			if amount.IsPositive() {
				events = append(events, domain.IncomeEvent{Date: day, Amount: amount, Kind: domain.IncomeBonus})
			}
		}
	}
	return events, nil
}

// paychecksOn counts the paydays landing on day once days past the end of
// the month are moved to its last day.
func paychecksOn(day time.Time, paydays []int) int {
	last := dateutil.DaysInMonth(day.Year(), day.Month())
	n := 0
	for _, p := range paydays {
		if p > last {
			p = last
		}
		if p == day.Day() {
			n++
		}
	}
	return n
}
