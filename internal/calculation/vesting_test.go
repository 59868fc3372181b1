package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fractionsOf(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func sumEvents(events []domain.IncomeEvent) decimal.Decimal {
	total := decimal.Zero
	for _, ev := range events {
		total = total.Add(ev.Amount)
	}
	return total
}

func TestGenerateVests_AnnualAnniversaries(t *testing.T) {
	grant := domain.RsuGrant{Total: decimal.NewFromInt(100000)}
	events, err := GenerateVests(grant, date(2017, 3, 15))
	require.NoError(t, err)
	require.Len(t, events, 4)

	for i, ev := range events {
		assert.Equal(t, date(2018+i, 3, 15), ev.Date)
		assert.True(t, ev.Amount.Equal(decimal.NewFromInt(25000)), "vest %d: %s", i, ev.Amount)
		assert.Equal(t, domain.IncomeVesting, ev.Kind)
	}
}

func TestGenerateVests_CliffThenQuarterly(t *testing.T) {
	grant := domain.RsuGrant{
		Total:        decimal.NewFromInt(100000),
		VestingDates: domain.QuarterlyVestingDates(),
	}
	events, err := GenerateVests(grant, date(2017, 1, 9))
	require.NoError(t, err)
	require.Len(t, events, 13)

	assert.Equal(t, date(2018, 1, 9), events[0].Date)
	assert.True(t, events[0].Amount.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, date(2018, 2, 20), events[1].Date)
	assert.Equal(t, date(2018, 11, 20), events[4].Date)
	assert.Equal(t, date(2020, 11, 20), events[12].Date)
	for _, ev := range events[1:] {
		assert.True(t, ev.Amount.Equal(decimal.NewFromInt(6250)), "%s: %s", ev.Date, ev.Amount)
	}
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i].Date.After(events[i-1].Date), "events out of order at %d", i)
	}
}

func TestGenerateVests_CliffOnVestingDay(t *testing.T) {
	// The cliff itself lands on a vesting day; the next installment is the
	// following vesting day, not the same one.
	grant := domain.RsuGrant{
		Total:        decimal.NewFromInt(1000),
		Vesting:      fractionsOf(0.5, 0.5),
		VestingDates: domain.QuarterlyVestingDates(),
	}
	events, err := GenerateVests(grant, date(2017, 5, 20))
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, date(2018, 5, 20), events[0].Date)
	assert.Equal(t, date(2018, 8, 20), events[1].Date)
}

func TestGenerateVests_SumIsExact(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		fractions []decimal.Decimal
		dates     []domain.MonthDay
	}{
		{
			name:      "thirds split across three days",
			total:     100,
			fractions: fractionsOf(0.25, 0.25, 0.25, 0.25),
			dates:     []domain.MonthDay{{Month: time.March, Day: 1}, {Month: time.July, Day: 1}, {Month: time.November, Day: 1}},
		},
		{
			name:      "back loaded",
			total:     123457,
			fractions: fractionsOf(0.05, 0.15, 0.4, 0.4),
			dates:     domain.QuarterlyVestingDates(),
		},
		{
			name:      "partial curve",
			total:     99999,
			fractions: fractionsOf(0.1, 0.2, 0.3),
		},
		{
			name:      "monthly vesting",
			total:     77777,
			fractions: fractionsOf(0.33, 0.33, 0.33),
			dates: func() []domain.MonthDay {
				var days []domain.MonthDay
				for m := time.January; m <= time.December; m++ {
					days = append(days, domain.MonthDay{Month: m, Day: 28})
				}
				return days
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant := domain.RsuGrant{Total: decimal.NewFromInt(tt.total), Vesting: tt.fractions, VestingDates: tt.dates}
			events, err := GenerateVests(grant, date(2017, 1, 9))
			require.NoError(t, err)

			want := decimal.Zero
			for _, f := range tt.fractions {
				want = want.Add(grant.Total.Mul(f))
			}
			got := sumEvents(events)
			assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
		})
	}
}

func TestGenerateVests_Deterministic(t *testing.T) {
	grant := domain.RsuGrant{Total: decimal.NewFromInt(50000), VestingDates: domain.QuarterlyVestingDates()}
	first, err := GenerateVests(grant, date(2017, 1, 9))
	require.NoError(t, err)
	second, err := GenerateVests(grant, date(2017, 1, 9))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateVests_GrantStart(t *testing.T) {
	delayed := domain.RsuGrant{Total: decimal.NewFromInt(1000), Vesting: fractionsOf(1), StartAfterMonths: 6}
	events, err := GenerateVests(delayed, date(2017, 1, 31))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, date(2018, 7, 31), events[0].Date)

	pinned := domain.RsuGrant{Total: decimal.NewFromInt(1000), Vesting: fractionsOf(1), Start: date(2017, 4, 1)}
	events, err = GenerateVests(pinned, date(2017, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2018, 4, 1), events[0].Date)
}

func TestGenerateVests_Errors(t *testing.T) {
	tests := []struct {
		name    string
		grant   domain.RsuGrant
		wantErr error
	}{
		{
			name:    "fractions sum to 1.2",
			grant:   domain.RsuGrant{Total: decimal.NewFromInt(1000), Vesting: fractionsOf(0.3, 0.3, 0.3, 0.3)},
			wantErr: domain.ErrInvalidGrant,
		},
		{
			name:    "negative fraction",
			grant:   domain.RsuGrant{Total: decimal.NewFromInt(1000), Vesting: fractionsOf(0.5, -0.1)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "negative total",
			grant:   domain.RsuGrant{Total: decimal.NewFromInt(-1)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "starts before the job",
			grant:   domain.RsuGrant{Total: decimal.NewFromInt(1000), Start: date(2016, 12, 31)},
			wantErr: domain.ErrInvalidGrant,
		},
		{
			name:    "impossible vesting day",
			grant:   domain.RsuGrant{Total: decimal.NewFromInt(1000), VestingDates: []domain.MonthDay{{Month: time.February, Day: 30}}},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := GenerateVests(tt.grant, date(2017, 1, 1))
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, events)
		})
	}
}

func TestRefresherGrants(t *testing.T) {
	offer := domain.Offer{
		Name:            "Initech",
		Grants:          []domain.RsuGrant{{Total: decimal.NewFromInt(100000), VestingDates: domain.QuarterlyVestingDates()}},
		RefresherAmount: decimal.NewFromInt(20000),
		RefresherDates:  []domain.MonthDay{{Month: time.March, Day: 1}},
	}
	grants, err := RefresherGrants(offer, date(2017, 1, 9), date(2021, 1, 9))
	require.NoError(t, err)
	require.Len(t, grants, 4)
	for i, g := range grants {
		assert.Equal(t, date(2017+i, 3, 1), g.Start)
		assert.True(t, g.Total.Equal(decimal.NewFromInt(20000)))
		assert.Equal(t, offer.Grants[0].VestingDates, g.VestingDates)
	}

	none, err := RefresherGrants(domain.Offer{Name: "cash only"}, date(2017, 1, 9), date(2021, 1, 9))
	require.NoError(t, err)
	assert.Empty(t, none)

	offer.Grants = nil
	_, err = RefresherGrants(offer, date(2017, 1, 9), date(2021, 1, 9))
	assert.True(t, errors.Is(err, domain.ErrInvalidGrant))
}
