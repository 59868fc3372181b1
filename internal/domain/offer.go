package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MonthDay is a recurring calendar date such as a bonus or vesting day.
type MonthDay struct {
	Month time.Month
	Day   int
}

// daysInMonth uses a non-leap year so Feb 29 is rejected; a schedule has to
// recur every year.
var daysInMonth = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Validate reports whether the month/day pair occurs every year.
func (md MonthDay) Validate() error {
	if md.Month < time.January || md.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidInput, md.Month)
	}
	if md.Day < 1 || md.Day > daysInMonth[md.Month] {
		return fmt.Errorf("%w: day %d does not occur every year in %s", ErrInvalidInput, md.Day, md.Month)
	}
	return nil
}

// In returns the date of md in the given year.
func (md MonthDay) In(year int) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
}

// Matches reports whether t falls on md.
func (md MonthDay) Matches(t time.Time) bool {
	return t.Month() == md.Month && t.Day() == md.Day
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// UnmarshalYAML accepts the "MM-DD" form.
func (md *MonthDay) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	var m, d int
	if _, err := fmt.Sscanf(s, "%d-%d", &m, &d); err != nil {
		return fmt.Errorf("%w: month-day %q must look like MM-DD", ErrInvalidInput, s)
	}
	parsed := MonthDay{Month: time.Month(m), Day: d}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*md = parsed
	return nil
}

// MarshalYAML writes the "MM-DD" form.
func (md MonthDay) MarshalYAML() (interface{}, error) {
	return md.String(), nil
}

// SortedMonthDays returns a calendar-ordered copy of days without duplicates.
func SortedMonthDays(days []MonthDay) []MonthDay {
	out := append([]MonthDay(nil), days...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	n := 0
	for i, md := range out {
		if i > 0 && md == out[n-1] {
			continue
		}
		out[n] = md
		n++
	}
	return out[:n]
}

// DefaultVestingFractions is a four year schedule vesting a quarter each year.
func DefaultVestingFractions() []decimal.Decimal {
	q := decimal.NewFromFloat(0.25)
	return []decimal.Decimal{q, q, q, q}
}

// QuarterlyVestingDates are common quarterly vest days used after a one year cliff.
func QuarterlyVestingDates() []MonthDay {
	return []MonthDay{{time.February, 20}, {time.May, 20}, {time.August, 20}, {time.November, 20}}
}

// DefaultBonusDates are the days the annual bonus is paid out, in two halves.
func DefaultBonusDates() []MonthDay {
	return []MonthDay{{time.January, 1}, {time.June, 1}}
}

// RsuGrant describes an equity grant and how it vests.
type RsuGrant struct {
	Total decimal.Decimal `yaml:"total" json:"total"`
	// Vesting holds the fraction of Total vesting in each year of the grant.
	// Empty means DefaultVestingFractions.
	Vesting []decimal.Decimal `yaml:"vesting,omitempty" json:"vesting,omitempty"`
	// VestingDates, when set, switches from one vest per anniversary to a
	// one year cliff followed by each year's fraction split across these days.
	VestingDates []MonthDay `yaml:"vesting_dates,omitempty" json:"vesting_dates,omitempty"`
	// Start pins the grant clock to a date. Zero means the comparison start
	// date shifted by StartAfterMonths.
	Start            time.Time `yaml:"start,omitempty" json:"start,omitempty"`
	StartAfterMonths int       `yaml:"start_after_months,omitempty" json:"start_after_months,omitempty"`
}

// Fractions returns the vesting curve, falling back to the default schedule.
func (g RsuGrant) Fractions() []decimal.Decimal {
	if len(g.Vesting) == 0 {
		return DefaultVestingFractions()
	}
	return append([]decimal.Decimal(nil), g.Vesting...)
}

// Validate checks amounts and the vesting curve.
func (g RsuGrant) Validate() error {
	if g.Total.IsNegative() {
		return fmt.Errorf("%w: grant total %s is negative", ErrInvalidInput, g.Total)
	}
	if g.StartAfterMonths < 0 {
		return fmt.Errorf("%w: grant start offset %d months is negative", ErrInvalidInput, g.StartAfterMonths)
	}
	sum := decimal.Zero
	for i, f := range g.Fractions() {
		if f.IsNegative() {
			return fmt.Errorf("%w: vesting fraction %d is negative (%s)", ErrInvalidInput, i, f)
		}
		sum = sum.Add(f)
	}
	if sum.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: vesting fractions sum to %s, more than 1", ErrInvalidGrant, sum)
	}
	for _, md := range g.VestingDates {
		if err := md.Validate(); err != nil {
			return fmt.Errorf("vesting date: %w", err)
		}
	}
	return nil
}

// Offer is one job offer under comparison.
type Offer struct {
	Name string `yaml:"name" json:"name"`
	// Base is the annual base salary.
	Base decimal.Decimal `yaml:"base" json:"base"`
	// Bonus is the annual bonus target in currency, paid in equal parts on BonusDates.
	Bonus      decimal.Decimal `yaml:"bonus,omitempty" json:"bonus,omitempty"`
	BonusDates []MonthDay      `yaml:"bonus_dates,omitempty" json:"bonus_dates,omitempty"`
	// SigningBonus is paid once, on the start date.
	SigningBonus decimal.Decimal `yaml:"signing_bonus,omitempty" json:"signing_bonus,omitempty"`
	// State is a supported state code or empty for no state taxes.
	State  string     `yaml:"state" json:"state"`
	Color  string     `yaml:"color,omitempty" json:"color,omitempty"`
	Grants []RsuGrant `yaml:"grants,omitempty" json:"grants,omitempty"`
	// RefresherAmount is granted on every RefresherDates day, on the same
	// schedule as the first grant.
	RefresherAmount decimal.Decimal `yaml:"refresher_amount,omitempty" json:"refresher_amount,omitempty"`
	RefresherDates  []MonthDay      `yaml:"refresher_dates,omitempty" json:"refresher_dates,omitempty"`
}

// BonusSchedule returns the bonus days, falling back to DefaultBonusDates.
func (o Offer) BonusSchedule() []MonthDay {
	if len(o.BonusDates) == 0 {
		return DefaultBonusDates()
	}
	return SortedMonthDays(o.BonusDates)
}

// Validate checks the offer's own fields and grants. Jurisdiction support is
// checked against the tax tables by the calculation package.
func (o Offer) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("%w: offer name is required", ErrInvalidInput)
	}
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"base", o.Base},
		{"bonus", o.Bonus},
		{"signing bonus", o.SigningBonus},
		{"refresher amount", o.RefresherAmount},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: offer %s: %s %s is negative", ErrInvalidInput, o.Name, a.field, a.value)
		}
	}
	for _, md := range append(append([]MonthDay(nil), o.BonusDates...), o.RefresherDates...) {
		if err := md.Validate(); err != nil {
			return fmt.Errorf("offer %s: %w", o.Name, err)
		}
	}
	for i, g := range o.Grants {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("offer %s: grant %d: %w", o.Name, i, err)
		}
	}
	if o.RefresherAmount.IsPositive() && len(o.Grants) == 0 {
		return fmt.Errorf("%w: offer %s: refresher specified with no initial grant", ErrInvalidGrant, o.Name)
	}
	return nil
}

// AutoColors are handed out, in order, to offers without a colour.
var AutoColors = []string{"red", "green", "blue", "purple", "yellow", "brown"}

// AssignColors resolves the display colour of each offer. Offers with an
// explicit colour keep it; the others take AutoColors in order, cycling if
// there are more offers than colours.
func AssignColors(offers []Offer) []string {
	colors := make([]string, len(offers))
	next := 0
	for i, o := range offers {
		if o.Color != "" {
			colors[i] = o.Color
			continue
		}
		colors[i] = AutoColors[next%len(AutoColors)]
		next++
	}
	return colors
}
