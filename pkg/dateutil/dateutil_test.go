package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAddMonths tests month arithmetic with end of month clamping
func TestAddMonths(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		months      int
		expected    time.Time
		description string
	}{
		{
			name:        "Plain month",
			date:        Date(2016, 8, 15),
			months:      1,
			expected:    Date(2016, 9, 15),
			description: "Mid-month start keeps its day",
		},
		{
			name:        "Across year end",
			date:        Date(2016, 11, 15),
			months:      3,
			expected:    Date(2017, 2, 15),
			description: "Month overflow rolls the year",
		},
		{
			name:        "Clamp to February",
			date:        Date(2017, 1, 31),
			months:      1,
			expected:    Date(2017, 2, 28),
			description: "Jan 31 plus one month is the last day of February",
		},
		{
			name:        "Clamp to leap February",
			date:        Date(2016, 1, 31),
			months:      1,
			expected:    Date(2016, 2, 29),
			description: "Leap year February has 29 days",
		},
		{
			name:        "Negative months",
			date:        Date(2016, 1, 15),
			months:      -2,
			expected:    Date(2015, 11, 15),
			description: "Going backwards across a year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.date, tt.months)
			assert.True(t, got.Equal(tt.expected), "%s: expected %s, got %s", tt.description, tt.expected, got)
		})
	}
}

func TestAddYearsLeapDay(t *testing.T) {
	assert.Equal(t, Date(2017, 2, 28), AddYears(Date(2016, 2, 29), 1))
	assert.Equal(t, Date(2020, 2, 29), AddYears(Date(2016, 2, 29), 4))
}

func TestBoundaries(t *testing.T) {
	b := Boundaries(Date(2016, 1, 31), 3, 1)
	assert.Equal(t, []time.Time{Date(2016, 1, 31), Date(2016, 2, 29), Date(2016, 3, 31), Date(2016, 4, 30)}, b)

	annual := Boundaries(Date(2016, 8, 15), 4, 12)
	assert.Len(t, annual, 5)
	assert.Equal(t, Date(2020, 8, 15), annual[4])

	assert.Len(t, Boundaries(Date(2016, 8, 15), -1, 1), 1)
}

func TestDayHelpers(t *testing.T) {
	local := time.Date(2016, 8, 15, 17, 30, 0, 0, time.FixedZone("PDT", -7*3600))
	assert.Equal(t, Date(2016, 8, 15), Day(local))
	assert.Equal(t, 29, DaysInMonth(2016, time.February))
	assert.Equal(t, 31, DaysBetween(Date(2016, 1, 1), Date(2016, 2, 1)))
	assert.Equal(t, -1, DaysBetween(Date(2016, 1, 2), Date(2016, 1, 1)))
	assert.Equal(t, Date(2016, 1, 1), BeginningOfYear(Date(2016, 8, 15)))
}
