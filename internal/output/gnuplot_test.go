package output

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func point(date time.Time, cash, equity, tax int64) domain.SeriesPoint {
	return domain.SeriesPoint{
		Date:   date,
		Cash:   decimal.NewFromInt(cash),
		Equity: decimal.NewFromInt(equity),
		Total:  decimal.NewFromInt(cash + equity),
		Tax:    decimal.NewFromInt(tax),
	}
}

func buildTestResult() *domain.ComparisonResult {
	return &domain.ComparisonResult{
		Title:        "Bob's offers",
		StartDate:    day(2017, 1, 9),
		Years:        1,
		Granularity:  domain.Annual,
		TaxesEnabled: true,
		Series:       domain.DefaultSeries(),
		Offers: []domain.OfferSeries{
			{Name: "Initech", State: "CA", Color: "red", Points: []domain.SeriesPoint{point(day(2018, 1, 9), 100000, 25000, 40000)}},
			{Name: "Contoso", State: "WA", Color: "#00aaff", Points: []domain.SeriesPoint{point(day(2018, 1, 9), 90000, 50000, 30000)}},
		},
	}
}

const expectedScript = `$data <<EOD
2018-01-09 100000.00 25000.00 125000.00 40000.00 90000.00 50000.00 140000.00 30000.00
EOD
set terminal pngcairo size 800,600
set output 'offers.png'
set decimal locale
set link x
set xdata time
set timefmt "%Y-%m-%d"
set format x "%Y/%m"
set xtics rotate by -90
set x2tics ('Year 1' 1483920000, 'Year 2' 1515456000)
set key left
set linestyle 10 lc rgb "#dddddd" lw 1
set grid ytics mytics x2tics linestyle 10
set mytics
set y2tics
set ylabel 'Cumulative income ($)'
set format y "$%'.0f"
set format y2 "$%'.0f"
set title 'Bob''s offers' noenhanced
plot \
$data using 1:2 title 'Initech CA (cash, post-tax)' noenhanced with lines linecolor rgb 'red' dashtype '______', \
$data using 1:4 title 'Initech CA (total, post-tax)' noenhanced with lines linecolor rgb 'red', \
$data using 1:6 title 'Contoso WA (cash, post-tax)' noenhanced with lines linecolor rgb '#00aaff' dashtype '______', \
$data using 1:8 title 'Contoso WA (total, post-tax)' noenhanced with lines linecolor rgb '#00aaff'
`

func TestGnuplotFormatter_FullScript(t *testing.T) {
	f := GnuplotFormatter{Terminal: "pngcairo size 800,600", Output: "offers.png"}
	out, err := f.Format(buildTestResult())
	require.NoError(t, err)
	assert.Equal(t, expectedScript, string(out))
}

func TestGnuplotFormatter_Directives(t *testing.T) {
	tests := []struct {
		name        string
		formatter   GnuplotFormatter
		mutate      func(*domain.ComparisonResult)
		contains    []string
		notContains []string
	}{
		{
			name:        "no terminal or output by default",
			formatter:   GnuplotFormatter{},
			notContains: []string{"set terminal", "set output"},
		},
		{
			name:      "terminal forwarded verbatim",
			formatter: GnuplotFormatter{Terminal: `wxt font "times,20" size 2000,1000`},
			contains:  []string{`set terminal wxt font "times,20" size 2000,1000` + "\n"},
		},
		{
			name:      "thousands",
			formatter: GnuplotFormatter{},
			mutate:    func(r *domain.ComparisonResult) { r.ShowThousands = true },
			contains: []string{
				`set format y "$%'.0fk"`,
				"set ylabel 'Cumulative income ($ thousands)'",
				"$data using 1:($4/1000) title 'Initech CA (total, post-tax)'",
			},
		},
		{
			name:        "hidden amounts",
			formatter:   GnuplotFormatter{},
			mutate:      func(r *domain.ComparisonResult) { r.HideAmounts = true },
			contains:    []string{`set format y ""`, `set format y2 ""`, "set ylabel 'Cumulative income'"},
			notContains: []string{`"$%'.0f"`},
		},
		{
			name:      "taxes disabled",
			formatter: GnuplotFormatter{},
			mutate: func(r *domain.ComparisonResult) {
				r.TaxesEnabled = false
				r.Series = domain.AllSeries()
			},
			contains:    []string{"'Initech CA (cash, pre-tax)'", "'Contoso WA (equity, pre-tax)'"},
			notContains: []string{"post-tax", "(tax)"},
		},
		{
			name:      "tax series",
			formatter: GnuplotFormatter{},
			mutate:    func(r *domain.ComparisonResult) { r.Series = []domain.SeriesKind{domain.SeriesTax} },
			contains: []string{
				"$data using 1:5 title 'Initech CA (tax)' noenhanced with lines linecolor rgb 'red' dashtype '. _ _ . _ _ .'",
				"$data using 1:9 title 'Contoso WA (tax)'",
			},
		},
		{
			name:        "no title",
			formatter:   GnuplotFormatter{},
			mutate:      func(r *domain.ComparisonResult) { r.Title = "" },
			notContains: []string{"set title"},
		},
		{
			name:      "no state and auto colour",
			formatter: GnuplotFormatter{},
			mutate: func(r *domain.ComparisonResult) {
				r.Offers[1].State = ""
				r.Offers[1].Color = ""
			},
			contains: []string{"title 'Contoso (cash, post-tax)'", "linecolor rgb 'green'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildTestResult()
			if tt.mutate != nil {
				tt.mutate(r)
			}
			out, err := tt.formatter.Format(r)
			require.NoError(t, err)
			script := string(out)
			for _, s := range tt.contains {
				assert.Contains(t, script, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, script, s)
			}
			assert.True(t, strings.HasPrefix(script, "$data <<EOD\n"))
		})
	}
}

func TestGnuplotFormatter_OutputPathQuoted(t *testing.T) {
	out, err := GnuplotFormatter{Output: "it's here.png"}.Format(buildTestResult())
	require.NoError(t, err)
	assert.Contains(t, string(out), "set output 'it''s here.png'\n")
}

func TestGnuplotFormatter_Errors(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.ComparisonResult
	}{
		{"nil result", nil},
		{"no offers", &domain.ComparisonResult{}},
		{
			name: "only tax without taxes",
			result: func() *domain.ComparisonResult {
				r := buildTestResult()
				r.TaxesEnabled = false
				r.Series = []domain.SeriesKind{domain.SeriesTax}
				return r
			}(),
		},
		{
			name: "uneven series",
			result: func() *domain.ComparisonResult {
				r := buildTestResult()
				r.Offers[1].Points = append(r.Offers[1].Points, point(day(2019, 1, 9), 1, 1, 1))
				return r
			}(),
		},
		{
			name: "misaligned dates",
			result: func() *domain.ComparisonResult {
				r := buildTestResult()
				r.Offers[1].Points[0].Date = day(2018, 2, 9)
				return r
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := GnuplotFormatter{}.Format(tt.result)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
			assert.Nil(t, out)
		})
	}
}

func TestGnuplotQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"plain", "'plain'"},
		{"Bob's", "'Bob''s'"},
		{`C:\out "x".png`, `'C:\out "x".png'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GnuplotQuote(tt.in))
	}
}
