package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/valleyjudge/offer-comparison/internal/domain"
	"github.com/valleyjudge/offer-comparison/pkg/dateutil"
)

const (
	gnuplotDateFormat = "2006-01-02"
	// columnsPerOffer is the number of data columns each offer contributes:
	// cash, equity, total and tax, in domain.AllSeries order.
	columnsPerOffer = 4
)

// SeriesStyles holds extra gnuplot line options per series kind. All lines
// of one offer share its colour; the dash pattern tells the kinds apart.
var SeriesStyles = map[domain.SeriesKind]string{
	domain.SeriesCash:   "dashtype '______'",
	domain.SeriesEquity: "dashtype '.  .  '",
	domain.SeriesTax:    "dashtype '. _ _ . _ _ .'",
}

// GnuplotFormatter renders a comparison as a self-contained gnuplot script
// with the data inlined as a here-document.
type GnuplotFormatter struct {
	// Terminal is copied verbatim into "set terminal" when not empty.
	Terminal string
	// Output becomes "set output"; empty leaves gnuplot's default target.
	Output string
}

func (g GnuplotFormatter) Name() string { return "gnuplot" }

func (g GnuplotFormatter) Format(results *domain.ComparisonResult) ([]byte, error) {
	if results == nil || len(results.Offers) == 0 {
		return nil, fmt.Errorf("%w: no offers to plot", domain.ErrInvalidInput)
	}
	dates := results.Offers[0].Points
	for _, o := range results.Offers[1:] {
		if len(o.Points) != len(dates) {
			return nil, fmt.Errorf("%w: offer %s has %d points, expected %d", domain.ErrInvalidInput, o.Name, len(o.Points), len(dates))
		}
	}
	plots := g.plotClauses(results)
	if len(plots) == 0 {
		return nil, fmt.Errorf("%w: none of the selected series can be plotted", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "$data <<EOD")
	for i, p := range dates {
		row := []string{p.Date.Format(gnuplotDateFormat)}
		for _, o := range results.Offers {
			if !o.Points[i].Date.Equal(p.Date) {
				return nil, fmt.Errorf("%w: offer %s is not aligned at %s", domain.ErrInvalidInput, o.Name, p.Date.Format(gnuplotDateFormat))
			}
			for _, kind := range domain.AllSeries() {
				row = append(row, o.Points[i].Value(kind).StringFixed(2))
			}
		}
		fmt.Fprintln(&buf, strings.Join(row, " "))
	}
	fmt.Fprintln(&buf, "EOD")

	for _, line := range g.directives(results) {
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf, "plot \\")
	fmt.Fprintln(&buf, strings.Join(plots, ", \\\n"))
	return buf.Bytes(), nil
}

func (g GnuplotFormatter) directives(results *domain.ComparisonResult) []string {
	var lines []string
	if g.Terminal != "" {
		lines = append(lines, "set terminal "+g.Terminal)
	}
	if g.Output != "" {
		lines = append(lines, "set output "+GnuplotQuote(g.Output))
	}

	yFormat, yLabel := `"$%'.0f"`, "Cumulative income ($)"
	if results.ShowThousands {
		yFormat, yLabel = `"$%'.0fk"`, "Cumulative income ($ thousands)"
	}
	if results.HideAmounts {
		yFormat, yLabel = `""`, "Cumulative income"
	}

	lines = append(lines,
		"set decimal locale",
		"set link x",
		"set xdata time",
		`set timefmt "%Y-%m-%d"`,
		`set format x "%Y/%m"`,
		"set xtics rotate by -90",
		"set x2tics ("+strings.Join(anniversaryTics(results), ", ")+")",
		"set key left",
		`set linestyle 10 lc rgb "#dddddd" lw 1`,
		"set grid ytics mytics x2tics linestyle 10",
		"set mytics",
		"set y2tics",
		"set ylabel "+GnuplotQuote(yLabel),
		"set format y "+yFormat,
		"set format y2 "+yFormat,
	)
	if results.Title != "" {
		lines = append(lines, "set title "+GnuplotQuote(results.Title)+" noenhanced")
	}
	return lines
}

// anniversaryTics labels each anniversary of the start date on the top
// axis. Positions are seconds since the Unix epoch, gnuplot's time origin.
func anniversaryTics(results *domain.ComparisonResult) []string {
	start := dateutil.Day(results.StartDate)
	tics := make([]string, 0, results.Years+1)
	for year := 0; year <= results.Years; year++ {
		anniversary := dateutil.AddYears(start, year)
		tics = append(tics, fmt.Sprintf("%s %d", GnuplotQuote(fmt.Sprintf("Year %d", year+1)), anniversary.Unix()))
	}
	return tics
}

func (g GnuplotFormatter) plotClauses(results *domain.ComparisonResult) []string {
	series := results.Series
	if len(series) == 0 {
		series = domain.DefaultSeries()
	}
	var clauses []string
	for i, o := range results.Offers {
		color := o.Color
		if color == "" {
			color = domain.AutoColors[i%len(domain.AutoColors)]
		}
		for k, kind := range domain.AllSeries() {
			if !selected(series, kind) {
				continue
			}
			if kind == domain.SeriesTax && !results.TaxesEnabled {
				continue
			}
			column := 2 + columnsPerOffer*i + k
			using := fmt.Sprintf("1:%d", column)
			if results.ShowThousands {
				using = fmt.Sprintf("1:($%d/1000)", column)
			}
			words := []string{
				"$data", "using", using,
				"title", GnuplotQuote(seriesTitle(o, kind, results.TaxesEnabled)), "noenhanced",
				"with", "lines",
				"linecolor", "rgb", GnuplotQuote(color),
			}
			if style := SeriesStyles[kind]; style != "" {
				words = append(words, style)
			}
			clauses = append(clauses, strings.Join(words, " "))
		}
	}
	return clauses
}

func seriesTitle(o domain.OfferSeries, kind domain.SeriesKind, taxes bool) string {
	tags := string(kind)
	if kind != domain.SeriesTax {
		if taxes {
			tags += ", post-tax"
		} else {
			tags += ", pre-tax"
		}
	}
	name := o.Name
	if o.State != "" {
		name += " " + o.State
	}
	return fmt.Sprintf("%s (%s)", name, tags)
}

func selected(series []domain.SeriesKind, kind domain.SeriesKind) bool {
	for _, s := range series {
		if s == kind {
			return true
		}
	}
	return false
}

// GnuplotQuote returns s as a single-quoted gnuplot string. Single-quoted
// strings take no backslash escapes; an embedded quote is doubled.
func GnuplotQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
