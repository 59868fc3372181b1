package output

import (
	"bytes"
	"fmt"

	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ComparisonResult) ([]byte, error) {
	if results == nil {
		return nil, fmt.Errorf("%w: no comparison result", domain.ErrInvalidInput)
	}
	var buf bytes.Buffer
	title := results.Title
	if title == "" {
		title = "JOB OFFER COMPARISON"
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, "================================")
	basis := "after tax"
	if !results.TaxesEnabled {
		basis = "before tax"
	}
	fmt.Fprintf(&buf, "Start: %s  Horizon: %d years  Amounts: cumulative, %s\n",
		results.StartDate.Format("2006-01-02"), results.Years, basis)

	thousands := results.ShowThousands
	for _, o := range results.Offers {
		fmt.Fprintln(&buf)
		name := o.Name
		if o.State != "" {
			name += " (" + o.State + ")"
		}
		fmt.Fprintln(&buf, name)
		for _, p := range yearEndPoints(results, o) {
			fmt.Fprintf(&buf, "  %s  total=%s cash=%s equity=%s",
				p.Date.Format("2006-01-02"),
				formatAmount(p.Total, thousands), formatAmount(p.Cash, thousands), formatAmount(p.Equity, thousands))
			if results.TaxesEnabled {
				fmt.Fprintf(&buf, " tax=%s", formatAmount(p.Tax, thousands))
			}
			fmt.Fprintln(&buf)
		}
	}

	rec := AnalyzeOffers(results)
	if rec.RunnerUp != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (ahead of %s by %s / %s)\n", rec.OfferName, rec.RunnerUp,
			formatAmount(rec.NetIncomeChange, thousands), FormatPercentage(rec.PercentageChange))
		if c := rec.Crossover; c != nil {
			fmt.Fprintf(&buf, "%s overtakes %s around %s\n", c.Leader, c.Trailing, c.Date.Format("2006-01-02"))
		}
	}
	return buf.Bytes(), nil
}

// yearEndPoints picks the point closing each year of the horizon, falling
// back to every point when the series does not divide evenly into years.
func yearEndPoints(results *domain.ComparisonResult, o domain.OfferSeries) []domain.SeriesPoint {
	if results.Years <= 0 || len(o.Points)%results.Years != 0 {
		return o.Points
	}
	perYear := len(o.Points) / results.Years
	out := make([]domain.SeriesPoint, 0, results.Years)
	for i := perYear - 1; i < len(o.Points); i += perYear {
		out = append(out, o.Points[i])
	}
	return out
}
