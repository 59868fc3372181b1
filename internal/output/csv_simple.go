package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per offer).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Offer", "State", "FinalDate", "CumulativeCash", "CumulativeEquity", "CumulativeTotal", "CumulativeTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	offers := append([]domain.OfferSeries(nil), results.Offers...)
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].Name < offers[j].Name })
	for _, o := range offers {
		final := o.Final()
		finalDate := ""
		if !final.Date.IsZero() {
			finalDate = final.Date.Format("2006-01-02")
		}
		row := []string{
			o.Name,
			o.State,
			finalDate,
			final.Cash.StringFixed(2),
			final.Equity.StringFixed(2),
			final.Total.StringFixed(2),
			final.Tax.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
