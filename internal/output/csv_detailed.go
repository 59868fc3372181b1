package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// CSVDetailedExporter provides every projected point per offer.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Offer", "Period", "Date", "Cash", "Equity", "Total", "Tax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range results.Offers {
		for i, p := range o.Points {
			row := []string{
				o.Name,
				strconv.Itoa(i + 1),
				p.Date.Format("2006-01-02"),
				p.Cash.StringFixed(2),
				p.Equity.StringFixed(2),
				p.Total.StringFixed(2),
				p.Tax.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
