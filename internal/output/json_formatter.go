package output

import (
	json "github.com/goccy/go-json"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// JSONFormatter serializes the comparison result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ComparisonResult) ([]byte, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
