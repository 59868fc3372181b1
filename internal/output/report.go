package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// LookupFormatter resolves a format name, failing with the list of valid
// names and aliases when nothing matches.
func LookupFormatter(format string, opts Options) (Formatter, error) {
	if f := GetFormatterByName(format, opts); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport renders results in the named format to w.
func GenerateReport(w io.Writer, results *domain.ComparisonResult, format string, opts Options) error {
	f, err := LookupFormatter(format, opts)
	if err != nil {
		return err
	}
	return WriteFormatted(f, results, w)
}
