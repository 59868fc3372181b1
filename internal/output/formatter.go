package output

import (
	"io"
	"sort"
	"strings"

	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// DefaultFormat is the formatter used when none is requested.
const DefaultFormat = "gnuplot"

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(results *domain.ComparisonResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ComparisonResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ComparisonResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// Options carries the rendering settings given on the command line.
type Options struct {
	// Terminal and Output are forwarded to the gnuplot script.
	Terminal string
	Output   string
}

// WriteFormatted runs a formatter and writes its output to w. Nothing is
// written when formatting fails.
func WriteFormatted(f Formatter, results *domain.ComparisonResult, w io.Writer) error {
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// builtInFormatters returns the available formatters configured with opts.
func builtInFormatters(opts Options) []Formatter {
	return []Formatter{
		GnuplotFormatter{Terminal: opts.Terminal, Output: opts.Output},
		CSVSummarizer{},
		CSVDetailedExporter{},
		ConsoleFormatter{},
		JSONFormatter{},
	}
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string, opts Options) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters(opts) {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"":             DefaultFormat,
	"plot":         "gnuplot",
	"gp":           "gnuplot",
	"text":         "console",
	"summary":      "console",
	"csv-detailed": "detailed-csv",
	"csv-summary":  "csv",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	formatters := builtInFormatters(Options{})
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
