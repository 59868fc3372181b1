// Package valleyjudge compares job offers by projected cumulative after-tax
// income. A program describes its offers as a Comparison and hands it,
// together with its command line, to MakeOfferComparison or Main; the
// result is a gnuplot script on standard output.
//
//	func main() {
//		valleyjudge.Main(valleyjudge.Comparison{
//			Title:     "Example offers",
//			StartDate: time.Date(2016, 8, 15, 0, 0, 0, 0, time.UTC),
//			Years:     4,
//			Offers: []valleyjudge.Offer{{
//				Name:   "Initech",
//				Base:   decimal.NewFromInt(105000),
//				Bonus:  decimal.NewFromInt(50000),
//				State:  "CA",
//				Grants: []valleyjudge.RsuGrant{{Total: decimal.NewFromInt(100000)}},
//			}},
//		})
//	}
//
// The command line accepts --terminal, --output, --notaxes, --debug and
// --format.
package valleyjudge

import (
	"fmt"
	"io"
	"os"

	"github.com/valleyjudge/offer-comparison/internal/cli"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

type (
	Comparison  = domain.Comparison
	Offer       = domain.Offer
	RsuGrant    = domain.RsuGrant
	MonthDay    = domain.MonthDay
	Granularity = domain.Granularity
	SeriesKind  = domain.SeriesKind
)

const (
	Monthly = domain.Monthly
	Annual  = domain.Annual

	SeriesCash   = domain.SeriesCash
	SeriesEquity = domain.SeriesEquity
	SeriesTotal  = domain.SeriesTotal
	SeriesTax    = domain.SeriesTax
)

var (
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrUnknownJurisdiction = domain.ErrUnknownJurisdiction
	ErrInvalidGrant        = domain.ErrInvalidGrant
	ErrUsage               = domain.ErrUsage
)

// MakeOfferComparison parses argv, whose first element is the program
// name, projects every offer of cmp and writes the requested output to
// stdout. Logs go to standard error. Nothing is written to stdout when an
// error is returned.
func MakeOfferComparison(cmp Comparison, argv []string, stdout io.Writer) error {
	return makeOfferComparison(cmp, argv, stdout, os.Stderr)
}

func makeOfferComparison(cmp Comparison, argv []string, stdout, stderr io.Writer) error {
	var args []string
	if len(argv) > 1 {
		args = argv[1:]
	}
	return cli.Execute(&cmp, args, stdout, stderr)
}

// Main runs MakeOfferComparison on the process arguments and exits with
// status 2 on usage errors and 1 on any other error.
func Main(cmp Comparison) {
	if err := MakeOfferComparison(cmp, os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
