// Command demo compares two example offers. Pipe its output into gnuplot:
//
//	go run ./tools/demo --terminal 'pngcairo size 1600,900' --output offers.png | gnuplot
package main

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/pkg/valleyjudge"
)

func main() {
	valleyjudge.Main(valleyjudge.Comparison{
		Title:     "Example offers",
		StartDate: time.Date(2016, 8, 15, 0, 0, 0, 0, time.UTC),
		Years:     4,
		Offers: []valleyjudge.Offer{
			{
				Name:   "Initech",
				Base:   decimal.NewFromInt(105000),
				Bonus:  decimal.NewFromInt(50000),
				State:  "CA",
				Color:  "red",
				Grants: []valleyjudge.RsuGrant{{Total: decimal.NewFromInt(100000)}},
			},
			{
				Name:  "Contoso",
				Base:  decimal.NewFromInt(95000),
				Bonus: decimal.NewFromInt(10000),
				State: "WA",
				Color: "purple",
				Grants: []valleyjudge.RsuGrant{{
					Total: decimal.NewFromInt(250000),
					Vesting: []decimal.Decimal{
						decimal.RequireFromString("0.05"),
						decimal.RequireFromString("0.15"),
						decimal.RequireFromString("0.40"),
						decimal.RequireFromString("0.40"),
					},
				}},
			},
		},
	})
}
