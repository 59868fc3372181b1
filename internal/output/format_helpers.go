package output

import (
	"github.com/shopspring/decimal"
	money "github.com/valleyjudge/offer-comparison/pkg/decimal"
)

// FormatCurrency formats a decimal as USD currency with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatThousands formats a decimal as whole thousands of dollars.
func FormatThousands(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatThousands()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// formatAmount picks the currency style requested by the comparison.
func formatAmount(amount decimal.Decimal, thousands bool) string {
	if thousands {
		return FormatThousands(amount)
	}
	return FormatCurrency(amount)
}
