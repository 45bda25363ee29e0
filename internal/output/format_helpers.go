package output

import (
	"strconv"

	money "github.com/lexcase/interest-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with the currency symbol, thousands
// separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate prints an annual rate in percent with up to 4 decimals and no
// trailing zeros beyond the second ("4.9" -> "4.90%", "6.525" -> "6.525%").
func FormatRate(rate decimal.Decimal) string {
	r := rate.Round(4)
	if r.Equal(r.Round(2)) {
		return r.StringFixed(2) + "%"
	}
	return r.String() + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
