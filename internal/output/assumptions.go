package output

import (
	"fmt"

	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/shopspring/decimal"
)

// DefaultConventions lists the calculation conventions rendered in detailed outputs.
var DefaultConventions = []string{
	"Both the start and end date accrue interest unless a boundary mode says otherwise",
	"Each rate period is rounded to cents (half away from zero) before summing",
	"Rates before 2019-08-20 come from the benchmark lending rate, later ones from LPR",
	"Delayed-performance penalty interest accrues at 0.0175% per day on the principal",
}

// Conventions describes the conventions that applied to result.
func Conventions(result *domain.CalculationResult) []string {
	out := []string{
		fmt.Sprintf("Daily rate = annual rate ÷ %d days", result.YearBasis),
	}
	out = append(out, DefaultConventions...)
	if !result.PenaltyInterest.IsZero() {
		out = append(out, fmt.Sprintf("Penalty interest over %d days: %s", result.Days, FormatCurrency(result.PenaltyInterest)))
	}
	return append(out, fmt.Sprintf("Bundled rate tables current to %s", rates.FallbackVersion))
}

var decimalHundred = decimal.NewFromInt(100)
