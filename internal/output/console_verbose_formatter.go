package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lexcase/interest-engine/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report with one
// calculation line per rate period.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "INTEREST CALCULATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "Principal:   %s\n", FormatCurrency(result.Principal))
	fmt.Fprintf(&buf, "Range:       %s to %s (%d days)\n", result.StartDate, result.EndDate, result.Days)
	fmt.Fprintf(&buf, "Rate regime: %s, %d-day year\n", result.Regime, result.YearBasis)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CONVENTIONS:")
	for _, c := range Conventions(result) {
		fmt.Fprintf(&buf, "• %s\n", c)
	}
	fmt.Fprintln(&buf)

	if len(result.Periods) > 0 {
		fmt.Fprintln(&buf, "PERIODS")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		for i, p := range result.Periods {
			writePeriod(&buf, i+1, p, result)
		}
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
	} else {
		fmt.Fprintln(&buf, "No days accrue interest in this range.")
	}

	fmt.Fprintf(&buf, "General interest: %s\n", FormatCurrency(result.GeneralInterest))
	if !result.PenaltyInterest.IsZero() {
		fmt.Fprintf(&buf, "Penalty interest: %s × 0.0175%% × %d = %s\n",
			FormatCurrency(result.Principal), result.Days, FormatCurrency(result.PenaltyInterest))
	}
	fmt.Fprintf(&buf, "TOTAL INTEREST:   %s\n", FormatCurrency(result.TotalInterest))
	return buf.Bytes(), nil
}

func writePeriod(buf *bytes.Buffer, n int, p domain.Period, result *domain.CalculationResult) {
	fmt.Fprintf(buf, "%2d. %s .. %s  [%s, base %s]\n", n, p.StartDate, p.EndDate, p.Source, FormatRate(p.BaseRate))
	fmt.Fprintf(buf, "    %s × (%s ÷ %d) × %d days = %s\n",
		FormatCurrency(result.Principal), FormatRate(p.AdjustedRate), result.YearBasis, p.Days, FormatCurrency(p.Interest))
}
