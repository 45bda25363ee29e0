package output

import (
	"bytes"
	"fmt"

	"github.com/lexcase/interest-engine/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INTEREST SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "%s on %s, %s..%s (%d days)\n", result.Regime, FormatCurrency(result.Principal), result.StartDate, result.EndDate, result.Days)

	s := Summarize(result)
	for _, ss := range s.BySource {
		fmt.Fprintf(&buf, "  %s: %d periods, %d days, %s\n", ss.Source, ss.Periods, ss.Days, FormatCurrency(ss.Interest))
	}
	if len(result.Periods) > 0 {
		fmt.Fprintf(&buf, "Effective rate: %s (range %s .. %s)\n", FormatRate(s.EffectiveRate), FormatRate(s.MinRate), FormatRate(s.MaxRate))
	}
	fmt.Fprintf(&buf, "General=%s Penalty=%s Total=%s\n",
		FormatCurrency(result.GeneralInterest), FormatCurrency(result.PenaltyInterest), FormatCurrency(result.TotalInterest))
	return buf.Bytes(), nil
}
