package output

import (
	"bytes"
	"encoding/csv"

	"github.com/lexcase/interest-engine/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (a single totals row).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv-summary" }

func (c CSVSummarizer) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "Principal", "StartDate", "EndDate", "Days", "YearBasis", "Periods", "GeneralInterest", "PenaltyInterest", "TotalInterest", "PenaltyIncluded"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		string(result.Regime),
		result.Principal.StringFixed(2),
		result.StartDate.String(),
		result.EndDate.String(),
		intToString(result.Days),
		intToString(int(result.YearBasis)),
		intToString(len(result.Periods)),
		result.GeneralInterest.StringFixed(2),
		result.PenaltyInterest.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		boolToString(!result.PenaltyInterest.IsZero()),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
