package output

import (
	"bytes"
	"encoding/csv"

	"github.com/lexcase/interest-engine/internal/domain"
)

// CSVDetailedExporter writes one row per rate period.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv" }

func (c CSVDetailedExporter) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Period", "StartDate", "EndDate", "Days", "Source", "BaseRate", "AdjustedRate", "DailyRate", "RawInterest", "Interest"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, p := range result.Periods {
		row := []string{
			intToString(i + 1),
			p.StartDate.String(),
			p.EndDate.String(),
			intToString(p.Days),
			string(p.Source),
			p.BaseRate.String(),
			p.AdjustedRate.String(),
			p.DailyRate.StringFixed(10),
			p.RawInterest.StringFixed(6),
			p.Interest.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
