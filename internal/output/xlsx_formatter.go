package output

import (
	"bytes"
	"fmt"

	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXFormatter renders a workbook with a summary sheet and a periods sheet.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	periodsSheet := "periods"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(periodsSheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Interest Calculation"},
		{},
		{"Regime", string(result.Regime)},
		{"Principal", result.Principal.InexactFloat64()},
		{"Start date", result.StartDate.String()},
		{"End date", result.EndDate.String()},
		{"Days", result.Days},
		{"Year basis", int(result.YearBasis)},
		{"General interest", result.GeneralInterest.InexactFloat64()},
		{"Penalty interest", result.PenaltyInterest.InexactFloat64()},
		{"Total interest", result.TotalInterest.InexactFloat64()},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}

	header := []interface{}{"#", "Start", "End", "Days", "Source", "Base rate %", "Applied rate %", "Raw interest", "Interest"}
	if err := f.SetSheetRow(periodsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, p := range result.Periods {
		row := []interface{}{
			i + 1,
			p.StartDate.String(),
			p.EndDate.String(),
			p.Days,
			string(p.Source),
			p.BaseRate.InexactFloat64(),
			p.AdjustedRate.InexactFloat64(),
			p.RawInterest.Round(6).InexactFloat64(),
			p.Interest.InexactFloat64(),
		}
		if err := f.SetSheetRow(periodsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
