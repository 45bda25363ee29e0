package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lexcase/interest-engine/internal/domain"
	money "github.com/lexcase/interest-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PDFFormatter renders a one-table PDF statement. The core fonts only cover
// Latin-1, so amounts are printed without the currency symbol.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Interest Calculation")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Regime: %s (%d-day year)", result.Regime, result.YearBasis),
		fmt.Sprintf("Principal: %s", plainAmount(result.Principal)),
		fmt.Sprintf("Range: %s to %s (%d days)", result.StartDate, result.EndDate, result.Days),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{10, 26, 26, 14, 24, 22, 22, 30}
	header := []string{"#", "From", "To", "Days", "Source", "Base %", "Applied %", "Interest"}
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i, period := range result.Periods {
		cells := []string{
			intToString(i + 1),
			period.StartDate.String(),
			period.EndDate.String(),
			intToString(period.Days),
			string(period.Source),
			period.BaseRate.String(),
			period.AdjustedRate.Round(4).String(),
			plainAmount(period.Interest),
		}
		for j, c := range cells {
			align := "R"
			if j == 1 || j == 2 || j == 4 {
				align = "C"
			}
			pdf.CellFormat(widths[j], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	totals := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"General interest", result.GeneralInterest},
		{"Penalty interest", result.PenaltyInterest},
		{"Total interest", result.TotalInterest},
	}
	for _, t := range totals {
		pdf.CellFormat(60, 6, t.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, plainAmount(t.amount), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// plainAmount adds thousands separators to a fixed-point amount.
func plainAmount(d decimal.Decimal) string {
	return strings.Replace(FormatCurrency(d), money.CurrencySymbol, "", 1)
}
