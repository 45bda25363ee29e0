package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/lexcase/interest-engine/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"rate": FormatRate,
	"inc":  func(i int) int { return i + 1 },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.CalculationResult
		Summary     Summary
		Conventions []string
	}{result, Summarize(result), Conventions(result)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
