package output

import (
	"os"

	"github.com/lexcase/interest-engine/internal/config"
	"github.com/lexcase/interest-engine/internal/domain"
)

// allFormats are written by GenerateReport for the "all" pseudo format.
var allFormats = []string{"console", "csv", "html", "json"}

// GenerateReport writes result in the named format (or every format in
// allFormats for "all") to dir and returns the written file names.
func GenerateReport(result *domain.CalculationResult, format, dir string) ([]string, error) {
	names := []string{format}
	if NormalizeFormatName(format) == "all" {
		names = allFormats
	}
	var files []string
	for _, name := range names {
		f, err := LookupFormatter(name)
		if err != nil {
			return files, err
		}
		file, err := WriteFormatted(f, result, dir, Extension(f.Name()))
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

// SaveRequest writes req as a YAML request document that can be fed back
// to the calculator.
func SaveRequest(req domain.CalculationRequest, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := config.NewInputParser().WriteYAML(f, req); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
