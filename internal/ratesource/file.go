package ratesource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexcase/interest-engine/internal/rates"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileProvider reads rate history from a local YAML or CSV file.
//
// YAML files map a series name to a list of rows, each row holding a date
// and one key per tier:
//
//	lpr:
//	  - date: "2025-05-20"
//	    1y: "3.00"
//	    5y: "3.50"
//
// CSV files carry a "series,date,<tier>..." header; empty cells are skipped.
type FileProvider struct {
	path   string
	logger *zap.Logger
}

// NewFileProvider creates a provider for path
func NewFileProvider(path string, logger *zap.Logger) *FileProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileProvider{path: path, logger: logger.Named("file")}
}

func (p *FileProvider) Name() string { return "file:" + filepath.Base(p.path) }

// Fetch reads the whole file on every call; files are small.
func (p *FileProvider) Fetch(ctx context.Context, series rates.Series) ([]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate file %s: %w", p.path, err)
	}
	defer f.Close()

	var all map[rates.Series][]RawRecord
	if strings.EqualFold(filepath.Ext(p.path), ".csv") {
		all, err = readRateCSV(f)
	} else {
		all, err = readRateYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file %s: %w", p.path, err)
	}
	p.logger.Debug("read rate file", zap.String("path", p.path), zap.String("series", string(series)), zap.Int("rows", len(all[series])))
	return all[series], nil
}

func readRateYAML(r io.Reader) (map[rates.Series][]RawRecord, error) {
	var doc map[string][]map[string]string
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	out := make(map[rates.Series][]RawRecord, len(doc))
	for name, rows := range doc {
		series := rates.Series(strings.ToLower(name))
		for _, row := range rows {
			rec := RawRecord{Date: row["date"], Tiers: make(map[string]string, len(row))}
			for k, v := range row {
				if k != "date" {
					rec.Tiers[k] = v
				}
			}
			out[series] = append(out[series], rec)
		}
	}
	return out, nil
}

func readRateCSV(r io.Reader) (map[rates.Series][]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 3 || !strings.EqualFold(header[0], "series") || !strings.EqualFold(header[1], "date") {
		return nil, fmt.Errorf("invalid CSV format: expected series,date,<tier>... header")
	}

	out := make(map[rates.Series][]RawRecord)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		rec := RawRecord{Date: row[1], Tiers: make(map[string]string)}
		for i := 2; i < len(row) && i < len(header); i++ {
			if strings.TrimSpace(row[i]) != "" {
				rec.Tiers[header[i]] = row[i]
			}
		}
		series := rates.Series(strings.ToLower(strings.TrimSpace(row[0])))
		out[series] = append(out[series], rec)
	}
	return out, nil
}
