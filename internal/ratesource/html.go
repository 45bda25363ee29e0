package ratesource

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"
	"github.com/lexcase/interest-engine/internal/rates"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// HTMLProvider scrapes a published rate table from a web page. The page is
// expected to hold a table whose header row names the tiers after a leading
// date column:
//
//	<tr><th>Date</th><th>1Y</th><th>5Y</th></tr>
//	<tr><td>2025-05-20</td><td>3.00%</td><td>3.50%</td></tr>
type HTMLProvider struct {
	urls   map[rates.Series]string
	client *http.Client
	logger *zap.Logger
}

// NewHTMLProvider creates a scraper. baseURL gets a "series" query parameter
// appended per fetch; override single series with WithSeriesURL.
func NewHTMLProvider(baseURL string, client *http.Client, logger *zap.Logger) *HTMLProvider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	urls := make(map[rates.Series]string, len(rates.KnownSeries))
	for _, s := range rates.KnownSeries {
		urls[s] = withQuery(baseURL, "series", string(s))
	}
	return &HTMLProvider{urls: urls, client: client, logger: logger.Named("html")}
}

// WithSeriesURL points one series at its own page.
func (p *HTMLProvider) WithSeriesURL(series rates.Series, url string) *HTMLProvider {
	p.urls[series] = url
	return p
}

func (p *HTMLProvider) Name() string { return "html" }

func (p *HTMLProvider) Fetch(ctx context.Context, series rates.Series) ([]RawRecord, error) {
	url, ok := p.urls[series]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeries, series)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed reading rate page %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate page %s returned %s", url, resp.Status)
	}

	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate page %s: %w", url, err)
	}
	p.logger.Debug("parsed root nodes", zap.String("url", url))

	records, err := ParseRateTable(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate table on %s: %w", url, err)
	}
	p.logger.Debug("parsed rate rows", zap.String("series", string(series)), zap.Int("rows", len(records)))
	return records, nil
}

// ParseRateTable extracts rows from the first table on the page whose header
// starts with a date column.
func ParseRateTable(doc *html.Node) ([]RawRecord, error) {
	tables, err := htmlquery.QueryAll(doc, "//table")
	if err != nil {
		return nil, fmt.Errorf("failed to xpath tables: %w", err)
	}
	for _, table := range tables {
		rows, err := htmlquery.QueryAll(table, ".//tr")
		if err != nil {
			return nil, fmt.Errorf("failed to xpath rows: %w", err)
		}
		if len(rows) < 2 {
			continue
		}
		header, err := cellTexts(rows[0])
		if err != nil {
			return nil, err
		}
		if len(header) < 2 || !strings.Contains(strings.ToLower(header[0]), "date") {
			continue
		}

		records := make([]RawRecord, 0, len(rows)-1)
		for _, row := range rows[1:] {
			cells, err := cellTexts(row)
			if err != nil {
				return nil, err
			}
			if len(cells) < 2 {
				continue
			}
			rec := RawRecord{Date: cells[0], Tiers: make(map[string]string, len(cells)-1)}
			for i := 1; i < len(cells) && i < len(header); i++ {
				if cells[i] != "" && cells[i] != "-" {
					rec.Tiers[header[i]] = cells[i]
				}
			}
			records = append(records, rec)
		}
		return records, nil
	}
	return nil, fmt.Errorf("source table structure seems to have changed: no table with a date column")
}

func cellTexts(row *html.Node) ([]string, error) {
	cells, err := htmlquery.QueryAll(row, "./th|./td")
	if err != nil {
		return nil, fmt.Errorf("failed to xpath cells: %w", err)
	}
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, strings.TrimSpace(htmlquery.InnerText(c)))
	}
	return out, nil
}

func withQuery(base, key, value string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + key + "=" + value
}
