package ratesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRateTable(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "lpr.html"))
	require.NoError(t, err)
	defer f.Close()
	doc, err := htmlquery.Parse(f)
	require.NoError(t, err)

	records, err := ParseRateTable(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, RawRecord{Date: "2026-01-20", Tiers: map[string]string{"1Y": "2.90%", "5Y": "3.40%"}}, records[0])
	assert.Equal(t, map[string]string{"1Y": "2.95%"}, records[1].Tiers)

	normalized := Normalize(records, nil)
	require.Len(t, normalized, 2)
}

func TestParseRateTableWithoutDateColumn(t *testing.T) {
	doc, err := htmlquery.Parse(strings.NewReader("<table><tr><th>Tier</th><th>Rate</th></tr><tr><td>1Y</td><td>3%</td></tr></table>"))
	require.NoError(t, err)

	_, err = ParseRateTable(doc)
	assert.ErrorContains(t, err, "structure seems to have changed")
}

func TestHTMLProviderFetch(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "lpr.html"))
	require.NoError(t, err)

	var gotSeries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSeries = append(gotSeries, r.URL.Query().Get("series"))
		if r.URL.Query().Get("series") != "lpr" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}))
	defer srv.Close()

	p := NewHTMLProvider(srv.URL+"/rates", srv.Client(), nil)

	records, err := p.Fetch(context.Background(), rates.SeriesLPR)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = p.Fetch(context.Background(), rates.SeriesBenchmark)
	assert.ErrorContains(t, err, "404")

	_, err = p.Fetch(context.Background(), rates.Series("shibor"))
	assert.ErrorIs(t, err, ErrUnknownSeries)

	assert.Equal(t, []string{"lpr", "benchmark"}, gotSeries)
}

func TestHTMLProviderSeriesURL(t *testing.T) {
	p := NewHTMLProvider("https://example.test/rates?lang=en", nil, nil)
	assert.Equal(t, "https://example.test/rates?lang=en&series=lpr", p.urls[rates.SeriesLPR])

	p.WithSeriesURL(rates.SeriesBenchmark, "https://example.test/benchmark")
	assert.Equal(t, "https://example.test/benchmark", p.urls[rates.SeriesBenchmark])
}
