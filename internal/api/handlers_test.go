package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lexcase/interest-engine/internal/calculation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  http.Handler
	metrics *Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	h := NewHandler(calculation.NewCalculationEngine(nil), m, nil)
	return &testServer{router: NewRouter(h, reg), metrics: m}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

const fixedBody = `{
  "principal": "100000",
  "start_date": "2024-01-01",
  "end_date": "2024-12-31",
  "year_basis": 365,
  "regime": {"kind": "fixed", "rate": 3.65}
}`

func TestCalculateFixedRate(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/calculate", fixedBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result struct {
		Days          int             `json:"days"`
		TotalInterest decimal.Decimal `json:"total_interest"`
		Periods       []struct {
			Source string `json:"source"`
		} `json:"periods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 366, result.Days)
	assert.True(t, result.TotalInterest.Equal(decimal.RequireFromString("3660.00")), result.TotalInterest.String())
	require.Len(t, result.Periods, 1)
	assert.Equal(t, "fixed", result.Periods[0].Source)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CalculationsTotal.WithLabelValues(resultOK)))
	assert.Equal(t, 1, testutil.CollectAndCount(s.metrics.CalculationDuration))
}

func TestCalculateSegmentedAcrossReform(t *testing.T) {
	s := newTestServer(t)
	body := `{"principal": 100000, "start_date": "2019-08-19", "end_date": "2019-08-20",
	          "year_basis": 360, "regime": {"kind": "segmented", "tier": "1y"}}`
	rec := s.do(t, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Periods []struct {
			Source   string          `json:"source"`
			BaseRate decimal.Decimal `json:"base_rate"`
		} `json:"periods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Periods, 2)
	assert.Equal(t, "benchmark", result.Periods[0].Source)
	assert.Equal(t, "lpr", result.Periods[1].Source)
	assert.True(t, result.Periods[1].BaseRate.Equal(decimal.RequireFromString("4.25")))
}

func TestCalculateValidationFailure(t *testing.T) {
	s := newTestServer(t)
	body := strings.Replace(fixedBody, `"100000"`, `"-5"`, 1)
	rec := s.do(t, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, calculation.CodeNonPositivePrincipal, resp.Code)
	assert.Equal(t, "principal", resp.Field)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CalculationsTotal.WithLabelValues(resultInvalid)))
}

func TestCalculateLPRBeforeFloor(t *testing.T) {
	s := newTestServer(t)
	body := `{"principal": 1000, "start_date": "2019-08-01", "end_date": "2019-09-01",
	          "regime": {"kind": "lpr", "tier": "1y"}}`
	rec := s.do(t, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, calculation.CodeBeforeLPRFloor, resp.Code)
}

func TestCalculateMalformedBody(t *testing.T) {
	s := newTestServer(t)
	cases := map[string]string{
		"not json":      `{"principal": `,
		"unknown field": `{"principal": 1, "colour": "red"}`,
		"bad date":      `{"principal": 1, "start_date": "01/02/2024", "regime": {"kind": "fixed", "rate": 1}}`,
		"unknown kind":  `{"principal": 1, "start_date": "2024-01-01", "end_date": "2024-01-02", "regime": {"kind": "weekly"}}`,
	}
	for name, body := range cases {
		rec := s.do(t, http.MethodPost, "/api/calculate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
	assert.Equal(t, float64(len(cases)), testutil.ToFloat64(s.metrics.CalculationsTotal.WithLabelValues(resultMalformed)))
}

func TestCalculateAlternateFormat(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/calculate?format=csv-summary", fixedBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "fixed,100000.00,2024-01-01,2024-12-31,366,365,1,3660.00")

	rec = s.do(t, http.MethodPost, "/api/calculate?format=telex", fixedBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Try one of")
}

func TestGetRates(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/rates/lpr?as_of=2019-10-01", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var dto SeriesDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "2019-08-20", dto.Oldest)
	require.Len(t, dto.Records, 1)
	assert.Equal(t, "2019-09-20", dto.Records[0].EffectiveDate)
	assert.True(t, dto.Records[0].Rates["1y"].Equal(decimal.RequireFromString("4.20")))

	rec = s.do(t, http.MethodGet, "/api/rates/BENCHMARK", "")
	require.Equal(t, http.StatusOK, rec.Code)
	dto = SeriesDTO{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, dto.Count, len(dto.Records))
	assert.Equal(t, "1991-04-21", dto.Oldest)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/rates/libor", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/rates/lpr?as_of=yesterday", "").Code)
}

func TestListSeriesAndHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dtos []SeriesDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 2)
	assert.Empty(t, dtos[0].Records)

	rec = s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/calculate", fixedBody)

	rec := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `interest_calculations_total{result="ok"} 1`)
	assert.Contains(t, body, "interest_calculation_periods_count 1")
}
