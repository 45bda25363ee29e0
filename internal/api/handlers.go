package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/lexcase/interest-engine/internal/calculation"
	"github.com/lexcase/interest-engine/internal/config"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/output"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/lexcase/interest-engine/internal/ratesource"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	Engine  *calculation.CalculationEngine
	Parser  *config.InputParser
	Metrics *Metrics
	Logger  *zap.Logger
}

// NewHandler creates a handler around engine. The engine's rate history is
// also what the rates endpoints report.
func NewHandler(engine *calculation.CalculationEngine, metrics *Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Engine:  engine,
		Parser:  config.NewInputParser(),
		Metrics: metrics,
		Logger:  logger.Named("api"),
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string                     `json:"error"`
	Details string                     `json:"details,omitempty"`
	Code    calculation.ValidationCode `json:"code,omitempty"`
	Field   string                     `json:"field,omitempty"`
}

// RecordDTO is one effective-dated rate revision.
type RecordDTO struct {
	EffectiveDate string                          `json:"effective_date"`
	Rates         map[domain.Tier]decimal.Decimal `json:"rates"`
}

// SeriesDTO describes a rate series and some or all of its records.
type SeriesDTO struct {
	Series          rates.Series `json:"series"`
	FallbackVersion string       `json:"fallback_version"`
	Count           int          `json:"count"`
	Oldest          string       `json:"oldest,omitempty"`
	Latest          string       `json:"latest,omitempty"`
	Records         []RecordDTO  `json:"records,omitempty"`
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate runs one calculation from a JSON request document. The result is
// JSON unless ?format= names another report formatter.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var formatter output.Formatter
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := output.LookupFormatter(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unsupported format", err)
			return
		}
		formatter = f
	}

	doc, err := h.Parser.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.observe(resultMalformed)
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req, err := doc.ToRequest()
	if err != nil {
		h.observe(resultMalformed)
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	started := time.Now()
	result, err := h.Engine.Calculate(req)
	if err != nil {
		var verr *calculation.ValidationError
		if errors.As(err, &verr) {
			h.observe(resultInvalid)
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "Request failed validation",
				Details: verr.Message,
				Code:    verr.Code,
				Field:   verr.Field,
			})
			return
		}
		h.Logger.Error("calculation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
		return
	}
	h.observe(resultOK)
	if h.Metrics != nil {
		h.Metrics.CalculationDuration.Observe(time.Since(started).Seconds())
		h.Metrics.CalculationPeriods.Observe(float64(len(result.Periods)))
	}
	h.Logger.Debug("calculated",
		zap.String("regime", string(result.Regime)),
		zap.Int("days", result.Days),
		zap.Int("periods", len(result.Periods)),
		zap.String("total", result.TotalInterest.StringFixed(2)))

	if formatter == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}
	body, err := formatter.Format(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report", err)
		return
	}
	w.Header().Set("Content-Type", contentType(formatter.Name()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) observe(result string) {
	if h.Metrics != nil {
		h.Metrics.CalculationsTotal.WithLabelValues(result).Inc()
	}
}

// =============================================================================
// RATE HANDLERS
// =============================================================================

// ListSeries summarises every known series.
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	dtos := make([]SeriesDTO, 0, len(rates.KnownSeries))
	for _, s := range rates.KnownSeries {
		dtos = append(dtos, seriesSummary(h.Engine.History.Table(s)))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRates returns the records of one series, or with ?as_of= only the
// record in force on that date.
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	series, err := ratesource.ParseSeries(chi.URLParam(r, "series"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown rate series", err)
		return
	}
	table := h.Engine.History.Table(series)
	dto := seriesSummary(table)

	if asOf := r.URL.Query().Get("as_of"); asOf != "" {
		date, err := civil.ParseDate(asOf)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)", err)
			return
		}
		dto.Records = []RecordDTO{toRecordDTO(table.Lookup(date))}
		writeJSON(w, http.StatusOK, dto)
		return
	}

	records := table.Records()
	dto.Records = make([]RecordDTO, len(records))
	for i, rec := range records {
		dto.Records[i] = toRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dto)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":           "ok",
		"fallback_version": rates.FallbackVersion,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func seriesSummary(t *rates.Table) SeriesDTO {
	dto := SeriesDTO{Series: t.Series(), FallbackVersion: rates.FallbackVersion, Count: t.Len()}
	if rec, ok := t.Oldest(); ok {
		dto.Oldest = rec.EffectiveDate.String()
	}
	if rec, ok := t.Latest(); ok {
		dto.Latest = rec.EffectiveDate.String()
	}
	return dto
}

func toRecordDTO(rec rates.Record) RecordDTO {
	return RecordDTO{EffectiveDate: rec.EffectiveDate.String(), Rates: rec.Tiers()}
}

var contentTypes = map[string]string{
	"json": "application/json",
	"html": "text/html; charset=utf-8",
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

func contentType(formatter string) string {
	if ct, ok := contentTypes[output.Extension(formatter)]; ok {
		return ct
	}
	return "text/plain; charset=utf-8"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
