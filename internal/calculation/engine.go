package calculation

import (
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/lexcase/interest-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates interest calculations against one rate
// history snapshot. It holds no mutable state once built and is safe for
// concurrent use.
type CalculationEngine struct {
	History *rates.History
	Logger  Logger
}

// NewCalculationEngine creates an engine over history. A nil history selects
// the static fallback series.
func NewCalculationEngine(history *rates.History) *CalculationEngine {
	if history == nil {
		history = rates.DefaultHistory()
	}
	return &CalculationEngine{
		History: history,
		Logger:  NopLogger{},
	}
}

// SetLogger sets a logger for debug output
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate validates req and computes the period breakdown and totals.
// Validation failures are returned as *ValidationError.
func (ce *CalculationEngine) Calculate(req domain.CalculationRequest) (*domain.CalculationResult, error) {
	if verr := Validate(req); verr != nil {
		ce.Logger.Debugf("rejected request: %s (%s)", verr.Error(), verr.Code)
		return nil, verr
	}
	started := nowFunc()

	end := ResolveEndDate(req)
	start, end := ApplyBoundary(req.StartDate, end, req.BoundaryMode)
	days := dateutil.DaysInclusive(start, end)
	if days < 0 {
		days = 0
	}

	result := &domain.CalculationResult{
		StartDate:       start,
		EndDate:         end,
		Principal:       req.Principal,
		YearBasis:       req.YearBasis,
		Regime:          req.Regime.Kind(),
		Days:            days,
		GeneralInterest: decimal.Zero,
		PenaltyInterest: decimal.Zero,
		TotalInterest:   decimal.Zero,
		Periods:         []domain.Period{},
	}
	if days == 0 {
		ce.Logger.Debugf("boundary mode %q leaves no accruing days in %s..%s", req.BoundaryMode, req.StartDate, ResolveEndDate(req))
		return result, nil
	}

	resolver := NewRateResolver(ce.History, req.Regime, req.Adjustment, req.YearBasis, req.StartDate)
	periods, general := Aggregate(Segment(start, end, resolver), req.Principal, req.YearBasis)
	result.Periods = periods
	result.GeneralInterest = general

	if req.IncludePenalty {
		result.PenaltyInterest = PenaltyInterest(req.Principal, days)
	}
	result.TotalInterest = TotalInterest(result.GeneralInterest, result.PenaltyInterest)

	ce.Logger.Debugf("%s interest on %s over %s..%s: %d days, %d periods, total %s (%s)",
		result.Regime, req.Principal.StringFixed(2), start, end, days, len(periods),
		result.TotalInterest.StringFixed(2), nowFunc().Sub(started))
	return result, nil
}
