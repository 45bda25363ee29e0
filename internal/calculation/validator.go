package calculation

import (
	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/pkg/dateutil"
)

// Earliest dates each kind of calculation supports.
var (
	// BenchmarkFloor is the first benchmark lending rate on record.
	BenchmarkFloor = dateutil.MustDate(1991, 4, 21)
	// LPRFloor is the first LPR quote.
	LPRFloor = LPRReformDate
	// PenaltyFloor is when delayed-performance penalty interest took effect.
	PenaltyFloor = dateutil.MustDate(2014, 8, 1)
)

// MaxSpanYears bounds the length of a single calculation.
const MaxSpanYears = 100

// Validate checks every precondition of req and returns the first violation,
// or nil when the request can be computed.
func Validate(req domain.CalculationRequest) *ValidationError {
	if !req.Principal.IsPositive() {
		return invalid(CodeNonPositivePrincipal, "principal", "principal must be greater than zero, got %s", req.Principal.String())
	}
	if req.YearBasis != domain.YearBasis360 && req.YearBasis != domain.YearBasis365 {
		return invalid(CodeUnsupportedYearBasis, "year_basis", "year basis must be 360 or 365, got %d", req.YearBasis)
	}
	if err := validateRegime(req.Regime); err != nil {
		return err
	}
	if err := validateAdjustment(req.Adjustment); err != nil {
		return err
	}
	if err := validateRange(req); err != nil {
		return err
	}
	if err := validateBoundary(req); err != nil {
		return err
	}
	if err := validateFloors(req); err != nil {
		return err
	}
	return nil
}

// ResolveEndDate returns the concrete end date of req. A duration-only request
// covers exactly its duration: end = start + duration - 1 day.
func ResolveEndDate(req domain.CalculationRequest) civil.Date {
	if !dateutil.IsZero(req.EndDate) || req.Duration == nil || req.Duration.IsZero() {
		return req.EndDate
	}
	d := req.Duration
	return dateutil.AddDate(req.StartDate, d.Years, d.Months, d.Days).AddDays(-1)
}

func validateRegime(regime domain.Regime) *ValidationError {
	switch r := regime.(type) {
	case nil:
		return invalid(CodeMissingRegime, "regime", "a rate regime is required")
	case domain.FixedRegime:
		return nil
	case domain.LPRRegime:
		if err := validateTier("regime.tier", r.Tier); err != nil {
			return err
		}
		if err := validateMode(r.Mode); err != nil {
			return err
		}
		return validateBasisPoints(r.BasisPoints)
	case domain.BenchmarkRegime:
		if err := validateTier("regime.tier", r.Tier); err != nil {
			return err
		}
		return validateMode(r.Mode)
	case domain.SegmentedRegime:
		if err := validateTier("regime.tier", r.Tier); err != nil {
			return err
		}
		return validateBasisPoints(r.BasisPoints)
	case domain.CustomRegime:
		switch r.Unit {
		case domain.UnitPercent, domain.UnitPermille, domain.UnitPerTenThousand:
		default:
			return invalid(CodeInvalidRegime, "regime.unit", "unknown rate unit %q", r.Unit)
		}
		switch r.TimeBasis {
		case domain.BasisYear, domain.BasisMonth, domain.BasisDay:
		default:
			return invalid(CodeInvalidRegime, "regime.time_basis", "unknown time basis %q", r.TimeBasis)
		}
		return nil
	default:
		return invalid(CodeInvalidRegime, "regime", "unsupported regime %q", regime.Kind())
	}
}

func validateTier(field string, t domain.Tier) *ValidationError {
	if !t.IsKnown() {
		return invalid(CodeInvalidRegime, field, "unknown tier %q", t)
	}
	return nil
}

func validateMode(m domain.LookupMode) *ValidationError {
	if m != domain.ModeSpecified && m != domain.ModeSegmented {
		return invalid(CodeInvalidRegime, "regime.mode", "mode must be %q or %q, got %q", domain.ModeSpecified, domain.ModeSegmented, m)
	}
	return nil
}

func validateBasisPoints(bp domain.BasisPointAdjustment) *ValidationError {
	switch bp.Kind {
	case "", domain.AdjustNone, domain.AdjustUp, domain.AdjustDown:
		return nil
	default:
		return invalid(CodeInvalidAdjustment, "regime.basis_points.kind", "basis points must be none, up or down, got %q", bp.Kind)
	}
}

func validateAdjustment(adj domain.Adjustment) *ValidationError {
	switch adj.Kind {
	case "", domain.AdjustNone, domain.AdjustUp, domain.AdjustDown, domain.AdjustMultiplier:
		return nil
	default:
		return invalid(CodeInvalidAdjustment, "adjustment.kind", "unknown adjustment %q", adj.Kind)
	}
}

func validateRange(req domain.CalculationRequest) *ValidationError {
	if dateutil.IsZero(req.StartDate) || !req.StartDate.IsValid() {
		return invalid(CodeMissingDate, "start_date", "a valid start date is required")
	}
	hasDuration := req.Duration != nil && !req.Duration.IsZero()
	hasEnd := !dateutil.IsZero(req.EndDate)
	switch {
	case hasEnd && hasDuration:
		return invalid(CodeConflictingRange, "end_date", "give either an end date or a duration, not both")
	case !hasEnd && !hasDuration:
		return invalid(CodeMissingDate, "end_date", "an end date or a duration is required")
	case hasEnd && !req.EndDate.IsValid():
		return invalid(CodeMissingDate, "end_date", "end date %s is not a valid date", req.EndDate)
	}

	end := ResolveEndDate(req)
	if end.Before(req.StartDate) {
		return invalid(CodeInvertedRange, "end_date", "end date %s is before start date %s", end, req.StartDate)
	}
	if end.After(dateutil.AddYears(req.StartDate, MaxSpanYears)) {
		return invalid(CodeRangeTooLong, "end_date", "range %s..%s exceeds %d years", req.StartDate, end, MaxSpanYears)
	}
	return nil
}

func validateBoundary(req domain.CalculationRequest) *ValidationError {
	switch req.BoundaryMode {
	case "", domain.BoundaryBoth:
		return nil
	case domain.BoundaryStartOnly, domain.BoundaryEndOnly, domain.BoundaryNeither:
	default:
		return invalid(CodeInvalidBoundaryMode, "boundary_mode", "unknown boundary mode %q", req.BoundaryMode)
	}
	if domain.IsDateSegmented(req.Regime) {
		return invalid(CodeBoundaryModeUnsupported, "boundary_mode",
			"boundary mode %q is only available for single-rate calculations", req.BoundaryMode)
	}
	return nil
}

func validateFloors(req domain.CalculationRequest) *ValidationError {
	switch r := req.Regime.(type) {
	case domain.LPRRegime:
		if req.StartDate.Before(LPRFloor) {
			return invalid(CodeBeforeLPRFloor, "start_date", "LPR interest cannot start before %s, got %s", LPRFloor, req.StartDate)
		}
		if r.Mode == domain.ModeSpecified && r.AsOf != nil && r.AsOf.Before(LPRFloor) {
			return invalid(CodeBeforeLPRFloor, "regime.as_of", "LPR reference date cannot be before %s, got %s", LPRFloor, *r.AsOf)
		}
	case domain.BenchmarkRegime:
		if req.StartDate.Before(BenchmarkFloor) {
			return invalid(CodeBeforeBenchmarkFloor, "start_date", "benchmark interest cannot start before %s, got %s", BenchmarkFloor, req.StartDate)
		}
		if r.Mode == domain.ModeSpecified && r.AsOf != nil && r.AsOf.Before(BenchmarkFloor) {
			return invalid(CodeBeforeBenchmarkFloor, "regime.as_of", "benchmark reference date cannot be before %s, got %s", BenchmarkFloor, *r.AsOf)
		}
	case domain.SegmentedRegime:
		if req.StartDate.Before(BenchmarkFloor) {
			return invalid(CodeBeforeBenchmarkFloor, "start_date", "segmented interest cannot start before %s, got %s", BenchmarkFloor, req.StartDate)
		}
	}
	if req.IncludePenalty && req.StartDate.Before(PenaltyFloor) {
		return invalid(CodeBeforePenaltyFloor, "start_date", "penalty interest cannot start before %s, got %s", PenaltyFloor, req.StartDate)
	}
	return nil
}
