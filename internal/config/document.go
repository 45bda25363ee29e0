package config

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrMalformedRequest marks documents whose fields cannot be parsed at all,
// as opposed to requests that parse but fail validation.
var ErrMalformedRequest = errors.New("malformed request document")

// Number holds a decimal literal. JSON documents may give it as a number or
// a string; YAML scalars of either kind decode into it unchanged.
type Number string

// UnmarshalJSON accepts both 12.5 and "12.5".
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	*n = Number(strings.Trim(s, `"`))
	return nil
}

// RequestDocument is the on-disk and on-the-wire shape of a calculation request.
type RequestDocument struct {
	Principal      Number              `yaml:"principal" json:"principal"`
	StartDate      string              `yaml:"start_date" json:"start_date"`
	EndDate        string              `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Duration       *DurationDocument   `yaml:"duration,omitempty" json:"duration,omitempty"`
	YearBasis      int                 `yaml:"year_basis" json:"year_basis"`
	Regime         RegimeDocument      `yaml:"regime" json:"regime"`
	Adjustment     *AdjustmentDocument `yaml:"adjustment,omitempty" json:"adjustment,omitempty"`
	BoundaryMode   string              `yaml:"boundary_mode,omitempty" json:"boundary_mode,omitempty"`
	IncludePenalty bool                `yaml:"include_penalty,omitempty" json:"include_penalty,omitempty"`
}

// DurationDocument describes a range by its length.
type DurationDocument struct {
	Years  int `yaml:"years,omitempty" json:"years,omitempty"`
	Months int `yaml:"months,omitempty" json:"months,omitempty"`
	Days   int `yaml:"days,omitempty" json:"days,omitempty"`
}

// RegimeDocument is a flattened regime discriminated by Kind. Fields that do
// not belong to the selected kind are ignored.
type RegimeDocument struct {
	Kind        string              `yaml:"kind" json:"kind"`
	Rate        Number              `yaml:"rate,omitempty" json:"rate,omitempty"`
	Tier        string              `yaml:"tier,omitempty" json:"tier,omitempty"`
	Mode        string              `yaml:"mode,omitempty" json:"mode,omitempty"`
	AsOf        string              `yaml:"as_of,omitempty" json:"as_of,omitempty"`
	BasisPoints *AdjustmentDocument `yaml:"basis_points,omitempty" json:"basis_points,omitempty"`
	Unit        string              `yaml:"unit,omitempty" json:"unit,omitempty"`
	TimeBasis   string              `yaml:"time_basis,omitempty" json:"time_basis,omitempty"`
}

// AdjustmentDocument carries either a float/multiplier adjustment (Value) or
// a basis-point shift (Points).
type AdjustmentDocument struct {
	Kind   string `yaml:"kind" json:"kind"`
	Value  Number `yaml:"value,omitempty" json:"value,omitempty"`
	Points Number `yaml:"points,omitempty" json:"points,omitempty"`
}

// ToRequest converts the document into a domain request. Only syntax is
// checked here; semantic checks belong to calculation.Validate.
func (d RequestDocument) ToRequest() (domain.CalculationRequest, error) {
	var req domain.CalculationRequest
	var err error

	if req.Principal, err = parseNumber("principal", d.Principal, true); err != nil {
		return req, err
	}
	if req.StartDate, err = parseDate("start_date", d.StartDate); err != nil {
		return req, err
	}
	if req.EndDate, err = parseDate("end_date", d.EndDate); err != nil {
		return req, err
	}
	if d.Duration != nil {
		req.Duration = &domain.Duration{Years: d.Duration.Years, Months: d.Duration.Months, Days: d.Duration.Days}
	}
	req.YearBasis = domain.YearBasis(d.YearBasis)
	if req.YearBasis == 0 {
		req.YearBasis = domain.YearBasis360
	}
	if req.Regime, err = d.Regime.toRegime(); err != nil {
		return req, err
	}
	if d.Adjustment != nil {
		value, err := parseNumber("adjustment.value", d.Adjustment.Value, false)
		if err != nil {
			return req, err
		}
		req.Adjustment = domain.Adjustment{Kind: domain.AdjustmentKind(d.Adjustment.Kind), Value: value}
	}
	req.BoundaryMode = domain.BoundaryMode(d.BoundaryMode)
	req.IncludePenalty = d.IncludePenalty
	return req, nil
}

func (r RegimeDocument) toRegime() (domain.Regime, error) {
	switch domain.RegimeKind(r.Kind) {
	case "":
		return nil, nil
	case domain.RegimeFixed:
		rate, err := parseNumber("regime.rate", r.Rate, true)
		if err != nil {
			return nil, err
		}
		return domain.FixedRegime{Rate: rate}, nil
	case domain.RegimeLPR:
		asOf, err := parseOptionalDate("regime.as_of", r.AsOf)
		if err != nil {
			return nil, err
		}
		bp, err := r.basisPoints()
		if err != nil {
			return nil, err
		}
		return domain.LPRRegime{Tier: domain.Tier(r.Tier), Mode: modeOrDefault(r.Mode), AsOf: asOf, BasisPoints: bp}, nil
	case domain.RegimeBenchmark:
		asOf, err := parseOptionalDate("regime.as_of", r.AsOf)
		if err != nil {
			return nil, err
		}
		return domain.BenchmarkRegime{Tier: domain.Tier(r.Tier), Mode: modeOrDefault(r.Mode), AsOf: asOf}, nil
	case domain.RegimeSegmented:
		bp, err := r.basisPoints()
		if err != nil {
			return nil, err
		}
		return domain.SegmentedRegime{Tier: domain.Tier(r.Tier), BasisPoints: bp}, nil
	case domain.RegimeCustom:
		rate, err := parseNumber("regime.rate", r.Rate, true)
		if err != nil {
			return nil, err
		}
		unit, basis := domain.RateUnit(r.Unit), domain.TimeBasis(r.TimeBasis)
		if unit == "" {
			unit = domain.UnitPercent
		}
		if basis == "" {
			basis = domain.BasisYear
		}
		return domain.CustomRegime{Rate: rate, Unit: unit, TimeBasis: basis}, nil
	default:
		return nil, fmt.Errorf("%w: regime.kind: unknown kind %q", ErrMalformedRequest, r.Kind)
	}
}

func (r RegimeDocument) basisPoints() (domain.BasisPointAdjustment, error) {
	if r.BasisPoints == nil {
		return domain.BasisPointAdjustment{Kind: domain.AdjustNone}, nil
	}
	points, err := parseNumber("regime.basis_points.points", r.BasisPoints.Points, false)
	if err != nil {
		return domain.BasisPointAdjustment{}, err
	}
	return domain.BasisPointAdjustment{Kind: domain.AdjustmentKind(r.BasisPoints.Kind), Points: points}, nil
}

func modeOrDefault(mode string) domain.LookupMode {
	if mode == "" {
		return domain.ModeSegmented
	}
	return domain.LookupMode(mode)
}

func parseNumber(field string, n Number, required bool) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		if required {
			return decimal.Zero, fmt.Errorf("%w: %s is required", ErrMalformedRequest, field)
		}
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %q is not a number", ErrMalformedRequest, field, s)
	}
	return v, nil
}

// parseDate leaves empty strings as the zero date so the validator can report
// which one is missing.
func parseDate(field, s string) (civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return civil.Date{}, nil
	}
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %s: %v", ErrMalformedRequest, field, err)
	}
	return d, nil
}

func parseOptionalDate(field, s string) (*civil.Date, error) {
	d, err := parseDate(field, s)
	if err != nil || dateutil.IsZero(d) {
		return nil, err
	}
	return &d, nil
}

// FromRequest renders a domain request back into document form.
func FromRequest(req domain.CalculationRequest) RequestDocument {
	doc := RequestDocument{
		Principal:      Number(req.Principal.String()),
		StartDate:      formatDate(req.StartDate),
		EndDate:        formatDate(req.EndDate),
		YearBasis:      int(req.YearBasis),
		BoundaryMode:   string(req.BoundaryMode),
		IncludePenalty: req.IncludePenalty,
	}
	if req.Duration != nil {
		doc.Duration = &DurationDocument{Years: req.Duration.Years, Months: req.Duration.Months, Days: req.Duration.Days}
	}
	if req.Adjustment.Kind != "" && req.Adjustment.Kind != domain.AdjustNone {
		doc.Adjustment = &AdjustmentDocument{Kind: string(req.Adjustment.Kind), Value: Number(req.Adjustment.Value.String())}
	}

	switch r := req.Regime.(type) {
	case domain.FixedRegime:
		doc.Regime = RegimeDocument{Kind: string(domain.RegimeFixed), Rate: Number(r.Rate.String())}
	case domain.LPRRegime:
		doc.Regime = RegimeDocument{Kind: string(domain.RegimeLPR), Tier: string(r.Tier), Mode: string(r.Mode), BasisPoints: basisPointsDocument(r.BasisPoints)}
		if r.AsOf != nil {
			doc.Regime.AsOf = r.AsOf.String()
		}
	case domain.BenchmarkRegime:
		doc.Regime = RegimeDocument{Kind: string(domain.RegimeBenchmark), Tier: string(r.Tier), Mode: string(r.Mode)}
		if r.AsOf != nil {
			doc.Regime.AsOf = r.AsOf.String()
		}
	case domain.SegmentedRegime:
		doc.Regime = RegimeDocument{Kind: string(domain.RegimeSegmented), Tier: string(r.Tier), BasisPoints: basisPointsDocument(r.BasisPoints)}
	case domain.CustomRegime:
		doc.Regime = RegimeDocument{Kind: string(domain.RegimeCustom), Rate: Number(r.Rate.String()), Unit: string(r.Unit), TimeBasis: string(r.TimeBasis)}
	}
	return doc
}

func basisPointsDocument(bp domain.BasisPointAdjustment) *AdjustmentDocument {
	if bp.Kind == "" || bp.Kind == domain.AdjustNone {
		return nil
	}
	return &AdjustmentDocument{Kind: string(bp.Kind), Points: Number(bp.Points.String())}
}

func formatDate(d civil.Date) string {
	if dateutil.IsZero(d) {
		return ""
	}
	return d.String()
}
