package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Tier identifies a maturity bucket of a published rate series
type Tier string

const (
	Tier6M     Tier = "6m"
	Tier1Y     Tier = "1y"
	Tier1To3Y  Tier = "1y-3y"
	Tier3To5Y  Tier = "3y-5y"
	TierOver5Y Tier = "over5y"
	Tier5Y     Tier = "5y"
)

// KnownTiers lists every tier in canonical order.
var KnownTiers = []Tier{Tier6M, Tier1Y, Tier1To3Y, Tier3To5Y, TierOver5Y, Tier5Y}

// IsKnown reports whether t is one of KnownTiers.
func (t Tier) IsKnown() bool {
	for _, k := range KnownTiers {
		if k == t {
			return true
		}
	}
	return false
}

// RegimeKind names a rate regime variant
type RegimeKind string

const (
	RegimeFixed     RegimeKind = "fixed"
	RegimeLPR       RegimeKind = "lpr"
	RegimeBenchmark RegimeKind = "benchmark"
	RegimeSegmented RegimeKind = "segmented"
	RegimeCustom    RegimeKind = "custom"
)

// LookupMode selects how a historical series is consulted.
type LookupMode string

const (
	// ModeSpecified uses the record in force on one reference date for the whole range.
	ModeSpecified LookupMode = "specified"
	// ModeSegmented looks the rate up for every day of the range.
	ModeSegmented LookupMode = "segmented"
)

// RateUnit is the unit a custom rate is quoted in
type RateUnit string

const (
	UnitPercent        RateUnit = "percent"
	UnitPermille       RateUnit = "permille"
	UnitPerTenThousand RateUnit = "per_ten_thousand"
)

// TimeBasis is the period a custom rate is quoted for
type TimeBasis string

const (
	BasisYear  TimeBasis = "year"
	BasisMonth TimeBasis = "month"
	BasisDay   TimeBasis = "day"
)

// Regime is the tagged union of supported rate regimes. Only the variants
// declared in this package implement it.
type Regime interface {
	Kind() RegimeKind
	isRegime()
}

// FixedRegime applies one constant annual rate (percent).
type FixedRegime struct {
	Rate decimal.Decimal `json:"rate"`
}

// LPRRegime uses the Loan Prime Rate series.
type LPRRegime struct {
	Tier        Tier                 `json:"tier"`
	Mode        LookupMode           `json:"mode"`
	AsOf        *civil.Date          `json:"as_of,omitempty"`
	BasisPoints BasisPointAdjustment `json:"basis_points"`
}

// BenchmarkRegime uses the central-bank benchmark lending rate series.
type BenchmarkRegime struct {
	Tier Tier        `json:"tier"`
	Mode LookupMode  `json:"mode"`
	AsOf *civil.Date `json:"as_of,omitempty"`
}

// SegmentedRegime switches from the benchmark series to LPR on the reform date.
type SegmentedRegime struct {
	Tier        Tier                 `json:"tier"`
	BasisPoints BasisPointAdjustment `json:"basis_points"`
}

// CustomRegime applies a user supplied rate in an arbitrary unit and time basis.
type CustomRegime struct {
	Rate      decimal.Decimal `json:"rate"`
	Unit      RateUnit        `json:"unit"`
	TimeBasis TimeBasis       `json:"time_basis"`
}

func (FixedRegime) Kind() RegimeKind     { return RegimeFixed }
func (LPRRegime) Kind() RegimeKind       { return RegimeLPR }
func (BenchmarkRegime) Kind() RegimeKind { return RegimeBenchmark }
func (SegmentedRegime) Kind() RegimeKind { return RegimeSegmented }
func (CustomRegime) Kind() RegimeKind    { return RegimeCustom }

func (FixedRegime) isRegime()     {}
func (LPRRegime) isRegime()       {}
func (BenchmarkRegime) isRegime() {}
func (SegmentedRegime) isRegime() {}
func (CustomRegime) isRegime()    {}

// IsDateSegmented reports whether a regime resolves its rate day by day.
func IsDateSegmented(r Regime) bool {
	switch v := r.(type) {
	case LPRRegime:
		return v.Mode == ModeSegmented
	case BenchmarkRegime:
		return v.Mode == ModeSegmented
	case SegmentedRegime:
		return true
	default:
		return false
	}
}

// AdjustmentKind selects how a float adjustment modifies a base rate
type AdjustmentKind string

const (
	AdjustNone       AdjustmentKind = "none"
	AdjustUp         AdjustmentKind = "up"
	AdjustDown       AdjustmentKind = "down"
	AdjustMultiplier AdjustmentKind = "multiplier"
)

// Adjustment is a float (percentage of the base) or multiplier applied to the base rate.
type Adjustment struct {
	Kind  AdjustmentKind  `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// BasisPointAdjustment adds or subtracts basis points before the float adjustment.
// Multiplier is not a valid kind here.
type BasisPointAdjustment struct {
	Kind   AdjustmentKind  `json:"kind"`
	Points decimal.Decimal `json:"points"`
}
