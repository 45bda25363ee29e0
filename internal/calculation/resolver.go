package calculation

import (
	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/lexcase/interest-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// LPRReformDate is the first day rates are quoted against LPR instead of the
// benchmark lending rate.
var LPRReformDate = dateutil.MustDate(2019, 8, 20)

// DayRate is the rate in force on one calendar day.
type DayRate struct {
	Source       domain.RateSource
	BaseRate     decimal.Decimal
	AdjustedRate decimal.Decimal
	DailyRate    decimal.Decimal
}

// RateResolver answers "which rate applies on this day" for one regime. It is
// immutable and holds no per-call state.
type RateResolver struct {
	history    *rates.History
	regime     domain.Regime
	adjustment domain.Adjustment
	yearBasis  decimal.Decimal
	// asOf backs specified-mode lookups.
	asOf civil.Date
}

// NewRateResolver binds a regime and its adjustment to a rate-history snapshot.
// defaultAsOf is used by specified-mode regimes that carry no reference date.
func NewRateResolver(history *rates.History, regime domain.Regime, adj domain.Adjustment, basis domain.YearBasis, defaultAsOf civil.Date) *RateResolver {
	asOf := defaultAsOf
	switch r := regime.(type) {
	case domain.LPRRegime:
		if r.AsOf != nil {
			asOf = *r.AsOf
		}
	case domain.BenchmarkRegime:
		if r.AsOf != nil {
			asOf = *r.AsOf
		}
	}
	return &RateResolver{
		history:    history,
		regime:     regime,
		adjustment: adj,
		yearBasis:  decimal.NewFromInt(int64(basis)),
		asOf:       asOf,
	}
}

// ResolveDay returns base, adjusted and daily rate for date.
func (rr *RateResolver) ResolveDay(date civil.Date) DayRate {
	source, base, bp := rr.baseRate(date)
	adjusted := adjustRate(base, bp, rr.adjustment)
	return DayRate{
		Source:       source,
		BaseRate:     base,
		AdjustedRate: adjusted,
		DailyRate:    adjusted.Div(rr.yearBasis).Div(decimalHundred),
	}
}

// baseRate resolves the unadjusted rate and the basis-point step that applies
// to it. Basis points only ever apply to LPR-sourced rates.
func (rr *RateResolver) baseRate(date civil.Date) (domain.RateSource, decimal.Decimal, domain.BasisPointAdjustment) {
	none := domain.BasisPointAdjustment{Kind: domain.AdjustNone}

	switch r := rr.regime.(type) {
	case domain.FixedRegime:
		return domain.SourceFixed, r.Rate, none

	case domain.CustomRegime:
		return domain.SourceCustom, annualizeCustom(r, rr.yearBasis), none

	case domain.LPRRegime:
		day := date
		if r.Mode == domain.ModeSpecified {
			day = rr.asOf
		}
		return domain.SourceLPR, lookup(rr.history.LPR, day, r.Tier), r.BasisPoints

	case domain.BenchmarkRegime:
		day := date
		if r.Mode == domain.ModeSpecified {
			day = rr.asOf
		}
		return domain.SourceBenchmark, lookup(rr.history.Benchmark, day, r.Tier), none

	case domain.SegmentedRegime:
		if date.Before(LPRReformDate) {
			return domain.SourceBenchmark, lookup(rr.history.Benchmark, date, benchmarkTierFor(r.Tier)), none
		}
		return domain.SourceLPR, lookup(rr.history.LPR, date, r.Tier), r.BasisPoints
	}

	return "", decimal.Zero, none
}

// benchmarkTierFor maps an LPR tier onto the benchmark tier used before the reform.
func benchmarkTierFor(t domain.Tier) domain.Tier {
	if t == domain.Tier1Y {
		return domain.Tier1Y
	}
	return domain.TierOver5Y
}

func lookup(table *rates.Table, date civil.Date, tier domain.Tier) decimal.Decimal {
	if table == nil {
		return decimal.Zero
	}
	v, _ := table.Lookup(date).Rate(tier)
	return v
}

var (
	permilleFactor       = decimal.RequireFromString("0.1")
	perTenThousandFactor = decimal.RequireFromString("0.01")
	monthsPerYear        = decimal.NewFromInt(12)
)

// annualizeCustom converts a custom rate into an annual percentage.
func annualizeCustom(r domain.CustomRegime, yearBasis decimal.Decimal) decimal.Decimal {
	rate := r.Rate
	switch r.Unit {
	case domain.UnitPermille:
		rate = rate.Mul(permilleFactor)
	case domain.UnitPerTenThousand:
		rate = rate.Mul(perTenThousandFactor)
	}
	switch r.TimeBasis {
	case domain.BasisMonth:
		rate = rate.Mul(monthsPerYear)
	case domain.BasisDay:
		rate = rate.Mul(yearBasis)
	}
	return rate
}
