package calculation

import (
	"testing"

	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/stretchr/testify/assert"
)

func TestResolveDayFixed(t *testing.T) {
	rr := NewRateResolver(rates.DefaultHistory(), domain.FixedRegime{Rate: dec("3.65")}, domain.Adjustment{}, domain.YearBasis365, day(2024, 1, 1))

	dr := rr.ResolveDay(day(2024, 6, 1))
	assert.Equal(t, domain.SourceFixed, dr.Source)
	assertDecimal(t, "3.65", dr.BaseRate)
	assertDecimal(t, "3.65", dr.AdjustedRate)
	assertDecimal(t, "0.0001", dr.DailyRate)
}

func TestResolveDayLPRSpecifiedUsesAsOf(t *testing.T) {
	asOf := day(2024, 10, 21)
	regime := domain.LPRRegime{Tier: domain.Tier5Y, Mode: domain.ModeSpecified, AsOf: &asOf}
	rr := NewRateResolver(rates.DefaultHistory(), regime, domain.Adjustment{}, domain.YearBasis360, day(2020, 1, 1))

	for _, d := range []int{1, 15, 28} {
		dr := rr.ResolveDay(day(2021, 2, d))
		assert.Equal(t, domain.SourceLPR, dr.Source)
		assertDecimal(t, "3.60", dr.BaseRate)
	}
}

func TestResolveDayLPRSpecifiedDefaultsToStart(t *testing.T) {
	regime := domain.LPRRegime{Tier: domain.Tier1Y, Mode: domain.ModeSpecified}
	rr := NewRateResolver(rates.DefaultHistory(), regime, domain.Adjustment{}, domain.YearBasis360, day(2019, 8, 20))

	// start date quote (4.25) is used even after the 2019-09-20 change
	assertDecimal(t, "4.25", rr.ResolveDay(day(2019, 12, 31)).BaseRate)
}

func TestResolveDayLPRSegmentedFollowsQuotes(t *testing.T) {
	regime := domain.LPRRegime{Tier: domain.Tier1Y, Mode: domain.ModeSegmented}
	rr := NewRateResolver(rates.DefaultHistory(), regime, domain.Adjustment{}, domain.YearBasis360, day(2019, 8, 20))

	assertDecimal(t, "4.25", rr.ResolveDay(day(2019, 9, 19)).BaseRate)
	assertDecimal(t, "4.20", rr.ResolveDay(day(2019, 9, 20)).BaseRate)
}

func TestResolveDayBenchmark(t *testing.T) {
	regime := domain.BenchmarkRegime{Tier: domain.Tier3To5Y, Mode: domain.ModeSegmented}
	rr := NewRateResolver(rates.DefaultHistory(), regime, domain.Adjustment{}, domain.YearBasis360, day(2015, 1, 1))

	dr := rr.ResolveDay(day(2015, 3, 1))
	assert.Equal(t, domain.SourceBenchmark, dr.Source)
	assertDecimal(t, "5.75", dr.BaseRate)
	assertDecimal(t, "6.00", rr.ResolveDay(day(2015, 2, 28)).BaseRate)
}

func TestResolveDaySegmentedSwitchesAtReform(t *testing.T) {
	regime := domain.SegmentedRegime{
		Tier:        domain.Tier5Y,
		BasisPoints: domain.BasisPointAdjustment{Kind: domain.AdjustUp, Points: dec("10")},
	}
	rr := NewRateResolver(rates.DefaultHistory(), regime, domain.Adjustment{}, domain.YearBasis360, day(2019, 8, 1))

	before := rr.ResolveDay(day(2019, 8, 19))
	assert.Equal(t, domain.SourceBenchmark, before.Source)
	assertDecimal(t, "4.90", before.BaseRate)
	// basis points never apply to benchmark days
	assertDecimal(t, "4.90", before.AdjustedRate)

	after := rr.ResolveDay(day(2019, 8, 20))
	assert.Equal(t, domain.SourceLPR, after.Source)
	assertDecimal(t, "4.85", after.BaseRate)
	assertDecimal(t, "4.95", after.AdjustedRate)
}

func TestResolveDaySegmentedOneYearTier(t *testing.T) {
	rr := NewRateResolver(rates.DefaultHistory(), domain.SegmentedRegime{Tier: domain.Tier1Y}, domain.Adjustment{}, domain.YearBasis360, day(2019, 8, 1))

	assertDecimal(t, "4.35", rr.ResolveDay(day(2019, 8, 19)).BaseRate)
	assertDecimal(t, "4.25", rr.ResolveDay(day(2019, 8, 20)).BaseRate)
}

func TestResolveDayCustomAnnualizes(t *testing.T) {
	tests := []struct {
		name   string
		regime domain.CustomRegime
		want   string
	}{
		{"percent per year", domain.CustomRegime{Rate: dec("6"), Unit: domain.UnitPercent, TimeBasis: domain.BasisYear}, "6"},
		{"permille per month", domain.CustomRegime{Rate: dec("5"), Unit: domain.UnitPermille, TimeBasis: domain.BasisMonth}, "6"},
		{"per ten thousand per day", domain.CustomRegime{Rate: dec("5"), Unit: domain.UnitPerTenThousand, TimeBasis: domain.BasisDay}, "18"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := NewRateResolver(rates.DefaultHistory(), tt.regime, domain.Adjustment{}, domain.YearBasis360, day(2024, 1, 1))
			dr := rr.ResolveDay(day(2024, 1, 1))
			assert.Equal(t, domain.SourceCustom, dr.Source)
			assertDecimal(t, tt.want, dr.BaseRate)
		})
	}
}

func TestResolveDayAppliesAdjustment(t *testing.T) {
	adj := domain.Adjustment{Kind: domain.AdjustMultiplier, Value: dec("4")}
	rr := NewRateResolver(rates.DefaultHistory(), domain.FixedRegime{Rate: dec("3.6")}, adj, domain.YearBasis360, day(2024, 1, 1))

	dr := rr.ResolveDay(day(2024, 1, 1))
	assertDecimal(t, "3.6", dr.BaseRate)
	assertDecimal(t, "14.4", dr.AdjustedRate)
	assertDecimal(t, "0.0004", dr.DailyRate)
}
