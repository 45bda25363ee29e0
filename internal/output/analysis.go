package output

import (
	"sort"

	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// SourceSummary totals the periods drawn from one rate source.
type SourceSummary struct {
	Source   domain.RateSource
	Periods  int
	Days     int
	Interest decimal.Decimal
}

// Summary condenses a result for report headers.
type Summary struct {
	BySource []SourceSummary
	// EffectiveRate is the single annual rate (percent) that would have
	// produced the same general interest over the whole range.
	EffectiveRate decimal.Decimal
	MinRate       decimal.Decimal
	MaxRate       decimal.Decimal
}

// Summarize groups periods by source and derives the effective rate.
// Extracted from the formatters for testability.
func Summarize(result *domain.CalculationResult) Summary {
	var s Summary
	if result == nil || len(result.Periods) == 0 {
		return s
	}
	bySource := map[domain.RateSource]*SourceSummary{}
	s.MinRate, s.MaxRate = result.Periods[0].AdjustedRate, result.Periods[0].AdjustedRate
	for _, p := range result.Periods {
		ss, ok := bySource[p.Source]
		if !ok {
			ss = &SourceSummary{Source: p.Source, Interest: decimal.Zero}
			bySource[p.Source] = ss
		}
		ss.Periods++
		ss.Days += p.Days
		ss.Interest = ss.Interest.Add(p.Interest)
		s.MinRate = decimal.Min(s.MinRate, p.AdjustedRate)
		s.MaxRate = decimal.Max(s.MaxRate, p.AdjustedRate)
	}
	for _, ss := range bySource {
		s.BySource = append(s.BySource, *ss)
	}
	sort.Slice(s.BySource, func(i, j int) bool { return s.BySource[i].Source < s.BySource[j].Source })

	if result.Days > 0 && result.Principal.IsPositive() {
		basis := decimal.NewFromInt(int64(result.YearBasis))
		s.EffectiveRate = result.GeneralInterest.Mul(basis).Mul(decimalHundred).
			Div(result.Principal.Mul(decimal.NewFromInt(int64(result.Days)))).Round(4)
	}
	return s
}
