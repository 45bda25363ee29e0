package calculation

import (
	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// rateTolerance is the largest base-rate difference (in percentage points)
// still treated as "unchanged" when grouping days into periods.
var rateTolerance = decimal.RequireFromString("0.001")

// DayResolver resolves the rate for a single day.
type DayResolver interface {
	ResolveDay(date civil.Date) DayRate
}

// Segment walks [start, end] day by day and groups consecutive days with the
// same source and base rate into periods. Interest fields are left zero.
// The result is the minimal list of periods consistent with rate continuity
// and partitions [start, end] exactly; an inverted range yields no periods.
func Segment(start, end civil.Date, resolver DayResolver) []domain.Period {
	var periods []domain.Period
	for day := start; !day.After(end); day = day.AddDays(1) {
		periods = foldDay(periods, day, resolver.ResolveDay(day))
	}
	return periods
}

// foldDay extends the last period with day when the rate is continuous, and
// opens a new period otherwise.
func foldDay(periods []domain.Period, day civil.Date, dr DayRate) []domain.Period {
	if n := len(periods); n > 0 && continues(periods[n-1], dr) {
		return append(periods[:n-1], extendTo(periods[n-1], day))
	}
	return append(periods, openPeriod(day, dr))
}

func continues(p domain.Period, dr DayRate) bool {
	if p.Source != dr.Source {
		return false
	}
	return p.BaseRate.Sub(dr.BaseRate).Abs().LessThanOrEqual(rateTolerance)
}

func openPeriod(day civil.Date, dr DayRate) domain.Period {
	return domain.Period{
		StartDate:    day,
		EndDate:      day,
		Days:         1,
		Source:       dr.Source,
		BaseRate:     dr.BaseRate,
		AdjustedRate: dr.AdjustedRate,
		DailyRate:    dr.DailyRate,
	}
}

func extendTo(p domain.Period, day civil.Date) domain.Period {
	p.EndDate = day
	p.Days++
	return p
}

// ApplyBoundary shifts the range according to which ends accrue interest.
// An empty mode counts both ends.
func ApplyBoundary(start, end civil.Date, mode domain.BoundaryMode) (civil.Date, civil.Date) {
	switch mode {
	case domain.BoundaryStartOnly:
		return start, end.AddDays(-1)
	case domain.BoundaryEndOnly:
		return start.AddDays(1), end
	case domain.BoundaryNeither:
		return start.AddDays(1), end.AddDays(-1)
	default:
		return start, end
	}
}
