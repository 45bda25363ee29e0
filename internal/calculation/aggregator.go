package calculation

import (
	"github.com/lexcase/interest-engine/internal/domain"
	money "github.com/lexcase/interest-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PenaltyDailyRate is the fixed daily rate (0.0175%) of delayed-performance
// penalty interest.
var PenaltyDailyRate = decimal.RequireFromString("0.000175")

// RawInterest is principal × (rate% ÷ yearBasis ÷ 100) × days, evaluated with
// the division last so no precision is lost to an intermediate daily rate.
func RawInterest(principal, adjustedRate decimal.Decimal, days int, basis domain.YearBasis) decimal.Decimal {
	denominator := decimal.NewFromInt(int64(basis)).Mul(decimalHundred)
	return principal.Mul(adjustedRate).Mul(decimal.NewFromInt(int64(days))).Div(denominator)
}

// Aggregate fills in raw and rounded interest for each period and returns the
// general interest. Each period is rounded to cents on its own and the rounded
// amounts are summed; the total is never re-derived from the raw amounts.
func Aggregate(periods []domain.Period, principal decimal.Decimal, basis domain.YearBasis) ([]domain.Period, decimal.Decimal) {
	out := make([]domain.Period, 0, len(periods))
	general := money.Zero()
	for _, p := range periods {
		p.RawInterest = RawInterest(principal, p.AdjustedRate, p.Days, basis)
		rounded := money.NewMoneyFromDecimal(p.RawInterest).Round()
		p.Interest = rounded.Decimal
		general = general.Add(rounded)
		out = append(out, p)
	}
	return out, general.Decimal
}

// PenaltyInterest computes delayed-performance interest over totalDays,
// independent of any rate regime.
func PenaltyInterest(principal decimal.Decimal, totalDays int) decimal.Decimal {
	if totalDays <= 0 {
		return decimal.Zero
	}
	raw := principal.Mul(PenaltyDailyRate).Mul(decimal.NewFromInt(int64(totalDays)))
	return money.NewMoneyFromDecimal(raw).Round().Decimal
}

// TotalInterest sums two amounts already rounded to cents. The final Round is
// a no-op kept so the result is always at cent precision.
func TotalInterest(general, penalty decimal.Decimal) decimal.Decimal {
	return money.Sum(money.NewMoneyFromDecimal(general), money.NewMoneyFromDecimal(penalty)).Round().Decimal
}
