package calculation

import (
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalHundred = decimal.NewFromInt(100)
	decimalOne     = decimal.NewFromInt(1)
)

// ApplyAdjustment composes a base annual rate (percent) with a float or
// multiplier adjustment:
//
//	up:         base * (1 + value/100)
//	down:       base * (1 - value/100)
//	multiplier: base * value
func ApplyAdjustment(base decimal.Decimal, adj domain.Adjustment) decimal.Decimal {
	switch adj.Kind {
	case domain.AdjustUp:
		return base.Mul(decimalOne.Add(adj.Value.Div(decimalHundred)))
	case domain.AdjustDown:
		return base.Mul(decimalOne.Sub(adj.Value.Div(decimalHundred)))
	case domain.AdjustMultiplier:
		return base.Mul(adj.Value)
	default:
		return base
	}
}

// ApplyBasisPoints shifts a percentage rate by whole basis points. One basis
// point is 0.01 percentage point, i.e. points/10000 of the rate as a fraction.
func ApplyBasisPoints(base decimal.Decimal, bp domain.BasisPointAdjustment) decimal.Decimal {
	shift := bp.Points.Div(decimalHundred)
	switch bp.Kind {
	case domain.AdjustUp:
		return base.Add(shift)
	case domain.AdjustDown:
		return base.Sub(shift)
	default:
		return base
	}
}

// adjustRate applies the basis-point step and then the float/multiplier step.
// The two do not commute, so the order is fixed here.
func adjustRate(base decimal.Decimal, bp domain.BasisPointAdjustment, adj domain.Adjustment) decimal.Decimal {
	return ApplyAdjustment(ApplyBasisPoints(base, bp), adj)
}
