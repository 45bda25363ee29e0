package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// YearBasis is the number of days per year used to derive a daily rate
type YearBasis int

const (
	YearBasis360 YearBasis = 360
	YearBasis365 YearBasis = 365
)

// BoundaryMode controls which ends of the date range accrue interest.
type BoundaryMode string

const (
	BoundaryBoth      BoundaryMode = "both"
	BoundaryStartOnly BoundaryMode = "start_only"
	BoundaryEndOnly   BoundaryMode = "end_only"
	BoundaryNeither   BoundaryMode = "neither"
)

// Duration describes a range by length instead of an explicit end date.
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// IsZero reports whether no length was given.
func (d Duration) IsZero() bool { return d.Years == 0 && d.Months == 0 && d.Days == 0 }

// CalculationRequest carries every input of one interest calculation.
type CalculationRequest struct {
	Principal decimal.Decimal `json:"principal"`
	StartDate civil.Date      `json:"start_date"`
	// EndDate may be left zero when Duration is set.
	EndDate  civil.Date `json:"end_date"`
	Duration *Duration  `json:"duration,omitempty"`

	YearBasis  YearBasis  `json:"year_basis"`
	Regime     Regime     `json:"-"`
	Adjustment Adjustment `json:"adjustment"`

	// BoundaryMode defaults to BoundaryBoth when empty.
	BoundaryMode   BoundaryMode `json:"boundary_mode,omitempty"`
	IncludePenalty bool         `json:"include_penalty"`
}
