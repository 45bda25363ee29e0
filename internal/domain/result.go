package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RateSource labels the series (or constant) a rate was taken from
type RateSource string

const (
	SourceFixed     RateSource = "fixed"
	SourceLPR       RateSource = "lpr"
	SourceBenchmark RateSource = "benchmark"
	SourceCustom    RateSource = "custom"
)

// Period is a maximal run of consecutive days sharing one resolved rate.
type Period struct {
	StartDate    civil.Date      `json:"start_date"`
	EndDate      civil.Date      `json:"end_date"`
	Days         int             `json:"days"`
	Source       RateSource      `json:"source"`
	BaseRate     decimal.Decimal `json:"base_rate"`
	AdjustedRate decimal.Decimal `json:"adjusted_rate"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	RawInterest  decimal.Decimal `json:"raw_interest"`
	Interest     decimal.Decimal `json:"interest"`
}

// CalculationResult is the outcome of one calculation.
type CalculationResult struct {
	StartDate       civil.Date      `json:"start_date"`
	EndDate         civil.Date      `json:"end_date"`
	Principal       decimal.Decimal `json:"principal"`
	YearBasis       YearBasis       `json:"year_basis"`
	Regime          RegimeKind      `json:"regime"`
	Days            int             `json:"days"`
	GeneralInterest decimal.Decimal `json:"general_interest"`
	PenaltyInterest decimal.Decimal `json:"penalty_interest"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	Periods         []Period        `json:"periods"`
}
