// Package ratesource fetches rate history from external systems and turns it
// into the effective-dated records the calculation engine consumes.
package ratesource

import (
	"context"
	"errors"
	"strings"

	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/lexcase/interest-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrUnknownSeries is returned for a series name that is not in rates.KnownSeries.
var ErrUnknownSeries = errors.New("unknown rate series")

// RawRecord is one published row as received from a provider: an ISO date
// and the rate per tier id, both still unparsed.
type RawRecord struct {
	Date  string            `json:"date" yaml:"date"`
	Tiers map[string]string `json:"tiers" yaml:"tiers"`
}

// Provider fetches the raw rows of one series. Rows may arrive in any order.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, series rates.Series) ([]RawRecord, error)
}

// ParseSeries maps a series name onto a known series.
func ParseSeries(name string) (rates.Series, error) {
	s := rates.Series(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range rates.KnownSeries {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownSeries
}

// Normalize parses raw rows into records. Rows with an unparseable date and
// cells with an unknown tier or a non-numeric rate are skipped with a
// warning; a row left without any tier is dropped.
func Normalize(raw []RawRecord, logger *zap.Logger) []rates.Record {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]rates.Record, 0, len(raw))
	for _, row := range raw {
		date, err := dateutil.ParseDate(row.Date)
		if err != nil {
			logger.Warn("skipping rate row with bad date", zap.String("date", row.Date), zap.Error(err))
			continue
		}
		tiers := make(map[domain.Tier]decimal.Decimal, len(row.Tiers))
		for id, value := range row.Tiers {
			tier := NormalizeTier(id)
			if !tier.IsKnown() {
				logger.Warn("skipping unknown tier", zap.String("date", row.Date), zap.String("tier", id))
				continue
			}
			rate, err := ParseRate(value)
			if err != nil {
				logger.Warn("skipping bad rate", zap.String("date", row.Date), zap.String("tier", id), zap.Error(err))
				continue
			}
			tiers[tier] = rate
		}
		if len(tiers) == 0 {
			continue
		}
		out = append(out, rates.NewRecord(date, tiers))
	}
	return out
}

// NormalizeTier canonicalises a tier id as published ("1Y", " 5y ") into a
// domain tier. The result may still be unknown.
func NormalizeTier(id string) domain.Tier {
	t := strings.ToLower(strings.TrimSpace(id))
	t = strings.ReplaceAll(t, " ", "")
	switch t {
	case ">5y", "5y+", "over-5y":
		return domain.TierOver5Y
	case "1-3y":
		return domain.Tier1To3Y
	case "3-5y":
		return domain.Tier3To5Y
	}
	return domain.Tier(t)
}

// ParseRate parses a percentage cell such as "3.45" or "3.45%".
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return decimal.NewFromString(s)
}
