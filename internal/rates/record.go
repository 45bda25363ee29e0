package rates

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Record is one effective-dated revision of a rate series. Values are
// percentages (4.35 means 4.35%). A Record never changes once built.
type Record struct {
	EffectiveDate civil.Date
	tiers         map[domain.Tier]decimal.Decimal
}

// NewRecord copies tiers into a new immutable record.
func NewRecord(date civil.Date, tiers map[domain.Tier]decimal.Decimal) Record {
	cp := make(map[domain.Tier]decimal.Decimal, len(tiers))
	for k, v := range tiers {
		cp[k] = v
	}
	return Record{EffectiveDate: date, tiers: cp}
}

// tierFallbacks lists, per tier, the equivalent tiers tried when a record has
// no value for the requested one.
var tierFallbacks = map[domain.Tier][]domain.Tier{
	domain.Tier5Y:     {domain.TierOver5Y, domain.Tier3To5Y},
	domain.TierOver5Y: {domain.Tier5Y, domain.Tier3To5Y},
	domain.Tier3To5Y:  {domain.Tier1To3Y, domain.TierOver5Y, domain.Tier5Y},
	domain.Tier1To3Y:  {domain.Tier3To5Y, domain.Tier1Y},
	domain.Tier6M:     {domain.Tier1Y},
	domain.Tier1Y:     {domain.Tier6M},
}

// Rate returns the value for tier, falling back to the nearest equivalent tier
// and finally to the first populated tier in canonical order. ok is false only
// for an empty record.
func (r Record) Rate(tier domain.Tier) (decimal.Decimal, bool) {
	if v, ok := r.tiers[tier]; ok {
		return v, true
	}
	for _, alt := range tierFallbacks[tier] {
		if v, ok := r.tiers[alt]; ok {
			return v, true
		}
	}
	for _, alt := range domain.KnownTiers {
		if v, ok := r.tiers[alt]; ok {
			return v, true
		}
	}
	return decimal.Zero, false
}

// Has reports whether the record carries an explicit value for tier.
func (r Record) Has(tier domain.Tier) bool {
	_, ok := r.tiers[tier]
	return ok
}

// Tiers returns a copy of the record's values.
func (r Record) Tiers() map[domain.Tier]decimal.Decimal {
	cp := make(map[domain.Tier]decimal.Decimal, len(r.tiers))
	for k, v := range r.tiers {
		cp[k] = v
	}
	return cp
}

// TierIDs returns the populated tiers in canonical order.
func (r Record) TierIDs() []domain.Tier {
	ids := make([]domain.Tier, 0, len(r.tiers))
	for _, t := range domain.KnownTiers {
		if _, ok := r.tiers[t]; ok {
			ids = append(ids, t)
		}
	}
	// tiers outside KnownTiers go last, alphabetically
	var extra []domain.Tier
	for t := range r.tiers {
		if !t.IsKnown() {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(ids, extra...)
}

// IsEmpty reports whether the record has no tier values.
func (r Record) IsEmpty() bool { return len(r.tiers) == 0 }
