package rates

import (
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FallbackVersion identifies the revision of the bundled series. Bump it
// whenever a row is added or corrected.
const FallbackVersion = "2025-05-20"

var lprTiers = []domain.Tier{domain.Tier1Y, domain.Tier5Y}

// LPR quotes, change points only (monthly quotes that repeat the previous
// value are omitted; lookups resolve identically).
var lprRows = []struct {
	date   string
	values []string
}{
	{"2025-05-20", []string{"3.00", "3.50"}},
	{"2024-10-21", []string{"3.10", "3.60"}},
	{"2024-07-22", []string{"3.35", "3.85"}},
	{"2024-02-20", []string{"3.45", "3.95"}},
	{"2023-08-21", []string{"3.45", "4.20"}},
	{"2023-06-20", []string{"3.55", "4.20"}},
	{"2022-08-22", []string{"3.65", "4.30"}},
	{"2022-05-20", []string{"3.70", "4.45"}},
	{"2022-01-20", []string{"3.70", "4.60"}},
	{"2021-12-20", []string{"3.80", "4.65"}},
	{"2020-04-20", []string{"3.85", "4.65"}},
	{"2020-02-20", []string{"4.05", "4.75"}},
	{"2019-11-20", []string{"4.15", "4.80"}},
	{"2019-09-20", []string{"4.20", "4.85"}},
	{"2019-08-20", []string{"4.25", "4.85"}},
}

var benchmarkTiers = []domain.Tier{domain.Tier6M, domain.Tier1Y, domain.Tier1To3Y, domain.Tier3To5Y, domain.TierOver5Y}

// Central-bank benchmark lending rates since 1991-04-21.
var benchmarkRows = []struct {
	date   string
	values []string
}{
	{"2015-10-24", []string{"4.35", "4.35", "4.75", "4.75", "4.90"}},
	{"2015-08-26", []string{"4.60", "4.60", "5.00", "5.00", "5.15"}},
	{"2015-06-28", []string{"4.85", "4.85", "5.25", "5.25", "5.40"}},
	{"2015-05-11", []string{"5.10", "5.10", "5.50", "5.50", "5.65"}},
	{"2015-03-01", []string{"5.35", "5.35", "5.75", "5.75", "5.90"}},
	{"2014-11-22", []string{"5.60", "5.60", "6.00", "6.00", "6.15"}},
	{"2012-07-06", []string{"5.60", "6.00", "6.15", "6.40", "6.55"}},
	{"2012-06-08", []string{"5.85", "6.31", "6.40", "6.65", "6.80"}},
	{"2011-07-07", []string{"6.10", "6.56", "6.65", "6.90", "7.05"}},
	{"2011-04-06", []string{"5.85", "6.31", "6.40", "6.65", "6.80"}},
	{"2011-02-09", []string{"5.60", "6.06", "6.10", "6.45", "6.60"}},
	{"2010-12-26", []string{"5.35", "5.81", "5.85", "6.22", "6.40"}},
	{"2010-10-20", []string{"5.10", "5.56", "5.60", "5.96", "6.14"}},
	{"2008-12-23", []string{"4.86", "5.31", "5.40", "5.76", "5.94"}},
	{"2008-11-27", []string{"5.04", "5.58", "5.67", "5.94", "6.12"}},
	{"2008-10-30", []string{"6.03", "6.66", "6.75", "7.02", "7.20"}},
	{"2008-10-09", []string{"6.12", "6.93", "7.02", "7.29", "7.47"}},
	{"2008-09-16", []string{"6.21", "7.20", "7.29", "7.56", "7.74"}},
	{"2007-12-21", []string{"6.57", "7.47", "7.56", "7.74", "7.83"}},
	{"2007-09-15", []string{"6.48", "7.29", "7.47", "7.65", "7.83"}},
	{"2007-08-22", []string{"6.21", "7.02", "7.20", "7.38", "7.56"}},
	{"2007-07-21", []string{"6.03", "6.84", "7.02", "7.20", "7.38"}},
	{"2007-05-19", []string{"5.85", "6.57", "6.75", "6.93", "7.20"}},
	{"2007-03-18", []string{"5.67", "6.39", "6.57", "6.75", "7.11"}},
	{"2006-08-19", []string{"5.58", "6.12", "6.30", "6.48", "6.84"}},
	{"2006-04-28", []string{"5.40", "5.85", "6.03", "6.12", "6.39"}},
	{"2004-10-29", []string{"5.22", "5.58", "5.76", "5.85", "6.12"}},
	{"2002-02-21", []string{"5.04", "5.31", "5.49", "5.58", "5.76"}},
	{"1999-06-10", []string{"5.58", "5.85", "5.94", "6.03", "6.21"}},
	{"1998-12-07", []string{"6.12", "6.39", "6.66", "7.20", "7.56"}},
	{"1998-07-01", []string{"6.57", "6.93", "7.11", "7.65", "8.01"}},
	{"1998-03-25", []string{"7.02", "7.92", "9.00", "9.72", "10.35"}},
	{"1997-10-23", []string{"7.65", "8.64", "9.36", "9.90", "10.53"}},
	{"1996-08-23", []string{"9.18", "10.08", "10.98", "11.70", "12.42"}},
	{"1996-05-01", []string{"9.72", "10.98", "13.14", "14.94", "15.12"}},
	{"1995-07-01", []string{"10.08", "12.06", "13.50", "15.12", "15.30"}},
	{"1995-01-01", []string{"9.00", "10.98", "12.96", "14.58", "14.76"}},
	{"1993-07-11", []string{"9.00", "10.98", "12.24", "13.86", "14.04"}},
	{"1993-05-15", []string{"8.82", "9.36", "10.80", "12.06", "12.24"}},
	{"1991-04-21", []string{"8.10", "8.64", "9.00", "9.54", "9.72"}},
}

// FallbackLPR returns the bundled LPR series, newest first.
func FallbackLPR() []Record {
	recs := make([]Record, 0, len(lprRows))
	for _, row := range lprRows {
		recs = append(recs, buildRecord(row.date, lprTiers, row.values))
	}
	return recs
}

// FallbackBenchmark returns the bundled benchmark series, newest first.
func FallbackBenchmark() []Record {
	recs := make([]Record, 0, len(benchmarkRows))
	for _, row := range benchmarkRows {
		recs = append(recs, buildRecord(row.date, benchmarkTiers, row.values))
	}
	return recs
}

// buildRecord panics on malformed rows; the tables above are compile-time data.
func buildRecord(date string, tiers []domain.Tier, values []string) Record {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	m := make(map[domain.Tier]decimal.Decimal, len(tiers))
	for i, t := range tiers {
		m[t] = decimal.RequireFromString(values[i])
	}
	return Record{EffectiveDate: d, tiers: m}
}
