package rates

import (
	"sort"

	"cloud.google.com/go/civil"
)

// Series names a published rate history
type Series string

const (
	SeriesLPR       Series = "lpr"
	SeriesBenchmark Series = "benchmark"
)

// KnownSeries lists every supported series.
var KnownSeries = []Series{SeriesLPR, SeriesBenchmark}

// Table is a read-only, effective-dated lookup over one series, sorted by
// date descending. Safe for concurrent readers.
type Table struct {
	series  Series
	records []Record
}

// NewTable merges external records with the static fallback. On duplicate
// effective dates the first occurrence wins, so external data overrides the
// fallback. Empty records are dropped.
func NewTable(series Series, external, fallback []Record) *Table {
	seen := make(map[civil.Date]bool, len(external)+len(fallback))
	merged := make([]Record, 0, len(external)+len(fallback))
	for _, group := range [][]Record{external, fallback} {
		for _, rec := range group {
			if rec.IsEmpty() || seen[rec.EffectiveDate] {
				continue
			}
			seen[rec.EffectiveDate] = true
			merged = append(merged, rec)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EffectiveDate.After(merged[j].EffectiveDate)
	})
	return &Table{series: series, records: merged}
}

// Series returns the series this table holds.
func (t *Table) Series() Series { return t.series }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Lookup returns the latest record effective on or before date. Dates earlier
// than every record resolve to the oldest record; that is the defined
// behaviour for out-of-range history, not an error.
func (t *Table) Lookup(date civil.Date) Record {
	if len(t.records) == 0 {
		return Record{}
	}
	// records are descending; find the first index whose date is <= date
	i := sort.Search(len(t.records), func(i int) bool {
		return !t.records[i].EffectiveDate.After(date)
	})
	if i == len(t.records) {
		return t.records[len(t.records)-1]
	}
	return t.records[i]
}

// Records returns a copy of the records, newest first.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Latest returns the newest record.
func (t *Table) Latest() (Record, bool) {
	if len(t.records) == 0 {
		return Record{}, false
	}
	return t.records[0], true
}

// Oldest returns the earliest record.
func (t *Table) Oldest() (Record, bool) {
	if len(t.records) == 0 {
		return Record{}, false
	}
	return t.records[len(t.records)-1], true
}

// History is the snapshot of every series a calculation may consult.
type History struct {
	LPR       *Table
	Benchmark *Table
}

// Table returns the table for series, or nil for an unknown series.
func (h *History) Table(series Series) *Table {
	switch series {
	case SeriesLPR:
		return h.LPR
	case SeriesBenchmark:
		return h.Benchmark
	default:
		return nil
	}
}

// NewHistory builds a snapshot from externally supplied records, merged with
// the static fallback series.
func NewHistory(externalLPR, externalBenchmark []Record) *History {
	return &History{
		LPR:       NewTable(SeriesLPR, externalLPR, FallbackLPR()),
		Benchmark: NewTable(SeriesBenchmark, externalBenchmark, FallbackBenchmark()),
	}
}

// DefaultHistory returns a snapshot built from the static fallback only.
func DefaultHistory() *History {
	return NewHistory(nil, nil)
}
