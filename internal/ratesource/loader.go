package ratesource

import (
	"context"
	"time"

	"github.com/lexcase/interest-engine/internal/rates"
	"go.uber.org/zap"
)

// Loader builds a rate-history snapshot from a provider, merged over the
// bundled series.
type Loader struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// NewLoader creates a loader. A nil provider yields the bundled series only.
func NewLoader(provider Provider, timeout time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{provider: provider, timeout: timeout, logger: logger.Named("loader")}
}

// Load fetches every known series. A failing series is logged and left to
// the bundled data, so Load always returns a usable snapshot.
func (l *Loader) Load(ctx context.Context) *rates.History {
	if l.provider == nil {
		return rates.DefaultHistory()
	}
	external := make(map[rates.Series][]rates.Record, len(rates.KnownSeries))
	for _, series := range rates.KnownSeries {
		external[series] = l.fetch(ctx, series)
	}
	h := rates.NewHistory(external[rates.SeriesLPR], external[rates.SeriesBenchmark])
	l.logger.Info("rate history loaded",
		zap.String("provider", l.provider.Name()),
		zap.Int("lpr_records", h.LPR.Len()),
		zap.Int("benchmark_records", h.Benchmark.Len()),
		zap.String("fallback_version", rates.FallbackVersion))
	return h
}

func (l *Loader) fetch(ctx context.Context, series rates.Series) []rates.Record {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	raw, err := l.provider.Fetch(ctx, series)
	if err != nil {
		l.logger.Warn("falling back to bundled rates", zap.String("series", string(series)), zap.Error(err))
		return nil
	}
	return Normalize(raw, l.logger)
}
