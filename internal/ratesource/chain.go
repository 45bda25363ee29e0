package ratesource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lexcase/interest-engine/internal/rates"
	"go.uber.org/zap"
)

// ChainProvider tries providers in order and returns the first non-empty
// answer. It fails only when every provider fails or returns nothing.
type ChainProvider struct {
	providers []Provider
	logger    *zap.Logger
}

// NewChainProvider creates a chain over providers
func NewChainProvider(logger *zap.Logger, providers ...Provider) *ChainProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainProvider{providers: providers, logger: logger.Named("chain")}
}

func (c *ChainProvider) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return "chain[" + strings.Join(names, ",") + "]"
}

func (c *ChainProvider) Fetch(ctx context.Context, series rates.Series) ([]RawRecord, error) {
	var errs []error
	for _, p := range c.providers {
		records, err := p.Fetch(ctx, series)
		if err != nil {
			c.logger.Warn("provider failed", zap.String("provider", p.Name()), zap.String("series", string(series)), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if len(records) == 0 {
			continue
		}
		return records, nil
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}
