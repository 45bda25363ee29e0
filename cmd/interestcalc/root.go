package main

import (
	"context"
	"fmt"

	"github.com/lexcase/interest-engine/internal/calculation"
	"github.com/lexcase/interest-engine/internal/config"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/lexcase/interest-engine/internal/ratesource"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.AppConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "interestcalc",
		Short:         "Statutory interest calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "application config file (default $INTEREST_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newCalculateCmd(a),
		newRatesCmd(a),
		newServeCmd(a),
		newExampleCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// newLogger builds a development-style zap logger writing to stderr, so
// report output on stdout stays clean.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// loadHistory fetches external rate data per the rates config, merged over
// the bundled series. Source failures only cost the external records.
func (a *app) loadHistory(ctx context.Context) (*rates.History, error) {
	provider, closeSources, err := ratesource.FromConfig(ctx, a.cfg.Rates, a.logger)
	defer closeSources()
	if err != nil {
		return nil, err
	}
	return ratesource.NewLoader(provider, a.cfg.Rates.FetchTimeout, a.logger).Load(ctx), nil
}

func (a *app) newEngine(ctx context.Context) (*calculation.CalculationEngine, error) {
	history, err := a.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine(history)
	engine.SetLogger(a.logger.Named("engine").Sugar())
	return engine, nil
}
