package ratesource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lexcase/interest-engine/internal/rates"
	"go.uber.org/zap"
)

const defaultRatesTable = "rate_history"

// PostgresProvider reads rate history from a table shaped
//
//	series text, effective_date date, tier text, rate numeric
//
// with one row per (series, effective_date, tier).
type PostgresProvider struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

// OpenPostgres opens a connection pool through the pgx driver and checks it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	return db, nil
}

// NewPostgresProvider creates a provider over db. An empty table name
// selects rate_history.
func NewPostgresProvider(db *sql.DB, table string, logger *zap.Logger) *PostgresProvider {
	if table == "" {
		table = defaultRatesTable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresProvider{db: db, table: table, logger: logger.Named("postgres")}
}

func (p *PostgresProvider) Name() string { return "postgres:" + p.table }

func (p *PostgresProvider) Fetch(ctx context.Context, series rates.Series) ([]RawRecord, error) {
	if p == nil || p.db == nil {
		return nil, errors.New("rate repo: nil db")
	}
	rows, err := p.db.QueryContext(ctx, p.query(), string(series))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", p.table, err)
	}
	defer rows.Close()

	var flat []rateRow
	for rows.Next() {
		var r rateRow
		if err := rows.Scan(&r.date, &r.tier, &r.rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		flat = append(flat, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.table, err)
	}
	p.logger.Debug("queried rate rows", zap.String("series", string(series)), zap.Int("rows", len(flat)))
	return groupRows(flat), nil
}

// query interpolates only the sanitized table identifier; the series is bound.
func (p *PostgresProvider) query() string {
	return `
SELECT effective_date::text, tier, rate::text
FROM ` + pgx.Identifier{p.table}.Sanitize() + `
WHERE series = $1
ORDER BY effective_date DESC, tier`
}

type rateRow struct {
	date string
	tier string
	rate string
}

// groupRows folds one-row-per-tier results into one record per date,
// preserving first-seen date order.
func groupRows(flat []rateRow) []RawRecord {
	index := make(map[string]int)
	var out []RawRecord
	for _, r := range flat {
		i, ok := index[r.date]
		if !ok {
			i = len(out)
			index[r.date] = i
			out = append(out, RawRecord{Date: r.date, Tiers: make(map[string]string)})
		}
		out[i].Tiers[r.tier] = r.rate
	}
	return out
}
