package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/offer-analyzer/internal/market"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// -----------------------------------------------------------------------------
// Market Sample Methods
// -----------------------------------------------------------------------------

// QueryStats aggregates total compensation percentiles and component
// averages over the samples matching the query. A query that matches nothing
// returns a row with SampleSize 0, not an error.
func (db *DB) QueryStats(ctx context.Context, q market.StatsQuery) (*market.StatsRow, error) {
	query := `SELECT
		percentile_cont(0.10) WITHIN GROUP (ORDER BY base_salary + bonus + equity),
		percentile_cont(0.25) WITHIN GROUP (ORDER BY base_salary + bonus + equity),
		percentile_cont(0.50) WITHIN GROUP (ORDER BY base_salary + bonus + equity),
		percentile_cont(0.75) WITHIN GROUP (ORDER BY base_salary + bonus + equity),
		percentile_cont(0.90) WITHIN GROUP (ORDER BY base_salary + bonus + equity),
		COUNT(*),
		AVG(base_salary),
		AVG(bonus),
		AVG(equity)
	FROM market_samples WHERE 1=1`
	args := []any{}
	argNum := 1

	if q.TitleCode != "" {
		query += fmt.Sprintf(" AND role_key = $%d", argNum)
		args = append(args, q.TitleCode)
		argNum++
	}
	if q.Tier != "" {
		query += fmt.Sprintf(" AND tier = $%d", argNum)
		args = append(args, q.Tier)
		argNum++
	}
	if q.MinExperience != nil {
		query += fmt.Sprintf(" AND years_experience >= $%d", argNum)
		args = append(args, *q.MinExperience)
		argNum++
	}
	if q.MaxExperience != nil {
		query += fmt.Sprintf(" AND years_experience <= $%d", argNum)
		args = append(args, *q.MaxExperience)
		argNum++
	}
	if !q.Since.IsZero() {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, q.Since)
		argNum++
	}
	if q.VerifiedOnly {
		query += " AND verified = TRUE"
	}

	var (
		p10, p25, p50, p75, p90      *float64
		count                        int
		avgBase, avgBonus, avgEquity *float64
	)
	err := db.pool.QueryRow(ctx, query, args...).Scan(
		&p10, &p25, &p50, &p75, &p90, &count, &avgBase, &avgBonus, &avgEquity,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query market stats: %w", err)
	}

	return &market.StatsRow{
		P10:        toAmount(p10),
		P25:        toAmount(p25),
		P50:        toAmount(p50),
		P75:        toAmount(p75),
		P90:        toAmount(p90),
		SampleSize: count,
		AvgBase:    toAmount(avgBase),
		AvgBonus:   toAmount(avgBonus),
		AvgEquity:  toAmount(avgEquity),
	}, nil
}

// InsertSample stores one market sample, filling in the ID and timestamp
// when the caller left them zero.
func (db *DB) InsertSample(ctx context.Context, sample *types.MarketSample) error {
	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}
	if sample.CreatedAt.IsZero() {
		sample.CreatedAt = time.Now()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO market_samples (id, role_key, tier, years_experience, base_salary, bonus, equity, verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sample.ID, sample.RoleKey, sample.Tier, sample.YearsExperience,
		sample.BaseSalary, sample.Bonus, sample.Equity, sample.Verified, sample.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert market sample: %w", err)
	}
	return nil
}

// toAmount truncates an SQL aggregate to whole currency units.
func toAmount(v *float64) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}
