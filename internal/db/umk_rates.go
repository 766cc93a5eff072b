package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/offer-analyzer/internal/compliance"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// -----------------------------------------------------------------------------
// UMK Rate Methods
// -----------------------------------------------------------------------------

// ErrRegionExists is returned when creating a rate for a region that already
// has one.
var ErrRegionExists = errors.New("a rate for this region already exists")

// ErrRegionNotFound is returned when updating or deleting a region that has
// no stored rate.
var ErrRegionNotFound = errors.New("no rate stored for this region")

// regionKey canonicalizes a region or location name for the unique region
// column: lowercased, trimmed, administrative prefixes stripped.
func regionKey(s string) string {
	return compliance.NormalizeRegion(strings.ToLower(strings.TrimSpace(s)))
}

// ListUMKRates returns stored minimum wage rates ordered by province then
// region. Soft-deleted rows are excluded unless includeInactive is set.
func (db *DB) ListUMKRates(ctx context.Context, includeInactive bool) ([]types.UMKRate, error) {
	query := `SELECT region, province, monthly_wage, year, active, created_at, updated_at
		FROM umk_rates WHERE 1=1`
	if !includeInactive {
		query += " AND active = TRUE"
	}
	query += " ORDER BY province, region"

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list umk rates: %w", err)
	}
	defer rows.Close()

	var rates []types.UMKRate
	for rows.Next() {
		var r types.UMKRate
		if err := rows.Scan(&r.Region, &r.Province, &r.MonthlyWage, &r.Year, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan umk rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}

// GetUMKRateByRegion retrieves a rate by its region key; nil when absent.
func (db *DB) GetUMKRateByRegion(ctx context.Context, region string) (*types.UMKRate, error) {
	var r types.UMKRate
	err := db.pool.QueryRow(ctx,
		`SELECT region, province, monthly_wage, year, active, created_at, updated_at
		 FROM umk_rates WHERE region = $1`,
		regionKey(region),
	).Scan(&r.Region, &r.Province, &r.MonthlyWage, &r.Year, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get umk rate: %w", err)
	}
	return &r, nil
}

// FindUMKRateForLocation matches a free-form location against stored active
// regions: an exact key match wins, otherwise the longest region key
// contained in the location. Returns nil when nothing matches.
func (db *DB) FindUMKRateForLocation(ctx context.Context, location string) (*types.UMKRate, error) {
	key := regionKey(location)
	if key == "" {
		return nil, nil
	}

	var r types.UMKRate
	err := db.pool.QueryRow(ctx,
		`SELECT region, province, monthly_wage, year, active, created_at, updated_at
		 FROM umk_rates
		 WHERE active = TRUE AND (region = $1 OR POSITION(region IN $1) > 0)
		 ORDER BY (region = $1) DESC, LENGTH(region) DESC
		 LIMIT 1`,
		key,
	).Scan(&r.Region, &r.Province, &r.MonthlyWage, &r.Year, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find umk rate for location: %w", err)
	}
	return &r, nil
}

// CreateUMKRate inserts a new region rate. The region is stored under its
// canonical key.
func (db *DB) CreateUMKRate(ctx context.Context, rate *types.UMKRate) (*types.UMKRate, error) {
	var r types.UMKRate
	err := db.pool.QueryRow(ctx,
		`INSERT INTO umk_rates (region, province, monthly_wage, year, active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 ON CONFLICT (region) DO NOTHING
		 RETURNING region, province, monthly_wage, year, active, created_at, updated_at`,
		regionKey(rate.Region), strings.TrimSpace(rate.Province), rate.MonthlyWage, rate.Year,
	).Scan(&r.Region, &r.Province, &r.MonthlyWage, &r.Year, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// DO NOTHING swallowed the insert, so the region is taken.
			return nil, ErrRegionExists
		}
		return nil, fmt.Errorf("failed to create umk rate: %w", err)
	}
	return &r, nil
}

// UpdateUMKRate replaces the stored rate for a region.
func (db *DB) UpdateUMKRate(ctx context.Context, region string, rate *types.UMKRate) (*types.UMKRate, error) {
	var r types.UMKRate
	err := db.pool.QueryRow(ctx,
		`UPDATE umk_rates
		 SET province = $2, monthly_wage = $3, year = $4, active = $5, updated_at = NOW()
		 WHERE region = $1
		 RETURNING region, province, monthly_wage, year, active, created_at, updated_at`,
		regionKey(region), strings.TrimSpace(rate.Province), rate.MonthlyWage, rate.Year, rate.Active,
	).Scan(&r.Region, &r.Province, &r.MonthlyWage, &r.Year, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to update umk rate: %w", err)
	}
	return &r, nil
}

// SoftDeleteUMKRate marks a region's rate inactive so lookups skip it while
// the history stays queryable.
func (db *DB) SoftDeleteUMKRate(ctx context.Context, region string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE umk_rates SET active = FALSE, updated_at = NOW() WHERE region = $1`,
		regionKey(region),
	)
	if err != nil {
		return fmt.Errorf("failed to delete umk rate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRegionNotFound
	}
	return nil
}

// UMKRateStats summarizes the active rates: coverage counts and the wage
// spread, plus per-province region counts.
func (db *DB) UMKRateStats(ctx context.Context) (*types.UMKStats, error) {
	stats := &types.UMKStats{ByProvince: make(map[string]int)}

	var minWage, maxWage, avgWage *float64
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(monthly_wage), MAX(monthly_wage), AVG(monthly_wage)
		 FROM umk_rates WHERE active = TRUE`,
	).Scan(&stats.TotalRegions, &minWage, &maxWage, &avgWage)
	if err != nil {
		return nil, fmt.Errorf("failed to query umk stats: %w", err)
	}
	if minWage != nil {
		stats.MinWage = int64(*minWage)
	}
	if maxWage != nil {
		stats.MaxWage = int64(*maxWage)
	}
	if avgWage != nil {
		stats.AvgWage = int64(*avgWage)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT province, COUNT(*) FROM umk_rates WHERE active = TRUE GROUP BY province`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query umk province counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var province string
		var count int
		if err := rows.Scan(&province, &count); err != nil {
			return nil, fmt.Errorf("failed to scan umk province count: %w", err)
		}
		stats.ByProvince[province] = count
	}
	return stats, nil
}
