package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// -----------------------------------------------------------------------------
// Contribution Methods
// -----------------------------------------------------------------------------

// FindRecentByHash returns a contribution with the given submission hash
// created at or after since, or nil when none exists.
func (db *DB) FindRecentByHash(ctx context.Context, hash string, since time.Time) (*types.StoredContribution, error) {
	var rec types.StoredContribution
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_title, company, location, base_salary, bonus, equity,
		        years_experience, tech_stack, benefits, role_key, tier, company_tier,
		        total_comp, submission_hash, confidence, verified, quality, created_at
		 FROM contributions
		 WHERE submission_hash = $1 AND created_at >= $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		hash, since,
	).Scan(
		&rec.ID, &rec.JobTitle, &rec.Company, &rec.Location, &rec.BaseSalary,
		&rec.Bonus, &rec.Equity, &rec.YearsExperience, &rec.TechStack, &rec.Benefits,
		&rec.RoleKey, &rec.Tier, &rec.CompanyTier, &rec.TotalComp,
		&rec.SubmissionHash, &rec.Confidence, &rec.Verified, &rec.Quality, &rec.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contribution by hash: %w", err)
	}
	return &rec, nil
}

// InsertContribution stores an accepted contribution record.
func (db *DB) InsertContribution(ctx context.Context, rec *types.StoredContribution) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO contributions (id, job_title, company, location, base_salary, bonus, equity,
		                            years_experience, tech_stack, benefits, role_key, tier, company_tier,
		                            total_comp, submission_hash, confidence, verified, quality, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		rec.ID, rec.JobTitle, rec.Company, rec.Location, rec.BaseSalary, rec.Bonus, rec.Equity,
		rec.YearsExperience, rec.TechStack, rec.Benefits, rec.RoleKey, rec.Tier, rec.CompanyTier,
		rec.TotalComp, rec.SubmissionHash, rec.Confidence, rec.Verified, rec.Quality, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contribution: %w", err)
	}
	return nil
}
