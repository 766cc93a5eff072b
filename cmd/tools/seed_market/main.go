// Command seed_market creates the offer-analyzer tables and fills them with
// development data: the embedded minimum wage table plus generated market
// samples for every canonical role and tier.
//
// Usage:
//
//	go run cmd/tools/seed_market/main.go [-samples N]
//
// Requires DATABASE_URL environment variable to be set. Safe to re-run:
// tables are created IF NOT EXISTS and existing minimum wage regions are
// left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/offer-analyzer/internal/compliance"
	"github.com/jonathan/offer-analyzer/internal/db"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// Fixed seed so repeated runs generate the same dataset.
const randomSeed = 42

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS market_samples (
		id UUID PRIMARY KEY,
		role_key TEXT NOT NULL,
		tier TEXT NOT NULL,
		years_experience INT NOT NULL DEFAULT 0,
		base_salary BIGINT NOT NULL,
		bonus BIGINT NOT NULL DEFAULT 0,
		equity BIGINT NOT NULL DEFAULT 0,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_market_samples_role_tier ON market_samples (role_key, tier)`,
	`CREATE INDEX IF NOT EXISTS idx_market_samples_created_at ON market_samples (created_at)`,
	`CREATE TABLE IF NOT EXISTS contributions (
		id UUID PRIMARY KEY,
		job_title TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		base_salary BIGINT NOT NULL,
		bonus BIGINT NOT NULL DEFAULT 0,
		equity BIGINT NOT NULL DEFAULT 0,
		years_experience INT NOT NULL DEFAULT 0,
		tech_stack TEXT[] NOT NULL DEFAULT '{}',
		benefits TEXT[] NOT NULL DEFAULT '{}',
		role_key TEXT NOT NULL,
		tier TEXT NOT NULL,
		company_tier TEXT NOT NULL DEFAULT '',
		total_comp BIGINT NOT NULL,
		submission_hash TEXT NOT NULL,
		confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		quality TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contributions_hash ON contributions (submission_hash, created_at)`,
	`CREATE TABLE IF NOT EXISTS umk_rates (
		region TEXT PRIMARY KEY,
		province TEXT NOT NULL DEFAULT '',
		monthly_wage BIGINT NOT NULL,
		year INT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// roleAnchors drive sample generation: a median base salary and typical
// years of experience per canonical role code.
var roleAnchors = []struct {
	key   string
	base  int64
	years int
}{
	{"junior_software_engineer", 55000, 1},
	{"software_engineer", 85000, 3},
	{"senior_software_engineer", 120000, 7},
	{"staff_software_engineer", 155000, 10},
	{"principal_software_engineer", 185000, 13},
	{"backend_engineer", 90000, 4},
	{"frontend_engineer", 85000, 4},
	{"fullstack_engineer", 88000, 4},
	{"devops_engineer", 95000, 5},
	{"data_scientist", 100000, 4},
	{"senior_data_scientist", 135000, 8},
	{"product_manager", 105000, 5},
	{"senior_product_manager", 140000, 9},
	{"ux_designer", 80000, 4},
}

var tierFactors = []struct {
	tier   string
	factor float64
}{
	{types.TierOne, 1.0},
	{types.TierTwo, 0.82},
	{types.TierThree, 0.65},
	{types.TierRemote, 0.9},
}

func main() {
	samplesPerSegment := flag.Int("samples", 25, "market samples to generate per role and tier")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create db instance: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Println("=== Market Seed Script ===")
	fmt.Println()

	fmt.Println("Creating tables...")
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to run DDL: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("Tables ready.")
	fmt.Println()

	seedRates(ctx, database)
	seedSamples(ctx, database, *samplesPerSegment)

	fmt.Println()
	fmt.Println("=== Seed Complete ===")
}

// seedRates copies the embedded minimum wage table into umk_rates, skipping
// regions that already exist.
func seedRates(ctx context.Context, database *db.DB) {
	fmt.Println("Seeding minimum wage rates from the embedded table...")

	created := 0
	existing := 0
	failed := 0
	for _, rate := range compliance.AllRates() {
		_, err := database.CreateUMKRate(ctx, rate)
		switch {
		case err == nil:
			created++
		case errors.Is(err, db.ErrRegionExists):
			existing++
		default:
			fmt.Printf("  ✗ %s: %v\n", rate.Region, err)
			failed++
		}
	}

	fmt.Println()
	fmt.Println("=== Rate Summary ===")
	fmt.Printf("  Created: %d\n", created)
	fmt.Printf("  Existing: %d\n", existing)
	fmt.Printf("  Failed: %d\n", failed)
	fmt.Println()
}

// seedSamples generates n samples for every role/tier segment. The base
// salary spreads 25 percent either side of the role anchor scaled by the
// tier factor.
func seedSamples(ctx context.Context, database *db.DB, n int) {
	fmt.Printf("Generating %d market samples per segment (%d roles x %d tiers)...\n",
		n, len(roleAnchors), len(tierFactors))

	rng := rand.New(rand.NewSource(randomSeed))
	inserted := 0
	failed := 0

	for _, role := range roleAnchors {
		for _, tf := range tierFactors {
			for i := 0; i < n; i++ {
				sample := generateSample(rng, role.key, role.base, role.years, tf.tier, tf.factor)
				if err := database.InsertSample(ctx, sample); err != nil {
					if failed == 0 {
						fmt.Fprintf(os.Stderr, "WARNING: Failed to insert sample: %v\n", err)
					}
					failed++
					continue
				}
				inserted++
			}
		}
	}

	fmt.Println()
	fmt.Println("=== Sample Summary ===")
	fmt.Printf("  Inserted: %d\n", inserted)
	fmt.Printf("  Failed: %d\n", failed)
}

func generateSample(rng *rand.Rand, roleKey string, anchorBase int64, anchorYears int, tier string, factor float64) *types.MarketSample {
	spread := 0.75 + rng.Float64()*0.5
	base := int64(float64(anchorBase) * factor * spread)
	bonus := int64(float64(base) * rng.Float64() * 0.2)

	// Equity shows up mostly in senior compensation
	var equity int64
	if anchorBase >= 100000 {
		equity = int64(float64(base) * rng.Float64() * 0.25)
	} else if rng.Float64() < 0.2 {
		equity = int64(float64(base) * rng.Float64() * 0.1)
	}

	years := anchorYears + rng.Intn(5) - 2
	if years < 0 {
		years = 0
	}

	return &types.MarketSample{
		RoleKey:         roleKey,
		Tier:            tier,
		YearsExperience: years,
		BaseSalary:      base,
		Bonus:           bonus,
		Equity:          equity,
		Verified:        rng.Float64() < 0.3,
	}
}
