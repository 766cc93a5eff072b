package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/db"
	"github.com/jonathan/offer-analyzer/internal/engine"
	"github.com/jonathan/offer-analyzer/internal/market"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// offerFlags collects the flags shared by the assess and script commands.
// An offer can come from individual flags or from a JSON file; the file
// wins when both are given.
type offerFlags struct {
	title      string
	company    string
	location   string
	base       int64
	bonus      int64
	equity     int64
	experience int
	skills     string
	benefits   string
	competing  bool
	jsonFile   string
}

func registerOfferFlags(cmd *cobra.Command, f *offerFlags) {
	cmd.Flags().StringVar(&f.title, "title", "", "Job title (required unless --json is given)")
	cmd.Flags().StringVar(&f.company, "company", "", "Company name")
	cmd.Flags().StringVar(&f.location, "location", "", "Job location, e.g. \"Jakarta, Indonesia\"")
	cmd.Flags().Int64Var(&f.base, "base", 0, "Annual base salary (required unless --json is given)")
	cmd.Flags().Int64Var(&f.bonus, "bonus", 0, "Annual bonus")
	cmd.Flags().Int64Var(&f.equity, "equity", 0, "Annual equity value")
	cmd.Flags().IntVar(&f.experience, "experience", 0, "Years of experience")
	cmd.Flags().StringVar(&f.skills, "skills", "", "Comma-separated tech stack, e.g. go,kubernetes")
	cmd.Flags().StringVar(&f.benefits, "benefits", "", "Comma-separated benefits")
	cmd.Flags().BoolVar(&f.competing, "competing", false, "Set when holding competing offers")
	cmd.Flags().StringVar(&f.jsonFile, "json", "", "Path to a JSON file containing the offer")
}

// offer materializes the flag values into an Offer. Validation is left to
// the engine so the CLI and the API reject bad input identically.
func (f *offerFlags) offer() (types.Offer, error) {
	if f.jsonFile != "" {
		content, err := os.ReadFile(f.jsonFile)
		if err != nil {
			return types.Offer{}, fmt.Errorf("failed to read offer file: %w", err)
		}
		var offer types.Offer
		if err := json.Unmarshal(content, &offer); err != nil {
			return types.Offer{}, fmt.Errorf("failed to parse offer file: %w", err)
		}
		return offer, nil
	}

	return types.Offer{
		JobTitle:           f.title,
		Company:            f.company,
		Location:           f.location,
		BaseSalary:         f.base,
		Bonus:              f.bonus,
		Equity:             f.equity,
		YearsExperience:    f.experience,
		TechStack:          splitList(f.skills),
		Benefits:           splitList(f.benefits),
		HasCompetingOffers: f.competing,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// buildEngine assembles an assessment engine, backed by Postgres when
// DATABASE_URL is set and by the built-in data otherwise. The returned
// cleanup closes the database connection and is safe to call either way.
func buildEngine(ctx context.Context) (*engine.Engine, func(), error) {
	var database *db.DB
	if url := os.Getenv("DATABASE_URL"); url != "" {
		var err error
		database, err = db.Connect(ctx, url)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	var store market.SampleStore
	if database != nil {
		store = database
	}
	eng := engine.New(market.NewResolver(store), db.NewRateSource(database))

	cleanup := func() {
		if database != nil {
			database.Close()
		}
	}
	return eng, cleanup, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
	return nil
}
