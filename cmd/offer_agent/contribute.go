package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/contribution"
	"github.com/jonathan/offer-analyzer/internal/db"
	"github.com/jonathan/offer-analyzer/internal/types"
)

var contributeCmd = &cobra.Command{
	Use:   "contribute",
	Short: "Submit a salary datapoint to the market dataset",
	Long:  "Submit an anonymized salary contribution. The datapoint is deduplicated, scored for confidence, and added to the market dataset used by assess. Requires DATABASE_URL.",
	RunE:  runContribute,
}

var (
	contributeTitle      string
	contributeCompany    string
	contributeLocation   string
	contributeBase       int64
	contributeBonus      int64
	contributeEquity     int64
	contributeExperience int
	contributeSkills     string
	contributeBenefits   string
)

func init() {
	contributeCmd.Flags().StringVar(&contributeTitle, "title", "", "Job title (required)")
	contributeCmd.Flags().StringVar(&contributeCompany, "company", "", "Company name")
	contributeCmd.Flags().StringVar(&contributeLocation, "location", "", "Location (required)")
	contributeCmd.Flags().Int64Var(&contributeBase, "base", 0, "Annual base salary (required)")
	contributeCmd.Flags().Int64Var(&contributeBonus, "bonus", 0, "Annual bonus")
	contributeCmd.Flags().Int64Var(&contributeEquity, "equity", 0, "Annual equity value")
	contributeCmd.Flags().IntVar(&contributeExperience, "experience", 0, "Years of experience")
	contributeCmd.Flags().StringVar(&contributeSkills, "skills", "", "Comma-separated tech stack")
	contributeCmd.Flags().StringVar(&contributeBenefits, "benefits", "", "Comma-separated benefits")

	rootCmd.AddCommand(contributeCmd)
}

func runContribute(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	receipt, err := contribution.NewService(database).Submit(ctx, types.Contribution{
		JobTitle:        contributeTitle,
		Company:         contributeCompany,
		Location:        contributeLocation,
		BaseSalary:      contributeBase,
		Bonus:           contributeBonus,
		Equity:          contributeEquity,
		YearsExperience: contributeExperience,
		TechStack:       splitList(contributeSkills),
		Benefits:        splitList(contributeBenefits),
	})
	if err != nil {
		return fmt.Errorf("failed to submit contribution: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Contribution accepted (quality: %s)\n", receipt.Quality)
	return printJSON(receipt)
}
