package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a job offer against market data and minimum wage",
	Long:  "Assess a job offer: compare total compensation to market percentiles for the role and location, check regional minimum wage compliance, and derive negotiation targets and leverage points. Uses the Postgres market dataset when DATABASE_URL is set, otherwise the built-in snapshot.",
	RunE:  runAssess,
}

var assessFlags offerFlags

func init() {
	registerOfferFlags(assessCmd, &assessFlags)
	rootCmd.AddCommand(assessCmd)
}

func runAssess(_ *cobra.Command, _ []string) error {
	offer, err := assessFlags.offer()
	if err != nil {
		return err
	}

	ctx := context.Background()
	eng, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := eng.Assess(ctx, offer)
	if err != nil {
		return fmt.Errorf("failed to assess offer: %w", err)
	}

	return printJSON(result)
}
