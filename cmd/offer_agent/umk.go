package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/db"
)

var umkCmd = &cobra.Command{
	Use:   "umk <city>",
	Short: "Look up the statutory minimum wage for a city or region",
	Long:  "Look up the Indonesian regional minimum wage (UMK) for a city or free-form location. Uses stored rates when DATABASE_URL is set, falling back to the built-in table.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUMK,
}

func init() {
	rootCmd.AddCommand(umkCmd)
}

func runUMK(_ *cobra.Command, args []string) error {
	location := strings.Join(args, " ")

	ctx := context.Background()
	var database *db.DB
	if url := os.Getenv("DATABASE_URL"); url != "" {
		var err error
		database, err = db.Connect(ctx, url)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	}

	rate, err := db.NewRateSource(database).Lookup(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to look up rate: %w", err)
	}
	if rate == nil {
		return fmt.Errorf("no minimum wage data for %q", location)
	}

	region := rate.Region
	if rate.Province != "" {
		region = fmt.Sprintf("%s (%s)", rate.Region, rate.Province)
	}
	_, _ = fmt.Fprintf(os.Stdout, "%s: %d IDR/month, %d IDR/year\n",
		region, rate.MonthlyWage, rate.MonthlyWage*12)
	return nil
}
