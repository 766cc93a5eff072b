// Package main provides the entry point for the Offer Analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "offer_agent",
	Short: "Offer Analyzer CLI and HTTP API Server",
	Long:  "Offer Analyzer assesses job offers against market compensation data and Indonesian regional minimum wages, and generates negotiation guidance, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
