package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/parse"
)

var parseOfferCmd = &cobra.Command{
	Use:   "parse-offer",
	Short: "Parse free-form offer text into a structured offer",
	Long:  "Parse a pasted offer letter or chat message into structured offer JSON using the Gemini API. Reads from --file when given, otherwise from stdin.",
	RunE:  runParseOffer,
}

var (
	parseOfferFile   string
	parseOfferAPIKey string
)

func init() {
	parseOfferCmd.Flags().StringVarP(&parseOfferFile, "file", "f", "", "Path to a text file containing the offer (default: stdin)")
	parseOfferCmd.Flags().StringVar(&parseOfferAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	rootCmd.AddCommand(parseOfferCmd)
}

func runParseOffer(_ *cobra.Command, _ []string) error {
	apiKey := parseOfferAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	var text string
	if parseOfferFile != "" {
		content, err := os.ReadFile(parseOfferFile)
		if err != nil {
			return fmt.Errorf("failed to read offer file: %w", err)
		}
		text = string(content)
	} else {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(content)
	}

	offer, err := parse.ParseOffer(context.Background(), text, apiKey)
	if err != nil {
		return fmt.Errorf("failed to parse offer: %w", err)
	}

	return printJSON(offer)
}
