package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/llm"
	"github.com/jonathan/offer-analyzer/internal/scripts"
	"github.com/jonathan/offer-analyzer/internal/types"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate negotiation scripts for an offer",
	Long:  "Assess a job offer and generate three negotiation email scripts (assertive, balanced, humble) plus tips and talking points. Uses the Gemini API when GEMINI_API_KEY is set, otherwise deterministic templates.",
	RunE:  runScript,
}

var (
	scriptFlags      offerFlags
	scriptJSONOutput bool
)

func init() {
	registerOfferFlags(scriptCmd, &scriptFlags)
	scriptCmd.Flags().BoolVar(&scriptJSONOutput, "json-output", false, "Print the full bundle as JSON instead of formatted text")

	rootCmd.AddCommand(scriptCmd)
}

func runScript(_ *cobra.Command, _ []string) error {
	offer, err := scriptFlags.offer()
	if err != nil {
		return err
	}

	ctx := context.Background()
	eng, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var client llm.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	} else {
		fmt.Fprintf(os.Stderr, "Warning: GEMINI_API_KEY not set, using template scripts\n")
	}

	result, err := eng.Assess(ctx, offer)
	if err != nil {
		return fmt.Errorf("failed to assess offer: %w", err)
	}

	bundle, err := scripts.NewGenerator(client).Generate(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to generate scripts: %w", err)
	}

	if scriptJSONOutput {
		return printJSON(map[string]any{
			"assessment": result,
			"scripts":    bundle,
		})
	}

	printBundle(result, bundle)
	return nil
}

func printBundle(result *types.AssessmentResult, bundle *types.ScriptBundle) {
	fmt.Fprintf(os.Stdout, "Verdict: %s (total compensation %d, market P50 %s)\n",
		result.Verdict, result.TotalComp, formatAmount(result.Market.P50))

	sections := []struct {
		title string
		body  string
	}{
		{"Assertive", bundle.Assertive},
		{"Balanced", bundle.Balanced},
		{"Humble", bundle.Humble},
	}
	for _, s := range sections {
		fmt.Fprintf(os.Stdout, "\n=== %s ===\n\n%s\n", s.title, s.body)
	}

	if len(bundle.Tips) > 0 {
		fmt.Fprintf(os.Stdout, "\n=== Tips ===\n\n")
		for _, tip := range bundle.Tips {
			fmt.Fprintf(os.Stdout, "- %s: %s\n", tip.Title, tip.Description)
		}
	}
	if len(bundle.TalkingPoints) > 0 {
		fmt.Fprintf(os.Stdout, "\n=== Talking Points ===\n\n")
		for _, point := range bundle.TalkingPoints {
			fmt.Fprintf(os.Stdout, "- %s\n", point)
		}
	}
}

func formatAmount(v *int64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}
