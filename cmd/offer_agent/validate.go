package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a parsed offer JSON file against the offer schema",
	Long:  "Validate a JSON file (typically the saved output of parse-offer) against the embedded parsed offer schema. Exits non-zero when the document does not conform.",
	RunE:  runValidate,
}

var validateJSONFile string

func init() {
	validateCmd.Flags().StringVarP(&validateJSONFile, "file", "f", "", "Path to the JSON file to validate (required)")
	_ = validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	err := schemas.ValidateFile(schemas.ParsedOfferSchema, validateJSONFile)
	if err == nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSONFile)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(os.Stderr, "Validation failed: %s\n", validateJSONFile)
		for i, fieldErr := range validationErr.Errors {
			_, _ = fmt.Fprintf(os.Stderr, "  %d. %s: %s\n", i+1, fieldErr.Field, fieldErr.Message)
		}
		return fmt.Errorf("%d schema violation(s)", len(validationErr.Errors))
	}
	return err
}
