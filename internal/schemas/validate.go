// Package schemas provides JSON Schema validation for structured data
// artifacts. Schemas are embedded at compile time so the binary validates
// model output regardless of working directory.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// compiled caches schemas by short name. Extraction validates every LLM
// response, so each schema is compiled once rather than per call.
var compiled sync.Map // string -> *gojsonschema.Schema

// ParsedOfferSchema is the schema name for LLM-extracted offer letters.
const ParsedOfferSchema = "parsed_offer"

// Source returns the raw content of an embedded schema by short name
// ("parsed_offer" loads parsed_offer.schema.json).
func Source(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return "", &SchemaLoadError{
			Path:    name,
			Message: "embedded schema not found",
			Cause:   err,
		}
	}
	return string(data), nil
}

// ValidationError reports every place a document diverges from its schema.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one divergence, located by field path.
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError means the schema itself, or the document, could not be
// loaded and parsed; the content never reached validation.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	msg := fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Validate checks JSON content against an embedded schema by short name.
func Validate(schemaName, jsonContent string) error {
	schema, err := compiledSchema(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "document is not valid JSON",
			Cause:   err,
		}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
		})
	}
	return verr
}

// ValidateFile validates a JSON file on disk against an embedded schema.
// Backs the validate CLI command.
func ValidateFile(schemaName, jsonPath string) error {
	abs, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", abs)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	return Validate(schemaName, string(data))
}

func compiledSchema(name string) (*gojsonschema.Schema, error) {
	if cached, ok := compiled.Load(name); ok {
		return cached.(*gojsonschema.Schema), nil
	}

	source, err := Source(name)
	if err != nil {
		return nil, err
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    name,
			Message: "embedded schema does not compile",
			Cause:   err,
		}
	}

	actual, _ := compiled.LoadOrStore(name, schema)
	return actual.(*gojsonschema.Schema), nil
}

// gojsonschema reports root-level failures with an empty field on some
// versions; normalize to the "(root)" marker it uses elsewhere.
func fieldOf(desc gojsonschema.ResultError) string {
	if f := desc.Field(); f != "" {
		return f
	}
	return "(root)"
}
