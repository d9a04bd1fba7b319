// Package schemas provides JSON Schema validation for model-produced
// payloads before they reach the persistence layer.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateFinalizePayload validates the raw finalizeCandidates argument
// JSON against the embedded schema. A nil return means the payload is safe
// to decode into CandidateFinalizeInput values.
func ValidateFinalizePayload(payload []byte) error {
	return validateAgainst("finalize_results.schema.json", payload)
}

func validateAgainst(schemaName string, payload []byte) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaName, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
