// Package schemas provides JSON Schema validation for raw source records
// before they enter the normalization stage.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed record.schema.json
var recordSchemaJSON string

// ValidationError reports the schema violations of one raw record.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("record validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// RecordValidator validates raw records against the canonical employee
// record schema.
type RecordValidator struct {
	schema *gojsonschema.Schema
}

// NewRecordValidator compiles the embedded record schema.
func NewRecordValidator() (*RecordValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}
	return &RecordValidator{schema: schema}, nil
}

// ValidateRecord checks one decoded row. A nil return means the row is
// schema-valid; a *ValidationError lists each violation. Validation failures
// are input errors the pipeline absorbs and counts, never fatal.
func (v *RecordValidator) ValidateRecord(raw map[string]any) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate record: %w", err)
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
