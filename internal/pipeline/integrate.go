package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/hr-audit/internal/schemas"
	"github.com/jonathan/hr-audit/internal/types"
)

// integrateStage fetches raw records from the configured source, validates
// each row against the canonical record schema, and writes the
// integration_output artifact. A source failure aborts the run; schema
// violations are counted, never fatal.
type integrateStage struct{}

func (integrateStage) ID() string          { return StageIntegrate }
func (integrateStage) Name() string        { return "Data Integrator" }
func (integrateStage) Description() string { return "Fetches data from sources and aggregates." }

func (s integrateStage) Run(ctx context.Context, rc *RunContext, st *State) (*State, error) {
	rc.Progress(s.ID(), 10)
	if err := rc.StartPad(s.ID(),
		"DATA INTEGRATION",
		fmt.Sprintf("Audit: %s (%s)", rc.AuditName, rc.AuditID),
		"Fetching employee records from source",
		""); err != nil {
		return nil, err
	}

	raw, err := rc.Source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	rc.Progress(s.ID(), 30)

	validator, err := schemas.NewRecordValidator()
	if err != nil {
		return nil, err
	}

	schemaErrors := 0
	for _, row := range raw {
		if err := validator.ValidateRecord(row); err != nil {
			var ve *schemas.ValidationError
			if errors.As(err, &ve) {
				schemaErrors++
				continue
			}
			return nil, err
		}
	}
	rc.Progress(s.ID(), 60)

	if err := rc.Pad(s.ID(),
		fmt.Sprintf("Fetched %d rows", len(raw)),
		fmt.Sprintf("Columns: %d canonical fields", len(types.RecordFields)),
		fmt.Sprintf("Schema violations: %d", schemaErrors),
		""); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 90)

	artifact := types.IntegrationOutput{
		Rows:         len(raw),
		Columns:      types.RecordFields,
		SchemaErrors: schemaErrors,
	}
	if err := rc.Store.PutArtifact(rc.RunID, types.ArtifactIntegrationOutput, artifact); err != nil {
		return nil, fmt.Errorf("write integration artifact: %w", err)
	}

	st.Raw = raw
	st.SchemaErrors = schemaErrors
	return st, nil
}
