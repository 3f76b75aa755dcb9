package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/hr-audit/internal/records"
	"github.com/jonathan/hr-audit/internal/types"
)

// normalizeStage coerces the raw rows into canonical records: every record
// leaves with all nine fields populated, missing strings as the null
// sentinel, unparseable numerics as zero with a counted conversion error.
type normalizeStage struct{}

func (normalizeStage) ID() string          { return StageNormalize }
func (normalizeStage) Name() string        { return "Normalize Data" }
func (normalizeStage) Description() string { return "Standardizes columns and types." }

func (s normalizeStage) Run(ctx context.Context, rc *RunContext, st *State) (*State, error) {
	rc.Progress(s.ID(), 10)
	if err := rc.StartPad(s.ID(),
		"DATA NORMALIZATION",
		fmt.Sprintf("Standardizing %d rows to the canonical schema", len(st.Raw)),
		""); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 30)

	recs, stats := records.Normalize(st.Raw)
	rc.Progress(s.ID(), 60)

	lines := []string{
		fmt.Sprintf("Rows normalized: %d", len(recs)),
		fmt.Sprintf("Missing fields filled: %d", stats.MissingFieldsFilled),
		fmt.Sprintf("Numeric conversion errors: %d (coerced to 0)", stats.TotalConversionErrors()),
	}
	for _, field := range types.RecordFields {
		if n := stats.ConversionErrors[field]; n > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", field, n))
		}
	}
	lines = append(lines, "")
	if err := rc.Pad(s.ID(), lines...); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 90)

	artifact := types.NormalizedSnapshot{
		Rows:                len(recs),
		Columns:             types.RecordFields,
		MissingFieldsFilled: stats.MissingFieldsFilled,
		ConversionErrors:    stats.ConversionErrors,
	}
	if err := rc.Store.PutArtifact(rc.RunID, types.ArtifactNormalizedSnapshot, artifact); err != nil {
		return nil, fmt.Errorf("write normalized artifact: %w", err)
	}

	st.Records = recs
	st.NormalizeStats = stats
	return st, nil
}
