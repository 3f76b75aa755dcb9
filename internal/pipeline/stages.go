package pipeline

// StageDefinition is the static metadata for one pipeline stage, exposed by
// the stages API alongside live per-run state.
type StageDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// Stage ids in execution order.
const (
	StageIntegrate   = "integrate"
	StageNormalize   = "normalize"
	StageApplyRules  = "apply_rules"
	StageCheckPolicy = "check_policy"
	StageSummarize   = "summarize"
)

// Definitions returns the static stage metadata in execution order.
func Definitions() []StageDefinition {
	return []StageDefinition{
		{ID: StageIntegrate, Name: "Data Integrator", Description: "Fetches data from sources and aggregates."},
		{ID: StageNormalize, Name: "Normalize Data", Description: "Standardizes columns and types."},
		{ID: StageApplyRules, Name: "Run Rules", Description: "Detects duplicates, mismatches, and allocation gaps."},
		{ID: StageCheckPolicy, Name: "Policy Check", Description: "Validates against company policies."},
		{ID: StageSummarize, Name: "Summary", Description: "Findings, risks, and recommendations."},
	}
}
