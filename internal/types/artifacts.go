package types

// Artifact names written by the pipeline stages. Each stage writes its
// artifact exactly once per run; later stages read, never edit.
const (
	ArtifactIntegrationOutput  = "integration_output"
	ArtifactNormalizedSnapshot = "normalized_snapshot"
	ArtifactRulesResults       = "rules_results"
	ArtifactPolicyResults      = "policy_results"
	ArtifactSummary            = "summary"
)

// IntegrationOutput is the integrate stage artifact.
type IntegrationOutput struct {
	Rows         int      `json:"rows"`
	Columns      []string `json:"columns"`
	SchemaErrors int      `json:"schema_errors"`
}

// NormalizedSnapshot is the normalize stage artifact. ConversionErrors counts
// coercion failures per numeric field; those values were coerced to zero.
type NormalizedSnapshot struct {
	Rows                int            `json:"rows"`
	Columns             []string       `json:"columns"`
	MissingFieldsFilled int            `json:"missing_fields_filled"`
	ConversionErrors    map[string]int `json:"conversion_errors"`
}

// RulesResults is the apply_rules stage artifact.
type RulesResults struct {
	Duplicates          int                        `json:"duplicates"`
	RowsAfterDedup      int                        `json:"rows_after_dedup"`
	DuplicateGroups     []DuplicateGroup           `json:"duplicate_groups"`
	Mismatches          map[string][]FieldConflict `json:"mismatches"`
	JobAllocationIssues int                        `json:"job_allocation_issues"`
	AllocationIssues    []AllocationIssue          `json:"allocation_issues"`
	Emails              []EmailAlert               `json:"emails"`
	SampleFinalData     []Record                   `json:"sample_final_data"`
}

// PolicyResults is the check_policy stage artifact.
type PolicyResults struct {
	LeavePolicyViolations []PolicyViolation `json:"leave_policy_violations"`
	CompliantCount        int               `json:"compliant_count"`
	Threshold             int               `json:"threshold"`
	Emails                []EmailAlert      `json:"emails"`
}

// SummaryFindings aggregates detection counts for the summary artifact.
type SummaryFindings struct {
	Duplicates       int            `json:"duplicates"`
	MismatchCounts   map[string]int `json:"mismatch_counts"`
	PolicyViolations int            `json:"policy_violations"`
}

// SummaryCharts holds derived figures the dashboard charts from.
type SummaryCharts struct {
	RowsAfterDedup int `json:"rows_after_dedup"`
}

// Summary is the final aggregate artifact, built from the rules_results and
// policy_results artifacts rather than recomputed.
type Summary struct {
	Findings        SummaryFindings `json:"findings"`
	Risks           []string        `json:"risks"`
	Recommendations []string        `json:"recommendations"`
	Charts          SummaryCharts   `json:"charts"`
}
