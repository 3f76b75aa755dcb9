package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/hr-audit/internal/store"
	"github.com/jonathan/hr-audit/internal/types"
)

// DataIntegrityError signals that a prerequisite artifact of the summarize
// stage is missing. It is distinct from a computation error: the pipeline
// state is inconsistent, not the data.
type DataIntegrityError struct {
	Artifact string
	Err      error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("prerequisite artifact %s unavailable: %v", e.Artifact, e.Err)
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }

// summaryRisks and summaryRecommendations are the fixed advisory lists
// attached to every summary artifact.
var summaryRisks = []string{
	"Data inconsistency across multiple source systems",
	"Policy non-compliance in leave management",
	"Job allocation gaps impacting org structure reporting",
	"Potential compliance issues with past-flagged investigations",
}

var summaryRecommendations = []string{
	"Implement single source of truth (SSOT) for employee master data",
	"Deploy automated alert system for real-time mismatch detection",
	"Establish monthly data quality audits with KPI tracking",
	"Create manager dashboard for policy violations and approvals",
	"Integrate investigation status into performance review workflow",
}

// summarizeStage aggregates the rules and policy artifacts into the final
// summary. It reads the persisted artifacts rather than recomputing, so the
// summary always reflects exactly what earlier stages recorded.
type summarizeStage struct{}

func (summarizeStage) ID() string          { return StageSummarize }
func (summarizeStage) Name() string        { return "Summary" }
func (summarizeStage) Description() string { return "Findings, risks, and recommendations." }

func (s summarizeStage) Run(ctx context.Context, rc *RunContext, st *State) (*State, error) {
	rc.Progress(s.ID(), 10)
	if err := rc.StartPad(s.ID(),
		"EXECUTIVE SUMMARY",
		"Aggregating results from all stages",
		""); err != nil {
		return nil, err
	}

	var rulesRes types.RulesResults
	if err := store.GetArtifactAs(rc.Store, rc.RunID, types.ArtifactRulesResults, &rulesRes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &DataIntegrityError{Artifact: types.ArtifactRulesResults, Err: err}
		}
		return nil, err
	}
	rc.Progress(s.ID(), 30)

	var policyRes types.PolicyResults
	if err := store.GetArtifactAs(rc.Store, rc.RunID, types.ArtifactPolicyResults, &policyRes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &DataIntegrityError{Artifact: types.ArtifactPolicyResults, Err: err}
		}
		return nil, err
	}
	rc.Progress(s.ID(), 60)

	mismatchCounts := make(map[string]int, len(rulesRes.Mismatches))
	totalMismatches := 0
	for field, conflicts := range rulesRes.Mismatches {
		mismatchCounts[field] = len(conflicts)
		totalMismatches += len(conflicts)
	}

	summary := types.Summary{
		Findings: types.SummaryFindings{
			Duplicates:       rulesRes.Duplicates,
			MismatchCounts:   mismatchCounts,
			PolicyViolations: len(policyRes.LeavePolicyViolations),
		},
		Risks:           summaryRisks,
		Recommendations: summaryRecommendations,
		Charts: types.SummaryCharts{
			RowsAfterDedup: rulesRes.RowsAfterDedup,
		},
	}
	if err := rc.Store.PutArtifact(rc.RunID, types.ArtifactSummary, summary); err != nil {
		return nil, fmt.Errorf("write summary artifact: %w", err)
	}
	rc.Progress(s.ID(), 90)

	totalIssues := rulesRes.Duplicates + totalMismatches + len(policyRes.LeavePolicyViolations)
	if err := rc.Pad(s.ID(),
		"AUDIT SUMMARY COMPLETE",
		fmt.Sprintf("Total issues detected: %d", totalIssues),
		fmt.Sprintf("  Duplicate records: %d", rulesRes.Duplicates),
		fmt.Sprintf("  Field mismatches: %d", totalMismatches),
		fmt.Sprintf("  Policy violations: %d", len(policyRes.LeavePolicyViolations)),
		fmt.Sprintf("  Clean records: %d", rulesRes.RowsAfterDedup),
		""); err != nil {
		return nil, err
	}
	return st, nil
}
