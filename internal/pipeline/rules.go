package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/hr-audit/internal/notify"
	"github.com/jonathan/hr-audit/internal/rules"
	"github.com/jonathan/hr-audit/internal/types"
)

const sampleFinalRows = 5

// rulesStage runs the detection rules: duplicate records, per-field value
// conflicts, and job allocation gaps. Conflicts are detected over the full
// batch; allocation checks run against the deduplicated set that later
// stages consume. Every detection event triggers one manager notification.
type rulesStage struct{}

func (rulesStage) ID() string   { return StageApplyRules }
func (rulesStage) Name() string { return "Run Rules" }
func (rulesStage) Description() string {
	return "Detects duplicates, mismatches, and allocation gaps."
}

func (s rulesStage) Run(ctx context.Context, rc *RunContext, st *State) (*State, error) {
	rc.Progress(s.ID(), 10)
	if err := rc.StartPad(s.ID(),
		"RULES ENGINE",
		fmt.Sprintf("Scanning %d records", len(st.Records)),
		""); err != nil {
		return nil, err
	}

	dup := rules.DetectDuplicates(st.Records)
	rc.Progress(s.ID(), 30)

	if err := rc.Pad(s.ID(),
		fmt.Sprintf("Duplicates removed: %d", dup.DuplicateCount),
		fmt.Sprintf("Unique records retained: %d", len(dup.Deduped)),
		""); err != nil {
		return nil, err
	}

	conflicts := rules.DetectFieldConflicts(st.Records, rc.Policy.TrackedFields)
	rc.Progress(s.ID(), 50)

	var emails []types.EmailAlert
	conflictLines := []string{}
	for _, field := range rc.Policy.TrackedFields {
		for _, fc := range conflicts[field] {
			body, err := json.Marshal(fc.Records)
			if err != nil {
				return nil, fmt.Errorf("encode conflict alert: %w", err)
			}
			receipt, err := rc.Notifier.Notify(fc.ManagerEmail,
				fmt.Sprintf("Mismatch detected for %s", field), string(body))
			if err != nil {
				return nil, fmt.Errorf("notify %s conflict: %w", field, err)
			}
			emails = append(emails, alertFromReceipt("mismatch_"+field, receipt))
			conflictLines = append(conflictLines,
				fmt.Sprintf("  %s - %s: %s values %v", fc.EmpID, fc.EmpName, field, fc.DistinctValues))
		}
	}

	totalConflicts := 0
	for _, field := range rc.Policy.TrackedFields {
		totalConflicts += len(conflicts[field])
	}
	lines := append([]string{fmt.Sprintf("Field conflicts detected: %d", totalConflicts)}, conflictLines...)
	lines = append(lines, "")
	if err := rc.Pad(s.ID(), lines...); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 70)

	issues := rules.CheckAllocations(dup.Deduped)
	issueLines := []string{fmt.Sprintf("Job allocation issues: %d", len(issues))}
	for _, issue := range issues {
		receipt, err := rc.Notifier.Notify(issue.ManagerEmail,
			"Job allocation missing/mismatch",
			fmt.Sprintf("Emp %s %s", issue.EmpID, issue.EmpName))
		if err != nil {
			return nil, fmt.Errorf("notify allocation issue: %w", err)
		}
		emails = append(emails, alertFromReceipt("job_allocation", receipt))
		issueLines = append(issueLines,
			fmt.Sprintf("  %s - %s -> manager %s", issue.EmpID, issue.EmpName, issue.ManagerEmail))
	}
	issueLines = append(issueLines, "")
	if err := rc.Pad(s.ID(), issueLines...); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 90)

	sample := dup.Deduped
	if len(sample) > sampleFinalRows {
		sample = sample[:sampleFinalRows]
	}

	artifact := types.RulesResults{
		Duplicates:          dup.DuplicateCount,
		RowsAfterDedup:      len(dup.Deduped),
		DuplicateGroups:     dup.Groups,
		Mismatches:          conflicts,
		JobAllocationIssues: len(issues),
		AllocationIssues:    issues,
		Emails:              emails,
		SampleFinalData:     sample,
	}
	if err := rc.Store.PutArtifact(rc.RunID, types.ArtifactRulesResults, artifact); err != nil {
		return nil, fmt.Errorf("write rules artifact: %w", err)
	}

	st.Final = dup.Deduped
	return st, nil
}

// alertFromReceipt pairs a detection event type with the notifier's delivery
// receipt for the artifact record.
func alertFromReceipt(eventType string, r notify.Receipt) types.EmailAlert {
	return types.EmailAlert{
		Type:      eventType,
		To:        r.To,
		Subject:   r.Subject,
		Status:    r.Status,
		Timestamp: r.Timestamp,
	}
}
