package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/hr-audit/internal/rules"
	"github.com/jonathan/hr-audit/internal/types"
)

// policyStage validates the deduplicated records against the leave policy.
// A record violates the policy when its longest leave streak is strictly
// greater than the configured threshold.
type policyStage struct{}

func (policyStage) ID() string          { return StageCheckPolicy }
func (policyStage) Name() string        { return "Policy Check" }
func (policyStage) Description() string { return "Validates against company policies." }

func (s policyStage) Run(ctx context.Context, rc *RunContext, st *State) (*State, error) {
	threshold := rc.Policy.Leave.MaxConsecutiveDays

	rc.Progress(s.ID(), 10)
	if err := rc.StartPad(s.ID(),
		"POLICY COMPLIANCE CHECK",
		fmt.Sprintf("Leave policy: max %d consecutive days", threshold),
		fmt.Sprintf("Checking %d records", len(st.Final)),
		""); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 30)

	report := rules.CheckLeavePolicy(st.Final, threshold)
	rc.Progress(s.ID(), 60)

	var emails []types.EmailAlert
	lines := []string{
		fmt.Sprintf("Compliant: %d", report.CompliantCount),
		fmt.Sprintf("Violations: %d", len(report.Violations)),
	}
	for _, v := range report.Violations {
		receipt, err := rc.Notifier.Notify(v.ManagerEmail,
			fmt.Sprintf("Leave policy violation (>%d days)", report.Threshold),
			fmt.Sprintf("Emp %s %s streak=%d", v.EmpID, v.EmpName, v.LeaveDaysMaxStreak))
		if err != nil {
			return nil, fmt.Errorf("notify policy violation: %w", err)
		}
		emails = append(emails, alertFromReceipt("leave_policy", receipt))
		lines = append(lines,
			fmt.Sprintf("  %s - %s: %d days (over by %d)", v.EmpID, v.EmpName,
				v.LeaveDaysMaxStreak, v.LeaveDaysMaxStreak-report.Threshold))
	}
	lines = append(lines, "")
	if err := rc.Pad(s.ID(), lines...); err != nil {
		return nil, err
	}
	rc.Progress(s.ID(), 90)

	artifact := types.PolicyResults{
		LeavePolicyViolations: report.Violations,
		CompliantCount:        report.CompliantCount,
		Threshold:             report.Threshold,
		Emails:                emails,
	}
	if err := rc.Store.PutArtifact(rc.RunID, types.ArtifactPolicyResults, artifact); err != nil {
		return nil, fmt.Errorf("write policy artifact: %w", err)
	}
	return st, nil
}
