package rules

import "github.com/jonathan/hr-audit/internal/types"

// DefaultLeaveThreshold is the maximum permitted consecutive leave streak.
const DefaultLeaveThreshold = 20

// PolicyReport is the output of the leave-policy check. The counts always
// satisfy CompliantCount + len(Violations) == total records checked.
type PolicyReport struct {
	Violations     []types.PolicyViolation
	CompliantCount int
	Threshold      int
}

// CheckLeavePolicy flags every record with leave_days_max_streak strictly
// greater than threshold. A streak exactly at the threshold is compliant.
func CheckLeavePolicy(records []types.Record, threshold int) PolicyReport {
	if threshold < 0 {
		threshold = DefaultLeaveThreshold
	}

	var violations []types.PolicyViolation
	for _, rec := range records {
		if rec.LeaveDaysMaxStreak <= threshold {
			continue
		}
		violations = append(violations, types.PolicyViolation{
			EmpID:              rec.EmpID,
			EmpName:            rec.EmpName,
			LeaveDaysMaxStreak: rec.LeaveDaysMaxStreak,
			ManagerEmail:       rec.ManagerEmail,
		})
	}

	return PolicyReport{
		Violations:     violations,
		CompliantCount: len(records) - len(violations),
		Threshold:      threshold,
	}
}
