package rules

import "github.com/jonathan/hr-audit/internal/types"

// invalidAllocation reports whether a job_allocation value fails validation.
// Exactly three values are invalid: the null sentinel, the empty string, and
// the literal "UNKNOWN" (case-sensitive). Nothing else.
func invalidAllocation(v string) bool {
	return v == types.NullSentinel || v == "" || v == "UNKNOWN"
}

// CheckAllocations returns one AllocationIssue per record whose
// job_allocation is invalid, in input order.
func CheckAllocations(records []types.Record) []types.AllocationIssue {
	var issues []types.AllocationIssue
	for _, rec := range records {
		if !invalidAllocation(rec.JobAllocation) {
			continue
		}
		issues = append(issues, types.AllocationIssue{
			EmpID:         rec.EmpID,
			EmpName:       rec.EmpName,
			JobAllocation: rec.JobAllocation,
			ManagerEmail:  rec.ManagerEmail,
		})
	}
	return issues
}
