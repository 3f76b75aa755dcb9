// Package rules provides the pure detection functions of the audit pipeline:
// duplicate detection, field-mismatch detection, job-allocation validation,
// and leave-policy checks.
package rules

import "github.com/jonathan/hr-audit/internal/types"

// DuplicateReport is the output of duplicate detection over one record batch.
type DuplicateReport struct {
	// Groups holds every composite key appearing on two or more rows, in
	// first-encounter order.
	Groups []types.DuplicateGroup
	// DuplicateCount is the number of redundant copies removed by dedup:
	// len(input) - len(Deduped).
	DuplicateCount int
	// Deduped keeps the first-encountered record per composite key, in
	// original input order.
	Deduped []types.Record
}

// DetectDuplicates groups records by the (emp_id, emp_name) composite key.
// Rows sharing an emp_id under different names are distinct employees, not
// duplicates of each other.
func DetectDuplicates(records []types.Record) DuplicateReport {
	byKey := make(map[types.RecordKey][]types.Record, len(records))
	keyOrder := make([]types.RecordKey, 0, len(records))
	deduped := make([]types.Record, 0, len(records))

	for _, rec := range records {
		k := rec.Key()
		if _, seen := byKey[k]; !seen {
			keyOrder = append(keyOrder, k)
			deduped = append(deduped, rec)
		}
		byKey[k] = append(byKey[k], rec)
	}

	var groups []types.DuplicateGroup
	for _, k := range keyOrder {
		group := byKey[k]
		if len(group) < 2 {
			continue
		}
		groups = append(groups, types.DuplicateGroup{
			EmpID:   k.EmpID,
			EmpName: k.EmpName,
			Records: group,
		})
	}

	return DuplicateReport{
		Groups:         groups,
		DuplicateCount: len(records) - len(deduped),
		Deduped:        deduped,
	}
}
