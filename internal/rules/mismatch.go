package rules

import (
	"strconv"

	"github.com/jonathan/hr-audit/internal/types"
)

// TrackedFields are the fields checked for cross-row conflicts by default.
var TrackedFields = []string{types.FieldPosition, types.FieldBonus, types.FieldPaygrade}

// DetectFieldConflicts checks each tracked field independently: records are
// grouped by emp_id and any id carrying more than one distinct value for the
// field is a conflict. An emp_id may conflict on several fields at once; each
// field is reported once. The conflict's manager_email (and emp_name) come
// from the first-encountered record for that id, which is the tie-break when
// rows disagree about the manager too.
func DetectFieldConflicts(records []types.Record, fields []string) map[string][]types.FieldConflict {
	if len(fields) == 0 {
		fields = TrackedFields
	}

	// Group rows by emp_id once, preserving first-encounter order of ids.
	byID := make(map[string][]types.Record, len(records))
	idOrder := make([]string, 0, len(records))
	for _, rec := range records {
		if _, seen := byID[rec.EmpID]; !seen {
			idOrder = append(idOrder, rec.EmpID)
		}
		byID[rec.EmpID] = append(byID[rec.EmpID], rec)
	}

	conflicts := make(map[string][]types.FieldConflict, len(fields))
	for _, field := range fields {
		conflicts[field] = nil
		for _, id := range idOrder {
			rows := byID[id]
			if len(rows) < 2 {
				continue
			}

			var distinct []string
			var contributing []types.Record
			seen := make(map[string]bool, len(rows))
			for _, rec := range rows {
				v := fieldValue(rec, field)
				if seen[v] {
					continue
				}
				seen[v] = true
				distinct = append(distinct, v)
				contributing = append(contributing, rec)
			}
			if len(distinct) < 2 {
				continue
			}

			first := rows[0]
			conflicts[field] = append(conflicts[field], types.FieldConflict{
				EmpID:          id,
				EmpName:        first.EmpName,
				Field:          field,
				DistinctValues: distinct,
				Records:        contributing,
				ManagerEmail:   first.ManagerEmail,
			})
		}
	}
	return conflicts
}

// fieldValue renders a tracked field as a comparable string.
func fieldValue(rec types.Record, field string) string {
	switch field {
	case types.FieldPosition:
		return rec.Position
	case types.FieldBonus:
		return strconv.Itoa(rec.Bonus)
	case types.FieldPaygrade:
		return rec.Paygrade
	default:
		return ""
	}
}
