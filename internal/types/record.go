// Package types provides type definitions for structured data used throughout the hr-audit system.
package types

// NullSentinel fills string fields that were absent from the source row.
// Records past the normalization stage always carry all nine fields; absent
// values are marked rather than omitted.
const NullSentinel = "NULL"

// Canonical field names of the nine-field employee schema, in column order.
const (
	FieldEmpID               = "emp_id"
	FieldEmpName             = "emp_name"
	FieldPosition            = "position"
	FieldBonus               = "bonus"
	FieldPaygrade            = "paygrade"
	FieldManagerEmail        = "manager_email"
	FieldJobAllocation       = "job_allocation"
	FieldInvestigationStatus = "investigation_status"
	FieldLeaveDaysMaxStreak  = "leave_days_max_streak"
)

// RecordFields lists the canonical schema in column order.
var RecordFields = []string{
	FieldEmpID,
	FieldEmpName,
	FieldPosition,
	FieldBonus,
	FieldPaygrade,
	FieldManagerEmail,
	FieldJobAllocation,
	FieldInvestigationStatus,
	FieldLeaveDaysMaxStreak,
}

// Record represents one employee row in the canonical nine-field schema.
type Record struct {
	EmpID               string `json:"emp_id"`
	EmpName             string `json:"emp_name"`
	Position            string `json:"position"`
	Bonus               int    `json:"bonus"`
	Paygrade            string `json:"paygrade"`
	ManagerEmail        string `json:"manager_email"`
	JobAllocation       string `json:"job_allocation"`
	InvestigationStatus string `json:"investigation_status"`
	LeaveDaysMaxStreak  int    `json:"leave_days_max_streak"`
}

// RecordKey is the composite key used for duplicate detection. Two rows are
// copies of each other only when both emp_id and emp_name match.
type RecordKey struct {
	EmpID   string
	EmpName string
}

// Key returns the record's composite duplicate-detection key.
func (r Record) Key() RecordKey {
	return RecordKey{EmpID: r.EmpID, EmpName: r.EmpName}
}
