package types

import "time"

// DuplicateGroup is a set of two or more records sharing the same
// (emp_id, emp_name) composite key.
type DuplicateGroup struct {
	EmpID   string   `json:"emp_id"`
	EmpName string   `json:"emp_name"`
	Records []Record `json:"records"`
}

// FieldConflict reports contradictory values for one tracked field across
// rows sharing an emp_id. ManagerEmail carries the address of the
// first-encountered record for that emp_id, used for the alert.
type FieldConflict struct {
	EmpID          string   `json:"emp_id"`
	EmpName        string   `json:"emp_name"`
	Field          string   `json:"field"`
	DistinctValues []string `json:"distinct_values"`
	Records        []Record `json:"records"`
	ManagerEmail   string   `json:"manager_email"`
}

// AllocationIssue marks a record whose job_allocation is missing, empty, or
// the literal "UNKNOWN".
type AllocationIssue struct {
	EmpID         string `json:"emp_id"`
	EmpName       string `json:"emp_name"`
	JobAllocation string `json:"job_allocation"`
	ManagerEmail  string `json:"manager_email"`
}

// PolicyViolation is emitted for a record failing the leave policy predicate.
type PolicyViolation struct {
	EmpID              string `json:"emp_id"`
	EmpName            string `json:"emp_name"`
	LeaveDaysMaxStreak int    `json:"leave_days_max_streak"`
	ManagerEmail       string `json:"manager_email"`
}

// EmailAlert records one notification event emitted by a stage, including the
// delivery receipt fields returned by the notifier.
type EmailAlert struct {
	Type      string    `json:"type"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
