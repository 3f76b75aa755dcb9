package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RunStatus constants
const (
	RunStatusQueued    = "queued"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusError     = "error"
)

// StageStatus constants
const (
	StageStatusPending   = "pending"
	StageStatusRunning   = "running"
	StageStatusCompleted = "completed"
	StageStatusError     = "error"
)

// StageState tracks live progress of one pipeline stage within a run.
// Progress is 0-100 and never decreases for a given stage; on error it stays
// frozen at the last reported value.
type StageState struct {
	Progress  int       `json:"progress"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Run represents one end-to-end execution of the audit pipeline.
type Run struct {
	RunID       string                `json:"run_id"`
	AuditID     string                `json:"audit_id"`
	AuditName   string                `json:"audit_name"`
	Status      string                `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Stages      map[string]StageState `json:"stages"`
	Error       string                `json:"error,omitempty"`
}

// CreateRunRequest represents the request to start a new audit run.
type CreateRunRequest struct {
	AuditID   string `json:"audit_id" validate:"required,min=1"`
	AuditName string `json:"audit_name" validate:"required,min=1"`
}

// Validate validates the CreateRunRequest using the validator.
func (r *CreateRunRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
