package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidator_ValidRecord(t *testing.T) {
	v, err := NewRecordValidator()
	require.NoError(t, err)

	err = v.ValidateRecord(map[string]any{
		"emp_id":                "E001",
		"emp_name":              "Alice",
		"position":              "Analyst",
		"bonus":                 "1000",
		"leave_days_max_streak": 15,
	})
	assert.NoError(t, err)
}

func TestRecordValidator_MissingRequiredFields(t *testing.T) {
	v, err := NewRecordValidator()
	require.NoError(t, err)

	err = v.ValidateRecord(map[string]any{"position": "Analyst"})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2, "emp_id and emp_name are both required")
}

func TestRecordValidator_EmptyID(t *testing.T) {
	v, err := NewRecordValidator()
	require.NoError(t, err)

	err = v.ValidateRecord(map[string]any{"emp_id": "", "emp_name": "Alice"})
	assert.Error(t, err)
}
