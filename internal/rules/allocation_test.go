package rules

import (
	"testing"

	"github.com/jonathan/hr-audit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAllocations_ExactInvalidSet(t *testing.T) {
	tests := []struct {
		name       string
		allocation string
		invalid    bool
	}{
		{"null sentinel", types.NullSentinel, true},
		{"empty string", "", true},
		{"literal UNKNOWN", "UNKNOWN", true},
		{"lowercase unknown is valid", "unknown", false},
		{"mixed case is valid", "Unknown", false},
		{"real department", "FIN", false},
		{"whitespace is valid", " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []types.Record{{
				EmpID:         "E1",
				EmpName:       "Bob",
				JobAllocation: tt.allocation,
				ManagerEmail:  "mgr@example.com",
			}}
			issues := CheckAllocations(records)
			if tt.invalid {
				require.Len(t, issues, 1)
				assert.Equal(t, "E1", issues[0].EmpID)
				assert.Equal(t, "mgr@example.com", issues[0].ManagerEmail)
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestCheckAllocations_OneIssuePerInvalidRecord(t *testing.T) {
	records := []types.Record{
		{EmpID: "E1", EmpName: "Bob", JobAllocation: ""},
		{EmpID: "E2", EmpName: "Sue", JobAllocation: "UNKNOWN"},
		{EmpID: "E3", EmpName: "Ann", JobAllocation: "HR"},
		{EmpID: "E4", EmpName: "Ken", JobAllocation: types.NullSentinel},
	}

	issues := CheckAllocations(records)
	require.Len(t, issues, 3)
	assert.Equal(t, "E1", issues[0].EmpID)
	assert.Equal(t, "E2", issues[1].EmpID)
	assert.Equal(t, "E4", issues[2].EmpID)
}
