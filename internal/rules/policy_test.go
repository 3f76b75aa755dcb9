package rules

import (
	"testing"

	"github.com/jonathan/hr-audit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaveRec(id string, streak int) types.Record {
	return types.Record{EmpID: id, EmpName: "N-" + id, LeaveDaysMaxStreak: streak, ManagerEmail: "m@x.com"}
}

func TestCheckLeavePolicy_StrictlyGreaterThan(t *testing.T) {
	records := []types.Record{
		leaveRec("E1", 19),
		leaveRec("E2", 20), // exactly at the threshold: compliant
		leaveRec("E3", 21),
	}

	report := CheckLeavePolicy(records, DefaultLeaveThreshold)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "E3", report.Violations[0].EmpID)
	assert.Equal(t, 2, report.CompliantCount)
}

func TestCheckLeavePolicy_BoundaryFlip(t *testing.T) {
	at := CheckLeavePolicy([]types.Record{leaveRec("E1", 20)}, 20)
	assert.Empty(t, at.Violations)

	over := CheckLeavePolicy([]types.Record{leaveRec("E1", 21)}, 20)
	assert.Len(t, over.Violations, 1)
}

func TestCheckLeavePolicy_CountsAlwaysPartitionTotal(t *testing.T) {
	records := []types.Record{
		leaveRec("E1", 0),
		leaveRec("E2", 5),
		leaveRec("E3", 20),
		leaveRec("E4", 25),
		leaveRec("E5", 100),
	}

	for _, threshold := range []int{0, 1, 5, 20, 99, 100, 1000} {
		report := CheckLeavePolicy(records, threshold)
		assert.Equal(t, len(records), report.CompliantCount+len(report.Violations),
			"threshold %d must partition the batch", threshold)
	}
}

func TestCheckLeavePolicy_ViolationCarriesManagerEmail(t *testing.T) {
	records := []types.Record{{
		EmpID:              "E1",
		EmpName:            "Bob",
		LeaveDaysMaxStreak: 25,
		ManagerEmail:       "m@x.com",
	}}

	report := CheckLeavePolicy(records, 20)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "m@x.com", report.Violations[0].ManagerEmail)
	assert.Equal(t, 25, report.Violations[0].LeaveDaysMaxStreak)
}

func TestCheckLeavePolicy_EmptyBatch(t *testing.T) {
	report := CheckLeavePolicy(nil, 20)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 0, report.CompliantCount)
}
