package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/hr-audit/internal/types"
)

// NormalizeStats tracks the locally-recovered errors of one normalization
// pass. Missing fields were filled (sentinel for strings, zero for numbers);
// conversion errors were coerced to zero but counted per field.
type NormalizeStats struct {
	MissingFieldsFilled int
	ConversionErrors    map[string]int
}

// TotalConversionErrors sums coercion failures across numeric fields.
func (s NormalizeStats) TotalConversionErrors() int {
	total := 0
	for _, n := range s.ConversionErrors {
		total += n
	}
	return total
}

// Normalize maps raw rows onto the canonical nine-field schema. Every output
// record carries all nine fields: absent string fields get the null sentinel,
// absent or unparseable numeric fields become zero. Input order is preserved.
func Normalize(raw []RawRecord) ([]types.Record, NormalizeStats) {
	stats := NormalizeStats{
		ConversionErrors: map[string]int{
			types.FieldBonus:              0,
			types.FieldLeaveDaysMaxStreak: 0,
		},
	}

	out := make([]types.Record, 0, len(raw))
	for _, row := range raw {
		rec := types.Record{
			EmpID:               stringField(row, types.FieldEmpID, &stats),
			EmpName:             stringField(row, types.FieldEmpName, &stats),
			Position:            stringField(row, types.FieldPosition, &stats),
			Paygrade:            stringField(row, types.FieldPaygrade, &stats),
			ManagerEmail:        stringField(row, types.FieldManagerEmail, &stats),
			JobAllocation:       stringField(row, types.FieldJobAllocation, &stats),
			InvestigationStatus: stringField(row, types.FieldInvestigationStatus, &stats),
		}
		rec.Bonus = intField(row, types.FieldBonus, &stats)
		rec.LeaveDaysMaxStreak = intField(row, types.FieldLeaveDaysMaxStreak, &stats)
		out = append(out, rec)
	}
	return out, stats
}

func stringField(row RawRecord, field string, stats *NormalizeStats) string {
	v, ok := row[field]
	if !ok || v == nil {
		stats.MissingFieldsFilled++
		return types.NullSentinel
	}
	switch s := v.(type) {
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intField(row RawRecord, field string, stats *NormalizeStats) int {
	v, ok := row[field]
	if !ok || v == nil {
		stats.MissingFieldsFilled++
		return 0
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			stats.MissingFieldsFilled++
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		stats.ConversionErrors[field]++
		return 0
	default:
		stats.ConversionErrors[field]++
		return 0
	}
}
