// Package observability provides formatted output utilities for CLI runs.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/hr-audit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for one-shot CLI runs
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunStatus outputs the run header with per-stage completion state.
func (p *Printer) PrintRunStatus(run *types.Run, stageOrder []string) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:     %s\n", run.RunID))
	sb.WriteString(fmt.Sprintf("Audit:   %s (%s)\n", run.AuditName, run.AuditID))
	sb.WriteString(fmt.Sprintf("Status:  %s\n", run.Status))
	if run.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:   %s\n", run.Error))
	}
	sb.WriteString("\n")

	for _, id := range stageOrder {
		stage, ok := run.Stages[id]
		if !ok {
			continue
		}
		marker := "•"
		switch stage.Status {
		case types.StageStatusCompleted:
			marker = "✓"
		case types.StageStatusError:
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("  %s %-14s %3d%%  %s\n", marker, id, stage.Progress, stage.Status))
	}

	p.printBox("AUDIT RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRulesResults outputs the rules stage findings.
func (p *Printer) PrintRulesResults(results *types.RulesResults) {
	if results == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Duplicates removed:  %d\n", results.Duplicates))
	sb.WriteString(fmt.Sprintf("Unique records:      %d\n", results.RowsAfterDedup))
	sb.WriteString(fmt.Sprintf("Allocation issues:   %d\n", results.JobAllocationIssues))
	sb.WriteString("\n")

	fields := make([]string, 0, len(results.Mismatches))
	for field := range results.Mismatches {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	shown := 0
	for _, field := range fields {
		for _, fc := range results.Mismatches[field] {
			if shown >= maxItemsToShow {
				break
			}
			sb.WriteString(fmt.Sprintf("⚠ %s conflict: %s - %s\n", field, fc.EmpID, fc.EmpName))
			values := strings.Join(fc.DistinctValues, ", ")
			if len(values) > 45 {
				values = values[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  values: %s\n", values))
			shown++
		}
	}
	if shown == 0 {
		sb.WriteString("No field conflicts found\n")
	}

	p.printBox("RULES ENGINE FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPolicyResults outputs the leave policy compliance outcome.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPolicyResults(results *types.PolicyResults) {
	if results == nil {
		return
	}

	if len(results.LeavePolicyViolations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO POLICY VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Threshold:  %d consecutive days\n", results.Threshold))
	sb.WriteString(fmt.Sprintf("Compliant:  %d\n", results.CompliantCount))
	sb.WriteString(fmt.Sprintf("Violations: %d\n\n", len(results.LeavePolicyViolations)))

	count := min(len(results.LeavePolicyViolations), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := results.LeavePolicyViolations[i]
		sb.WriteString(fmt.Sprintf("⚠ %s - %s: %d days\n", v.EmpID, v.EmpName, v.LeaveDaysMaxStreak))
	}
	if len(results.LeavePolicyViolations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(results.LeavePolicyViolations)-maxItemsToShow))
	}

	p.printBox("LEAVE POLICY VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the final summary artifact.
func (p *Printer) PrintSummary(summary *types.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Duplicates:        %d\n", summary.Findings.Duplicates))
	sb.WriteString(fmt.Sprintf("Policy violations: %d\n", summary.Findings.PolicyViolations))
	sb.WriteString(fmt.Sprintf("Clean records:     %d\n", summary.Charts.RowsAfterDedup))

	if len(summary.Findings.MismatchCounts) > 0 {
		sb.WriteString("\nMismatches by field:\n")
		fields := make([]string, 0, len(summary.Findings.MismatchCounts))
		for field := range summary.Findings.MismatchCounts {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			sb.WriteString(fmt.Sprintf("  • %-10s %d\n", field, summary.Findings.MismatchCounts[field]))
		}
	}

	if len(summary.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		count := min(len(summary.Recommendations), 3)
		for i := 0; i < count; i++ {
			rec := summary.Recommendations[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
		if len(summary.Recommendations) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.Recommendations)-3))
		}
	}

	p.printBox("AUDIT SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
