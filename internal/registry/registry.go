// Package registry provides the concurrency-safe run registry, the single
// source of truth for run status and per-stage progress.
package registry

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/hr-audit/internal/types"
)

// ErrRunNotFound indicates a query for a run id that was never created.
var ErrRunNotFound = errors.New("run not found")

// Registry is a mutex-guarded map of run id to run state. Mutations and
// snapshot reads hold the lock for O(1) work only; reads copy the run out
// before returning so callers never observe live internal references.
type Registry struct {
	mu   sync.Mutex
	runs map[string]*types.Run
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{runs: make(map[string]*types.Run)}
}

// Create registers a new run in status queued with every stage pending.
// Returns a snapshot of the created run.
func (r *Registry) Create(runID, auditID, auditName string, stageIDs []string) types.Run {
	now := time.Now().UTC()
	stages := make(map[string]types.StageState, len(stageIDs))
	for _, id := range stageIDs {
		stages[id] = types.StageState{Progress: 0, Status: types.StageStatusPending, Timestamp: now}
	}

	run := &types.Run{
		RunID:     runID,
		AuditID:   auditID,
		AuditName: auditName,
		Status:    types.RunStatusQueued,
		CreatedAt: now,
		Stages:    stages,
	}

	r.mu.Lock()
	r.runs[runID] = run
	r.mu.Unlock()

	return snapshot(run)
}

// Get returns a snapshot of the run, or ErrRunNotFound.
func (r *Registry) Get(runID string) (types.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return types.Run{}, ErrRunNotFound
	}
	return snapshot(run), nil
}

// List returns snapshots of all runs ordered by creation time descending.
func (r *Registry) List() []types.Run {
	r.mu.Lock()
	result := make([]types.Run, 0, len(r.runs))
	for _, run := range r.runs {
		result = append(result, snapshot(run))
	}
	r.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// UpdateStage applies an atomic read-modify-write to one stage's state.
// Progress is clamped to be non-decreasing within a stage, so a status change
// with a lower progress value freezes progress rather than rewinding it.
func (r *Registry) UpdateStage(runID, stageID string, state types.StageState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return ErrRunNotFound
	}

	prev := run.Stages[stageID]
	if state.Progress < prev.Progress {
		state.Progress = prev.Progress
	}
	if state.Timestamp.IsZero() {
		state.Timestamp = time.Now().UTC()
	}
	run.Stages[stageID] = state
	return nil
}

// SetStatus transitions the run to the given status.
func (r *Registry) SetStatus(runID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	run.Status = status
	return nil
}

// Complete marks the run completed and stamps its completion time.
func (r *Registry) Complete(runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	now := time.Now().UTC()
	run.Status = types.RunStatusCompleted
	run.CompletedAt = &now
	return nil
}

// SetError marks the run errored, recording the aborting error message
// verbatim. The run stays queryable with partial artifacts intact.
func (r *Registry) SetError(runID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	run.Status = types.RunStatusError
	run.Error = message
	return nil
}

// snapshot deep-copies a run so callers cannot mutate registry state.
// Callers must hold r.mu.
func snapshot(run *types.Run) types.Run {
	out := *run
	out.Stages = make(map[string]types.StageState, len(run.Stages))
	for id, st := range run.Stages {
		out.Stages[id] = st
	}
	if run.CompletedAt != nil {
		t := *run.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
