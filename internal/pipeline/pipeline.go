// Package pipeline provides the fixed five-stage audit pipeline and the
// shared run context its stages execute against.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/hr-audit/internal/config"
	"github.com/jonathan/hr-audit/internal/notify"
	"github.com/jonathan/hr-audit/internal/records"
	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/store"
	"github.com/jonathan/hr-audit/internal/types"
)

// State is the working batch handed from stage to stage. Stages communicate
// through State and the artifact store only; they never reach back into an
// earlier stage.
type State struct {
	Raw            []records.RawRecord
	Records        []types.Record
	Final          []types.Record
	NormalizeStats records.NormalizeStats
	SchemaErrors   int
}

// RunContext carries the per-run collaborators every stage needs: the
// registry for progress, the store for artifacts and scratchpads, the
// notifier for manager alerts, and the source of raw records.
type RunContext struct {
	RunID     string
	AuditID   string
	AuditName string
	Registry  *registry.Registry
	Store     store.Store
	Notifier  notify.Notifier
	Source    records.Source
	Policy    *config.PolicyConfig
	Logger    *zap.Logger
}

// Progress records a running checkpoint for one stage. Progress within a
// stage never decreases; the registry clamps regressions.
func (rc *RunContext) Progress(stageID string, pct int) {
	_ = rc.Registry.UpdateStage(rc.RunID, stageID, types.StageState{
		Progress: pct,
		Status:   types.StageStatusRunning,
	})
}

// CompleteStage marks a stage finished at 100%.
func (rc *RunContext) CompleteStage(stageID string) {
	_ = rc.Registry.UpdateStage(rc.RunID, stageID, types.StageState{
		Progress: 100,
		Status:   types.StageStatusCompleted,
	})
}

// FailStage marks a stage errored. Progress stays frozen at the last
// recorded checkpoint.
func (rc *RunContext) FailStage(stageID string) {
	_ = rc.Registry.UpdateStage(rc.RunID, stageID, types.StageState{
		Status: types.StageStatusError,
	})
}

// StartPad begins a fresh scratchpad for the stage with a start marker.
func (rc *RunContext) StartPad(stageID string, lines ...string) error {
	header := append([]string{fmt.Sprintf("[START] %s", time.Now().UTC().Format(time.RFC3339))}, lines...)
	return rc.Store.WriteScratchpad(rc.RunID, stageID, header, false)
}

// Pad appends lines to the stage scratchpad.
func (rc *RunContext) Pad(stageID string, lines ...string) error {
	return rc.Store.WriteScratchpad(rc.RunID, stageID, lines, true)
}

// Stage is one ordered step of the pipeline. Run receives the state produced
// by the previous stage and returns the state for the next one. A non-nil
// error halts the run.
type Stage interface {
	ID() string
	Name() string
	Description() string
	Run(ctx context.Context, rc *RunContext, st *State) (*State, error)
}

// Pipeline executes the fixed stage sequence for one run.
type Pipeline struct {
	stages []Stage
}

// New builds the pipeline in its fixed, non-configurable order.
func New() *Pipeline {
	return &Pipeline{stages: []Stage{
		integrateStage{},
		normalizeStage{},
		rulesStage{},
		policyStage{},
		summarizeStage{},
	}}
}

// Stages returns the ordered stage list.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// StageIDs returns the stage ids in execution order.
func (p *Pipeline) StageIDs() []string {
	ids := make([]string, len(p.stages))
	for i, s := range p.stages {
		ids[i] = s.ID()
	}
	return ids
}

// Execute runs every stage in order, halting at the first error. Each
// stage's artifact is durable before the next stage starts: the stage writes
// it inside Run, and completion is only recorded after Run returns.
func (p *Pipeline) Execute(ctx context.Context, rc *RunContext) error {
	st := &State{}
	for _, stage := range p.stages {
		rc.Logger.Info("stage started",
			zap.String("run_id", rc.RunID),
			zap.String("stage", stage.ID()))

		next, err := stage.Run(ctx, rc, st)
		if err != nil {
			rc.FailStage(stage.ID())
			rc.Logger.Error("stage failed",
				zap.String("run_id", rc.RunID),
				zap.String("stage", stage.ID()),
				zap.Error(err))
			return fmt.Errorf("stage %s: %w", stage.ID(), err)
		}

		rc.CompleteStage(stage.ID())
		rc.Logger.Info("stage completed",
			zap.String("run_id", rc.RunID),
			zap.String("stage", stage.ID()))
		st = next
	}
	return nil
}
