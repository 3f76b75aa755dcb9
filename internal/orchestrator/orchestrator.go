// Package orchestrator launches audit runs: it allocates run ids, registers
// runs, and executes the pipeline on one worker goroutine per run.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/hr-audit/internal/config"
	"github.com/jonathan/hr-audit/internal/notify"
	"github.com/jonathan/hr-audit/internal/pipeline"
	"github.com/jonathan/hr-audit/internal/records"
	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/store"
	"github.com/jonathan/hr-audit/internal/types"
)

// Options configures an Orchestrator. Registry, Store, Notifier, and Source
// are required; Policy and Logger fall back to defaults.
type Options struct {
	Registry *registry.Registry
	Store    store.Store
	Notifier notify.Notifier
	Source   records.Source
	Policy   *config.PolicyConfig
	Logger   *zap.Logger

	// MaxConcurrentRuns caps how many runs execute at once. Zero means
	// unlimited. Runs over the cap wait in status queued.
	MaxConcurrentRuns int
}

// Orchestrator starts runs and tracks their worker goroutines. Workers
// communicate only through the registry and the store, so concurrent runs
// never share mutable state.
type Orchestrator struct {
	registry *registry.Registry
	store    store.Store
	notifier notify.Notifier
	source   records.Source
	policy   *config.PolicyConfig
	logger   *zap.Logger
	pipeline *pipeline.Pipeline

	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// New creates an Orchestrator from the given options.
func New(opts Options) *Orchestrator {
	policy := opts.Policy
	if policy == nil {
		policy = config.DefaultPolicy()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var sem *semaphore.Weighted
	if opts.MaxConcurrentRuns > 0 {
		sem = semaphore.NewWeighted(int64(opts.MaxConcurrentRuns))
	}

	return &Orchestrator{
		registry: opts.Registry,
		store:    opts.Store,
		notifier: opts.Notifier,
		source:   opts.Source,
		policy:   policy,
		logger:   logger,
		pipeline: pipeline.New(),
		sem:      sem,
	}
}

// StartRun registers a new run and launches its worker. It returns
// immediately with the queued run snapshot; progress is observed through the
// registry.
func (o *Orchestrator) StartRun(auditID, auditName string) types.Run {
	runID := newRunID()
	run := o.registry.Create(runID, auditID, auditName, o.pipeline.StageIDs())

	o.logger.Info("run queued",
		zap.String("run_id", runID),
		zap.String("audit_id", auditID),
		zap.String("audit_name", auditName))

	o.wg.Add(1)
	go o.execute(runID, auditID, auditName)

	return run
}

// Wait blocks until every started run has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) execute(runID, auditID, auditName string) {
	defer o.wg.Done()

	if o.sem != nil {
		if err := o.sem.Acquire(context.Background(), 1); err != nil {
			o.fail(runID, fmt.Errorf("acquire run slot: %w", err))
			return
		}
		defer o.sem.Release(1)
	}

	if err := o.registry.SetStatus(runID, types.RunStatusRunning); err != nil {
		o.logger.Error("run vanished from registry", zap.String("run_id", runID), zap.Error(err))
		return
	}

	rc := &pipeline.RunContext{
		RunID:     runID,
		AuditID:   auditID,
		AuditName: auditName,
		Registry:  o.registry,
		Store:     o.store,
		Notifier:  o.notifier,
		Source:    o.source,
		Policy:    o.policy,
		Logger:    o.logger,
	}

	if err := o.pipeline.Execute(context.Background(), rc); err != nil {
		o.fail(runID, err)
		return
	}

	if err := o.registry.Complete(runID); err != nil {
		o.logger.Error("failed to mark run complete", zap.String("run_id", runID), zap.Error(err))
		return
	}
	o.logger.Info("run completed", zap.String("run_id", runID))
}

// fail records the aborting error verbatim; the run stays queryable with
// whatever artifacts earlier stages persisted.
func (o *Orchestrator) fail(runID string, err error) {
	if regErr := o.registry.SetError(runID, err.Error()); regErr != nil {
		o.logger.Error("failed to mark run errored", zap.String("run_id", runID), zap.Error(regErr))
		return
	}
	o.logger.Error("run failed", zap.String("run_id", runID), zap.Error(err))
}

// newRunID returns the 8-hex-char short form of a fresh UUID.
func newRunID() string {
	u := uuid.New()
	return fmt.Sprintf("%x", u[:4])
}
