package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonathan/hr-audit/internal/notify"
	"github.com/jonathan/hr-audit/internal/records"
	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/store"
	"github.com/jonathan/hr-audit/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestOrchestrator(src records.Source, maxConcurrent int) (*Orchestrator, *registry.Registry, *store.MemStore) {
	reg := registry.New()
	st := store.NewMemStore()
	return New(Options{
		Registry:          reg,
		Store:             st,
		Notifier:          notify.NewEmailSimulator(),
		Source:            src,
		MaxConcurrentRuns: maxConcurrent,
	}), reg, st
}

func validRawRecords() []records.RawRecord {
	return []records.RawRecord{
		{
			"emp_id": "E1", "emp_name": "Bob", "position": "Analyst",
			"bonus": "1000", "paygrade": "P1", "manager_email": "mgr@corp.test",
			"job_allocation": "Sales", "investigation_status": "CLEAR",
			"leave_days_max_streak": "10",
		},
	}
}

// gatedSource blocks Fetch until released, holding the run inside the
// integrate stage.
type gatedSource struct {
	release chan struct{}
	records []records.RawRecord
}

func (s *gatedSource) Fetch(ctx context.Context) ([]records.RawRecord, error) {
	select {
	case <-s.release:
		return s.records, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestStartRun_MidExecutionStatus(t *testing.T) {
	src := &gatedSource{release: make(chan struct{}), records: validRawRecords()}
	o, reg, _ := newTestOrchestrator(src, 0)

	run := o.StartRun("audit1", "Quarterly Audit")

	// The worker is held inside integrate, after its first progress
	// checkpoint; an in-flight query must observe the live state.
	require.Eventually(t, func() bool {
		mid, err := reg.Get(run.RunID)
		if err != nil {
			return false
		}
		return mid.Status == types.RunStatusRunning && mid.Stages["integrate"].Progress > 0
	}, 2*time.Second, 5*time.Millisecond, "run never became observable as running")

	mid, err := reg.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, types.RunStatusRunning, mid.Status)
	assert.Equal(t, types.StageStatusRunning, mid.Stages["integrate"].Status)
	assert.Greater(t, mid.Stages["integrate"].Progress, 0)
	assert.Nil(t, mid.CompletedAt)

	close(src.release)
	o.Wait()

	final, err := reg.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, types.RunStatusCompleted, final.Status)
}

func TestStartRun_Completes(t *testing.T) {
	o, reg, st := newTestOrchestrator(&records.StaticSource{Records: validRawRecords()}, 0)

	run := o.StartRun("audit1", "Quarterly Audit")
	assert.Len(t, run.RunID, 8)
	assert.Equal(t, types.RunStatusQueued, run.Status)
	assert.Len(t, run.Stages, 5)

	o.Wait()

	final, err := reg.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, types.RunStatusCompleted, final.Status)
	require.NotNil(t, final.CompletedAt)
	for id, stage := range final.Stages {
		assert.Equal(t, types.StageStatusCompleted, stage.Status, id)
		assert.Equal(t, 100, stage.Progress, id)
	}

	_, err = st.GetArtifact(run.RunID, types.ArtifactSummary)
	assert.NoError(t, err)
}

func TestStartRun_SourceFailure(t *testing.T) {
	o, reg, _ := newTestOrchestrator(&records.StaticSource{Err: assert.AnError}, 0)

	run := o.StartRun("audit1", "Quarterly Audit")
	o.Wait()

	final, err := reg.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, types.RunStatusError, final.Status)
	assert.Contains(t, final.Error, "stage integrate")
	assert.Nil(t, final.CompletedAt)
}

func TestStartRun_ConcurrentRunsIsolated(t *testing.T) {
	o, reg, st := newTestOrchestrator(&records.StaticSource{Records: validRawRecords()}, 2)

	const n = 8
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		run := o.StartRun("audit1", "Quarterly Audit")
		ids = append(ids, run.RunID)
	}
	o.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		require.False(t, seen[id], "run ids must be unique")
		seen[id] = true

		run, err := reg.Get(id)
		require.NoError(t, err)
		assert.Equal(t, types.RunStatusCompleted, run.Status, id)

		var summary types.Summary
		require.NoError(t, store.GetArtifactAs(st, id, types.ArtifactSummary, &summary))
		assert.Equal(t, 1, summary.Charts.RowsAfterDedup, id)
	}

	assert.Len(t, reg.List(), n)
}

func TestStartRun_ListOrderedByCreation(t *testing.T) {
	o, reg, _ := newTestOrchestrator(&records.StaticSource{Records: validRawRecords()}, 0)

	first := o.StartRun("audit1", "First")
	time.Sleep(5 * time.Millisecond)
	second := o.StartRun("audit1", "Second")
	o.Wait()

	runs := reg.List()
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].RunID, "newest first")
	assert.Equal(t, first.RunID, runs[1].RunID)
}
