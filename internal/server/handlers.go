package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/hr-audit/internal/pipeline"
	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/store"
	"github.com/jonathan/hr-audit/internal/types"
)

// CreateRunResponse represents the response for POST /runs
type CreateRunResponse struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusResponse represents the response for /runs/{run_id}/status
type StatusResponse struct {
	RunID       string                      `json:"run_id"`
	AuditID     string                      `json:"audit_id"`
	AuditName   string                      `json:"audit_name"`
	Status      string                      `json:"status"`
	CreatedAt   time.Time                   `json:"created_at"`
	CompletedAt *time.Time                  `json:"completed_at,omitempty"`
	Stages      map[string]types.StageState `json:"stages"`
	Error       string                      `json:"error,omitempty"`
}

// StageResponse pairs static stage metadata with its live state for one run.
type StageResponse struct {
	pipeline.StageDefinition
	State types.StageState `json:"state"`
}

// handleCreateRun starts a new audit run
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req types.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Message: "invalid request body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Message: err.Error()})
		return
	}

	run := s.orchestrator.StartRun(req.AuditID, req.AuditName)
	s.logger.Info("run created",
		zap.String("run_id", run.RunID),
		zap.String("audit_id", req.AuditID))

	s.jsonResponse(w, http.StatusAccepted, CreateRunResponse{
		RunID:     run.RunID,
		Status:    run.Status,
		CreatedAt: run.CreatedAt,
	})
}

// handleListRuns returns all runs, newest first
func (s *Server) handleListRuns(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": s.registry.List()})
}

// handleRunStatus returns run status with per-stage progress
func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	run, err := s.registry.Get(runID)
	if err != nil {
		if errors.Is(err, registry.ErrRunNotFound) {
			s.errorResponse(w, &ErrRunNotFound{RunID: runID})
			return
		}
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, StatusResponse{
		RunID:       run.RunID,
		AuditID:     run.AuditID,
		AuditName:   run.AuditName,
		Status:      run.Status,
		CreatedAt:   run.CreatedAt,
		CompletedAt: run.CompletedAt,
		Stages:      run.Stages,
		Error:       run.Error,
	})
}

// handleRunStages returns stage definitions joined with live state
func (s *Server) handleRunStages(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	run, err := s.registry.Get(runID)
	if err != nil {
		if errors.Is(err, registry.ErrRunNotFound) {
			s.errorResponse(w, &ErrRunNotFound{RunID: runID})
			return
		}
		s.errorResponse(w, err)
		return
	}

	defs := pipeline.Definitions()
	stages := make([]StageResponse, 0, len(defs))
	for _, def := range defs {
		stages = append(stages, StageResponse{
			StageDefinition: def,
			State:           run.Stages[def.ID],
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"run_id": runID,
		"stages": stages,
	})
}

// handleScratchpad returns the plain-text scratchpad of one stage
func (s *Server) handleScratchpad(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	stageID := r.PathValue("stage_id")

	if _, err := s.registry.Get(runID); err != nil {
		s.errorResponse(w, &ErrRunNotFound{RunID: runID})
		return
	}
	if !validStageID(stageID) {
		s.errorResponse(w, &ErrStageNotFound{StageID: stageID})
		return
	}

	content, err := s.store.ReadScratchpad(runID, stageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Stage exists but has not written yet: empty pad, not an error.
			content = ""
		} else {
			s.errorResponse(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		s.logger.Error("writing scratchpad response", zap.Error(err))
	}
}

// handleArtifact returns a named artifact as raw JSON
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	name := r.PathValue("name")

	if _, err := s.registry.Get(runID); err != nil {
		s.errorResponse(w, &ErrRunNotFound{RunID: runID})
		return
	}

	raw, err := s.store.GetArtifact(runID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, &ErrArtifactNotFound{RunID: runID, Name: name})
			return
		}
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		s.logger.Error("writing artifact response", zap.Error(err))
	}
}

// validStageID reports whether the id names a pipeline stage.
func validStageID(stageID string) bool {
	for _, def := range pipeline.Definitions() {
		if def.ID == stageID {
			return true
		}
	}
	return false
}
