package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/jonathan/hr-audit/internal/registry"
	"github.com/jonathan/hr-audit/internal/types"
)

// eventPollInterval is how often the SSE stream samples the registry.
const eventPollInterval = 250 * time.Millisecond

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(runID, status string) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"run_id": runID,
		"status": status,
	})
}

// ProgressEvent is one SSE progress frame: the run status plus the stage
// states as of the sample.
type ProgressEvent struct {
	RunID  string                      `json:"run_id"`
	Status string                      `json:"status"`
	Stages map[string]types.StageState `json:"stages"`
}

// handleRunEvents streams run progress as SSE until the run reaches a
// terminal status or the client disconnects. Frames are emitted only when
// the observed state changes.
func (s *Server) handleRunEvents(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	if _, err := s.registry.Get(runID); err != nil {
		if errors.Is(err, registry.ErrRunNotFound) {
			s.errorResponse(w, &ErrRunNotFound{RunID: runID})
			return
		}
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	ticker := time.NewTicker(eventPollInterval)
	defer ticker.Stop()

	var last ProgressEvent
	for {
		run, err := s.registry.Get(runID)
		if err != nil {
			sse.WriteError(err.Error())
			return
		}

		event := ProgressEvent{RunID: run.RunID, Status: run.Status, Stages: run.Stages}
		if !reflect.DeepEqual(event, last) {
			if err := sse.WriteEvent("progress", event); err != nil {
				return
			}
			last = event
		}

		if run.Status == types.RunStatusCompleted || run.Status == types.RunStatusError {
			sse.WriteComplete(run.RunID, run.Status)
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
