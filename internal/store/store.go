// Package store provides keyed persistence for stage artifacts and
// human-readable scratchpad logs, keyed by (run id, name).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound indicates a query for an artifact or scratchpad that was never
// written.
var ErrNotFound = errors.New("not found")

// ArtifactStore persists named JSON artifacts per run. Artifacts are written
// once per (run, name); overwrite-on-write is accepted behavior, not an error.
type ArtifactStore interface {
	PutArtifact(runID, name string, value any) error
	GetArtifact(runID, name string) (json.RawMessage, error)
}

// ScratchpadLog persists the per-stage operator log of a run. append=false
// starts the pad over; append=true adds lines to the existing pad.
type ScratchpadLog interface {
	WriteScratchpad(runID, stageID string, lines []string, append bool) error
	ReadScratchpad(runID, stageID string) (string, error)
}

// Store combines artifact and scratchpad persistence for one backend.
type Store interface {
	ArtifactStore
	ScratchpadLog
}

// GetArtifactAs fetches an artifact and decodes it into out.
func GetArtifactAs(s ArtifactStore, runID, name string, out any) error {
	raw, err := s.GetArtifact(runID, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode artifact %s: %w", name, err)
	}
	return nil
}
