package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemStore is an in-memory Store used in tests and one-shot CLI runs.
type MemStore struct {
	mu        sync.Mutex
	artifacts map[string]json.RawMessage
	pads      map[string][]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		artifacts: make(map[string]json.RawMessage),
		pads:      make(map[string][]string),
	}
}

func key(runID, name string) string {
	return runID + "/" + name
}

// PutArtifact stores the JSON encoding of value.
func (m *MemStore) PutArtifact(runID, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact %s: %w", name, err)
	}

	m.mu.Lock()
	m.artifacts[key(runID, name)] = data
	m.mu.Unlock()
	return nil
}

// GetArtifact returns the stored JSON value, or ErrNotFound.
func (m *MemStore) GetArtifact(runID, name string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.artifacts[key(runID, name)]
	if !ok {
		return nil, fmt.Errorf("artifact %s/%s: %w", runID, name, ErrNotFound)
	}
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out, nil
}

// WriteScratchpad appends (or rewrites) the stage's log lines.
func (m *MemStore) WriteScratchpad(runID, stageID string, lines []string, appendLines bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(runID, stageID)
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, "\n")
	}
	if appendLines {
		m.pads[k] = append(m.pads[k], trimmed...)
	} else {
		m.pads[k] = trimmed
	}
	return nil
}

// ReadScratchpad returns the full scratchpad text, or ErrNotFound.
func (m *MemStore) ReadScratchpad(runID, stageID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines, ok := m.pads[key(runID, stageID)]
	if !ok {
		return "", fmt.Errorf("scratchpad %s/%s: %w", runID, stageID, ErrNotFound)
	}
	return strings.Join(lines, "\n") + "\n", nil
}
