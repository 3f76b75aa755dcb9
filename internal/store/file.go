package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists artifacts and scratchpads under a root directory:
//
//	<root>/<run_id>/artifacts/<name>.json
//	<root>/<run_id>/scratchpads/<stage_id>.txt
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create outputs dir: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// PutArtifact writes the artifact as indented JSON, overwriting any previous
// value for the same (run, name).
func (fs *FileStore) PutArtifact(runID, name string, value any) error {
	dir := filepath.Join(fs.root, runID, "artifacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifacts dir: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact %s: %w", name, err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}

// GetArtifact returns the stored JSON value, or ErrNotFound.
func (fs *FileStore) GetArtifact(runID, name string) (json.RawMessage, error) {
	path := filepath.Join(fs.root, runID, "artifacts", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact %s/%s: %w", runID, name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return json.RawMessage(data), nil
}

// WriteScratchpad appends (or rewrites) the stage's operator log. Each line
// is terminated with a newline; trailing newlines in input lines are trimmed.
func (fs *FileStore) WriteScratchpad(runID, stageID string, lines []string, appendLines bool) error {
	dir := filepath.Join(fs.root, runID, "scratchpads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scratchpads dir: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendLines {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	path := filepath.Join(dir, stageID+".txt")
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open scratchpad %s: %w", stageID, err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(strings.TrimRight(line, "\n"))
		sb.WriteByte('\n')
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write scratchpad %s: %w", stageID, err)
	}
	return nil
}

// ReadScratchpad returns the full scratchpad text, or ErrNotFound.
func (fs *FileStore) ReadScratchpad(runID, stageID string) (string, error) {
	path := filepath.Join(fs.root, runID, "scratchpads", stageID+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("scratchpad %s/%s: %w", runID, stageID, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read scratchpad %s: %w", stageID, err)
	}
	return string(data), nil
}
