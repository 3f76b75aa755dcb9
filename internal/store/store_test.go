package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return fs
}

func TestFileStore_ArtifactRoundTrip(t *testing.T) {
	fs := newFileStore(t)

	in := map[string]any{"rows": 3, "columns": []string{"emp_id", "emp_name"}}
	require.NoError(t, fs.PutArtifact("run1", "integration_output", in))

	raw, err := fs.GetArtifact("run1", "integration_output")
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, float64(3), out["rows"])
}

func TestFileStore_ArtifactNotFound(t *testing.T) {
	fs := newFileStore(t)

	_, err := fs.GetArtifact("run1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_OverwriteAllowed(t *testing.T) {
	fs := newFileStore(t)

	require.NoError(t, fs.PutArtifact("run1", "summary", map[string]int{"v": 1}))
	require.NoError(t, fs.PutArtifact("run1", "summary", map[string]int{"v": 2}))

	var out map[string]int
	require.NoError(t, GetArtifactAs(fs, "run1", "summary", &out))
	assert.Equal(t, 2, out["v"])
}

func TestFileStore_ScratchpadAppendAndOverwrite(t *testing.T) {
	fs := newFileStore(t)

	require.NoError(t, fs.WriteScratchpad("run1", "integrate", []string{"first"}, false))
	require.NoError(t, fs.WriteScratchpad("run1", "integrate", []string{"second\n"}, true))

	text, err := fs.ReadScratchpad("run1", "integrate")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", text)

	// append=false starts the pad over
	require.NoError(t, fs.WriteScratchpad("run1", "integrate", []string{"fresh"}, false))
	text, err = fs.ReadScratchpad("run1", "integrate")
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", text)
}

func TestFileStore_ScratchpadNotFound(t *testing.T) {
	fs := newFileStore(t)

	_, err := fs.ReadScratchpad("run1", "normalize")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_RunsDoNotCollide(t *testing.T) {
	fs := newFileStore(t)

	require.NoError(t, fs.PutArtifact("runA", "summary", map[string]int{"v": 1}))
	require.NoError(t, fs.PutArtifact("runB", "summary", map[string]int{"v": 2}))

	var a, b map[string]int
	require.NoError(t, GetArtifactAs(fs, "runA", "summary", &a))
	require.NoError(t, GetArtifactAs(fs, "runB", "summary", &b))
	assert.Equal(t, 1, a["v"])
	assert.Equal(t, 2, b["v"])
}

func TestMemStore_SameContract(t *testing.T) {
	m := NewMemStore()

	_, err := m.GetArtifact("run1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.PutArtifact("run1", "summary", map[string]int{"v": 7}))
	var out map[string]int
	require.NoError(t, GetArtifactAs(m, "run1", "summary", &out))
	assert.Equal(t, 7, out["v"])

	require.NoError(t, m.WriteScratchpad("run1", "integrate", []string{"a"}, false))
	require.NoError(t, m.WriteScratchpad("run1", "integrate", []string{"b"}, true))
	text, err := m.ReadScratchpad("run1", "integrate")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", text)
}
