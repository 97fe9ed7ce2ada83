package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, ok := m.Get("token")
	assert.False(t, ok)

	require.NoError(t, m.Set("token", "abc"))
	v, ok := m.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, m.Delete("token"))
	_, ok = m.Get("token")
	assert.False(t, ok)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	f, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Set("dark_mode", "true"))
	require.NoError(t, f.Set("github_username", "alice"))
	require.NoError(t, f.Delete("dark_mode"))

	// Reopen and confirm only the surviving key persisted.
	reopened, err := OpenFile(path)
	require.NoError(t, err)

	v, ok := reopened.Get("github_username")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	_, ok = reopened.Get("dark_mode")
	assert.False(t, ok)
}

func TestOpenFileMissingStartsEmpty(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	_, ok := f.Get("anything")
	assert.False(t, ok)
}

func TestOpenFileMalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile(path)
	assert.Error(t, err)
}
