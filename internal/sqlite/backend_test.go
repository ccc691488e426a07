package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
}

func TestAttachCreatesFiles(t *testing.T) {
	b := NewBackend()
	config := testConfig(t)

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	assert.FileExists(t, filepath.Join(config.DataDir, dbFileName))
	for _, table := range entityTables {
		assert.FileExists(t, jsonlPath(config.DataDir, table))
	}
	assert.FileExists(t, jsonlPath(config.DataDir, snapshotsTable))
}

func TestAttachTwiceFails(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	defer b.Detach()

	err := b.Attach(testConfig(t))
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestAttachRejectsBadConfig(t *testing.T) {
	b := NewBackend()

	err := b.Attach(types.Config{Backend: "", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	err = b.Attach(types.Config{Backend: "flatfile", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestDetachIdempotent(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))

	assert.NoError(t, b.Detach())
	assert.NoError(t, b.Detach())
}

func TestAttachPreservesExistingJSONL(t *testing.T) {
	b := NewBackend()
	config := testConfig(t)

	path := jsonlPath(config.DataDir, tagsTable)
	content := []byte(`{"id":1,"name":"kept","usage_count":0,"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}` + "\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got, "existing mirrors are never truncated on attach")
}
