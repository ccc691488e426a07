// Snapshot backend integration tests exercising the library API directly.
package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/internal/memory"
	"github.com/mesh-intelligence/taskboard/pkg/sqlite"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestSnapshotRoundTripAcrossAttachCycles(t *testing.T) {
	dataDir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	// First session: populate and save.
	backend := sqlite.NewBackend()
	require.NoError(t, backend.Attach(cfg))

	core := memory.New(nil)
	project, err := core.Projects.Create(memory.ProjectParams{Name: "Apollo", OwnerID: 3})
	require.NoError(t, err)

	due := time.Now().Add(72 * time.Hour)
	task, err := core.Tasks.Create(memory.TaskParams{
		Title:     "Integration checklist",
		ProjectID: project.ID,
		DueDate:   &due,
		Tags:      []string{"release"},
	})
	require.NoError(t, err)

	_, err = core.Tags.Create("release")
	require.NoError(t, err)

	require.NoError(t, backend.Save(core))
	require.NoError(t, backend.Detach())

	// Second session: fresh backend and core against the same directory.
	backend = sqlite.NewBackend()
	require.NoError(t, backend.Attach(cfg))
	defer backend.Detach()

	restored := memory.New(nil)
	require.NoError(t, backend.Load(restored))

	got, err := restored.Tasks.GetOrErr(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Integration checklist", got.Title)
	assert.Equal(t, project.ID, got.ProjectID)
	assert.Len(t, restored.Tasks.FindByTag("release"), 1)

	// Uniqueness and id allocation both survive the cycle.
	_, err = restored.Tags.Create("RELEASE")
	require.Error(t, err)

	next, err := restored.Tasks.Create(memory.TaskParams{Title: "Follow-up"})
	require.NoError(t, err)
	assert.Greater(t, next.ID, task.ID)
}
