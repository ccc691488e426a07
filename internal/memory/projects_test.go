package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestProjectCreateDefaults(t *testing.T) {
	core := New(nil)

	project, err := core.Projects.Create(ProjectParams{Name: "Apollo", OwnerID: 3})
	require.NoError(t, err)

	assert.Equal(t, types.ProjectStatusPlanning, project.Status)
	assert.Equal(t, []int64{3}, project.Members, "owner is the first member")
	assert.Zero(t, project.TaskCount)
	assert.Zero(t, project.CompletedTaskCount)
}

func TestProjectCreateValidation(t *testing.T) {
	core := New(nil)

	_, err := core.Projects.Create(ProjectParams{Name: "   ", OwnerID: 1})
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Project name is required")

	_, err = core.Projects.Create(ProjectParams{Name: "Apollo", OwnerID: 1, Status: "cancelled"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status must be one of:")
}

func TestProjectMembership(t *testing.T) {
	core := New(nil)

	project, err := core.Projects.Create(ProjectParams{Name: "Apollo", OwnerID: 3})
	require.NoError(t, err)

	assert.True(t, project.AddMember(9))
	assert.False(t, project.AddMember(9), "duplicate member is a no-op")
	assert.False(t, project.RemoveMember(3), "owner cannot be removed")
	assert.True(t, project.RemoveMember(9))

	assert.Len(t, core.Projects.UserProjects(3), 1)
	assert.Empty(t, core.Projects.UserProjects(9))
}

func TestProjectQueries(t *testing.T) {
	core := New(nil)

	_, err := core.Projects.Create(ProjectParams{Name: "One", OwnerID: 1})
	require.NoError(t, err)
	second, err := core.Projects.Create(ProjectParams{Name: "Two", OwnerID: 2})
	require.NoError(t, err)

	second.Activate()
	require.True(t, core.Projects.Update(second.ID, second))

	assert.Len(t, core.Projects.FindByOwner(1), 1)
	assert.Len(t, core.Projects.FindByStatus(types.ProjectStatusPlanning), 1)
	assert.Len(t, core.Projects.FindActive(), 1)
}

func TestProjectProgressCounters(t *testing.T) {
	core := New(nil)

	project, err := core.Projects.Create(ProjectParams{Name: "Counted", OwnerID: 1})
	require.NoError(t, err)
	assert.Zero(t, project.Progress())

	// Counters are caller-maintained; nothing updates them implicitly.
	project.TaskCount = 4
	project.CompletedTaskCount = 1
	assert.InDelta(t, 25.0, project.Progress(), 0.001)
}
