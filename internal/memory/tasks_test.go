package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestTaskCreateDefaults(t *testing.T) {
	core := New(nil)

	task, err := core.Tasks.Create(TaskParams{Title: "Write report", ProjectID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, types.TaskStatusTodo, task.Status)
	assert.Equal(t, types.TaskPriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestTaskCreateValidationFailureConsumesID(t *testing.T) {
	core := New(nil)

	_, err := core.Tasks.Create(TaskParams{Title: ""})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.EqualError(t, err, "VALIDATION_ERROR: Title is required")
	assert.Zero(t, core.Tasks.Count())

	task, err := core.Tasks.Create(TaskParams{Title: "Second attempt"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), task.ID, "failed create still consumes its id")
}

func TestTaskCreateRejectsLongTitle(t *testing.T) {
	core := New(nil)

	_, err := core.Tasks.Create(TaskParams{Title: strings.Repeat("x", 256)})
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Title cannot exceed 255 characters")
}

func TestTaskCreateDedupesTags(t *testing.T) {
	core := New(nil)

	task, err := core.Tasks.Create(TaskParams{
		Title: "Tagged",
		Tags:  []string{"urgent", "review", "urgent"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "review"}, task.Tags)
}

func TestTaskQueries(t *testing.T) {
	core := New(nil)

	past := time.Now().Add(-24 * time.Hour)
	assignee := int64(7)

	_, err := core.Tasks.Create(TaskParams{Title: "A", ProjectID: 1, Priority: types.TaskPriorityHigh})
	require.NoError(t, err)
	_, err = core.Tasks.Create(TaskParams{Title: "B", ProjectID: 1, DueDate: &past, AssigneeID: &assignee})
	require.NoError(t, err)
	_, err = core.Tasks.Create(TaskParams{Title: "C", ProjectID: 2, Tags: []string{"urgent"}})
	require.NoError(t, err)

	assert.Len(t, core.Tasks.FindByProject(1), 2)
	assert.Len(t, core.Tasks.FindByStatus(types.TaskStatusTodo), 3)
	assert.Len(t, core.Tasks.FindByPriority(types.TaskPriorityHigh), 1)
	assert.Len(t, core.Tasks.FindOverdue(), 1)
	assert.Len(t, core.Tasks.FindByAssignee(7), 1)
	assert.Len(t, core.Tasks.FindByTag("urgent"), 1)
	assert.Empty(t, core.Tasks.FindByTag("missing"))
}

func TestTaskMarkDoneLeavesOverdueSet(t *testing.T) {
	core := New(nil)

	past := time.Now().Add(-time.Hour)
	task, err := core.Tasks.Create(TaskParams{Title: "Late", DueDate: &past})
	require.NoError(t, err)
	require.Len(t, core.Tasks.FindOverdue(), 1)

	task.MarkDone()
	assert.Empty(t, core.Tasks.FindOverdue(), "done tasks are never overdue")
}

func TestTaskGetOrErr(t *testing.T) {
	core := New(nil)

	_, err := core.Tasks.GetOrErr(42)
	require.Error(t, err)
	assert.EqualError(t, err, "NOT_FOUND: Task not found")
}

func TestTaskDelete(t *testing.T) {
	core := New(nil)

	task, err := core.Tasks.Create(TaskParams{Title: "Ephemeral"})
	require.NoError(t, err)

	assert.True(t, core.Tasks.Delete(task.ID))
	assert.False(t, core.Tasks.Delete(task.ID))
	assert.False(t, core.Tasks.Exists(task.ID))
}
