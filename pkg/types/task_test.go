package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTask() *Task {
	return &Task{
		Meta:     NewMeta(1, time.Now().Add(-time.Hour)),
		Title:    "Write report",
		Status:   TaskStatusTodo,
		Priority: TaskPriorityMedium,
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Task)
		wantOK     bool
		wantReason string
	}{
		{
			name:   "valid task",
			mutate: func(*Task) {},
			wantOK: true,
		},
		{
			name:       "empty title",
			mutate:     func(tk *Task) { tk.Title = "" },
			wantReason: "Title is required",
		},
		{
			name:       "whitespace title",
			mutate:     func(tk *Task) { tk.Title = "   " },
			wantReason: "Title is required",
		},
		{
			name:   "title at 255",
			mutate: func(tk *Task) { tk.Title = strings.Repeat("a", 255) },
			wantOK: true,
		},
		{
			name:       "title at 256",
			mutate:     func(tk *Task) { tk.Title = strings.Repeat("a", 256) },
			wantReason: "Title cannot exceed 255 characters",
		},
		{
			// 255 characters but 510 bytes; bounds count characters.
			name:   "multibyte title at 255",
			mutate: func(tk *Task) { tk.Title = strings.Repeat("é", 255) },
			wantOK: true,
		},
		{
			name:       "multibyte title at 256",
			mutate:     func(tk *Task) { tk.Title = strings.Repeat("é", 256) },
			wantReason: "Title cannot exceed 255 characters",
		},
		{
			name:       "description too long",
			mutate:     func(tk *Task) { tk.Description = strings.Repeat("d", 2001) },
			wantReason: "Description cannot exceed 2000 characters",
		},
		{
			name:       "unknown status",
			mutate:     func(tk *Task) { tk.Status = "cancelled" },
			wantReason: "Status must be one of: todo, in_progress, done, blocked",
		},
		{
			name:       "unknown priority",
			mutate:     func(tk *Task) { tk.Priority = "urgent" },
			wantReason: "Priority must be one of: low, medium, high, critical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTask()
			tt.mutate(tk)

			ok, reason := tk.Validate()

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestTaskMarkDone(t *testing.T) {
	tk := newTestTask()
	before := tk.UpdatedAt

	tk.MarkDone()

	assert.Equal(t, TaskStatusDone, tk.Status)
	assert.NotNil(t, tk.CompletedAt)
	assert.True(t, tk.UpdatedAt.After(before), "UpdatedAt should advance")
}

func TestTaskMarkInProgress(t *testing.T) {
	tk := newTestTask()
	tk.MarkDone()

	// No strict state machine: done back to in_progress is allowed.
	tk.MarkInProgress()

	assert.Equal(t, TaskStatusInProgress, tk.Status)
	assert.NotNil(t, tk.CompletedAt, "MarkInProgress does not clear CompletedAt")
}

func TestTaskIsOverdue(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name   string
		due    *time.Time
		status string
		want   bool
	}{
		{name: "no due date", due: nil, status: TaskStatusTodo, want: false},
		{name: "past due, todo", due: &past, status: TaskStatusTodo, want: true},
		{name: "past due, blocked", due: &past, status: TaskStatusBlocked, want: true},
		{name: "past due, done", due: &past, status: TaskStatusDone, want: false},
		{name: "future due", due: &future, status: TaskStatusTodo, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTask()
			tk.DueDate = tt.due
			tk.Status = tt.status
			assert.Equal(t, tt.want, tk.IsOverdue())
		})
	}
}

func TestTaskMarkDoneClearsOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tk := newTestTask()
	tk.DueDate = &past
	assert.True(t, tk.IsOverdue())

	tk.MarkDone()
	assert.False(t, tk.IsOverdue(), "done tasks are never overdue")
}

func TestTaskAddTag(t *testing.T) {
	tk := newTestTask()

	assert.True(t, tk.AddTag("urgent"))
	assert.True(t, tk.AddTag("backend"))
	assert.False(t, tk.AddTag("urgent"), "duplicates are suppressed")
	assert.Equal(t, []string{"urgent", "backend"}, tk.Tags, "insertion order preserved")
}

func TestTaskSerialize(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tk := newTestTask()
	tk.Description = "quarterly summary"
	tk.ProjectID = 7
	tk.DueDate = &due
	tk.AddTag("report")

	m := tk.Serialize()

	assert.Equal(t, int64(1), m["id"])
	assert.Equal(t, "Write report", m["title"])
	assert.Equal(t, int64(7), m["project_id"])
	assert.Equal(t, "todo", m["status"])
	assert.Equal(t, "medium", m["priority"])
	assert.Equal(t, "2026-03-01T12:00:00Z", m["due_date"])
	assert.Nil(t, m["assignee_id"], "absent optionals serialize as explicit nil")
	assert.Nil(t, m["completed_at"])
	assert.Equal(t, []string{"report"}, m["tags"])
	assert.Contains(t, m, "is_overdue")
	assert.Contains(t, m, "created_at")
	assert.Contains(t, m, "updated_at")
}

func TestTaskSerializeCopiesTags(t *testing.T) {
	tk := newTestTask()
	tk.AddTag("one")

	m := tk.Serialize()
	tags := m["tags"].([]string)
	tags[0] = "mutated"

	assert.Equal(t, []string{"one"}, tk.Tags, "serialization must not alias internal state")
}
