package types

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task statuses. Transitions are not restricted by the current status;
// a done task can be moved back to in_progress.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusBlocked    = "blocked"
)

// TaskStatuses lists all task statuses for enumeration.
var TaskStatuses = []string{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusDone,
	TaskStatusBlocked,
}

// Task priorities.
const (
	TaskPriorityLow      = "low"
	TaskPriorityMedium   = "medium"
	TaskPriorityHigh     = "high"
	TaskPriorityCritical = "critical"
)

// TaskPriorities lists all task priorities for enumeration.
var TaskPriorities = []string{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityCritical,
}

// validTaskStatuses is the set of recognized task status values.
var validTaskStatuses = map[string]bool{
	TaskStatusTodo:       true,
	TaskStatusInProgress: true,
	TaskStatusDone:       true,
	TaskStatusBlocked:    true,
}

// validTaskPriorities is the set of recognized task priority values.
var validTaskPriorities = map[string]bool{
	TaskPriorityLow:      true,
	TaskPriorityMedium:   true,
	TaskPriorityHigh:     true,
	TaskPriorityCritical: true,
}

// Task is a unit of work, optionally attached to a project and an assignee.
type Task struct {
	Meta
	Title       string     // Required, 1-255 characters.
	Description string     // Optional, up to 2000 characters.
	ProjectID   int64      // Owning project id; 0 when unattached.
	Status      string     // One of the TaskStatus constants.
	Priority    string     // One of the TaskPriority constants.
	DueDate     *time.Time // Optional deadline.
	AssigneeID  *int64     // Optional assignee.
	Tags        []string   // Duplicates suppressed on AddTag, order preserved.
	CompletedAt *time.Time // Set only by MarkDone.
}

// Validate implements Entity.
func (t *Task) Validate() (bool, string) {
	if strings.TrimSpace(t.Title) == "" {
		return false, "Title is required"
	}
	if utf8.RuneCountInString(t.Title) > 255 {
		return false, "Title cannot exceed 255 characters"
	}
	if utf8.RuneCountInString(t.Description) > 2000 {
		return false, "Description cannot exceed 2000 characters"
	}
	if !validTaskStatuses[t.Status] {
		return false, "Status must be one of: " + strings.Join(TaskStatuses, ", ")
	}
	if !validTaskPriorities[t.Priority] {
		return false, "Priority must be one of: " + strings.Join(TaskPriorities, ", ")
	}
	return true, ""
}

// MarkDone sets the status to done and records the completion time.
func (t *Task) MarkDone() {
	t.Status = TaskStatusDone
	now := time.Now()
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// MarkInProgress sets the status to in_progress.
func (t *Task) MarkInProgress() {
	t.Status = TaskStatusInProgress
	t.UpdatedAt = time.Now()
}

// IsOverdue reports whether the task has a due date strictly in the past
// and is not done.
func (t *Task) IsOverdue() bool {
	if t.DueDate != nil && t.Status != TaskStatusDone {
		return time.Now().After(*t.DueDate)
	}
	return false
}

// AddTag appends a tag if not already present, preserving insertion order.
// Returns whether the tag was added.
func (t *Task) AddTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return false
		}
	}
	t.Tags = append(t.Tags, tag)
	t.UpdatedAt = time.Now()
	return true
}

// Serialize implements Entity.
func (t *Task) Serialize() map[string]any {
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	return map[string]any{
		"id":           t.ID,
		"title":        t.Title,
		"description":  t.Description,
		"project_id":   t.ProjectID,
		"status":       t.Status,
		"priority":     t.Priority,
		"due_date":     isoTimePtr(t.DueDate),
		"assignee_id":  int64Ptr(t.AssigneeID),
		"tags":         tags,
		"completed_at": isoTimePtr(t.CompletedAt),
		"created_at":   isoTime(t.CreatedAt),
		"updated_at":   isoTime(t.UpdatedAt),
		"is_overdue":   t.IsOverdue(),
	}
}
