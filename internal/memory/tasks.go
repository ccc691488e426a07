package memory

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// taskResource is the NOT_FOUND resource label for tasks.
const taskResource = "Task"

// TaskRepository manages tasks.
type TaskRepository struct {
	store *store[*types.Task]
	log   *slog.Logger
}

// TaskParams carries caller-supplied fields for task creation. Zero-value
// Status and Priority default to todo and medium.
type TaskParams struct {
	Title       string
	Description string
	ProjectID   int64
	Status      string
	Priority    string
	DueDate     *time.Time
	AssigneeID  *int64
	Tags        []string
}

// Create allocates an id, constructs the task, validates it, and stores it.
// On validation failure nothing is stored and the allocated id is consumed.
func (r *TaskRepository) Create(p TaskParams) (*types.Task, error) {
	if p.Status == "" {
		p.Status = types.TaskStatusTodo
	}
	if p.Priority == "" {
		p.Priority = types.TaskPriorityMedium
	}

	task := &types.Task{
		Meta:        types.NewMeta(r.store.allocateID(), time.Now()),
		Title:       p.Title,
		Description: p.Description,
		ProjectID:   p.ProjectID,
		Status:      p.Status,
		Priority:    p.Priority,
		DueDate:     p.DueDate,
		AssigneeID:  p.AssigneeID,
		Tags:        dedupeTags(p.Tags),
	}

	if ok, reason := task.Validate(); !ok {
		return nil, apperr.NewValidation(reason)
	}

	r.store.insert(task)
	r.log.Info("task created", "id", task.ID, "title", task.Title, "status", task.Status)
	return task, nil
}

// dedupeTags suppresses duplicates while preserving first-seen order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

// Get returns the task with the given id, if present.
func (r *TaskRepository) Get(id int64) (*types.Task, bool) { return r.store.get(id) }

// GetOrErr returns the task or a NOT_FOUND error.
func (r *TaskRepository) GetOrErr(id int64) (*types.Task, error) {
	return r.store.getOrErr(id, taskResource)
}

// GetAll returns all tasks in insertion order.
func (r *TaskRepository) GetAll() []*types.Task { return r.store.getAll() }

// Update replaces the stored task only if id exists. It does not re-validate.
func (r *TaskRepository) Update(id int64, task *types.Task) bool { return r.store.update(id, task) }

// Delete permanently removes the task; its id is never reissued.
func (r *TaskRepository) Delete(id int64) bool { return r.store.delete(id) }

// Count returns the number of stored tasks.
func (r *TaskRepository) Count() int { return r.store.count() }

// Exists reports whether a task with the given id is stored.
func (r *TaskRepository) Exists(id int64) bool { return r.store.exists(id) }

// FindByProject returns tasks belonging to the given project.
func (r *TaskRepository) FindByProject(projectID int64) []*types.Task {
	return r.filter(func(t *types.Task) bool { return t.ProjectID == projectID })
}

// FindByStatus returns tasks with the given status.
func (r *TaskRepository) FindByStatus(status string) []*types.Task {
	return r.filter(func(t *types.Task) bool { return t.Status == status })
}

// FindByPriority returns tasks with the given priority.
func (r *TaskRepository) FindByPriority(priority string) []*types.Task {
	return r.filter(func(t *types.Task) bool { return t.Priority == priority })
}

// FindOverdue returns tasks whose due date has passed and that are not done.
func (r *TaskRepository) FindOverdue() []*types.Task {
	return r.filter(func(t *types.Task) bool { return t.IsOverdue() })
}

// FindByAssignee returns tasks assigned to the given user.
func (r *TaskRepository) FindByAssignee(assigneeID int64) []*types.Task {
	return r.filter(func(t *types.Task) bool {
		return t.AssigneeID != nil && *t.AssigneeID == assigneeID
	})
}

// FindByTag returns tasks carrying the given tag.
func (r *TaskRepository) FindByTag(tag string) []*types.Task {
	return r.filter(func(t *types.Task) bool {
		for _, tg := range t.Tags {
			if tg == tag {
				return true
			}
		}
		return false
	})
}

func (r *TaskRepository) filter(keep func(*types.Task) bool) []*types.Task {
	out := []*types.Task{}
	for _, t := range r.store.getAll() {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Restore replaces the repository contents from a snapshot.
func (r *TaskRepository) Restore(tasks []*types.Task, nextID int64) error {
	return r.store.restore(tasks, nextID)
}

// NextID exposes the counter value for snapshotting. It does not advance
// the counter.
func (r *TaskRepository) NextID() int64 { return r.store.nextID }
