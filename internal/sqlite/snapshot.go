package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/taskboard/internal/memory"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Record types mirror the entity structs with an explicit wire shape:
// RFC 3339 text timestamps and nil for absent optionals. They define both
// the JSONL line format and the SQLite row layout.

type taskRecord struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProjectID   int64    `json:"project_id"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"due_date"`
	AssigneeID  *int64   `json:"assignee_id"`
	Tags        []string `json:"tags"`
	CompletedAt *string  `json:"completed_at"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type projectRecord struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	OwnerID            int64   `json:"owner_id"`
	Status             string  `json:"status"`
	Members            []int64 `json:"members"`
	TaskCount          int     `json:"task_count"`
	CompletedTaskCount int     `json:"completed_task_count"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type categoryRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	TaskCount   int    `json:"task_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type tagRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type notificationRecord struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"user_id"`
	Message           string  `json:"message"`
	Type              string  `json:"type"`
	Status            string  `json:"status"`
	RelatedEntityID   *int64  `json:"related_entity_id"`
	RelatedEntityType *string `json:"related_entity_type"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type snapshotRecord struct {
	SnapshotID         string `json:"snapshot_id"`
	SavedAt            string `json:"saved_at"`
	NextTaskID         int64  `json:"next_task_id"`
	NextProjectID      int64  `json:"next_project_id"`
	NextCategoryID     int64  `json:"next_category_id"`
	NextTagID          int64  `json:"next_tag_id"`
	NextNotificationID int64  `json:"next_notification_id"`
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) }

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Save persists the full core state: the SQLite tables are repopulated in
// one transaction together with a snapshot row recording the id counters,
// and the JSONL mirrors are rewritten atomically once the transaction has
// committed, so a failed commit leaves them untouched. Returns ErrDetached
// when not attached.
func (b *Backend) Save(core *memory.Core) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	snap := snapshotRecord{
		SnapshotID:         newSnapshotID(),
		SavedAt:            formatTime(time.Now()),
		NextTaskID:         core.Tasks.NextID(),
		NextProjectID:      core.Projects.NextID(),
		NextCategoryID:     core.Categories.NextID(),
		NextTagID:          core.Tags.NextID(),
		NextNotificationID: core.Notifications.NextID(),
	}

	dataDir := b.config.DataDir
	snapLines, err := snapshotMirrorLines(dataDir, snap)
	if err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	taskLines, err := saveTasks(tx, core.Tasks.GetAll())
	if err != nil {
		return err
	}
	projectLines, err := saveProjects(tx, core.Projects.GetAll())
	if err != nil {
		return err
	}
	categoryLines, err := saveCategories(tx, core.Categories.GetAll())
	if err != nil {
		return err
	}
	tagLines, err := saveTags(tx, core.Tags.GetAll())
	if err != nil {
		return err
	}
	notificationLines, err := saveNotifications(tx, core.Notifications.GetAll())
	if err != nil {
		return err
	}
	if err := saveSnapshotRow(tx, snap); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	mirrors := []struct {
		table string
		lines []json.RawMessage
	}{
		{tasksTable, taskLines},
		{projectsTable, projectLines},
		{categoriesTable, categoryLines},
		{tagsTable, tagLines},
		{notificationsTable, notificationLines},
		{snapshotsTable, snapLines},
	}
	for _, m := range mirrors {
		if err := writeJSONL(jsonlPath(dataDir, m.table), m.lines); err != nil {
			return err
		}
	}
	return nil
}

// newSnapshotID returns a UUID v7 string, falling back to v4 if the clock
// source fails.
func newSnapshotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Load rehydrates the core from the JSONL mirrors. Id counters come from
// the most recent snapshot record; without one they resume past the highest
// loaded id. Returns ErrDetached when not attached.
func (b *Backend) Load(core *memory.Core) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}

	snap, err := latestSnapshot(b.config.DataDir)
	if err != nil {
		return err
	}

	tasks, err := loadTasks(b.config.DataDir)
	if err != nil {
		return err
	}
	projects, err := loadProjects(b.config.DataDir)
	if err != nil {
		return err
	}
	categories, err := loadCategories(b.config.DataDir)
	if err != nil {
		return err
	}
	tags, err := loadTags(b.config.DataDir)
	if err != nil {
		return err
	}
	notifications, err := loadNotifications(b.config.DataDir)
	if err != nil {
		return err
	}

	if err := core.Tasks.Restore(tasks, nextIDFor(snap.NextTaskID, maxTaskID(tasks))); err != nil {
		return fmt.Errorf("restoring tasks: %w", err)
	}
	if err := core.Projects.Restore(projects, nextIDFor(snap.NextProjectID, maxProjectID(projects))); err != nil {
		return fmt.Errorf("restoring projects: %w", err)
	}
	if err := core.Categories.Restore(categories, nextIDFor(snap.NextCategoryID, maxCategoryID(categories))); err != nil {
		return fmt.Errorf("restoring categories: %w", err)
	}
	if err := core.Tags.Restore(tags, nextIDFor(snap.NextTagID, maxTagID(tags))); err != nil {
		return fmt.Errorf("restoring tags: %w", err)
	}
	if err := core.Notifications.Restore(notifications, nextIDFor(snap.NextNotificationID, maxNotificationID(notifications))); err != nil {
		return fmt.Errorf("restoring notifications: %w", err)
	}
	return nil
}

// nextIDFor prefers the snapshot counter but never lets it fall at or below
// the highest loaded id.
func nextIDFor(snapNext, maxID int64) int64 {
	if snapNext > maxID {
		return snapNext
	}
	return maxID + 1
}

func maxTaskID(ts []*types.Task) int64 {
	var m int64
	for _, t := range ts {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

func maxProjectID(ps []*types.Project) int64 {
	var m int64
	for _, p := range ps {
		if p.ID > m {
			m = p.ID
		}
	}
	return m
}

func maxCategoryID(cs []*types.Category) int64 {
	var m int64
	for _, c := range cs {
		if c.ID > m {
			m = c.ID
		}
	}
	return m
}

func maxTagID(ts []*types.Tag) int64 {
	var m int64
	for _, t := range ts {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

func maxNotificationID(ns []*types.Notification) int64 {
	var m int64
	for _, n := range ns {
		if n.ID > m {
			m = n.ID
		}
	}
	return m
}

// marshalLines encodes each record as one JSONL line.
func marshalLines[R any](records []R) ([]json.RawMessage, error) {
	lines := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		lines = append(lines, data)
	}
	return lines, nil
}

// unmarshalLines decodes JSONL lines, skipping lines that do not decode.
func unmarshalLines[R any](lines []json.RawMessage) []R {
	records := make([]R, 0, len(lines))
	for _, line := range lines {
		var rec R
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func saveTasks(tx *sql.Tx, tasks []*types.Task) ([]json.RawMessage, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}
		records = append(records, taskRecord{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			ProjectID:   t.ProjectID,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     formatTimePtr(t.DueDate),
			AssigneeID:  t.AssigneeID,
			Tags:        tags,
			CompletedAt: formatTimePtr(t.CompletedAt),
			CreatedAt:   formatTime(t.CreatedAt),
			UpdatedAt:   formatTime(t.UpdatedAt),
		})
	}

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return nil, err
	}
	for _, r := range records {
		tagsJSON, err := json.Marshal(r.Tags)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(
			`INSERT INTO tasks (id, title, description, project_id, status, priority, due_date, assignee_id, tags, completed_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Description, r.ProjectID, r.Status, r.Priority,
			r.DueDate, r.AssigneeID, string(tagsJSON), r.CompletedAt, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return marshalLines(records)
}

func loadTasks(dataDir string) ([]*types.Task, error) {
	lines, err := readJSONL(jsonlPath(dataDir, tasksTable))
	if err != nil {
		return nil, err
	}
	tasks := make([]*types.Task, 0, len(lines))
	for _, r := range unmarshalLines[taskRecord](lines) {
		createdAt, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", r.ID, err)
		}
		updatedAt, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", r.ID, err)
		}
		dueDate, err := parseTimePtr(r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", r.ID, err)
		}
		completedAt, err := parseTimePtr(r.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", r.ID, err)
		}
		task := &types.Task{
			Meta:        types.NewMeta(r.ID, createdAt),
			Title:       r.Title,
			Description: r.Description,
			ProjectID:   r.ProjectID,
			Status:      r.Status,
			Priority:    r.Priority,
			DueDate:     dueDate,
			AssigneeID:  r.AssigneeID,
			Tags:        r.Tags,
			CompletedAt: completedAt,
		}
		task.UpdatedAt = updatedAt
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func saveProjects(tx *sql.Tx, projects []*types.Project) ([]json.RawMessage, error) {
	records := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		members := p.Members
		if members == nil {
			members = []int64{}
		}
		records = append(records, projectRecord{
			ID:                 p.ID,
			Name:               p.Name,
			Description:        p.Description,
			OwnerID:            p.OwnerID,
			Status:             p.Status,
			Members:            members,
			TaskCount:          p.TaskCount,
			CompletedTaskCount: p.CompletedTaskCount,
			CreatedAt:          formatTime(p.CreatedAt),
			UpdatedAt:          formatTime(p.UpdatedAt),
		})
	}

	if _, err := tx.Exec(`DELETE FROM projects`); err != nil {
		return nil, err
	}
	for _, r := range records {
		membersJSON, err := json.Marshal(r.Members)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(
			`INSERT INTO projects (id, name, description, owner_id, status, members, task_count, completed_task_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Description, r.OwnerID, r.Status, string(membersJSON),
			r.TaskCount, r.CompletedTaskCount, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return marshalLines(records)
}

func loadProjects(dataDir string) ([]*types.Project, error) {
	lines, err := readJSONL(jsonlPath(dataDir, projectsTable))
	if err != nil {
		return nil, err
	}
	projects := make([]*types.Project, 0, len(lines))
	for _, r := range unmarshalLines[projectRecord](lines) {
		createdAt, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", r.ID, err)
		}
		updatedAt, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", r.ID, err)
		}
		project := &types.Project{
			Meta:               types.NewMeta(r.ID, createdAt),
			Name:               r.Name,
			Description:        r.Description,
			OwnerID:            r.OwnerID,
			Status:             r.Status,
			Members:            r.Members,
			TaskCount:          r.TaskCount,
			CompletedTaskCount: r.CompletedTaskCount,
		}
		project.UpdatedAt = updatedAt
		projects = append(projects, project)
	}
	return projects, nil
}

func saveCategories(tx *sql.Tx, categories []*types.Category) ([]json.RawMessage, error) {
	records := make([]categoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, categoryRecord{
			ID:          c.ID,
			Name:        c.Name,
			Color:       c.Color,
			Description: c.Description,
			TaskCount:   c.TaskCount,
			CreatedAt:   formatTime(c.CreatedAt),
			UpdatedAt:   formatTime(c.UpdatedAt),
		})
	}

	if _, err := tx.Exec(`DELETE FROM categories`); err != nil {
		return nil, err
	}
	for _, r := range records {
		_, err := tx.Exec(
			`INSERT INTO categories (id, name, color, description, task_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Color, r.Description, r.TaskCount, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return marshalLines(records)
}

func loadCategories(dataDir string) ([]*types.Category, error) {
	lines, err := readJSONL(jsonlPath(dataDir, categoriesTable))
	if err != nil {
		return nil, err
	}
	categories := make([]*types.Category, 0, len(lines))
	for _, r := range unmarshalLines[categoryRecord](lines) {
		createdAt, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", r.ID, err)
		}
		updatedAt, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", r.ID, err)
		}
		category := &types.Category{
			Meta:        types.NewMeta(r.ID, createdAt),
			Name:        r.Name,
			Color:       r.Color,
			Description: r.Description,
			TaskCount:   r.TaskCount,
		}
		category.UpdatedAt = updatedAt
		categories = append(categories, category)
	}
	return categories, nil
}

func saveTags(tx *sql.Tx, tags []*types.Tag) ([]json.RawMessage, error) {
	records := make([]tagRecord, 0, len(tags))
	for _, t := range tags {
		records = append(records, tagRecord{
			ID:         t.ID,
			Name:       t.Name,
			UsageCount: t.UsageCount,
			CreatedAt:  formatTime(t.CreatedAt),
			UpdatedAt:  formatTime(t.UpdatedAt),
		})
	}

	if _, err := tx.Exec(`DELETE FROM tags`); err != nil {
		return nil, err
	}
	for _, r := range records {
		_, err := tx.Exec(
			`INSERT INTO tags (id, name, usage_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.UsageCount, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return marshalLines(records)
}

func loadTags(dataDir string) ([]*types.Tag, error) {
	lines, err := readJSONL(jsonlPath(dataDir, tagsTable))
	if err != nil {
		return nil, err
	}
	tags := make([]*types.Tag, 0, len(lines))
	for _, r := range unmarshalLines[tagRecord](lines) {
		createdAt, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", r.ID, err)
		}
		updatedAt, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", r.ID, err)
		}
		tag := &types.Tag{
			Meta:       types.NewMeta(r.ID, createdAt),
			Name:       r.Name,
			UsageCount: r.UsageCount,
		}
		tag.UpdatedAt = updatedAt
		tags = append(tags, tag)
	}
	return tags, nil
}

func saveNotifications(tx *sql.Tx, notifications []*types.Notification) ([]json.RawMessage, error) {
	records := make([]notificationRecord, 0, len(notifications))
	for _, n := range notifications {
		records = append(records, notificationRecord{
			ID:                n.ID,
			UserID:            n.UserID,
			Message:           n.Message,
			Type:              n.Type,
			Status:            n.Status,
			RelatedEntityID:   n.RelatedEntityID,
			RelatedEntityType: n.RelatedEntityType,
			CreatedAt:         formatTime(n.CreatedAt),
			UpdatedAt:         formatTime(n.UpdatedAt),
		})
	}

	if _, err := tx.Exec(`DELETE FROM notifications`); err != nil {
		return nil, err
	}
	for _, r := range records {
		_, err := tx.Exec(
			`INSERT INTO notifications (id, user_id, message, type, status, related_entity_id, related_entity_type, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, r.Message, r.Type, r.Status,
			r.RelatedEntityID, r.RelatedEntityType, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return marshalLines(records)
}

func loadNotifications(dataDir string) ([]*types.Notification, error) {
	lines, err := readJSONL(jsonlPath(dataDir, notificationsTable))
	if err != nil {
		return nil, err
	}
	notifications := make([]*types.Notification, 0, len(lines))
	for _, r := range unmarshalLines[notificationRecord](lines) {
		createdAt, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("notification %d: %w", r.ID, err)
		}
		updatedAt, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("notification %d: %w", r.ID, err)
		}
		notification := &types.Notification{
			Meta:              types.NewMeta(r.ID, createdAt),
			UserID:            r.UserID,
			Message:           r.Message,
			Type:              r.Type,
			Status:            r.Status,
			RelatedEntityID:   r.RelatedEntityID,
			RelatedEntityType: r.RelatedEntityType,
		}
		notification.UpdatedAt = updatedAt
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// saveSnapshotRow appends the snapshot row to the snapshots table.
func saveSnapshotRow(tx *sql.Tx, snap snapshotRecord) error {
	_, err := tx.Exec(
		`INSERT INTO snapshots (snapshot_id, saved_at, next_task_id, next_project_id, next_category_id, next_tag_id, next_notification_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.SnapshotID, snap.SavedAt, snap.NextTaskID, snap.NextProjectID,
		snap.NextCategoryID, snap.NextTagID, snap.NextNotificationID,
	)
	return err
}

// snapshotMirrorLines returns the snapshots mirror content with snap
// appended, preserving prior history.
func snapshotMirrorLines(dataDir string, snap snapshotRecord) ([]json.RawMessage, error) {
	lines, err := readJSONL(jsonlPath(dataDir, snapshotsTable))
	if err != nil {
		return nil, err
	}
	line, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return append(lines, line), nil
}

// latestSnapshot returns the last snapshot record, or a zero record when
// the mirror is empty.
func latestSnapshot(dataDir string) (snapshotRecord, error) {
	lines, err := readJSONL(jsonlPath(dataDir, snapshotsTable))
	if err != nil {
		return snapshotRecord{}, err
	}
	records := unmarshalLines[snapshotRecord](lines)
	if len(records) == 0 {
		return snapshotRecord{}, nil
	}
	return records[len(records)-1], nil
}
