package sqlite

// Table names used by both the SQLite schema and the JSONL mirrors.
const (
	tasksTable         = "tasks"
	projectsTable      = "projects"
	categoriesTable    = "categories"
	tagsTable          = "tags"
	notificationsTable = "notifications"
	snapshotsTable     = "snapshots"
)

// entityTables lists every table with a JSONL mirror, in load order.
var entityTables = []string{
	tasksTable,
	projectsTable,
	categoriesTable,
	tagsTable,
	notificationsTable,
}

// Schema DDL. Timestamps are RFC 3339 text; optional columns are NULL when
// absent. The snapshots table records one row per Save with the id counters
// needed to resume allocation after a Load.
const (
	createTasks = `CREATE TABLE tasks (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    project_id INTEGER NOT NULL,
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    due_date TEXT,
    assignee_id INTEGER,
    tags TEXT NOT NULL,
    completed_at TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProjects = `CREATE TABLE projects (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    owner_id INTEGER NOT NULL,
    status TEXT NOT NULL,
    members TEXT NOT NULL,
    task_count INTEGER NOT NULL,
    completed_task_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createCategories = `CREATE TABLE categories (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    description TEXT NOT NULL,
    task_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTags = `CREATE TABLE tags (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    usage_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createNotifications = `CREATE TABLE notifications (
    id INTEGER PRIMARY KEY,
    user_id INTEGER NOT NULL,
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    status TEXT NOT NULL,
    related_entity_id INTEGER,
    related_entity_type TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSnapshots = `CREATE TABLE snapshots (
    snapshot_id TEXT PRIMARY KEY,
    saved_at TEXT NOT NULL,
    next_task_id INTEGER NOT NULL,
    next_project_id INTEGER NOT NULL,
    next_category_id INTEGER NOT NULL,
    next_tag_id INTEGER NOT NULL,
    next_notification_id INTEGER NOT NULL
);`
)

var schemaStatements = []string{
	createTasks,
	createProjects,
	createCategories,
	createTags,
	createNotifications,
	createSnapshots,
}
