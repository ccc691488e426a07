package memory

import (
	"io"
	"log/slog"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Core bundles one repository per record kind. All repositories share a
// logger; creation events are logged at info level.
type Core struct {
	Tasks         *TaskRepository
	Projects      *ProjectRepository
	Categories    *CategoryRepository
	Tags          *TagRepository
	Notifications *NotificationRepository
}

// New creates an empty core. A nil logger discards all log output.
func New(logger *slog.Logger) *Core {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Core{
		Tasks:         &TaskRepository{store: newStore[*types.Task](), log: logger},
		Projects:      &ProjectRepository{store: newStore[*types.Project](), log: logger},
		Categories:    &CategoryRepository{store: newStore[*types.Category](), names: nameIndex{}, log: logger},
		Tags:          &TagRepository{store: newStore[*types.Tag](), names: nameIndex{}, log: logger},
		Notifications: &NotificationRepository{store: newStore[*types.Notification](), log: logger},
	}
}
