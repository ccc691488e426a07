package memory

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// projectResource is the NOT_FOUND resource label for projects.
const projectResource = "Project"

// ProjectRepository manages projects.
type ProjectRepository struct {
	store *store[*types.Project]
	log   *slog.Logger
}

// ProjectParams carries caller-supplied fields for project creation.
// Zero-value Status defaults to planning.
type ProjectParams struct {
	Name        string
	Description string
	OwnerID     int64
	Status      string
}

// Create allocates an id, constructs the project, validates it, and stores
// it. The owner, when set, becomes the first member.
func (r *ProjectRepository) Create(p ProjectParams) (*types.Project, error) {
	if p.Status == "" {
		p.Status = types.ProjectStatusPlanning
	}

	var members []int64
	if p.OwnerID != 0 {
		members = []int64{p.OwnerID}
	}

	project := &types.Project{
		Meta:        types.NewMeta(r.store.allocateID(), time.Now()),
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Status:      p.Status,
		Members:     members,
	}

	if ok, reason := project.Validate(); !ok {
		return nil, apperr.NewValidation(reason)
	}

	r.store.insert(project)
	r.log.Info("project created", "id", project.ID, "name", project.Name)
	return project, nil
}

// Get returns the project with the given id, if present.
func (r *ProjectRepository) Get(id int64) (*types.Project, bool) { return r.store.get(id) }

// GetOrErr returns the project or a NOT_FOUND error.
func (r *ProjectRepository) GetOrErr(id int64) (*types.Project, error) {
	return r.store.getOrErr(id, projectResource)
}

// GetAll returns all projects in insertion order.
func (r *ProjectRepository) GetAll() []*types.Project { return r.store.getAll() }

// Update replaces the stored project only if id exists.
func (r *ProjectRepository) Update(id int64, project *types.Project) bool {
	return r.store.update(id, project)
}

// Delete permanently removes the project.
func (r *ProjectRepository) Delete(id int64) bool { return r.store.delete(id) }

// Count returns the number of stored projects.
func (r *ProjectRepository) Count() int { return r.store.count() }

// Exists reports whether a project with the given id is stored.
func (r *ProjectRepository) Exists(id int64) bool { return r.store.exists(id) }

// FindByOwner returns projects owned by the given user.
func (r *ProjectRepository) FindByOwner(ownerID int64) []*types.Project {
	return r.filter(func(p *types.Project) bool { return p.OwnerID == ownerID })
}

// FindByStatus returns projects with the given status.
func (r *ProjectRepository) FindByStatus(status string) []*types.Project {
	return r.filter(func(p *types.Project) bool { return p.Status == status })
}

// FindActive returns all active projects.
func (r *ProjectRepository) FindActive() []*types.Project {
	return r.FindByStatus(types.ProjectStatusActive)
}

// UserProjects returns projects where the given user is a member.
func (r *ProjectRepository) UserProjects(userID int64) []*types.Project {
	return r.filter(func(p *types.Project) bool {
		for _, m := range p.Members {
			if m == userID {
				return true
			}
		}
		return false
	})
}

func (r *ProjectRepository) filter(keep func(*types.Project) bool) []*types.Project {
	out := []*types.Project{}
	for _, p := range r.store.getAll() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Restore replaces the repository contents from a snapshot.
func (r *ProjectRepository) Restore(projects []*types.Project, nextID int64) error {
	return r.store.restore(projects, nextID)
}

// NextID exposes the counter value for snapshotting.
func (r *ProjectRepository) NextID() int64 { return r.store.nextID }
