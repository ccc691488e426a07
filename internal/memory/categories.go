package memory

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// categoryResource is the NOT_FOUND resource label for categories.
const categoryResource = "Category"

// CategoryRepository manages categories. Category names are unique,
// compared case-insensitively.
type CategoryRepository struct {
	store *store[*types.Category]
	names nameIndex
	log   *slog.Logger
}

// Create allocates an id, constructs the category, validates it, and checks
// name uniqueness before storing. An empty color defaults to black.
func (r *CategoryRepository) Create(name, color, description string) (*types.Category, error) {
	if color == "" {
		color = types.DefaultCategoryColor
	}

	category := &types.Category{
		Meta:        types.NewMeta(r.store.allocateID(), time.Now()),
		Name:        name,
		Color:       color,
		Description: description,
	}

	if ok, reason := category.Validate(); !ok {
		return nil, apperr.NewValidation(reason)
	}
	if _, taken := r.names.lookup(name); taken {
		return nil, apperr.NewConflict(fmt.Sprintf("Category '%s' already exists", name))
	}

	r.store.insert(category)
	r.names.add(category.Name, category.ID)
	r.log.Info("category created", "id", category.ID, "name", category.Name)
	return category, nil
}

// Get returns the category with the given id, if present.
func (r *CategoryRepository) Get(id int64) (*types.Category, bool) { return r.store.get(id) }

// GetOrErr returns the category or a NOT_FOUND error.
func (r *CategoryRepository) GetOrErr(id int64) (*types.Category, error) {
	return r.store.getOrErr(id, categoryResource)
}

// GetAll returns all categories in insertion order.
func (r *CategoryRepository) GetAll() []*types.Category { return r.store.getAll() }

// Update replaces the stored category only if id exists, keeping the name
// index in step when the name changed.
func (r *CategoryRepository) Update(id int64, category *types.Category) bool {
	prev, ok := r.store.get(id)
	if !ok {
		return false
	}
	if !r.store.update(id, category) {
		return false
	}
	if normalizeName(prev.Name) != normalizeName(category.Name) {
		r.names.remove(prev.Name)
		r.names.add(category.Name, id)
	}
	return true
}

// Delete permanently removes the category, freeing its name for reuse.
func (r *CategoryRepository) Delete(id int64) bool {
	category, ok := r.store.get(id)
	if !ok {
		return false
	}
	r.names.remove(category.Name)
	return r.store.delete(id)
}

// Count returns the number of stored categories.
func (r *CategoryRepository) Count() int { return r.store.count() }

// Exists reports whether a category with the given id is stored.
func (r *CategoryRepository) Exists(id int64) bool { return r.store.exists(id) }

// GetByName returns the category whose name matches case-insensitively,
// or a NOT_FOUND error.
func (r *CategoryRepository) GetByName(name string) (*types.Category, error) {
	if id, ok := r.names.lookup(name); ok {
		if category, present := r.store.get(id); present {
			return category, nil
		}
	}
	return nil, apperr.NewNotFound("Category not found", categoryResource)
}

// FindByName returns categories whose name contains the given substring,
// compared case-insensitively.
func (r *CategoryRepository) FindByName(substr string) []*types.Category {
	needle := strings.ToLower(substr)
	out := []*types.Category{}
	for _, c := range r.store.getAll() {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Restore replaces the repository contents from a snapshot and rebuilds
// the name index.
func (r *CategoryRepository) Restore(categories []*types.Category, nextID int64) error {
	if err := r.store.restore(categories, nextID); err != nil {
		return err
	}
	r.names = nameIndex{}
	for _, c := range categories {
		r.names.add(c.Name, c.ID)
	}
	return nil
}

// NextID exposes the counter value for snapshotting.
func (r *CategoryRepository) NextID() int64 { return r.store.nextID }
