package memory

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// tagResource is the NOT_FOUND resource label for tags.
const tagResource = "Tag"

// TagRepository manages tags. Tag names are unique, compared
// case-insensitively.
type TagRepository struct {
	store *store[*types.Tag]
	names nameIndex
	log   *slog.Logger
}

// Create allocates an id, constructs the tag, validates it, and checks
// name uniqueness before storing.
func (r *TagRepository) Create(name string) (*types.Tag, error) {
	tag := &types.Tag{
		Meta: types.NewMeta(r.store.allocateID(), time.Now()),
		Name: name,
	}

	if ok, reason := tag.Validate(); !ok {
		return nil, apperr.NewValidation(reason)
	}
	if _, taken := r.names.lookup(name); taken {
		return nil, apperr.NewConflict(fmt.Sprintf("Tag '%s' already exists", name))
	}

	r.store.insert(tag)
	r.names.add(tag.Name, tag.ID)
	r.log.Info("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// Get returns the tag with the given id, if present.
func (r *TagRepository) Get(id int64) (*types.Tag, bool) { return r.store.get(id) }

// GetOrErr returns the tag or a NOT_FOUND error.
func (r *TagRepository) GetOrErr(id int64) (*types.Tag, error) {
	return r.store.getOrErr(id, tagResource)
}

// GetAll returns all tags in insertion order.
func (r *TagRepository) GetAll() []*types.Tag { return r.store.getAll() }

// Update replaces the stored tag only if id exists, keeping the name index
// in step when the name changed.
func (r *TagRepository) Update(id int64, tag *types.Tag) bool {
	prev, ok := r.store.get(id)
	if !ok {
		return false
	}
	if !r.store.update(id, tag) {
		return false
	}
	if normalizeName(prev.Name) != normalizeName(tag.Name) {
		r.names.remove(prev.Name)
		r.names.add(tag.Name, id)
	}
	return true
}

// Delete permanently removes the tag, freeing its name for reuse.
func (r *TagRepository) Delete(id int64) bool {
	tag, ok := r.store.get(id)
	if !ok {
		return false
	}
	r.names.remove(tag.Name)
	return r.store.delete(id)
}

// Count returns the number of stored tags.
func (r *TagRepository) Count() int { return r.store.count() }

// Exists reports whether a tag with the given id is stored.
func (r *TagRepository) Exists(id int64) bool { return r.store.exists(id) }

// GetByName returns the tag whose name matches case-insensitively, or a
// NOT_FOUND error.
func (r *TagRepository) GetByName(name string) (*types.Tag, error) {
	if id, ok := r.names.lookup(name); ok {
		if tag, present := r.store.get(id); present {
			return tag, nil
		}
	}
	return nil, apperr.NewNotFound("Tag not found", tagResource)
}

// FindByName returns tags whose name contains the given substring, compared
// case-insensitively.
func (r *TagRepository) FindByName(substr string) []*types.Tag {
	needle := strings.ToLower(substr)
	out := []*types.Tag{}
	for _, tag := range r.store.getAll() {
		if strings.Contains(strings.ToLower(tag.Name), needle) {
			out = append(out, tag)
		}
	}
	return out
}

// PopularTags returns up to limit tags ordered by descending usage count.
// Ties keep insertion order.
func (r *TagRepository) PopularTags(limit int) []*types.Tag {
	tags := r.store.getAll()
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].UsageCount > tags[j].UsageCount
	})
	if limit >= 0 && limit < len(tags) {
		tags = tags[:limit]
	}
	return tags
}

// Restore replaces the repository contents from a snapshot and rebuilds
// the name index.
func (r *TagRepository) Restore(tags []*types.Tag, nextID int64) error {
	if err := r.store.restore(tags, nextID); err != nil {
		return err
	}
	r.names = nameIndex{}
	for _, tag := range tags {
		r.names.add(tag.Name, tag.ID)
	}
	return nil
}

// NextID exposes the counter value for snapshotting.
func (r *TagRepository) NextID() int64 { return r.store.nextID }
