// Package memory implements the in-memory entity store: a generic
// arena-style container keyed by repository-assigned integer ids, plus one
// domain repository per record kind. State is owned by a single logical
// writer; callers must serialize access externally if they need concurrency.
package memory

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// store is the generic container backing every domain repository. It owns
// the id-to-entity map, the insertion order, and the monotonic id counter.
// The counter only increases: ids are never reissued, even after deletion.
type store[T types.Entity] struct {
	items  map[int64]T
	order  []int64
	nextID int64
}

func newStore[T types.Entity]() *store[T] {
	return &store[T]{items: make(map[int64]T), nextID: 1}
}

// allocateID returns the current counter value and advances it. This is
// the sole id-allocation path and is only called from create paths; a
// failed create still consumes its id.
func (s *store[T]) allocateID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// insert stores a fully validated entity. The caller guarantees the id
// was allocated by this store and is not yet present.
func (s *store[T]) insert(e T) {
	id := e.EntityID()
	s.items[id] = e
	s.order = append(s.order, id)
}

// get returns the stored entity, if present.
func (s *store[T]) get(id int64) (T, bool) {
	e, ok := s.items[id]
	return e, ok
}

// getOrErr returns the stored entity or a NOT_FOUND error tagged with the
// given resource label.
func (s *store[T]) getOrErr(id int64, resource string) (T, error) {
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, apperr.NewNotFound(fmt.Sprintf("%s not found", resource), resource)
	}
	return e, nil
}

// getAll returns a snapshot of current values in insertion order.
func (s *store[T]) getAll() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// update replaces the stored value only if id exists. It does not
// re-validate the entity.
func (s *store[T]) update(id int64, e T) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	s.items[id] = e
	return true
}

// delete removes the entry if present. The id is never reissued afterward.
func (s *store[T]) delete(id int64) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *store[T]) count() int { return len(s.items) }

func (s *store[T]) exists(id int64) bool {
	_, ok := s.items[id]
	return ok
}

// restore replaces the store contents from a snapshot. Entities keep their
// original ids and insertion order; nextID must be strictly greater than
// every restored id so the never-reissue invariant survives a reload.
func (s *store[T]) restore(items []T, nextID int64) error {
	var maxID int64
	for _, e := range items {
		if e.EntityID() <= 0 {
			return fmt.Errorf("restore: non-positive id %d", e.EntityID())
		}
		if e.EntityID() > maxID {
			maxID = e.EntityID()
		}
	}
	if nextID <= maxID {
		return fmt.Errorf("restore: next id %d not greater than max id %d", nextID, maxID)
	}
	s.items = make(map[int64]T, len(items))
	s.order = s.order[:0]
	for _, e := range items {
		if _, dup := s.items[e.EntityID()]; dup {
			return fmt.Errorf("restore: duplicate id %d", e.EntityID())
		}
		s.insert(e)
	}
	s.nextID = nextID
	return nil
}

// nameIndex maps normalized (lower-cased) unique names to entity ids,
// giving the case-insensitive uniqueness check without a linear scan.
type nameIndex map[string]int64

func normalizeName(name string) string { return strings.ToLower(name) }

func (idx nameIndex) lookup(name string) (int64, bool) {
	id, ok := idx[normalizeName(name)]
	return id, ok
}

func (idx nameIndex) add(name string, id int64) { idx[normalizeName(name)] = id }

func (idx nameIndex) remove(name string) { delete(idx, normalizeName(name)) }
