package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func newTestTag(id int64, name string) *types.Tag {
	return &types.Tag{Meta: types.NewMeta(id, time.Now()), Name: name}
}

func TestStoreAllocateIDMonotonic(t *testing.T) {
	s := newStore[*types.Tag]()

	assert.Equal(t, int64(1), s.allocateID())
	assert.Equal(t, int64(2), s.allocateID())
	assert.Equal(t, int64(3), s.allocateID())
}

func TestStoreIDNeverReissuedAfterDelete(t *testing.T) {
	s := newStore[*types.Tag]()

	id := s.allocateID()
	s.insert(newTestTag(id, "alpha"))
	require.True(t, s.delete(id))

	next := s.allocateID()
	assert.Greater(t, next, id, "deleted ids must not be reissued")
}

func TestStoreGetAllInsertionOrder(t *testing.T) {
	s := newStore[*types.Tag]()
	names := []string{"one", "two", "three"}
	for _, name := range names {
		s.insert(newTestTag(s.allocateID(), name))
	}

	all := s.getAll()
	require.Len(t, all, 3)
	for i, tag := range all {
		assert.Equal(t, names[i], tag.Name)
	}
}

func TestStoreGetOrErrNotFound(t *testing.T) {
	s := newStore[*types.Tag]()

	_, err := s.getOrErr(99, "Tag")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Tag", appErr.Details[apperr.DetailResourceType])
}

func TestStoreUpdateMissingID(t *testing.T) {
	s := newStore[*types.Tag]()

	assert.False(t, s.update(1, newTestTag(1, "ghost")))
	assert.Zero(t, s.count())
}

func TestStoreRestore(t *testing.T) {
	s := newStore[*types.Tag]()

	tags := []*types.Tag{newTestTag(2, "a"), newTestTag(5, "b")}
	require.NoError(t, s.restore(tags, 6))

	assert.Equal(t, 2, s.count())
	assert.Equal(t, int64(6), s.allocateID(), "counter resumes past restored ids")
}

func TestStoreRestoreRejectsBadSnapshots(t *testing.T) {
	s := newStore[*types.Tag]()

	err := s.restore([]*types.Tag{newTestTag(0, "zero")}, 1)
	assert.Error(t, err, "non-positive id")

	err = s.restore([]*types.Tag{newTestTag(3, "a")}, 3)
	assert.Error(t, err, "next id must exceed max id")

	err = s.restore([]*types.Tag{newTestTag(1, "a"), newTestTag(1, "b")}, 2)
	assert.Error(t, err, "duplicate id")
}

func TestNameIndexCaseInsensitive(t *testing.T) {
	idx := nameIndex{}
	idx.add("Urgent", 1)

	id, ok := idx.lookup("URGENT")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	idx.remove("urgent")
	_, ok = idx.lookup("Urgent")
	assert.False(t, ok)
}
