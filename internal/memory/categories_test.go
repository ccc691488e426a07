package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestCategoryCreateDefaultColor(t *testing.T) {
	core := New(nil)

	category, err := core.Categories.Create("Work", "", "day job")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultCategoryColor, category.Color)
}

func TestCategoryCreateValidation(t *testing.T) {
	core := New(nil)

	_, err := core.Categories.Create("", "#ff0000", "")
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Category name is required")

	_, err = core.Categories.Create("Work", "red", "")
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Invalid hex color format")
}

func TestCategoryNameConflictCaseInsensitive(t *testing.T) {
	core := New(nil)

	_, err := core.Categories.Create("Work", "#ff0000", "")
	require.NoError(t, err)

	_, err = core.Categories.Create("WORK", "#00ff00", "")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.EqualError(t, err, "CONFLICT: Category 'WORK' already exists")
	assert.Equal(t, 1, core.Categories.Count())

	// Reversed casing order conflicts the same way.
	_, err = core.Categories.Create("work", "#00ff00", "")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestCategoryDeleteFreesName(t *testing.T) {
	core := New(nil)

	category, err := core.Categories.Create("Home", "#ffffff", "")
	require.NoError(t, err)
	require.True(t, core.Categories.Delete(category.ID))

	again, err := core.Categories.Create("home", "#ffffff", "")
	require.NoError(t, err)
	assert.Greater(t, again.ID, category.ID)
}

func TestCategoryUpdateMovesNameIndex(t *testing.T) {
	core := New(nil)

	category, err := core.Categories.Create("Old", "#ffffff", "")
	require.NoError(t, err)

	category.Name = "New"
	require.True(t, core.Categories.Update(category.ID, category))

	_, err = core.Categories.GetByName("old")
	assert.Error(t, err, "old name no longer resolves")

	found, err := core.Categories.GetByName("NEW")
	require.NoError(t, err)
	assert.Equal(t, category.ID, found.ID)

	_, err = core.Categories.Create("Old", "#ffffff", "")
	assert.NoError(t, err, "old name is free again")
}

func TestCategoryLookups(t *testing.T) {
	core := New(nil)

	_, err := core.Categories.Create("Work", "#ff0000", "")
	require.NoError(t, err)
	_, err = core.Categories.Create("Workout", "#00ff00", "")
	require.NoError(t, err)
	_, err = core.Categories.Create("Home", "#0000ff", "")
	require.NoError(t, err)

	assert.Len(t, core.Categories.FindByName("work"), 2)
	assert.Len(t, core.Categories.FindByName("OUT"), 1)
	assert.Empty(t, core.Categories.FindByName("garden"))

	found, err := core.Categories.GetByName("home")
	require.NoError(t, err)
	assert.Equal(t, "Home", found.Name)

	_, err = core.Categories.GetByName("missing")
	require.Error(t, err)
	assert.EqualError(t, err, "NOT_FOUND: Category not found")
}
