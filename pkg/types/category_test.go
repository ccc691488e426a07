package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name       string
		category   Category
		wantOK     bool
		wantReason string
	}{
		{
			name:     "valid category",
			category: Category{Name: "Work", Color: "#FF5733"},
			wantOK:   true,
		},
		{
			name:       "empty name",
			category:   Category{Name: "", Color: "#FF5733"},
			wantReason: "Category name is required",
		},
		{
			name:     "name at 50",
			category: Category{Name: strings.Repeat("c", 50), Color: "#000000"},
			wantOK:   true,
		},
		{
			name:       "name at 51",
			category:   Category{Name: strings.Repeat("c", 51), Color: "#000000"},
			wantReason: "Category name cannot exceed 50 characters",
		},
		{
			name:     "multibyte name at 50",
			category: Category{Name: strings.Repeat("ß", 50), Color: "#000000"},
			wantOK:   true,
		},
		{
			name:       "missing hash prefix",
			category:   Category{Name: "Work", Color: "FF5733"},
			wantReason: "Invalid hex color format",
		},
		{
			name:       "short hex",
			category:   Category{Name: "Work", Color: "#FFF"},
			wantReason: "Invalid hex color format",
		},
		{
			name:       "non-hex digits",
			category:   Category{Name: "Work", Color: "#GGGGGG"},
			wantReason: "Invalid hex color format",
		},
		{
			name:     "lowercase hex",
			category: Category{Name: "Work", Color: "#ab12cd"},
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.category.Meta = NewMeta(1, time.Now())

			ok, reason := tt.category.Validate()

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestCategorySerialize(t *testing.T) {
	c := Category{
		Meta:        NewMeta(3, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		Name:        "Errands",
		Color:       DefaultCategoryColor,
		Description: "out of the house",
		TaskCount:   2,
	}

	m := c.Serialize()

	assert.Equal(t, int64(3), m["id"])
	assert.Equal(t, "Errands", m["name"])
	assert.Equal(t, "#000000", m["color"])
	assert.Equal(t, "out of the house", m["description"])
	assert.Equal(t, 2, m["task_count"])
	assert.Equal(t, "2026-01-02T03:04:05Z", m["created_at"])
}
