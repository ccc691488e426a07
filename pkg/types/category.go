package types

import (
	"strings"
	"unicode/utf8"
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#000000"

// Category organizes tasks under a named, colored label. Names are unique
// case-insensitively within the category repository.
type Category struct {
	Meta
	Name        string // Required, 1-50 characters, unique (case-insensitive).
	Color       string // Hex color in #RRGGBB form.
	Description string // Optional.
	TaskCount   int    // Caller-maintained counter.
}

// Validate implements Entity.
func (c *Category) Validate() (bool, string) {
	if strings.TrimSpace(c.Name) == "" {
		return false, "Category name is required"
	}
	if utf8.RuneCountInString(c.Name) > 50 {
		return false, "Category name cannot exceed 50 characters"
	}
	if !isValidHexColor(c.Color) {
		return false, "Invalid hex color format"
	}
	return true, ""
}

// isValidHexColor reports whether color is exactly "#" plus six hex digits.
func isValidHexColor(color string) bool {
	if !strings.HasPrefix(color, "#") {
		return false
	}
	hex := color[1:]
	if len(hex) != 6 {
		return false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Serialize implements Entity.
func (c *Category) Serialize() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"color":       c.Color,
		"description": c.Description,
		"task_count":  c.TaskCount,
		"created_at":  isoTime(c.CreatedAt),
		"updated_at":  isoTime(c.UpdatedAt),
	}
}
