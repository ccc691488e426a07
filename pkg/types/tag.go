package types

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Tag is a lightweight label with a usage counter. Names are unique
// case-insensitively within the tag repository and must be alphanumeric.
type Tag struct {
	Meta
	Name       string // Required, 1-30 alphanumeric characters.
	UsageCount int    // Caller-maintained counter, never negative.
}

// Validate implements Entity.
func (t *Tag) Validate() (bool, string) {
	if strings.TrimSpace(t.Name) == "" {
		return false, "Tag name is required"
	}
	if utf8.RuneCountInString(t.Name) > 30 {
		return false, "Tag name cannot exceed 30 characters"
	}
	if !isAlphanumeric(t.Name) {
		return false, "Tag name must be alphanumeric"
	}
	return true, ""
}

// isAlphanumeric reports whether s consists only of letters and digits.
func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// IncrementUsage bumps the usage counter.
func (t *Tag) IncrementUsage() {
	t.UsageCount++
	t.UpdatedAt = time.Now()
}

// DecrementUsage lowers the usage counter, stopping at zero.
func (t *Tag) DecrementUsage() {
	if t.UsageCount > 0 {
		t.UsageCount--
		t.UpdatedAt = time.Now()
	}
}

// Serialize implements Entity.
func (t *Tag) Serialize() map[string]any {
	return map[string]any{
		"id":          t.ID,
		"name":        t.Name,
		"usage_count": t.UsageCount,
		"created_at":  isoTime(t.CreatedAt),
		"updated_at":  isoTime(t.UpdatedAt),
	}
}
