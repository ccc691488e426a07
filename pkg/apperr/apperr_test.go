package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode string
	}{
		{name: "base", err: New("boom"), wantCode: CodeApp},
		{name: "validation", err: NewValidation("bad field"), wantCode: CodeValidation},
		{name: "not found", err: NewNotFound("Task not found", "Task"), wantCode: CodeNotFound},
		{name: "conflict", err: NewConflict("duplicate"), wantCode: CodeConflict},
		{name: "permission", err: NewPermissionDenied("nope"), wantCode: CodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotNil(t, tt.err.Details)
		})
	}
}

func TestNotFoundCarriesResourceType(t *testing.T) {
	err := NewNotFound("Task not found", "Task")
	assert.Equal(t, "Task", err.Details[DetailResourceType])

	m := err.ToMap()
	details, ok := m["details"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Task", details[DetailResourceType])
}

func TestPermissionDeniedDefaultMessage(t *testing.T) {
	assert.Equal(t, "Permission denied", NewPermissionDenied("").Message)
	assert.Equal(t, "custom", NewPermissionDenied("custom").Message)
}

func TestErrorString(t *testing.T) {
	err := NewValidation("Title is required")
	assert.Equal(t, "VALIDATION_ERROR: Title is required", err.Error())
}

func TestToMapShape(t *testing.T) {
	err := NewConflict("Tag 'urgent' already exists").WithDetail("name", "urgent")
	m := err.ToMap()
	assert.Equal(t, CodeConflict, m["error_code"])
	assert.Equal(t, "Tag 'urgent' already exists", m["message"])
	assert.Equal(t, map[string]any{"name": "urgent"}, m["details"])
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, CodeApp, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeNotFound, CodeOf(NewNotFound("missing", "Tag")))

	wrapped := fmt.Errorf("context: %w", NewValidation("bad"))
	assert.Equal(t, CodeValidation, CodeOf(wrapped))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("x", "Item")))
	assert.False(t, IsNotFound(NewValidation("x")))
	assert.True(t, IsValidation(NewValidation("x")))
	assert.True(t, IsConflict(NewConflict("x")))
	assert.False(t, IsConflict(nil))
}
