package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestNotification() *Notification {
	return &Notification{
		Meta:    NewMeta(1, time.Now().Add(-time.Hour)),
		UserID:  5,
		Message: "Task assigned to you",
		Type:    NotificationTypeTaskAssigned,
		Status:  NotificationStatusUnread,
	}
}

func TestNotificationValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Notification)
		wantOK     bool
		wantReason string
	}{
		{name: "valid notification", mutate: func(*Notification) {}, wantOK: true},
		{
			name:       "message too short",
			mutate:     func(n *Notification) { n.Message = "AB" },
			wantReason: "Message must be at least 3 characters",
		},
		{
			name:       "whitespace padded short message",
			mutate:     func(n *Notification) { n.Message = "  A  " },
			wantReason: "Message must be at least 3 characters",
		},
		{
			name:   "exactly three characters",
			mutate: func(n *Notification) { n.Message = "Hey" },
			wantOK: true,
		},
		{
			// Two characters even though four bytes.
			name:       "multibyte message too short",
			mutate:     func(n *Notification) { n.Message = "éé" },
			wantReason: "Message must be at least 3 characters",
		},
		{
			name:   "multibyte message at three",
			mutate: func(n *Notification) { n.Message = "ééé" },
			wantOK: true,
		},
		{
			name:       "zero user id",
			mutate:     func(n *Notification) { n.UserID = 0 },
			wantReason: "Invalid user_id",
		},
		{
			name:       "negative user id",
			mutate:     func(n *Notification) { n.UserID = -4 },
			wantReason: "Invalid user_id",
		},
		{
			name:       "unknown type",
			mutate:     func(n *Notification) { n.Type = "reminder" },
			wantReason: "Invalid notification type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNotification()
			tt.mutate(n)

			ok, reason := n.Validate()

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestNotificationMarkReadIdempotent(t *testing.T) {
	n := newTestNotification()

	n.MarkRead()
	assert.Equal(t, NotificationStatusRead, n.Status)
	first := n.UpdatedAt

	// Outcome is idempotent, but the timestamp still advances on every call.
	time.Sleep(time.Millisecond)
	n.MarkRead()
	assert.Equal(t, NotificationStatusRead, n.Status)
	assert.True(t, n.UpdatedAt.After(first), "repeated MarkRead must advance UpdatedAt")
}

func TestNotificationArchive(t *testing.T) {
	n := newTestNotification()
	before := n.UpdatedAt

	n.Archive()

	assert.Equal(t, NotificationStatusArchived, n.Status)
	assert.True(t, n.UpdatedAt.After(before))
}

func TestNotificationSerialize(t *testing.T) {
	relID := int64(42)
	relType := "Task"
	n := newTestNotification()
	n.RelatedEntityID = &relID
	n.RelatedEntityType = &relType

	m := n.Serialize()

	assert.Equal(t, int64(1), m["id"])
	assert.Equal(t, int64(5), m["user_id"])
	assert.Equal(t, "task_assigned", m["notification_type"])
	assert.Equal(t, "unread", m["status"])
	assert.Equal(t, int64(42), m["related_entity_id"])
	assert.Equal(t, "Task", m["related_entity_type"])
}

func TestNotificationSerializeAbsentReference(t *testing.T) {
	m := newTestNotification().Serialize()

	// Keys are present even when the optional reference is absent.
	assert.Contains(t, m, "related_entity_id")
	assert.Contains(t, m, "related_entity_type")
	assert.Nil(t, m["related_entity_id"])
	assert.Nil(t, m["related_entity_type"])
}
