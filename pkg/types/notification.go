package types

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Notification statuses.
const (
	NotificationStatusUnread   = "unread"
	NotificationStatusRead     = "read"
	NotificationStatusArchived = "archived"
)

// NotificationStatuses lists all notification statuses for enumeration.
var NotificationStatuses = []string{
	NotificationStatusUnread,
	NotificationStatusRead,
	NotificationStatusArchived,
}

// Notification types.
const (
	NotificationTypeTaskAssigned   = "task_assigned"
	NotificationTypeTaskCompleted  = "task_completed"
	NotificationTypeTaskDueSoon    = "task_due_soon"
	NotificationTypeProjectUpdated = "project_updated"
	NotificationTypeCommentAdded   = "comment_added"
)

// NotificationTypes lists all notification types for enumeration.
var NotificationTypes = []string{
	NotificationTypeTaskAssigned,
	NotificationTypeTaskCompleted,
	NotificationTypeTaskDueSoon,
	NotificationTypeProjectUpdated,
	NotificationTypeCommentAdded,
}

// validNotificationTypes is the set of recognized notification types.
var validNotificationTypes = map[string]bool{
	NotificationTypeTaskAssigned:   true,
	NotificationTypeTaskCompleted:  true,
	NotificationTypeTaskDueSoon:    true,
	NotificationTypeProjectUpdated: true,
	NotificationTypeCommentAdded:   true,
}

// Notification is a message addressed to a user, optionally referencing
// another entity by (id, type-name) pair. The reference is not checked
// against that entity's repository.
type Notification struct {
	Meta
	UserID            int64   // Receiving user, must be positive.
	Message           string  // Required, at least 3 characters.
	Type              string  // One of the NotificationType constants.
	Status            string  // One of the NotificationStatus constants.
	RelatedEntityID   *int64  // Optional related entity id.
	RelatedEntityType *string // Optional related entity type name.
}

// Validate implements Entity.
func (n *Notification) Validate() (bool, string) {
	if utf8.RuneCountInString(strings.TrimSpace(n.Message)) < 3 {
		return false, "Message must be at least 3 characters"
	}
	if n.UserID <= 0 {
		return false, "Invalid user_id"
	}
	if !validNotificationTypes[n.Type] {
		return false, "Invalid notification type"
	}
	return true, ""
}

// MarkRead sets the status to read. Idempotent in outcome, but UpdatedAt
// advances on every call.
func (n *Notification) MarkRead() {
	n.Status = NotificationStatusRead
	n.UpdatedAt = time.Now()
}

// Archive sets the status to archived. Idempotent in outcome, but
// UpdatedAt advances on every call.
func (n *Notification) Archive() {
	n.Status = NotificationStatusArchived
	n.UpdatedAt = time.Now()
}

// Serialize implements Entity.
func (n *Notification) Serialize() map[string]any {
	return map[string]any{
		"id":                  n.ID,
		"user_id":             n.UserID,
		"message":             n.Message,
		"notification_type":   n.Type,
		"status":              n.Status,
		"related_entity_id":   int64Ptr(n.RelatedEntityID),
		"related_entity_type": strPtr(n.RelatedEntityType),
		"created_at":          isoTime(n.CreatedAt),
		"updated_at":          isoTime(n.UpdatedAt),
	}
}
