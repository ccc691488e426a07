package memory

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// notificationResource is the NOT_FOUND resource label for notifications.
const notificationResource = "Notification"

// NotificationRepository manages notifications.
type NotificationRepository struct {
	store *store[*types.Notification]
	log   *slog.Logger
}

// NotificationParams carries caller-supplied fields for notification
// creation. Zero-value Status defaults to unread.
type NotificationParams struct {
	UserID            int64
	Message           string
	Type              string
	Status            string
	RelatedEntityID   *int64
	RelatedEntityType *string
}

// NotificationStats summarizes a user's notification counts.
type NotificationStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// Create allocates an id, constructs the notification, validates it, and
// stores it.
func (r *NotificationRepository) Create(p NotificationParams) (*types.Notification, error) {
	if p.Status == "" {
		p.Status = types.NotificationStatusUnread
	}

	notification := &types.Notification{
		Meta:              types.NewMeta(r.store.allocateID(), time.Now()),
		UserID:            p.UserID,
		Message:           p.Message,
		Type:              p.Type,
		Status:            p.Status,
		RelatedEntityID:   p.RelatedEntityID,
		RelatedEntityType: p.RelatedEntityType,
	}

	if ok, reason := notification.Validate(); !ok {
		return nil, apperr.NewValidation(reason)
	}

	r.store.insert(notification)
	r.log.Info("notification created", "id", notification.ID, "user_id", notification.UserID, "type", notification.Type)
	return notification, nil
}

// Get returns the notification with the given id, if present.
func (r *NotificationRepository) Get(id int64) (*types.Notification, bool) { return r.store.get(id) }

// GetOrErr returns the notification or a NOT_FOUND error.
func (r *NotificationRepository) GetOrErr(id int64) (*types.Notification, error) {
	return r.store.getOrErr(id, notificationResource)
}

// GetAll returns all notifications in insertion order.
func (r *NotificationRepository) GetAll() []*types.Notification { return r.store.getAll() }

// Update replaces the stored notification only if id exists.
func (r *NotificationRepository) Update(id int64, n *types.Notification) bool {
	return r.store.update(id, n)
}

// Delete permanently removes the notification.
func (r *NotificationRepository) Delete(id int64) bool { return r.store.delete(id) }

// Count returns the number of stored notifications.
func (r *NotificationRepository) Count() int { return r.store.count() }

// Exists reports whether a notification with the given id is stored.
func (r *NotificationRepository) Exists(id int64) bool { return r.store.exists(id) }

// MarkRead marks the notification read, returning it, or a NOT_FOUND error.
func (r *NotificationRepository) MarkRead(id int64) (*types.Notification, error) {
	n, err := r.GetOrErr(id)
	if err != nil {
		return nil, err
	}
	n.MarkRead()
	return n, nil
}

// Archive archives the notification, returning it, or a NOT_FOUND error.
func (r *NotificationRepository) Archive(id int64) (*types.Notification, error) {
	n, err := r.GetOrErr(id)
	if err != nil {
		return nil, err
	}
	n.Archive()
	return n, nil
}

// FindByUser returns the given user's notifications.
func (r *NotificationRepository) FindByUser(userID int64) []*types.Notification {
	return r.filter(func(n *types.Notification) bool { return n.UserID == userID })
}

// FindUnread returns the given user's unread notifications.
func (r *NotificationRepository) FindUnread(userID int64) []*types.Notification {
	return r.filter(func(n *types.Notification) bool {
		return n.UserID == userID && n.Status == types.NotificationStatusUnread
	})
}

// FindByType returns notifications of the given type.
func (r *NotificationRepository) FindByType(typ string) []*types.Notification {
	return r.filter(func(n *types.Notification) bool { return n.Type == typ })
}

// ForUserByType returns the given user's notifications of the given type.
func (r *NotificationRepository) ForUserByType(userID int64, typ string) []*types.Notification {
	return r.filter(func(n *types.Notification) bool {
		return n.UserID == userID && n.Type == typ
	})
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationRepository) UnreadCount(userID int64) int {
	return len(r.FindUnread(userID))
}

// Stats returns total and unread counts for the user.
func (r *NotificationRepository) Stats(userID int64) NotificationStats {
	return NotificationStats{
		Total:  len(r.FindByUser(userID)),
		Unread: r.UnreadCount(userID),
	}
}

func (r *NotificationRepository) filter(keep func(*types.Notification) bool) []*types.Notification {
	out := []*types.Notification{}
	for _, n := range r.store.getAll() {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Restore replaces the repository contents from a snapshot.
func (r *NotificationRepository) Restore(notifications []*types.Notification, nextID int64) error {
	return r.store.restore(notifications, nextID)
}

// NextID exposes the counter value for snapshotting.
func (r *NotificationRepository) NextID() int64 { return r.store.nextID }
