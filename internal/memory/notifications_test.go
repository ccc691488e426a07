package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestNotificationCreateDefaults(t *testing.T) {
	core := New(nil)

	n, err := core.Notifications.Create(NotificationParams{
		UserID:  5,
		Message: "Task #3 assigned to you",
		Type:    types.NotificationTypeTaskAssigned,
	})
	require.NoError(t, err)

	assert.Equal(t, types.NotificationStatusUnread, n.Status)
	assert.Nil(t, n.RelatedEntityID)
	assert.Nil(t, n.RelatedEntityType)
}

func TestNotificationCreateValidation(t *testing.T) {
	core := New(nil)

	_, err := core.Notifications.Create(NotificationParams{
		UserID: 5, Message: "hi", Type: types.NotificationTypeTaskAssigned,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Message must be at least 3 characters")

	_, err = core.Notifications.Create(NotificationParams{
		UserID: 0, Message: "valid message", Type: types.NotificationTypeTaskAssigned,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Invalid user_id")

	_, err = core.Notifications.Create(NotificationParams{
		UserID: 5, Message: "valid message", Type: "shoulder_tap",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "VALIDATION_ERROR: Invalid notification type")
}

func TestNotificationMarkReadAndArchive(t *testing.T) {
	core := New(nil)

	n, err := core.Notifications.Create(NotificationParams{
		UserID: 5, Message: "Project updated", Type: types.NotificationTypeProjectUpdated,
	})
	require.NoError(t, err)

	read, err := core.Notifications.MarkRead(n.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NotificationStatusRead, read.Status)

	// Marking read again is allowed; the outcome is unchanged.
	again, err := core.Notifications.MarkRead(n.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NotificationStatusRead, again.Status)

	archived, err := core.Notifications.Archive(n.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NotificationStatusArchived, archived.Status)

	_, err = core.Notifications.MarkRead(404)
	require.Error(t, err)
	assert.EqualError(t, err, "NOT_FOUND: Notification not found")
}

func TestNotificationQueriesAndStats(t *testing.T) {
	core := New(nil)

	mk := func(userID int64, typ string) *types.Notification {
		n, err := core.Notifications.Create(NotificationParams{
			UserID: userID, Message: "something happened", Type: typ,
		})
		require.NoError(t, err)
		return n
	}

	first := mk(1, types.NotificationTypeTaskAssigned)
	mk(1, types.NotificationTypeTaskDueSoon)
	mk(2, types.NotificationTypeTaskAssigned)

	_, err := core.Notifications.MarkRead(first.ID)
	require.NoError(t, err)

	assert.Len(t, core.Notifications.FindByUser(1), 2)
	assert.Len(t, core.Notifications.FindUnread(1), 1)
	assert.Len(t, core.Notifications.FindByType(types.NotificationTypeTaskAssigned), 2)
	assert.Len(t, core.Notifications.ForUserByType(1, types.NotificationTypeTaskAssigned), 1)
	assert.Equal(t, 1, core.Notifications.UnreadCount(1))

	stats := core.Notifications.Stats(1)
	assert.Equal(t, NotificationStats{Total: 2, Unread: 1}, stats)

	assert.Equal(t, NotificationStats{}, core.Notifications.Stats(99))
}
