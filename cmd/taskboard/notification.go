// Notification commands for the taskboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/internal/memory"
	"github.com/mesh-intelligence/taskboard/pkg/response"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage notifications",
}

var (
	notifyCreateUser       int64
	notifyCreateMessage    string
	notifyCreateType       string
	notifyCreateEntityID   int64
	notifyCreateEntityType string
)

var notifyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a notification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := memory.NotificationParams{
			UserID:  notifyCreateUser,
			Message: notifyCreateMessage,
			Type:    notifyCreateType,
		}
		if cmd.Flags().Changed("entity-id") {
			params.RelatedEntityID = &notifyCreateEntityID
		}
		if notifyCreateEntityType != "" {
			params.RelatedEntityType = &notifyCreateEntityType
		}

		backend, core := openCore()
		defer backend.Detach()

		n, err := core.Notifications.Create(params)
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Created(n.Serialize(), "Notification created"),
			fmt.Sprintf("Created notification %d for user %d", n.ID, n.UserID))
		return nil
	},
}

var (
	notifyListUser   int64
	notifyListType   string
	notifyListUnread bool
)

var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var notifications []*types.Notification
		switch {
		case notifyListUnread && cmd.Flags().Changed("user"):
			notifications = core.Notifications.FindUnread(notifyListUser)
		case cmd.Flags().Changed("user") && notifyListType != "":
			notifications = core.Notifications.ForUserByType(notifyListUser, notifyListType)
		case cmd.Flags().Changed("user"):
			notifications = core.Notifications.FindByUser(notifyListUser)
		case notifyListType != "":
			notifications = core.Notifications.FindByType(notifyListType)
		default:
			notifications = core.Notifications.GetAll()
		}

		items := make([]map[string]any, 0, len(notifications))
		lines := make([]string, 0, len(notifications))
		for _, n := range notifications {
			items = append(items, n.Serialize())
			lines = append(lines, fmt.Sprintf("%d\t[%s]\tuser %d\t%s", n.ID, n.Status, n.UserID, n.Message))
		}
		emitList(items, lines)
		return nil
	},
}

var notifyReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		n, err := core.Notifications.MarkRead(parseID(args[0]))
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Updated(n.Serialize(), "Notification read"),
			fmt.Sprintf("Marked notification %d read", n.ID))
		return nil
	},
}

var notifyArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		n, err := core.Notifications.Archive(parseID(args[0]))
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Updated(n.Serialize(), "Notification archived"),
			fmt.Sprintf("Archived notification %d", n.ID))
		return nil
	},
}

var notifyStatsUser int64

var notifyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show notification counts for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		stats := core.Notifications.Stats(notifyStatsUser)
		emit(response.Success(map[string]any{"total": stats.Total, "unread": stats.Unread}, ""),
			fmt.Sprintf("user %d: %d notifications, %d unread", notifyStatsUser, stats.Total, stats.Unread))
		return nil
	},
}

func init() {
	notifyCreateCmd.Flags().Int64Var(&notifyCreateUser, "user", 0, "recipient user id (required)")
	notifyCreateCmd.Flags().StringVar(&notifyCreateMessage, "message", "", "notification message (required)")
	notifyCreateCmd.Flags().StringVar(&notifyCreateType, "type", "", "notification type (required)")
	notifyCreateCmd.Flags().Int64Var(&notifyCreateEntityID, "entity-id", 0, "related entity id")
	notifyCreateCmd.Flags().StringVar(&notifyCreateEntityType, "entity-type", "", "related entity type")
	notifyCreateCmd.MarkFlagRequired("user")
	notifyCreateCmd.MarkFlagRequired("message")
	notifyCreateCmd.MarkFlagRequired("type")

	notifyListCmd.Flags().Int64Var(&notifyListUser, "user", 0, "filter by user id")
	notifyListCmd.Flags().StringVar(&notifyListType, "type", "", "filter by notification type")
	notifyListCmd.Flags().BoolVar(&notifyListUnread, "unread", false, "only unread notifications")

	notifyStatsCmd.Flags().Int64Var(&notifyStatsUser, "user", 0, "user id (required)")
	notifyStatsCmd.MarkFlagRequired("user")

	notifyCmd.AddCommand(notifyCreateCmd)
	notifyCmd.AddCommand(notifyListCmd)
	notifyCmd.AddCommand(notifyReadCmd)
	notifyCmd.AddCommand(notifyArchiveCmd)
	notifyCmd.AddCommand(notifyStatsCmd)
}
