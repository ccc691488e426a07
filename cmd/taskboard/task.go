// Task commands for the taskboard CLI.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/internal/memory"
	"github.com/mesh-intelligence/taskboard/pkg/response"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var (
	taskCreateTitle       string
	taskCreateDescription string
	taskCreateProject     int64
	taskCreateStatus      string
	taskCreatePriority    string
	taskCreateDue         string
	taskCreateAssignee    int64
	taskCreateTags        string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := memory.TaskParams{
			Title:       taskCreateTitle,
			Description: taskCreateDescription,
			ProjectID:   taskCreateProject,
			Status:      taskCreateStatus,
			Priority:    taskCreatePriority,
			Tags:        splitList(taskCreateTags),
		}

		if taskCreateDue != "" {
			due, err := parseDate(taskCreateDue)
			if err != nil {
				fmt.Fprintln(os.Stderr, "task create:", err)
				os.Exit(exitUserError)
			}
			params.DueDate = &due
		}
		if cmd.Flags().Changed("assignee") {
			params.AssigneeID = &taskCreateAssignee
		}

		backend, core := openCore()
		defer backend.Detach()

		task, err := core.Tasks.Create(params)
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Created(task.Serialize(), "Task created"),
			fmt.Sprintf("Created task %d: %s", task.ID, task.Title))
		return nil
	},
}

var (
	taskListProject  int64
	taskListStatus   string
	taskListPriority string
	taskListAssignee int64
	taskListTag      string
	taskListOverdue  bool
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var tasks []*types.Task
		switch {
		case taskListOverdue:
			tasks = core.Tasks.FindOverdue()
		case cmd.Flags().Changed("project"):
			tasks = core.Tasks.FindByProject(taskListProject)
		case taskListStatus != "":
			tasks = core.Tasks.FindByStatus(taskListStatus)
		case taskListPriority != "":
			tasks = core.Tasks.FindByPriority(taskListPriority)
		case cmd.Flags().Changed("assignee"):
			tasks = core.Tasks.FindByAssignee(taskListAssignee)
		case taskListTag != "":
			tasks = core.Tasks.FindByTag(taskListTag)
		default:
			tasks = core.Tasks.GetAll()
		}

		items := make([]map[string]any, 0, len(tasks))
		lines := make([]string, 0, len(tasks))
		for _, task := range tasks {
			items = append(items, task.Serialize())
			lines = append(lines, fmt.Sprintf("%d\t[%s/%s]\t%s", task.ID, task.Status, task.Priority, task.Title))
		}
		emitList(items, lines)
		return nil
	},
}

var taskGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		task, err := core.Tasks.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}

		emit(response.Success(task.Serialize(), ""),
			fmt.Sprintf("%d\t[%s/%s]\t%s", task.ID, task.Status, task.Priority, task.Title))
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		task, err := core.Tasks.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}
		task.MarkDone()
		saveCore(backend, core)

		emit(response.Updated(task.Serialize(), "Task completed"),
			fmt.Sprintf("Completed task %d: %s", task.ID, task.Title))
		return nil
	},
}

var taskStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Mark a task in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		task, err := core.Tasks.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}
		task.MarkInProgress()
		saveCore(backend, core)

		emit(response.Updated(task.Serialize(), "Task started"),
			fmt.Sprintf("Started task %d: %s", task.ID, task.Title))
		return nil
	},
}

var taskTagCmd = &cobra.Command{
	Use:   "tag <id> <tag>",
	Short: "Add a tag to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		task, err := core.Tasks.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}

		if !task.AddTag(args[1]) {
			emit(response.Success(task.Serialize(), "Tag already present"),
				fmt.Sprintf("Task %d already tagged %q", task.ID, args[1]))
			return nil
		}
		saveCore(backend, core)

		emit(response.Updated(task.Serialize(), "Tag added"),
			fmt.Sprintf("Tagged task %d with %q", task.ID, args[1]))
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		id := parseID(args[0])
		if _, err := core.Tasks.GetOrErr(id); err != nil {
			fail(err)
		}
		core.Tasks.Delete(id)
		saveCore(backend, core)

		emit(response.Deleted("Task deleted"), fmt.Sprintf("Deleted task %d", id))
		return nil
	},
}

func init() {
	taskCreateCmd.Flags().StringVar(&taskCreateTitle, "title", "", "task title (required)")
	taskCreateCmd.Flags().StringVar(&taskCreateDescription, "description", "", "task description")
	taskCreateCmd.Flags().Int64Var(&taskCreateProject, "project", 0, "owning project id")
	taskCreateCmd.Flags().StringVar(&taskCreateStatus, "status", "", "initial status (default todo)")
	taskCreateCmd.Flags().StringVar(&taskCreatePriority, "priority", "", "priority (default medium)")
	taskCreateCmd.Flags().StringVar(&taskCreateDue, "due", "", "due date (YYYY-MM-DD or RFC 3339)")
	taskCreateCmd.Flags().Int64Var(&taskCreateAssignee, "assignee", 0, "assignee user id")
	taskCreateCmd.Flags().StringVar(&taskCreateTags, "tags", "", "comma-separated tags")
	taskCreateCmd.MarkFlagRequired("title")

	taskListCmd.Flags().Int64Var(&taskListProject, "project", 0, "filter by project id")
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "filter by status")
	taskListCmd.Flags().StringVar(&taskListPriority, "priority", "", "filter by priority")
	taskListCmd.Flags().Int64Var(&taskListAssignee, "assignee", 0, "filter by assignee user id")
	taskListCmd.Flags().StringVar(&taskListTag, "tag", "", "filter by tag")
	taskListCmd.Flags().BoolVar(&taskListOverdue, "overdue", false, "only overdue tasks")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskGetCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskTagCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// splitList parses a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}
