// Project commands for the taskboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/internal/memory"
	"github.com/mesh-intelligence/taskboard/pkg/response"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var (
	projectCreateName        string
	projectCreateDescription string
	projectCreateOwner       int64
	projectCreateStatus      string
)

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		project, err := core.Projects.Create(memory.ProjectParams{
			Name:        projectCreateName,
			Description: projectCreateDescription,
			OwnerID:     projectCreateOwner,
			Status:      projectCreateStatus,
		})
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Created(project.Serialize(), "Project created"),
			fmt.Sprintf("Created project %d: %s", project.ID, project.Name))
		return nil
	},
}

var (
	projectListOwner  int64
	projectListStatus string
	projectListMember int64
	projectListActive bool
)

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var projects []*types.Project
		switch {
		case projectListActive:
			projects = core.Projects.FindActive()
		case cmd.Flags().Changed("owner"):
			projects = core.Projects.FindByOwner(projectListOwner)
		case cmd.Flags().Changed("member"):
			projects = core.Projects.UserProjects(projectListMember)
		case projectListStatus != "":
			projects = core.Projects.FindByStatus(projectListStatus)
		default:
			projects = core.Projects.GetAll()
		}

		items := make([]map[string]any, 0, len(projects))
		lines := make([]string, 0, len(projects))
		for _, p := range projects {
			items = append(items, p.Serialize())
			lines = append(lines, fmt.Sprintf("%d\t[%s]\t%s\t%.0f%%", p.ID, p.Status, p.Name, p.Progress()))
		}
		emitList(items, lines)
		return nil
	},
}

var projectGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		project, err := core.Projects.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}

		emit(response.Success(project.Serialize(), ""),
			fmt.Sprintf("%d\t[%s]\t%s\t%.0f%%", project.ID, project.Status, project.Name, project.Progress()))
		return nil
	},
}

var projectActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Set a project active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		project, err := core.Projects.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}
		project.Activate()
		saveCore(backend, core)

		emit(response.Updated(project.Serialize(), "Project activated"),
			fmt.Sprintf("Activated project %d: %s", project.ID, project.Name))
		return nil
	},
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		project, err := core.Projects.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}
		project.Archive()
		saveCore(backend, core)

		emit(response.Updated(project.Serialize(), "Project archived"),
			fmt.Sprintf("Archived project %d: %s", project.ID, project.Name))
		return nil
	},
}

var projectAddMemberCmd = &cobra.Command{
	Use:   "add-member <id> <user-id>",
	Short: "Add a member to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		project, err := core.Projects.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}

		userID := parseID(args[1])
		if !project.AddMember(userID) {
			emit(response.Success(project.Serialize(), "Already a member"),
				fmt.Sprintf("User %d is already a member of project %d", userID, project.ID))
			return nil
		}
		saveCore(backend, core)

		emit(response.Updated(project.Serialize(), "Member added"),
			fmt.Sprintf("Added user %d to project %d", userID, project.ID))
		return nil
	},
}

var projectRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member <id> <user-id>",
	Short: "Remove a member from a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		project, err := core.Projects.GetOrErr(parseID(args[0]))
		if err != nil {
			fail(err)
		}

		userID := parseID(args[1])
		if !project.RemoveMember(userID) {
			emit(response.Success(project.Serialize(), "Not removed"),
				fmt.Sprintf("User %d was not removed from project %d", userID, project.ID))
			return nil
		}
		saveCore(backend, core)

		emit(response.Updated(project.Serialize(), "Member removed"),
			fmt.Sprintf("Removed user %d from project %d", userID, project.ID))
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		id := parseID(args[0])
		if _, err := core.Projects.GetOrErr(id); err != nil {
			fail(err)
		}
		core.Projects.Delete(id)
		saveCore(backend, core)

		emit(response.Deleted("Project deleted"), fmt.Sprintf("Deleted project %d", id))
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectCreateName, "name", "", "project name (required)")
	projectCreateCmd.Flags().StringVar(&projectCreateDescription, "description", "", "project description")
	projectCreateCmd.Flags().Int64Var(&projectCreateOwner, "owner", 0, "owner user id")
	projectCreateCmd.Flags().StringVar(&projectCreateStatus, "status", "", "initial status (default planning)")
	projectCreateCmd.MarkFlagRequired("name")

	projectListCmd.Flags().Int64Var(&projectListOwner, "owner", 0, "filter by owner user id")
	projectListCmd.Flags().StringVar(&projectListStatus, "status", "", "filter by status")
	projectListCmd.Flags().Int64Var(&projectListMember, "member", 0, "filter by member user id")
	projectListCmd.Flags().BoolVar(&projectListActive, "active", false, "only active projects")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectGetCmd)
	projectCmd.AddCommand(projectActivateCmd)
	projectCmd.AddCommand(projectArchiveCmd)
	projectCmd.AddCommand(projectAddMemberCmd)
	projectCmd.AddCommand(projectRemoveMemberCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
