// Tag commands for the taskboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/pkg/response"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		tag, err := core.Tags.Create(args[0])
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Created(tag.Serialize(), "Tag created"),
			fmt.Sprintf("Created tag %d: %s", tag.ID, tag.Name))
		return nil
	},
}

var (
	tagListName    string
	tagListPopular int
)

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var tags []*types.Tag
		switch {
		case cmd.Flags().Changed("popular"):
			tags = core.Tags.PopularTags(tagListPopular)
		case tagListName != "":
			tags = core.Tags.FindByName(tagListName)
		default:
			tags = core.Tags.GetAll()
		}

		items := make([]map[string]any, 0, len(tags))
		lines := make([]string, 0, len(tags))
		for _, tag := range tags {
			items = append(items, tag.Serialize())
			lines = append(lines, fmt.Sprintf("%d\t%s\t(used %d)", tag.ID, tag.Name, tag.UsageCount))
		}
		emitList(items, lines)
		return nil
	},
}

var tagGetName string

var tagGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a tag by id or --name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var tag *types.Tag
		var err error
		switch {
		case len(args) == 1:
			tag, err = core.Tags.GetOrErr(parseID(args[0]))
		case tagGetName != "":
			tag, err = core.Tags.GetByName(tagGetName)
		default:
			return fmt.Errorf("either an id argument or --name is required")
		}
		if err != nil {
			fail(err)
		}

		emit(response.Success(tag.Serialize(), ""),
			fmt.Sprintf("%d\t%s\t(used %d)", tag.ID, tag.Name, tag.UsageCount))
		return nil
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		id := parseID(args[0])
		if _, err := core.Tags.GetOrErr(id); err != nil {
			fail(err)
		}
		core.Tags.Delete(id)
		saveCore(backend, core)

		emit(response.Deleted("Tag deleted"), fmt.Sprintf("Deleted tag %d", id))
		return nil
	},
}

func init() {
	tagListCmd.Flags().StringVar(&tagListName, "name", "", "filter by name substring")
	tagListCmd.Flags().IntVar(&tagListPopular, "popular", 0, "show the N most used tags")
	tagGetCmd.Flags().StringVar(&tagGetName, "name", "", "look up by exact name (case-insensitive)")

	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagGetCmd)
	tagCmd.AddCommand(tagDeleteCmd)
}
