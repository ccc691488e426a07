// Category commands for the taskboard CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/pkg/response"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var (
	categoryCreateName        string
	categoryCreateColor       string
	categoryCreateDescription string
)

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		category, err := core.Categories.Create(categoryCreateName, categoryCreateColor, categoryCreateDescription)
		if err != nil {
			fail(err)
		}
		saveCore(backend, core)

		emit(response.Created(category.Serialize(), "Category created"),
			fmt.Sprintf("Created category %d: %s (%s)", category.ID, category.Name, category.Color))
		return nil
	},
}

var categoryListName string

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var categories []*types.Category
		if categoryListName != "" {
			categories = core.Categories.FindByName(categoryListName)
		} else {
			categories = core.Categories.GetAll()
		}

		items := make([]map[string]any, 0, len(categories))
		lines := make([]string, 0, len(categories))
		for _, c := range categories {
			items = append(items, c.Serialize())
			lines = append(lines, fmt.Sprintf("%d\t%s\t%s", c.ID, c.Name, c.Color))
		}
		emitList(items, lines)
		return nil
	},
}

var categoryGetName string

var categoryGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a category by id or --name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		var category *types.Category
		var err error
		switch {
		case len(args) == 1:
			category, err = core.Categories.GetOrErr(parseID(args[0]))
		case categoryGetName != "":
			category, err = core.Categories.GetByName(categoryGetName)
		default:
			return fmt.Errorf("either an id argument or --name is required")
		}
		if err != nil {
			fail(err)
		}

		emit(response.Success(category.Serialize(), ""),
			fmt.Sprintf("%d\t%s\t%s", category.ID, category.Name, category.Color))
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, core := openCore()
		defer backend.Detach()

		id := parseID(args[0])
		if _, err := core.Categories.GetOrErr(id); err != nil {
			fail(err)
		}
		core.Categories.Delete(id)
		saveCore(backend, core)

		emit(response.Deleted("Category deleted"), fmt.Sprintf("Deleted category %d", id))
		return nil
	},
}

func init() {
	categoryCreateCmd.Flags().StringVar(&categoryCreateName, "name", "", "category name (required)")
	categoryCreateCmd.Flags().StringVar(&categoryCreateColor, "color", "", "hex color (default #000000)")
	categoryCreateCmd.Flags().StringVar(&categoryCreateDescription, "description", "", "category description")
	categoryCreateCmd.MarkFlagRequired("name")

	categoryListCmd.Flags().StringVar(&categoryListName, "name", "", "filter by name substring")
	categoryGetCmd.Flags().StringVar(&categoryGetName, "name", "", "look up by exact name (case-insensitive)")

	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryGetCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}
