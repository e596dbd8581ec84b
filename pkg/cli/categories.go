package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"todomvc/pkg/commands"
)

func (a *app) categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c := a.sess.Controller
				for _, name := range c.Categories() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "(%d/%d)\n", len(c.Categories()), c.MaxCategories())
				return nil
			},
		},
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c := a.sess.Controller
				if !c.CanAddCategory() {
					return fmt.Errorf("%w: at most %d categories allowed", commands.ErrRejected, c.MaxCategories())
				}
				if !c.AddCategory(args[0]) {
					return fmt.Errorf("%w: category %q is empty or exists", commands.ErrRejected, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename OLD NEW",
			Short: "Rename a category and move its tasks along",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !a.sess.Controller.RenameCategory(args[0], args[1]) {
					return fmt.Errorf("%w: cannot rename %q to %q", commands.ErrRejected, args[0], args[1])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s to %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a category; its tasks keep no category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !a.sess.Controller.DeleteCategory(args[0]) {
					return fmt.Errorf("%w: unknown category %q", commands.ErrRejected, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
