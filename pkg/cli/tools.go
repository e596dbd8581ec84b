package cli

import (
	"github.com/spf13/cobra"

	"todomvc/pkg/adapter"
	"todomvc/pkg/commands"
)

func (a *app) purgeCmd() *cobra.Command {
	var opts commands.PurgeOptions
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete many tasks at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Purge(cmd.InOrStdin(), cmd.OutOrStdout(), a.sess.Service, opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.DoneOnly, "done", false, "only done tasks")
	cmd.Flags().BoolVar(&opts.UndoneOnly, "undone", false, "only open tasks")
	cmd.Flags().StringVar(&opts.Category, "category", "", "only tasks of this category")
	cmd.Flags().StringVar(&opts.Date, "date", "", "only tasks due on this date")
	cmd.Flags().BoolVarP(&opts.SkipConfirm, "yes", "y", false, "skip confirmation")
	return cmd
}

func (a *app) adaptCmd() *cobra.Command {
	var (
		reverse bool
		format  string
	)
	cmd := &cobra.Command{
		Use:   "adapt FILE",
		Short: "Convert external tasks to internal ones, or back with --reverse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Adapt(cmd.OutOrStdout(), a.sess.Adapter, args[0], reverse, format)
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "read exported tasks and print external tasks")
	cmd.Flags().StringVar(&format, "format", adapter.FormatJSON, "output format with --reverse (json, yaml)")
	return cmd
}

func (a *app) factoryCmd() *cobra.Command {
	var opts commands.FactoryOptions
	cmd := &cobra.Command{
		Use:   "factory KIND TITLE",
		Short: "Build a showcase task (todo, shopping, work) and describe it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Factory(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Variant, "variant", commands.VariantPlain, "plain, simple or detailed")
	f.BoolVar(&opts.Done, "done", false, "mark as done")
	f.IntVar(&opts.Quantity, "quantity", 1, "shopping quantity")
	f.StringVar(&opts.Store, "store", "", "shopping store")
	f.StringVar(&opts.Project, "project", "", "work project")
	f.StringVar(&opts.Priority, "priority", "", "priority")
	f.StringVar(&opts.Category, "category", "", "category")
	f.StringVar(&opts.Deadline, "deadline", "", "work deadline")
	f.BoolVar(&opts.Details, "details", false, "print all fields")
	return cmd
}
