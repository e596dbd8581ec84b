package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"todomvc/pkg/commands"
	"todomvc/pkg/model"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

// lookup resolves a task id argument to a task of the session
func (a *app) lookup(arg string) (model.Task, error) {
	id, err := parseID(arg)
	if err != nil {
		return model.Task{}, err
	}
	t, ok := a.sess.Controller.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %d not found", id)
	}
	return t, nil
}

func (a *app) addCmd() *cobra.Command {
	var date, category, priority string
	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a task; +Tag sets the category, !prio the priority",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.AddTask(cmd.OutOrStdout(), a.sess.Controller, strings.Join(args, " "), date, category, priority)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "due date (YYYY-MM-DD or DD.MM.YYYY)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (Niedrig, Mittel, Hoch)")
	return cmd
}

func writeTaskTable(w io.Writer, tasks []model.Task) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tCATEGORY\tPRIORITY\tDUE")
	for _, t := range tasks {
		status := "[ ]"
		if t.Done {
			status = "[x]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, status, t.Title, dash(t.Category), dash(string(t.Priority)), dash(model.FormatDate(t.DueDate)))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *app) listCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.sess.Controller
			c.SetFilter(model.ParseFilter(filter))

			out := cmd.OutOrStdout()
			if err := writeTaskTable(out, c.FilteredTasks()); err != nil {
				return err
			}
			total, open, done := c.Counts()
			_, _, percent := c.Progress()
			fmt.Fprintf(out, "\n%s | %s: %d | %s: %d | %s: %d\n", c.Filter,
				model.FilterAll, total, model.FilterOpen, open, model.FilterDone, done)
			fmt.Fprintf(out, "Erledigt: %d/%d (%d%%)\n", done, total, percent)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter: all|open|done (Alle|Offen|Erledigt)")
	return cmd
}

func (a *app) doneCmd(done bool) *cobra.Command {
	use, short := "done ID...", "Mark tasks as done"
	if !done {
		use, short = "undone ID...", "Mark tasks as open"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				t, err := a.lookup(arg)
				if err != nil {
					return err
				}
				a.sess.Service.SetDone(t.ID, done)
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d: %s\n", t.ID, statusWord(done))
			}
			return nil
		},
	}
}

func statusWord(done bool) string {
	if done {
		return string(model.FilterDone)
	}
	return string(model.FilterOpen)
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				t, err := a.lookup(arg)
				if err != nil {
					return err
				}
				a.sess.Controller.DeleteTask(t.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d: %s\n", t.ID, t.Title)
			}
			return nil
		},
	}
}

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE...",
		Short: "Change the title of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if !a.sess.Service.RenameTask(t.ID, strings.Join(args[1:], " ")) {
				return fmt.Errorf("%w: task title must not be empty", commands.ErrRejected)
			}
			t, _ = a.sess.Controller.Task(t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var title, date, category, priority string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change several fields of a task at once; empty values clear a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.lookup(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var u model.TaskUpdate
			if flags.Changed("title") {
				u.Title = &title
			}
			if flags.Changed("date") {
				due, err := model.ParseDate(date)
				if err != nil {
					return err
				}
				u.DueDate, u.UpdateDueDate = due, true
			}
			if flags.Changed("category") {
				u.Category = &category
			}
			if flags.Changed("priority") {
				u.Priority, u.UpdatePriority = priority, true
			}

			if !a.sess.Service.UpdateTask(t.ID, u) {
				return fmt.Errorf("%w: task title must not be empty", commands.ErrRejected)
			}
			t, _ = a.sess.Controller.Task(t.ID)
			return writeTaskTable(cmd.OutOrStdout(), []model.Task{t})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new due date")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	return cmd
}
