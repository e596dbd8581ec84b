package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"todomvc/pkg/model"
)

// PurgeOptions selects the tasks to delete. Zero values match everything.
type PurgeOptions struct {
	Date        string
	Category    string
	DoneOnly    bool
	UndoneOnly  bool
	SkipConfirm bool
}

func (o PurgeOptions) matcher() (func(model.Task) bool, error) {
	day, err := model.ParseDate(o.Date)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(o.Category)

	return func(t model.Task) bool {
		if !day.IsZero() && !t.DueDate.Equal(day) {
			return false
		}
		if category != "" && t.Category != category {
			return false
		}
		if o.DoneOnly && !t.Done {
			return false
		}
		if o.UndoneOnly && t.Done {
			return false
		}
		return true
	}, nil
}

// Purge deletes every matching task after asking on in, unless
// SkipConfirm is set. It returns the number of deleted tasks.
func Purge(in io.Reader, out io.Writer, svc *model.Service, opts PurgeOptions) (int, error) {
	if opts.DoneOnly && opts.UndoneOnly {
		return 0, fmt.Errorf("--done and --undone exclude each other")
	}
	match, err := opts.matcher()
	if err != nil {
		return 0, err
	}

	var ids []int
	for _, t := range svc.ListTasks() {
		if match(t) {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No matching tasks.")
		return 0, nil
	}

	if !opts.SkipConfirm {
		fmt.Fprintf(out, "Are you sure you want to delete %d task(s)? (y/N): ", len(ids))
		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Operation cancelled.")
			return 0, nil
		}
	}

	for _, id := range ids {
		svc.DeleteTask(id)
	}
	fmt.Fprintf(out, "Successfully deleted %d task(s)\n", len(ids))
	return len(ids), nil
}
