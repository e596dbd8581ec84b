package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"todomvc/pkg/adapter"
	"todomvc/pkg/model"
)

// Adapt runs the adapter over a file without touching the session. Forward
// mode reads external tasks and prints internal tasks as JSON; reverse mode
// reads exported tasks and prints external tasks in format.
func Adapt(w io.Writer, a *adapter.BidirectionalTaskAdapter, filename string, reverse bool, format string) error {
	if !reverse {
		items, err := adapter.LoadExternalFile(filename)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a.AdaptMany(items))
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()

	var tasks []model.Task
	if err := json.NewDecoder(f).Decode(&tasks); err != nil {
		return fmt.Errorf("decoding tasks: %w", err)
	}
	return adapter.WriteExternalTasks(w, format, a.ToExternalMany(tasks))
}
