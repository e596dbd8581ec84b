package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"todomvc/pkg/adapter"
	"todomvc/pkg/controller"
	"todomvc/pkg/model"
)

// Export types
const (
	ExportJSON     = "json"
	ExportTXT      = "txt"
	ExportExternal = "external"
)

const (
	txtDateLayout     = "02.01.2006"
	lockRetryInterval = 50 * time.Millisecond
)

// EncodeTasks writes tasks in one of the export formats
func EncodeTasks(w io.Writer, c *controller.Controller, exportType string) error {
	tasks := c.ListTasks()

	switch exportType {
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case ExportTXT:
		_, err := io.WriteString(w, formatTXT(tasks))
		return err
	case ExportExternal:
		return adapter.WriteExternalTasks(w, adapter.FormatJSON, c.ExportExternal())
	}
	return fmt.Errorf("unknown export type: %s", exportType)
}

// formatTXT lists undated tasks first, then one block per due date
func formatTXT(tasks []model.Task) string {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		return a.DueDate.Compare(b.DueDate)
	})

	var lines []string
	var lastDate string
	for _, task := range sorted {
		if task.HasDueDate() {
			dateStr := task.DueDate.Format(txtDateLayout)
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}
		}

		status := " "
		if task.Done {
			status = "x"
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s", status, FormatQuickAdd(task)))
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// Export writes all tasks to filename while holding filename.lock
func Export(ctx context.Context, c *controller.Controller, filename, exportType string) (int, error) {
	var buf bytes.Buffer
	if err := EncodeTasks(&buf, c, exportType); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return 0, fmt.Errorf("creating directory: %w", err)
	}

	lock := flock.New(filename + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return 0, fmt.Errorf("locking %s: %w", filename, err)
	}
	if !locked {
		return 0, fmt.Errorf("locking %s: file is busy", filename)
	}
	defer lock.Unlock()

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("writing file: %w", err)
	}
	return len(c.ListTasks()), nil
}
