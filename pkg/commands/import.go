package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"todomvc/pkg/adapter"
	"todomvc/pkg/controller"
	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

// Import formats
const (
	ImportTXT      = "txt"
	ImportJSON     = "json"
	ImportExternal = "external"
)

var dateHeaderRe = regexp.MustCompile(`^(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?$`)

// DetectImportFormat guesses the format from the file name: .txt is the
// plain text list, .yaml/.yml and *.ext.json hold external tasks, any
// other .json holds exported tasks.
func DetectImportFormat(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".ext.json"):
		return ImportExternal
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return ImportExternal
	case strings.HasSuffix(lower, ".json"):
		return ImportJSON
	}
	return ImportTXT
}

// Import adds the tasks in filename to the session. An empty format is
// detected from the file name.
func Import(c *controller.Controller, filename, format string) (int, error) {
	if format == "" {
		format = DetectImportFormat(filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()

	var n int
	switch format {
	case ImportTXT:
		n, err = ImportTXTTasks(c, f)
	case ImportJSON:
		n, err = ImportJSONTasks(c, f)
	case ImportExternal:
		var items []adapter.ExternalTask
		items, err = adapter.LoadExternalTasks(f, adapter.FormatFromPath(filename))
		if err == nil {
			n = c.ImportExternal(items)
		}
	default:
		return 0, fmt.Errorf("unknown import format: %s", format)
	}
	if err != nil {
		return n, fmt.Errorf("importing %s: %w", filepath.Base(filename), err)
	}
	utils.Log("import finished", "file", filename, "format", format, "added", n)
	return n, nil
}

func addImported(c *controller.Controller, title string, due time.Time, category, priority string, done bool) bool {
	ensureCategory(c, category)
	if !c.AddTask(title, due, category, priority) {
		return false
	}
	if done {
		tasks := c.ListTasks()
		c.Service().SetDone(tasks[len(tasks)-1].ID, true)
	}
	return true
}

// ImportTXTTasks reads the plain text format: date header lines
// ("15.06.2025:" or "2025-06-15:") followed by "- [x] title +Category !prio".
func ImportTXTTasks(c *controller.Controller, r io.Reader) (int, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	var currentDate time.Time
	var tasksAdded int

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := dateHeaderRe.FindStringSubmatch(line); m != nil {
			var day, month, year int
			if m[1] != "" {
				day, _ = strconv.Atoi(m[1])
				month, _ = strconv.Atoi(m[2])
				year, _ = strconv.Atoi(m[3])
			} else {
				year, _ = strconv.Atoi(m[4])
				month, _ = strconv.Atoi(m[5])
				day, _ = strconv.Atoi(m[6])
			}
			currentDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			continue
		}

		if !strings.HasPrefix(line, "- ") {
			continue
		}
		taskText := strings.TrimSpace(strings.TrimPrefix(line, "- "))

		done := false
		if strings.HasPrefix(taskText, "[x]") {
			done = true
			taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[x]"))
		} else if strings.HasPrefix(taskText, "[ ]") {
			taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[ ]"))
		}

		q := ParseQuickAdd(taskText)
		if !addImported(c, q.Title, currentDate, q.Category, q.Priority, done) {
			utils.Log("import line skipped", "line", line)
			continue
		}
		tasksAdded++
	}
	return tasksAdded, nil
}

// ImportJSONTasks reads tasks written by the json export. Tasks get fresh ids.
func ImportJSONTasks(c *controller.Controller, r io.Reader) (int, error) {
	var tasks []model.Task
	if err := json.NewDecoder(r).Decode(&tasks); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding tasks: %w", err)
	}

	var tasksAdded int
	for _, t := range tasks {
		if addImported(c, t.Title, t.DueDate, t.Category, string(t.Priority), t.Done) {
			tasksAdded++
		}
	}
	return tasksAdded, nil
}
