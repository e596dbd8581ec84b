package commands

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"todomvc/pkg/controller"
	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

// ErrRejected is returned when the service refuses the input
var ErrRejected = errors.New("rejected")

var (
	categoryTagRe = regexp.MustCompile(`\+([\p{L}\p{N}_-]+)`)
	priorityTagRe = regexp.MustCompile(`!(\p{L}+)`)
	tagsRe        = regexp.MustCompile(`\s*(?:\+[\p{L}\p{N}_-]+|!\p{L}+)\s*`)
)

// QuickAdd is a task line split into title and inline tags
type QuickAdd struct {
	Title    string
	Category string
	Priority string
}

// ParseQuickAdd reads "+Category" and "!priority" tags from text. The
// first tag of each kind wins; all tags are removed from the title.
func ParseQuickAdd(text string) QuickAdd {
	var q QuickAdd
	if m := categoryTagRe.FindStringSubmatch(text); m != nil {
		q.Category = m[1]
	}
	if m := priorityTagRe.FindStringSubmatch(text); m != nil {
		q.Priority = m[1]
	}
	q.Title = strings.Join(strings.Fields(tagsRe.ReplaceAllString(text, " ")), " ")
	return q
}

// FormatQuickAdd is the inverse of ParseQuickAdd
func FormatQuickAdd(t model.Task) string {
	s := t.Title
	if t.HasCategory() && !strings.ContainsAny(t.Category, " \t") {
		s += " +" + t.Category
	}
	if t.HasPriority() {
		s += " !" + string(t.Priority)
	}
	return s
}

// ensureCategory creates name when it is missing and there is room
func ensureCategory(c *controller.Controller, name string) {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(c.Categories(), name) || !c.CanAddCategory() {
		return
	}
	c.AddCategory(name)
}

// AddTask adds a task from quick-add text. Explicit category and priority
// override inline tags; unknown categories are created while there is room.
func AddTask(w io.Writer, c *controller.Controller, text, dateStr, category, priority string) error {
	dueDate, err := model.ParseDate(dateStr)
	if err != nil {
		return err
	}

	q := ParseQuickAdd(text)
	if category != "" {
		q.Category = category
	}
	if priority != "" {
		q.Priority = priority
	}
	ensureCategory(c, q.Category)

	if !c.AddTask(q.Title, dueDate, q.Category, q.Priority) {
		return fmt.Errorf("%w: task title must not be empty", ErrRejected)
	}
	tasks := c.ListTasks()
	added := tasks[len(tasks)-1]
	utils.Log("quick add", "id", added.ID, "text", text)
	fmt.Fprintf(w, "Added task %d: %s\n", added.ID, added.Title)
	return nil
}
