// Package controller sits between the user interfaces and the model. It owns
// the UI state that has to outlive a single key press or command.
package controller

import (
	"slices"
	"strings"
	"time"

	"todomvc/pkg/adapter"
	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

// EditDraft holds the raw form values of a task being edited
type EditDraft struct {
	Title    string
	Due      string
	Category string
	Priority string
}

// Controller forwards user actions to the Service. It keeps the active
// filter and the per-task edit drafts.
type Controller struct {
	svc     *model.Service
	adapter *adapter.BidirectionalTaskAdapter

	Filter    model.Filter
	EditingID int // 0 when no task is being edited
	Drafts    map[int]EditDraft
}

func New(svc *model.Service, a *adapter.BidirectionalTaskAdapter) *Controller {
	if a == nil {
		a = adapter.NewBidirectionalTaskAdapter()
	}
	return &Controller{
		svc:     svc,
		adapter: a,
		Filter:  model.FilterAll,
		Drafts:  make(map[int]EditDraft),
	}
}

// Service exposes the wrapped service for bulk operations
func (c *Controller) Service() *model.Service {
	return c.svc
}

// ---------- Tasks ----------

func (c *Controller) AddTask(title string, due time.Time, category, priority string) bool {
	return c.svc.AddTask(title, due, category, priority)
}

// UpdateTask replaces all editable fields of a task at once
func (c *Controller) UpdateTask(id int, title string, due time.Time, category, priority string) bool {
	return c.svc.UpdateTask(id, model.TaskUpdate{
		Title:          &title,
		DueDate:        due,
		Category:       &category,
		Priority:       priority,
		UpdateDueDate:  true,
		UpdatePriority: true,
	})
}

func (c *Controller) DeleteTask(id int) {
	c.svc.DeleteTask(id)
	delete(c.Drafts, id)
	if c.EditingID == id {
		c.EditingID = 0
	}
}

// ToggleDone flips the done state of a task
func (c *Controller) ToggleDone(id int) {
	if t, ok := c.svc.GetTask(id); ok {
		c.svc.SetDone(id, !t.Done)
	}
}

func (c *Controller) ListTasks() []model.Task {
	return c.svc.ListTasks()
}

func (c *Controller) Task(id int) (model.Task, bool) {
	return c.svc.GetTask(id)
}

// FilteredTasks applies the active filter
func (c *Controller) FilteredTasks() []model.Task {
	return c.svc.GetFilteredTasks(c.Filter)
}

func (c *Controller) SetFilter(f model.Filter) {
	c.Filter = f
}

func (c *Controller) CycleFilter() model.Filter {
	c.Filter = c.Filter.Next()
	return c.Filter
}

func (c *Controller) Counts() (total, open, done int) {
	return c.svc.GetTaskCounts()
}

// Progress returns done and total counts and the rounded-down done percentage
func (c *Controller) Progress() (done, total, percent int) {
	total, _, done = c.svc.GetTaskCounts()
	if total > 0 {
		percent = done * 100 / total
	}
	return done, total, percent
}

// ---------- Categories ----------

func (c *Controller) Categories() []string {
	return c.svc.ListCategories()
}

func (c *Controller) CanAddCategory() bool {
	return c.svc.CanAddCategory()
}

func (c *Controller) MaxCategories() int {
	return c.svc.MaxCategories()
}

func (c *Controller) AddCategory(name string) bool {
	return c.svc.AddCategory(name)
}

// RenameCategory also rewrites the category in open drafts
func (c *Controller) RenameCategory(oldName, newName string) bool {
	if !c.svc.RenameCategory(oldName, newName) {
		return false
	}
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	for id, d := range c.Drafts {
		if d.Category == oldName {
			d.Category = newName
			c.Drafts[id] = d
		}
	}
	return true
}

func (c *Controller) DeleteCategory(name string) bool {
	if !c.svc.DeleteCategory(name) {
		return false
	}
	name = strings.TrimSpace(name)
	for id, d := range c.Drafts {
		if d.Category == name {
			d.Category = ""
			c.Drafts[id] = d
		}
	}
	return true
}

// ---------- Editing ----------

func draftOf(t model.Task) EditDraft {
	return EditDraft{
		Title:    t.Title,
		Due:      model.FormatDate(t.DueDate),
		Category: t.Category,
		Priority: string(t.Priority),
	}
}

// BeginEdit marks id as being edited, seeding its draft from the stored
// task unless a draft is already pending.
func (c *Controller) BeginEdit(id int) bool {
	t, ok := c.svc.GetTask(id)
	if !ok {
		return false
	}
	c.EditingID = id
	if _, exists := c.Drafts[id]; !exists {
		c.Drafts[id] = draftOf(t)
	}
	return true
}

func (c *Controller) Draft(id int) (EditDraft, bool) {
	d, ok := c.Drafts[id]
	return d, ok
}

func (c *Controller) SaveDraft(id int, d EditDraft) {
	c.Drafts[id] = d
}

// CommitEdit writes the draft of id. An unparseable due date or a blank
// title keeps the draft and returns false.
func (c *Controller) CommitEdit(id int) bool {
	d, ok := c.Drafts[id]
	if !ok {
		return false
	}
	due, err := model.ParseDate(d.Due)
	if err != nil {
		utils.Log("edit rejected", "id", id, "error", err)
		return false
	}
	if !c.UpdateTask(id, d.Title, due, d.Category, d.Priority) {
		return false
	}
	delete(c.Drafts, id)
	if c.EditingID == id {
		c.EditingID = 0
	}
	return true
}

// CancelEdit drops the draft of the task being edited
func (c *Controller) CancelEdit() {
	delete(c.Drafts, c.EditingID)
	c.EditingID = 0
}

// ---------- External tasks ----------

// ImportExternal adds external tasks to the session. Each task gets a fresh
// id; the adapted id only shows up in the log. Labels become categories
// while there is room for them.
func (c *Controller) ImportExternal(items []adapter.ExternalTask) (added int) {
	for _, ext := range items {
		t := c.adapter.Adapt(ext)

		if t.HasCategory() && !slices.Contains(c.svc.ListCategories(), strings.TrimSpace(t.Category)) && c.svc.CanAddCategory() {
			c.svc.AddCategory(t.Category)
		}
		if !c.svc.AddTask(t.Title, t.DueDate, t.Category, string(t.Priority)) {
			utils.Log("external task skipped", "item_id", ext.ItemID)
			continue
		}

		tasks := c.svc.ListTasks()
		created := tasks[len(tasks)-1]
		if t.Done {
			c.svc.SetDone(created.ID, true)
		}
		utils.Log("external task imported", "item_id", ext.ItemID, "adapted_id", t.ID, "id", created.ID)
		added++
	}
	return added
}

// ExportExternal converts every task to the external format
func (c *Controller) ExportExternal() []adapter.ExternalTask {
	return c.adapter.ToExternalMany(c.svc.ListTasks())
}
