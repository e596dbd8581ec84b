package model

import (
	"slices"
	"strings"

	"todomvc/pkg/utils"
)

// Repository stores tasks and category names for one session. It performs
// no business validation beyond what keeps its own data consistent: every
// operation is total, bad input yields false or nothing at all.
type Repository interface {
	// EnsureInitialized sets up empty state if absent. Safe to call repeatedly.
	EnsureInitialized()

	ListAll() []Task
	NextID() int
	Add(task Task)
	Delete(id int)
	Update(id int, patch TaskPatch)

	ListCategories() []string
	AddCategory(name string) bool
	// RenameCategory renames oldName to newName and moves its tasks along.
	RenameCategory(oldName, newName string) bool
	// DeleteCategory removes name and clears it from every task.
	DeleteCategory(name string) bool
	MaxCategories() int
}

// SessionRepository keeps a session's tasks in memory. The zero value is
// ready to use and lazily initialises itself on first access.
//
// It is not safe for concurrent use; give every session its own instance.
type SessionRepository struct {
	initialized   bool
	tasks         []Task
	nextID        int
	categories    []string
	maxCategories int
}

// NewSessionRepository creates an initialised repository holding at most
// maxCategories categories. Non-positive values select DefaultMaxCategories.
func NewSessionRepository(maxCategories int) *SessionRepository {
	r := &SessionRepository{maxCategories: maxCategories}
	r.EnsureInitialized()
	return r
}

func (r *SessionRepository) EnsureInitialized() {
	if r.initialized {
		return
	}
	if r.tasks == nil {
		r.tasks = []Task{}
	}
	if r.nextID < FirstID {
		r.nextID = FirstID
	}
	if r.categories == nil {
		r.categories = []string{}
	}
	if r.maxCategories <= 0 {
		r.maxCategories = DefaultMaxCategories
	}
	r.initialized = true
}

// ---------- Tasks ----------

// ListAll returns a snapshot of all tasks in insertion order
func (r *SessionRepository) ListAll() []Task {
	r.EnsureInitialized()
	return slices.Clone(r.tasks)
}

// NextID hands out the current counter value and advances it
func (r *SessionRepository) NextID() int {
	r.EnsureInitialized()
	id := r.nextID
	r.nextID++
	return id
}

func (r *SessionRepository) Add(task Task) {
	r.EnsureInitialized()
	r.tasks = append(r.tasks, task)
	utils.Log("task added", "id", task.ID, "title", task.Title)
}

func (r *SessionRepository) Delete(id int) {
	r.EnsureInitialized()
	r.tasks = slices.DeleteFunc(r.tasks, func(t Task) bool { return t.ID == id })
}

// Update replaces the task with the given id by a patched copy
func (r *SessionRepository) Update(id int, patch TaskPatch) {
	r.EnsureInitialized()
	updated := make([]Task, len(r.tasks))
	for i, t := range r.tasks {
		if t.ID == id {
			t = t.With(patch)
		}
		updated[i] = t
	}
	r.tasks = updated
}

// ---------- Categories ----------

// ListCategories returns the categories in insertion order
func (r *SessionRepository) ListCategories() []string {
	r.EnsureInitialized()
	return slices.Clone(r.categories)
}

func (r *SessionRepository) MaxCategories() int {
	r.EnsureInitialized()
	return r.maxCategories
}

func (r *SessionRepository) AddCategory(name string) bool {
	r.EnsureInitialized()
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if len(r.categories) >= r.maxCategories {
		return false
	}
	if slices.Contains(r.categories, name) {
		return false
	}
	r.categories = append(r.categories, name)
	return true
}

func (r *SessionRepository) RenameCategory(oldName, newName string) bool {
	r.EnsureInitialized()
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return false
	}
	if !slices.Contains(r.categories, oldName) {
		return false
	}
	if newName != oldName && slices.Contains(r.categories, newName) {
		return false
	}

	renamed := make([]string, len(r.categories))
	for i, c := range r.categories {
		if c == oldName {
			c = newName
		}
		renamed[i] = c
	}
	r.categories = renamed

	if newName != oldName {
		r.reassignCategory(oldName, newName)
	}
	return true
}

func (r *SessionRepository) DeleteCategory(name string) bool {
	r.EnsureInitialized()
	name = strings.TrimSpace(name)
	if name == "" || !slices.Contains(r.categories, name) {
		return false
	}
	r.categories = slices.DeleteFunc(slices.Clone(r.categories), func(c string) bool { return c == name })
	r.reassignCategory(name, "")
	return true
}

// reassignCategory moves every task of category from to category to
func (r *SessionRepository) reassignCategory(from, to string) {
	for _, t := range r.ListAll() {
		if t.Category == from {
			r.Update(t.ID, TaskPatch{Category: Ptr(to)})
		}
	}
}
