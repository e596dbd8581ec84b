package model

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"todomvc/pkg/utils"
)

// PriorityPolicy decides what an unrecognised priority turns into
type PriorityPolicy int

const (
	// InvalidPriorityNone drops unknown priorities
	InvalidPriorityNone PriorityPolicy = iota
	// InvalidPriorityDefault replaces unknown priorities with the default priority
	InvalidPriorityDefault
)

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithInvalidPriorityPolicy selects how unknown priorities are normalized
func WithInvalidPriorityPolicy(p PriorityPolicy) ServiceOption {
	return func(s *Service) { s.policy = p }
}

// WithDefaultPriority sets the priority used by InvalidPriorityDefault
func WithDefaultPriority(p Priority) ServiceOption {
	return func(s *Service) {
		if p.Valid() {
			s.defaultPriority = p
		}
	}
}

// Service holds the business rules on top of a Repository: it validates and
// normalizes input and is the only way tasks and categories get created.
type Service struct {
	repo            Repository
	policy          PriorityPolicy
	defaultPriority Priority
	titleCaser      cases.Caser
}

// NewService wraps repo
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		policy:          InvalidPriorityNone,
		defaultPriority: PriorityMedium,
		titleCaser:      cases.Title(language.German),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize prepares the underlying repository
func (s *Service) Initialize() {
	s.repo.EnsureInitialized()
}

// ---------- Validation ----------

func (s *Service) validateTitle(title string) (string, bool) {
	title = strings.TrimSpace(title)
	return title, title != ""
}

// NormalizePriority trims and title-cases raw input ("hoch" becomes "Hoch").
// Blank input means no priority; unknown values follow the configured policy.
func (s *Service) NormalizePriority(raw string) Priority {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PriorityNone
	}
	p := Priority(s.titleCaser.String(raw))
	if p.Valid() {
		return p
	}
	if s.policy == InvalidPriorityDefault {
		return s.defaultPriority
	}
	return PriorityNone
}

// validateCategory returns the trimmed category if it exists, "" otherwise
func (s *Service) validateCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	if !slices.Contains(s.repo.ListCategories(), category) {
		utils.Log("unknown category dropped", "category", category)
		return ""
	}
	return category
}

// ---------- Categories ----------

// ListCategories returns the categories sorted alphabetically, ignoring case
func (s *Service) ListCategories() []string {
	cats := s.repo.ListCategories()
	slices.SortStableFunc(cats, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return cats
}

// CanAddCategory reports whether another category fits
func (s *Service) CanAddCategory() bool {
	return len(s.repo.ListCategories()) < s.repo.MaxCategories()
}

// MaxCategories is the category capacity of the session
func (s *Service) MaxCategories() int {
	return s.repo.MaxCategories()
}

func (s *Service) AddCategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	ok := s.repo.AddCategory(name)
	utils.Log("add category", "name", name, "ok", ok)
	return ok
}

// RenameCategory renames a category; tasks referencing it follow the rename.
func (s *Service) RenameCategory(oldName, newName string) bool {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return false
	}
	ok := s.repo.RenameCategory(oldName, newName)
	utils.Log("rename category", "old", oldName, "new", newName, "ok", ok)
	return ok
}

// DeleteCategory removes a category and clears it from all tasks.
func (s *Service) DeleteCategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	ok := s.repo.DeleteCategory(name)
	utils.Log("delete category", "name", name, "ok", ok)
	return ok
}

// ---------- Tasks ----------

// ListTasks returns all tasks in insertion order
func (s *Service) ListTasks() []Task {
	return s.repo.ListAll()
}

// GetTask looks a task up by id
func (s *Service) GetTask(id int) (Task, bool) {
	for _, t := range s.repo.ListAll() {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// GetFilteredTasks returns the tasks matching f, keeping their order
func (s *Service) GetFilteredTasks(f Filter) []Task {
	all := s.repo.ListAll()
	switch f {
	case FilterOpen, FilterDone:
	default:
		return all
	}
	filtered := make([]Task, 0, len(all))
	for _, t := range all {
		if f.Match(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// GetTaskCounts returns the number of all, open and done tasks
func (s *Service) GetTaskCounts() (total, open, done int) {
	for _, t := range s.repo.ListAll() {
		total++
		if t.Done {
			done++
		} else {
			open++
		}
	}
	return total, open, done
}

// AddTask creates a task. Only the title can make it fail; an unknown
// category or priority is dropped instead.
func (s *Service) AddTask(title string, due time.Time, category, priority string) bool {
	validTitle, ok := s.validateTitle(title)
	if !ok {
		utils.Log("add task rejected", "reason", "empty title")
		return false
	}

	s.repo.Add(Task{
		ID:       s.repo.NextID(),
		Title:    validTitle,
		Done:     false,
		DueDate:  DateOf(due),
		Category: s.validateCategory(category),
		Priority: s.NormalizePriority(priority),
	})
	return true
}

func (s *Service) DeleteTask(id int) {
	s.repo.Delete(id)
	utils.Log("delete task", "id", id)
}

func (s *Service) SetDone(id int, done bool) {
	s.repo.Update(id, TaskPatch{Done: Ptr(done)})
	utils.Log("set done", "id", id, "done", done)
}

// RenameTask changes a task's title; blank titles are rejected
func (s *Service) RenameTask(id int, title string) bool {
	validTitle, ok := s.validateTitle(title)
	if !ok {
		return false
	}
	s.repo.Update(id, TaskPatch{Title: Ptr(validTitle)})
	return true
}

// SetDueDate sets or, with the zero time, clears the due date
func (s *Service) SetDueDate(id int, due time.Time) {
	s.repo.Update(id, TaskPatch{DueDate: Ptr(DateOf(due))})
}

func (s *Service) SetCategory(id int, category string) {
	s.repo.Update(id, TaskPatch{Category: Ptr(s.validateCategory(category))})
}

func (s *Service) SetPriority(id int, priority string) {
	s.repo.Update(id, TaskPatch{Priority: Ptr(s.NormalizePriority(priority))})
}

// TaskUpdate describes a multi-field edit. Title and Category are applied
// when non-nil. DueDate and Priority may legitimately be empty, so they are
// applied only when their Update flag is set.
type TaskUpdate struct {
	Title          *string
	DueDate        time.Time
	Category       *string
	Priority       string
	UpdateDueDate  bool
	UpdatePriority bool
}

// UpdateTask applies u in a single replacement. An invalid title fails the
// whole update and nothing is written.
func (s *Service) UpdateTask(id int, u TaskUpdate) bool {
	var patch TaskPatch

	if u.Title != nil {
		validTitle, ok := s.validateTitle(*u.Title)
		if !ok {
			return false
		}
		patch.Title = Ptr(validTitle)
	}
	if u.UpdateDueDate {
		patch.DueDate = Ptr(DateOf(u.DueDate))
	}
	if u.Category != nil {
		patch.Category = Ptr(s.validateCategory(*u.Category))
	}
	if u.UpdatePriority {
		patch.Priority = Ptr(s.NormalizePriority(u.Priority))
	}

	if !patch.Empty() {
		s.repo.Update(id, patch)
		utils.Log("update task", "id", id)
	}
	return true
}
