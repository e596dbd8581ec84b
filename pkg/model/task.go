package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxCategories is the number of categories a session may hold at once
const DefaultMaxCategories = 5

// FirstID is the first identifier handed out by a fresh repository
const FirstID = 1

// Priority is the importance of a task. The empty value means "no priority".
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "Niedrig"
	PriorityMedium Priority = "Mittel"
	PriorityHigh   Priority = "Hoch"
)

// Priorities returns the valid priorities in display order
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is one of the three known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting; tasks without a priority rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// Task represents a single todo item.
//
// Tasks are values: repositories hand out copies and replace stored tasks
// wholesale through With, so a task obtained from ListAll never changes.
type Task struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Done     bool      `json:"done"`
	DueDate  time.Time `json:"due_date,omitempty"`
	Category string    `json:"category,omitempty"`
	Priority Priority  `json:"priority,omitempty"`
}

// TaskPatch lists the fields to override when replacing a task. Nil fields
// keep their current value; a pointer to the zero value clears the field.
type TaskPatch struct {
	Title    *string
	Done     *bool
	DueDate  *time.Time
	Category *string
	Priority *Priority
}

// Empty reports whether the patch would change nothing
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Done == nil && p.DueDate == nil && p.Category == nil && p.Priority == nil
}

// With returns a copy of t with the patch applied
func (t Task) With(p TaskPatch) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}

func (t Task) HasDueDate() bool  { return !t.DueDate.IsZero() }
func (t Task) HasCategory() bool { return t.Category != "" }
func (t Task) HasPriority() bool { return t.Priority != PriorityNone }

// DateOf strips the clock from t, keeping only the calendar date in UTC.
// The zero time stays zero.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayouts are the date formats accepted from user input
var DateLayouts = []string{"2006-01-02", "02.01.2006"}

// ParseDate parses a user supplied date. Blank input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range DateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or DD.MM.YYYY): %w", s, err)
}

// FormatDate renders a due date as YYYY-MM-DD, or "" for none
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Filter selects tasks by their done state
type Filter string

const (
	FilterAll  Filter = "Alle"
	FilterOpen Filter = "Offen"
	FilterDone Filter = "Erledigt"
)

// Filters returns the filters in display order
func Filters() []Filter {
	return []Filter{FilterAll, FilterOpen, FilterDone}
}

// ParseFilter accepts the display names and their English aliases.
// Anything else selects all tasks.
func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "offen", "open", "undone":
		return FilterOpen
	case "erledigt", "done":
		return FilterDone
	}
	return FilterAll
}

// Next cycles through the filters
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterOpen
	case FilterOpen:
		return FilterDone
	}
	return FilterAll
}

// Match reports whether a task passes the filter
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterOpen:
		return !t.Done
	case FilterDone:
		return t.Done
	}
	return true
}

// Ptr is a small helper for building patches
func Ptr[T any](v T) *T {
	return &v
}
