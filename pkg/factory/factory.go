// Package factory builds stand-alone task-like values of several kinds.
// Nothing here reads or writes a session's tasks.
package factory

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds understood by CreateTask
const (
	KindTodo     = "todo"
	KindShopping = "shopping"
	KindWork     = "work"
)

// Kinds returns the supported kinds
func Kinds() []string {
	return []string{KindTodo, KindShopping, KindWork}
}

// ErrUnknownTaskType is wrapped by every UnknownTypeError
var ErrUnknownTaskType = errors.New("unknown task type")

// UnknownTypeError names the kind CreateTask could not build
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown task type %q (want one of %s)", e.Type, strings.Join(Kinds(), ", "))
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownTaskType
}

// Describer is implemented by everything the factories build
type Describer interface {
	Describe() string
	Type() string
	Details() map[string]any
}

func statusMark(done bool) string {
	if done {
		return "✓"
	}
	return "○"
}

// Options carries the optional fields a factory may use
type Options struct {
	Done     bool
	Quantity int
	Store    string
	Project  string
	Priority string
	Category string
	Deadline string
}

// TaskOption sets one of the optional fields
type TaskOption func(*Options)

func WithDone(done bool) TaskOption         { return func(o *Options) { o.Done = done } }
func WithQuantity(n int) TaskOption         { return func(o *Options) { o.Quantity = n } }
func WithStore(store string) TaskOption     { return func(o *Options) { o.Store = store } }
func WithProject(project string) TaskOption { return func(o *Options) { o.Project = project } }
func WithPriority(p string) TaskOption      { return func(o *Options) { o.Priority = p } }
func WithCategory(c string) TaskOption      { return func(o *Options) { o.Category = c } }
func WithDeadline(d string) TaskOption      { return func(o *Options) { o.Deadline = d } }

func buildOptions(opts []TaskOption) Options {
	o := Options{Quantity: 1, Priority: defaultPriority}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Quantity < 1 {
		o.Quantity = 1
	}
	if strings.TrimSpace(o.Priority) == "" {
		o.Priority = defaultPriority
	}
	return o
}

const defaultPriority = "Mittel"

// TodoTask is a general purpose task
type TodoTask struct {
	Title string
	Done  bool
}

func (t TodoTask) Describe() string {
	return fmt.Sprintf("[%s] ToDo: %s", statusMark(t.Done), t.Title)
}

func (t TodoTask) Type() string { return KindTodo }

func (t TodoTask) Details() map[string]any {
	return map[string]any{"title": t.Title, "done": t.Done}
}

// ShoppingTask is an item on a shopping list
type ShoppingTask struct {
	Item     string
	Quantity int
	Store    string
	Done     bool
}

func (t ShoppingTask) Describe() string {
	s := fmt.Sprintf("[%s] Einkauf: %s", statusMark(t.Done), t.Item)
	if t.Quantity > 1 {
		s += fmt.Sprintf(" (%dx)", t.Quantity)
	}
	if t.Store != "" {
		s += " @ " + t.Store
	}
	return s
}

func (t ShoppingTask) Type() string { return KindShopping }

func (t ShoppingTask) Details() map[string]any {
	return map[string]any{"item": t.Item, "quantity": t.Quantity, "store": t.Store, "done": t.Done}
}

// WorkTask is a job-related task
type WorkTask struct {
	Title    string
	Project  string
	Priority string
	Deadline string
	Done     bool
}

func (t WorkTask) Describe() string {
	s := fmt.Sprintf("[%s] Arbeit: %s", statusMark(t.Done), t.Title)
	if t.Project != "" {
		s += " [" + t.Project + "]"
	}
	if t.Priority != defaultPriority {
		s += " (" + t.Priority + ")"
	}
	if t.Deadline != "" {
		s += " bis " + t.Deadline
	}
	return s
}

func (t WorkTask) Type() string { return KindWork }

func (t WorkTask) Details() map[string]any {
	return map[string]any{
		"title":    t.Title,
		"project":  t.Project,
		"priority": t.Priority,
		"deadline": t.Deadline,
		"done":     t.Done,
	}
}

// CreateTask builds a task of the given kind. The kind is matched
// case-insensitively after trimming; anything unknown is an *UnknownTypeError.
func CreateTask(kind, title string, opts ...TaskOption) (Describer, error) {
	o := buildOptions(opts)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindTodo:
		return TodoTask{Title: title, Done: o.Done}, nil
	case KindShopping:
		return ShoppingTask{Item: title, Quantity: o.Quantity, Store: o.Store, Done: o.Done}, nil
	case KindWork:
		return WorkTask{Title: title, Project: o.Project, Priority: o.Priority, Deadline: o.Deadline, Done: o.Done}, nil
	}
	return nil, &UnknownTypeError{Type: kind}
}
