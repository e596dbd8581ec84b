package factory

import (
	"fmt"
	"strings"
)

// Variants of AbstractTaskFactory
const (
	VariantSimple   = "simple"
	VariantDetailed = "detailed"
)

// AbstractTaskFactory creates a family of matching task kinds
type AbstractTaskFactory interface {
	CreateTodoTask(title string, opts ...TaskOption) Describer
	CreateShoppingTask(item string, opts ...TaskOption) Describer
	CreateWorkTask(title string, opts ...TaskOption) Describer
}

// ForVariant returns the factory for "simple" or "detailed"
func ForVariant(variant string) (AbstractTaskFactory, error) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case VariantSimple:
		return SimpleTaskFactory{}, nil
	case VariantDetailed:
		return DetailedTaskFactory{}, nil
	}
	return nil, fmt.Errorf("unknown factory variant %q", variant)
}

// CreateWith dispatches kind to the matching method of f
func CreateWith(f AbstractTaskFactory, kind, title string, opts ...TaskOption) (Describer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindTodo:
		return f.CreateTodoTask(title, opts...), nil
	case KindShopping:
		return f.CreateShoppingTask(title, opts...), nil
	case KindWork:
		return f.CreateWorkTask(title, opts...), nil
	}
	return nil, &UnknownTypeError{Type: kind}
}

// ---------- simple family ----------

type SimpleTaskFactory struct{}

func (SimpleTaskFactory) CreateTodoTask(title string, opts ...TaskOption) Describer {
	return SimpleTodoTask{Title: title, Done: buildOptions(opts).Done}
}

func (SimpleTaskFactory) CreateShoppingTask(item string, opts ...TaskOption) Describer {
	return SimpleShoppingTask{Item: item, Done: buildOptions(opts).Done}
}

func (SimpleTaskFactory) CreateWorkTask(title string, opts ...TaskOption) Describer {
	return SimpleWorkTask{Title: title, Done: buildOptions(opts).Done}
}

type SimpleTodoTask struct {
	Title string
	Done  bool
}

func (t SimpleTodoTask) Describe() string {
	return fmt.Sprintf("[%s] %s", statusMark(t.Done), t.Title)
}
func (t SimpleTodoTask) Type() string { return KindTodo }
func (t SimpleTodoTask) Details() map[string]any {
	return map[string]any{"variant": VariantSimple, "title": t.Title, "done": t.Done}
}

type SimpleShoppingTask struct {
	Item string
	Done bool
}

func (t SimpleShoppingTask) Describe() string {
	return fmt.Sprintf("[%s] Kaufen: %s", statusMark(t.Done), t.Item)
}
func (t SimpleShoppingTask) Type() string { return KindShopping }
func (t SimpleShoppingTask) Details() map[string]any {
	return map[string]any{"variant": VariantSimple, "item": t.Item, "done": t.Done}
}

type SimpleWorkTask struct {
	Title string
	Done  bool
}

func (t SimpleWorkTask) Describe() string {
	return fmt.Sprintf("[%s] Arbeit: %s", statusMark(t.Done), t.Title)
}
func (t SimpleWorkTask) Type() string { return KindWork }
func (t SimpleWorkTask) Details() map[string]any {
	return map[string]any{"variant": VariantSimple, "title": t.Title, "done": t.Done}
}

// ---------- detailed family ----------

type DetailedTaskFactory struct{}

func (DetailedTaskFactory) CreateTodoTask(title string, opts ...TaskOption) Describer {
	o := buildOptions(opts)
	return DetailedTodoTask{Title: title, Done: o.Done, Priority: o.Priority, Category: o.Category}
}

func (DetailedTaskFactory) CreateShoppingTask(item string, opts ...TaskOption) Describer {
	o := buildOptions(opts)
	return DetailedShoppingTask{Item: item, Quantity: o.Quantity, Store: o.Store, Done: o.Done}
}

func (DetailedTaskFactory) CreateWorkTask(title string, opts ...TaskOption) Describer {
	o := buildOptions(opts)
	return DetailedWorkTask{Title: title, Project: o.Project, Priority: o.Priority, Done: o.Done}
}

type DetailedTodoTask struct {
	Title    string
	Priority string
	Category string
	Done     bool
}

// Describe only mentions the priority when it differs from Mittel
func (t DetailedTodoTask) Describe() string {
	var details []string
	if t.Priority != defaultPriority {
		details = append(details, "["+t.Priority+"]")
	}
	if t.Category != "" {
		details = append(details, "("+t.Category+")")
	}
	s := fmt.Sprintf("[%s] %s %s", statusMark(t.Done), t.Title, strings.Join(details, " "))
	return strings.TrimSpace(s)
}
func (t DetailedTodoTask) Type() string { return KindTodo }
func (t DetailedTodoTask) Details() map[string]any {
	return map[string]any{
		"variant":  VariantDetailed,
		"title":    t.Title,
		"priority": t.Priority,
		"category": t.Category,
		"done":     t.Done,
	}
}

type DetailedShoppingTask struct {
	Item     string
	Quantity int
	Store    string
	Done     bool
}

func (t DetailedShoppingTask) Describe() string {
	s := fmt.Sprintf("[%s] %dx %s", statusMark(t.Done), t.Quantity, t.Item)
	if t.Store != "" {
		s += " @ " + t.Store
	}
	return s
}
func (t DetailedShoppingTask) Type() string { return KindShopping }
func (t DetailedShoppingTask) Details() map[string]any {
	return map[string]any{
		"variant":  VariantDetailed,
		"item":     t.Item,
		"quantity": t.Quantity,
		"store":    t.Store,
		"done":     t.Done,
	}
}

type DetailedWorkTask struct {
	Title    string
	Project  string
	Priority string
	Done     bool
}

func (t DetailedWorkTask) Describe() string {
	var proj, prio string
	if t.Project != "" {
		proj = "[" + t.Project + "] "
	}
	if t.Priority != defaultPriority {
		prio = " (" + t.Priority + ")"
	}
	return fmt.Sprintf("[%s] %s%s%s", statusMark(t.Done), proj, t.Title, prio)
}
func (t DetailedWorkTask) Type() string { return KindWork }
func (t DetailedWorkTask) Details() map[string]any {
	return map[string]any{
		"variant":  VariantDetailed,
		"title":    t.Title,
		"project":  t.Project,
		"priority": t.Priority,
		"done":     t.Done,
	}
}
