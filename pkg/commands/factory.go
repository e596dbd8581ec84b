package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"todomvc/pkg/factory"
)

// VariantPlain selects the plain factory instead of an abstract one
const VariantPlain = "plain"

// FactoryOptions are the optional product fields accepted on the command line
type FactoryOptions struct {
	Variant  string
	Done     bool
	Quantity int
	Store    string
	Project  string
	Priority string
	Category string
	Deadline string
	Details  bool
}

func (o FactoryOptions) taskOptions() []factory.TaskOption {
	opts := []factory.TaskOption{factory.WithDone(o.Done)}
	if o.Quantity > 0 {
		opts = append(opts, factory.WithQuantity(o.Quantity))
	}
	if o.Store != "" {
		opts = append(opts, factory.WithStore(o.Store))
	}
	if o.Project != "" {
		opts = append(opts, factory.WithProject(o.Project))
	}
	if o.Priority != "" {
		opts = append(opts, factory.WithPriority(o.Priority))
	}
	if o.Category != "" {
		opts = append(opts, factory.WithCategory(o.Category))
	}
	if o.Deadline != "" {
		opts = append(opts, factory.WithDeadline(o.Deadline))
	}
	return opts
}

// Factory builds one showcase task and prints its description
func Factory(w io.Writer, kind, title string, o FactoryOptions) error {
	var (
		d   factory.Describer
		err error
	)
	variant := strings.ToLower(strings.TrimSpace(o.Variant))
	if variant == "" || variant == VariantPlain {
		d, err = factory.CreateTask(kind, title, o.taskOptions()...)
	} else {
		var f factory.AbstractTaskFactory
		if f, err = factory.ForVariant(variant); err == nil {
			d, err = factory.CreateWith(f, kind, title, o.taskOptions()...)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, d.Describe())
	if o.Details {
		details := d.Details()
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "  type: %s\n", d.Type())
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %v\n", k, details[k])
		}
	}
	return nil
}
