package ui

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"

	"todomvc/pkg/model"
)

// SortBy selects the task order inside a group
type SortBy int

const (
	SortByNone SortBy = iota // insertion order
	SortByTitle
	SortByDueDate
	SortByPriority
	SortByCategory
	SortByStatus
	sortByCount
)

var sortByNames = [sortByCount]string{"creation", "title", "due date", "priority", "category", "status"}

func (s SortBy) String() string { return sortByNames[s] }

// GroupBy selects how tasks are split into groups
type GroupBy int

const (
	GroupByNone GroupBy = iota
	GroupByCategory
	GroupByPriority
	GroupByDueDateDaily
	GroupByDueDateWeekly
	GroupByDueDateMonthly
	groupByCount
)

var groupByNames = [groupByCount]string{"", "category", "priority", "daily", "weekly", "monthly"}

func (g GroupBy) String() string { return groupByNames[g] }

type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// GroupedTasks represents tasks grouped by a common attribute
type GroupedTasks struct {
	GroupName string
	Tasks     []model.Task
}

func compareTasks(by SortBy, a, b model.Task) int {
	switch by {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByDueDate:
		// undated tasks go last
		if a.HasDueDate() != b.HasDueDate() {
			if a.HasDueDate() {
				return -1
			}
			return 1
		}
		return a.DueDate.Compare(b.DueDate)
	case SortByPriority:
		return cmp.Compare(b.Priority.Rank(), a.Priority.Rank()) // Hoch first
	case SortByCategory:
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	case SortByStatus:
		// Undone first
		switch {
		case a.Done == b.Done:
			return 0
		case !a.Done:
			return -1
		}
		return 1
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortTasks sorts a copy of tasks based on the current criteria. Ties keep
// insertion order.
func (m *Model) SortTasks(tasks []model.Task) []model.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		c := compareTasks(m.sortBy, a, b)
		if m.sortOrder == SortDesc {
			c = -c
		}
		return c
	})
	return sorted
}

// groupKey names the group of task; "~" sorts the catch-all groups last
func (m *Model) groupKey(task model.Task) string {
	switch m.groupBy {
	case GroupByCategory:
		if !task.HasCategory() {
			return "~ Ohne Kategorie"
		}
		return "+" + task.Category
	case GroupByPriority:
		if !task.HasPriority() {
			return "~ Ohne Priorität"
		}
		return fmt.Sprintf("%d !%s", 3-task.Priority.Rank(), task.Priority)
	}

	if !task.HasDueDate() {
		return "~ Ohne Datum"
	}
	switch m.groupBy {
	case GroupByDueDateDaily:
		return task.DueDate.Format(dateLayout)
	case GroupByDueDateWeekly:
		year, week := task.DueDate.ISOWeek()
		return fmt.Sprintf("%d KW %02d", year, week)
	case GroupByDueDateMonthly:
		return task.DueDate.Format("2006-01")
	}
	return ""
}

// groupLabel strips the ordering prefixes of a group key
func groupLabel(key string) string {
	key = strings.TrimPrefix(key, "~ ")
	if len(key) > 2 && key[1:3] == " !" {
		key = key[2:]
	}
	return key
}

// GroupTasks groups tasks based on the specified criteria
func (m *Model) GroupTasks(tasks []model.Task) []GroupedTasks {
	if m.groupBy == GroupByNone {
		return []GroupedTasks{{GroupName: "", Tasks: m.SortTasks(tasks)}}
	}

	groups := make(map[string][]model.Task)
	for _, task := range tasks {
		key := m.groupKey(task)
		groups[key] = append(groups[key], task)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]GroupedTasks, 0, len(keys))
	for _, key := range keys {
		result = append(result, GroupedTasks{
			GroupName: groupLabel(key),
			Tasks:     m.SortTasks(groups[key]),
		})
	}
	return result
}
