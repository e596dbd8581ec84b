package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"todomvc/pkg/model"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		switch m.viewMode {
		case CalendarViewMode:
			sb.WriteString(m.renderCalendar())

		default:
			sb.WriteString(m.bannerStyle(m.styles.AccentColor).Render(" Todo List "))
			sb.WriteString("\n\n")
			if len(m.rowIDs) == 0 {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor)).Render("No tasks."))
				sb.WriteString("\n")
			} else {
				sb.WriteString(m.table.View())
				sb.WriteString("\n")
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor)).Render(m.statusLine()))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.DoneColor)).Bold(true).Render(m.kpiLine()))
			sb.WriteString("\n")
		}

	case AddMode:
		sb.WriteString(m.bannerStyle(m.styles.AccentColor).Render(" Add New Task "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(m.bannerStyle(m.styles.AccentColor).Render(fmt.Sprintf(" Edit Task %d ", m.editingID)))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(m.bannerStyle(m.styles.ErrorColor).Render(" Delete Task "))
		sb.WriteString("\n\n")

		if t, ok := m.ctrl.Task(m.deletingID); ok {
			sb.WriteString("Are you sure you want to delete this task?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", t.Title))
			if t.HasCategory() {
				sb.WriteString(fmt.Sprintf("Category: %s\n", t.Category))
			}
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}

	case CategoryMode:
		sb.WriteString(m.renderCategories())

	case HelpViewMode:
		sb.WriteString(m.renderHelp())
	}

	if m.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.ErrorColor)).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

// statusLine shows the filter, the counts and the sorting
func (m Model) statusLine() string {
	total, open, done := m.ctrl.Counts()
	s := fmt.Sprintf("Filter: %s | %s: %d | %s: %d | %s: %d",
		m.ctrl.Filter, model.FilterAll, total, model.FilterOpen, open, model.FilterDone, done)

	if !m.dayFilter.IsZero() {
		s += " | due " + m.dayFilter.Format(dateLayout)
	}
	if m.sortBy != SortByNone || m.groupBy != GroupByNone {
		order := "asc"
		if m.sortOrder == SortDesc {
			order = "desc"
		}
		s += fmt.Sprintf(" | sorted by %s (%s)", m.sortBy, order)
		if m.groupBy != GroupByNone {
			s += fmt.Sprintf(", grouped by %s", m.groupBy)
		}
	}
	return s
}

func (m Model) kpiLine() string {
	done, total, percent := m.ctrl.Progress()
	return fmt.Sprintf("Erledigt: %d/%d (%d%%)", done, total, percent)
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}
	addBinding := func(b key.Binding, desc string) {
		addAction(b.Help().Key, desc)
	}

	switch m.mode {
	case NormalMode:
		if m.viewMode == CalendarViewMode {
			addAction("←↑↓→", "nav")
			addBinding(m.keyMap.Confirm, "select")
			addBinding(m.keyMap.JumpToToday, "today")
			addBinding(m.keyMap.Cancel, "back")
		} else {
			addBinding(m.keyMap.AddTask, "add")
			addBinding(m.keyMap.EditTask, "edit")
			addBinding(m.keyMap.DeleteTask, "del")
			addBinding(m.keyMap.ToggleDone, "toggle")
			addBinding(m.keyMap.CycleFilter, "filter")
			addBinding(m.keyMap.Categories, "categories")
			addBinding(m.keyMap.Calendar, "cal")
			addAction("s/g/o", "sort/grp/ord")
		}
		addBinding(m.keyMap.ShowHelp, "help")
		addBinding(m.keyMap.Quit, "quit")

	case AddMode, EditMode:
		addBinding(m.keyMap.NextField, "next field")
		addBinding(m.keyMap.Confirm, "next/save")
		addBinding(m.keyMap.Cancel, "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case CategoryMode:
		if m.categoryAction != categoryBrowse {
			addBinding(m.keyMap.Confirm, "save")
			addBinding(m.keyMap.Cancel, "cancel")
		} else {
			addBinding(m.keyMap.AddTask, "add")
			addBinding(m.keyMap.Rename, "rename")
			addBinding(m.keyMap.DeleteTask, "del")
			addBinding(m.keyMap.Cancel, "back")
		}

	case HelpViewMode:
		addBinding(m.keyMap.Cancel, "back")
		addBinding(m.keyMap.Quit, "quit")
	}

	return strings.Join(actions, separator)
}

// renderForm renders the input form for adding/editing tasks
func (m Model) renderForm() string {
	var sb strings.Builder

	labels := [fieldCount]string{
		fieldTitle:    "Title:",
		fieldDue:      "Due Date:",
		fieldCategory: fmt.Sprintf("Category (%s):", strings.Join(m.ctrl.Categories(), ", ")),
		fieldPriority: "Priority:",
	}
	for i := range m.inputs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(labels[i])
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
	}
	return sb.String()
}

func (m Model) renderCategories() string {
	var sb strings.Builder

	cats := m.ctrl.Categories()
	sb.WriteString(m.bannerStyle(m.styles.AccentColor).Render(fmt.Sprintf(" Categories (%d/%d) ", len(cats), m.ctrl.MaxCategories())))
	sb.WriteString("\n\n")

	if len(cats) == 0 {
		sb.WriteString("No categories.\n")
	}
	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.SelectedBgColor)).
		Bold(true)
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.CategoryColor))
	for i, name := range cats {
		if i == m.categoryCursor {
			sb.WriteString(selected.Render("> " + name))
		} else {
			sb.WriteString(normal.Render("  " + name))
		}
		sb.WriteString("\n")
	}

	switch m.categoryAction {
	case categoryAdd:
		sb.WriteString("\nNew category:\n")
		sb.WriteString(m.categoryInput.View())
	case categoryRename:
		sb.WriteString(fmt.Sprintf("\nRename %s to:\n", m.selectedCategory()))
		sb.WriteString(m.categoryInput.View())
	}
	return sb.String()
}

func (m Model) renderHelp() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))

	addCommand := func(binding key.Binding) {
		sb.WriteString(fmt.Sprintf("%s: %s\n",
			descStyle.Render(binding.Help().Desc),
			keyStyle.Render(strings.Join(binding.Keys(), ", "))))
	}

	addCommand(m.keyMap.Quit)
	addCommand(m.keyMap.ShowHelp)
	addCommand(m.keyMap.ToggleDone)
	addCommand(m.keyMap.AddTask)
	addCommand(m.keyMap.EditTask)
	addCommand(m.keyMap.DeleteTask)
	addCommand(m.keyMap.CycleFilter)
	addCommand(m.keyMap.Categories)
	addCommand(m.keyMap.Calendar)
	addCommand(m.keyMap.ToggleSortBy)
	addCommand(m.keyMap.ToggleGroup)
	addCommand(m.keyMap.SortOrder)

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Categories"))
	sb.WriteString("\n\n")
	addCommand(m.keyMap.Rename)

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Calendar Commands"))
	sb.WriteString("\n\n")
	addCommand(m.keyMap.Left)
	addCommand(m.keyMap.Right)
	addCommand(m.keyMap.Up)
	addCommand(m.keyMap.Down)
	addCommand(m.keyMap.JumpToToday)
	addCommand(m.keyMap.Confirm)
	addCommand(m.keyMap.Cancel)

	return sb.String()
}

// renderCalendar renders the month grid, Monday first
func (m Model) renderCalendar() string {
	var sb strings.Builder

	firstDay := m.calendarMonth
	daysInMonth := m.daysInCalendarMonth()
	firstWeekday := (int(firstDay.Weekday()) + 6) % 7

	sb.WriteString(m.bannerStyle(m.styles.AccentColor).Render(" " + firstDay.Format("January 2006") + " "))
	sb.WriteString("\n\n")

	weekdayRow := ""
	for _, day := range []string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"} {
		weekdayRow += fmt.Sprintf("%-4s", day)
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(weekdayRow))
	sb.WriteString("\n")

	daysWithTasks := m.daysWithTasks()
	now := m.now()

	currentDay := 1
	for week := 0; week < 6 && currentDay <= daysInMonth; week++ {
		row := ""
		for weekday := 0; weekday < 7; weekday++ {
			if (week == 0 && weekday < firstWeekday) || currentDay > daysInMonth {
				row += "    "
				continue
			}

			dayStyle := lipgloss.NewStyle()
			isToday := now.Year() == firstDay.Year() && now.Month() == firstDay.Month() && now.Day() == currentDay

			switch {
			case currentDay == m.calendarSelectedDay:
				dayStyle = dayStyle.Background(lipgloss.Color(m.styles.AccentColor)).
					Foreground(lipgloss.Color(m.styles.SelectedTextColor)).Bold(true)
			case isToday:
				dayStyle = dayStyle.Background(lipgloss.Color(m.styles.SelectedBgColor)).
					Foreground(lipgloss.Color(m.styles.SelectedTextColor))
			case daysWithTasks[currentDay]:
				dayStyle = dayStyle.Foreground(lipgloss.Color(m.styles.AccentColor)).Bold(true)
			}

			row += dayStyle.Render(fmt.Sprintf("%-4d", currentDay))
			currentDay++
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	return sb.String()
}
