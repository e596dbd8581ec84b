package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"todomvc/pkg/commands"
	"todomvc/pkg/controller"
	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

const dateLayout = "2006-01-02"

var errEmptyTitle = errors.New("title must not be empty")

func errCategoryCap(max int) error {
	return fmt.Errorf("at most %d categories allowed", max)
}

// visibleTasks applies the controller filter and the calendar day
func (m *Model) visibleTasks() []model.Task {
	tasks := m.ctrl.FilteredTasks()
	if m.dayFilter.IsZero() {
		return tasks
	}
	day := tasks[:0:0]
	for _, t := range tasks {
		if t.DueDate.Equal(m.dayFilter) {
			day = append(day, t)
		}
	}
	return day
}

// loadTasks rebuilds the table rows from the controller
func (m *Model) loadTasks() {
	groupedTasks := m.GroupTasks(m.visibleTasks())

	var rows []table.Row
	var ids []int
	for _, group := range groupedTasks {
		if m.groupBy != GroupByNone {
			rows = append(rows, table.Row{"", fmt.Sprintf("== %s ==", group.GroupName), "", "", ""})
			ids = append(ids, 0)
		}

		for _, task := range group.Tasks {
			rows = append(rows, taskRow(task))
			ids = append(ids, task.ID)
		}

		// Add empty line between groups
		if m.groupBy != GroupByNone && len(groupedTasks) > 1 {
			rows = append(rows, table.Row{"", "", "", "", ""})
			ids = append(ids, 0)
		}
	}

	m.rowIDs = ids
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func taskRow(t model.Task) table.Row {
	status := "[ ]"
	if t.Done {
		status = "[x]"
	}
	var category, priority string
	if t.HasCategory() {
		category = "+" + t.Category
	}
	if t.HasPriority() {
		priority = "!" + string(t.Priority)
	}
	return table.Row{status, t.Title, category, priority, model.FormatDate(t.DueDate)}
}

// selectedTaskID is the task under the cursor, 0 on headers or an empty table
func (m *Model) selectedTaskID() int {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rowIDs) {
		return 0
	}
	return m.rowIDs[c]
}

func (m *Model) focusInput(i int) {
	m.activeInput = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		if j == m.activeInput {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// focusNextInput cycles through the form inputs
func (m *Model) focusNextInput() {
	m.focusInput(m.activeInput + 1)
}

// focusPreviousInput cycles through the form inputs
func (m *Model) focusPreviousInput() {
	m.focusInput(m.activeInput - 1)
}

func (m *Model) formDraft() controller.EditDraft {
	return controller.EditDraft{
		Title:    m.inputs[fieldTitle].Value(),
		Due:      m.inputs[fieldDue].Value(),
		Category: m.inputs[fieldCategory].Value(),
		Priority: m.inputs[fieldPriority].Value(),
	}
}

// startEdit fills the form from the pending draft of the selected task
func (m *Model) startEdit(id int) {
	if !m.ctrl.BeginEdit(id) {
		return
	}
	draft, _ := m.ctrl.Draft(id)
	m.mode = EditMode
	m.editingID = id
	m.resetInputs()
	m.inputs[fieldTitle].SetValue(draft.Title)
	m.inputs[fieldDue].SetValue(draft.Due)
	m.inputs[fieldCategory].SetValue(draft.Category)
	m.inputs[fieldPriority].SetValue(draft.Priority)
}

// submitForm processes the form data based on the current mode. The form
// stays open when the input is rejected.
func (m *Model) submitForm() {
	d := m.formDraft()

	switch m.mode {
	case AddMode:
		if err := commands.AddTask(io.Discard, m.ctrl, d.Title, d.Due, d.Category, d.Priority); err != nil {
			if errors.Is(err, commands.ErrRejected) {
				err = errEmptyTitle
			}
			m.err = err
			return
		}

	case EditMode:
		m.ctrl.SaveDraft(m.editingID, d)
		if _, err := model.ParseDate(d.Due); err != nil {
			m.err = err
			return
		}
		if !m.ctrl.CommitEdit(m.editingID) {
			m.err = errEmptyTitle
			return
		}
	}

	utils.Log("form submitted", "mode", m.mode, "id", m.editingID)
	m.err = nil
	m.mode = NormalMode
	m.editingID = 0
	m.resetInputs()
	m.loadTasks()
}

// cancelForm leaves the form. An edit keeps its draft for the next visit.
func (m *Model) cancelForm() {
	if m.mode == EditMode {
		m.ctrl.SaveDraft(m.editingID, m.formDraft())
		m.ctrl.EditingID = 0
	}
	m.err = nil
	m.mode = NormalMode
	m.editingID = 0
	m.resetInputs()
}

// ---------- Categories dialog ----------

func (m *Model) selectedCategory() string {
	cats := m.ctrl.Categories()
	if m.categoryCursor < 0 || m.categoryCursor >= len(cats) {
		return ""
	}
	return cats[m.categoryCursor]
}

func (m *Model) clampCategoryCursor() {
	n := len(m.ctrl.Categories())
	if m.categoryCursor >= n {
		m.categoryCursor = n - 1
	}
	if m.categoryCursor < 0 {
		m.categoryCursor = 0
	}
}

func (m *Model) beginCategoryInput(action categoryAction, value string) {
	m.categoryAction = action
	m.categoryInput.Reset()
	m.categoryInput.SetValue(value)
	m.categoryInput.Focus()
}

func (m *Model) submitCategoryInput() {
	name := strings.TrimSpace(m.categoryInput.Value())

	var ok bool
	switch m.categoryAction {
	case categoryAdd:
		ok = m.ctrl.AddCategory(name)
		if !ok {
			m.err = fmt.Errorf("cannot add category %q", name)
		}
	case categoryRename:
		ok = m.ctrl.RenameCategory(m.selectedCategory(), name)
		if !ok {
			m.err = fmt.Errorf("cannot rename category to %q", name)
		}
	}
	if !ok {
		return
	}

	m.err = nil
	m.categoryAction = categoryBrowse
	m.categoryInput.Blur()
	m.clampCategoryCursor()
	m.loadTasks()
}

// ---------- Calendar ----------

func (m *Model) daysInCalendarMonth() int {
	return time.Date(m.calendarMonth.Year(), m.calendarMonth.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// moveCalendar shifts the selected day by delta days, crossing month borders
func (m *Model) moveCalendar(delta int) {
	day := time.Date(m.calendarMonth.Year(), m.calendarMonth.Month(), m.calendarSelectedDay, 0, 0, 0, 0, time.UTC).AddDate(0, 0, delta)
	m.calendarMonth = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.calendarSelectedDay = day.Day()
}

func (m *Model) jumpToToday() {
	now := m.now()
	m.calendarMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.calendarSelectedDay = now.Day()
}

func (m *Model) selectedCalendarDate() time.Time {
	return time.Date(m.calendarMonth.Year(), m.calendarMonth.Month(), m.calendarSelectedDay, 0, 0, 0, 0, time.UTC)
}

// daysWithTasks returns the days of the calendar month that have a due task
func (m *Model) daysWithTasks() map[int]bool {
	days := make(map[int]bool)
	for _, t := range m.ctrl.ListTasks() {
		if t.HasDueDate() && t.DueDate.Year() == m.calendarMonth.Year() && t.DueDate.Month() == m.calendarMonth.Month() {
			days[t.DueDate.Day()] = true
		}
	}
	return days
}

func (m Model) bannerStyle(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1)
}
