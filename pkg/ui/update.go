package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"todomvc/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			if m.viewMode == CalendarViewMode {
				return m.updateCalendar(msg)
			}

			switch {
			case key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = HelpViewMode

			case key.Matches(msg, m.keyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, m.keyMap.ToggleDone):
				if id := m.selectedTaskID(); id != 0 {
					m.ctrl.ToggleDone(id)
					m.loadTasks()
				}

			case key.Matches(msg, m.keyMap.AddTask):
				m.mode = AddMode
				m.err = nil
				m.resetInputs()

			case key.Matches(msg, m.keyMap.EditTask):
				if id := m.selectedTaskID(); id != 0 {
					m.err = nil
					m.startEdit(id)
				}

			case key.Matches(msg, m.keyMap.DeleteTask):
				if id := m.selectedTaskID(); id != 0 {
					m.mode = DeleteConfirmMode
					m.deletingID = id
				}

			case key.Matches(msg, m.keyMap.CycleFilter):
				m.ctrl.CycleFilter()
				m.loadTasks()

			case key.Matches(msg, m.keyMap.Categories):
				m.mode = CategoryMode
				m.err = nil
				m.categoryAction = categoryBrowse
				m.clampCategoryCursor()

			case key.Matches(msg, m.keyMap.ToggleSortBy):
				m.sortBy = (m.sortBy + 1) % sortByCount
				m.loadTasks()

			case key.Matches(msg, m.keyMap.ToggleGroup):
				m.groupBy = (m.groupBy + 1) % groupByCount
				m.loadTasks()

			case key.Matches(msg, m.keyMap.SortOrder):
				if m.sortOrder == SortAsc {
					m.sortOrder = SortDesc
				} else {
					m.sortOrder = SortAsc
				}
				m.loadTasks()

			case key.Matches(msg, m.keyMap.Calendar):
				m.viewMode = CalendarViewMode
				if !m.dayFilter.IsZero() {
					m.calendarMonth = m.dayFilter.AddDate(0, 0, 1-m.dayFilter.Day())
					m.calendarSelectedDay = m.dayFilter.Day()
				}

			case key.Matches(msg, m.keyMap.Cancel):
				// back to all days
				if !m.dayFilter.IsZero() {
					m.dayFilter = time.Time{}
					m.loadTasks()
				}

			default:
				// cursor movement
				m.table, cmd = m.table.Update(msg)
				cmds = append(cmds, cmd)
			}

		case AddMode, EditMode:
			switch {
			case key.Matches(msg, m.keyMap.Cancel):
				m.cancelForm()
				return m, nil

			case key.Matches(msg, m.keyMap.NextField):
				m.focusNextInput()
				return m, nil

			case key.Matches(msg, m.keyMap.PrevField):
				m.focusPreviousInput()
				return m, nil

			case key.Matches(msg, m.keyMap.Confirm):
				if m.activeInput == fieldCount-1 { // Submit on enter from the last field
					m.submitForm()
				} else {
					m.focusNextInput()
				}
				return m, nil
			}

			m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
			cmds = append(cmds, cmd)
			if m.mode == EditMode {
				m.ctrl.SaveDraft(m.editingID, m.formDraft())
			}

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				utils.Log("deleting task", "id", m.deletingID)
				m.ctrl.DeleteTask(m.deletingID)
				m.loadTasks()
				m.mode = NormalMode
				m.deletingID = 0

			case "n", "N", "esc":
				m.mode = NormalMode
				m.deletingID = 0
			}

		case CategoryMode:
			return m.updateCategories(msg)

		case HelpViewMode:
			switch {
			case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = NormalMode
			case key.Matches(msg, m.keyMap.Quit):
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(msg.Height - 8)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.ShowHelp):
		m.mode = HelpViewMode
	case key.Matches(msg, m.keyMap.Left):
		m.moveCalendar(-1)
	case key.Matches(msg, m.keyMap.Right):
		m.moveCalendar(1)
	case key.Matches(msg, m.keyMap.Up):
		m.moveCalendar(-7)
	case key.Matches(msg, m.keyMap.Down):
		m.moveCalendar(7)
	case key.Matches(msg, m.keyMap.JumpToToday):
		m.jumpToToday()
	case key.Matches(msg, m.keyMap.Confirm):
		// Show only the selected day
		m.dayFilter = m.selectedCalendarDate()
		m.viewMode = ListViewMode
		m.table.SetCursor(0)
		m.loadTasks()
	case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.Calendar):
		m.viewMode = ListViewMode
	}
	return m, nil
}

func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.categoryAction != categoryBrowse {
		switch {
		case key.Matches(msg, m.keyMap.Cancel):
			m.categoryAction = categoryBrowse
			m.categoryInput.Blur()
			m.err = nil
			return m, nil
		case key.Matches(msg, m.keyMap.Confirm):
			m.submitCategoryInput()
			return m, nil
		}
		var cmd tea.Cmd
		m.categoryInput, cmd = m.categoryInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.Categories):
		m.mode = NormalMode
		m.err = nil
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.Up):
		m.categoryCursor--
		m.clampCategoryCursor()
	case key.Matches(msg, m.keyMap.Down):
		m.categoryCursor++
		m.clampCategoryCursor()
	case key.Matches(msg, m.keyMap.AddTask):
		if !m.ctrl.CanAddCategory() {
			m.err = errCategoryCap(m.ctrl.MaxCategories())
			break
		}
		m.err = nil
		m.beginCategoryInput(categoryAdd, "")
	case key.Matches(msg, m.keyMap.Rename), key.Matches(msg, m.keyMap.EditTask):
		if name := m.selectedCategory(); name != "" {
			m.err = nil
			m.beginCategoryInput(categoryRename, name)
		}
	case key.Matches(msg, m.keyMap.DeleteTask):
		if name := m.selectedCategory(); name != "" {
			m.ctrl.DeleteCategory(name)
			m.clampCategoryCursor()
			m.loadTasks()
		}
	}
	return m, nil
}
