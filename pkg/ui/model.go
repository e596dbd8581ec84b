package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todomvc/pkg/config"
	"todomvc/pkg/controller"
	"todomvc/pkg/keymaps"
	"todomvc/pkg/session"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	CategoryMode
	HelpViewMode
)

// ViewMode selects what normal mode shows
type ViewMode int

const (
	ListViewMode ViewMode = iota
	CalendarViewMode
)

// form fields of the add/edit dialog
const (
	fieldTitle = iota
	fieldDue
	fieldCategory
	fieldPriority
	fieldCount
)

// categoryAction is the pending text input of the categories dialog
type categoryAction int

const (
	categoryBrowse categoryAction = iota
	categoryAdd
	categoryRename
)

// Model represents the application state
type Model struct {
	ctrl *controller.Controller

	table         table.Model
	rowIDs        []int // task id per table row, 0 for group headers and spacers
	showCommands  bool
	width, height int
	err           error

	// Configuration
	styles config.Styles
	keyMap keymaps.KeyMap

	// View state
	viewMode ViewMode
	dayFilter time.Time // zero shows every day

	// Form state
	mode        InputMode
	inputs      [fieldCount]textinput.Model
	activeInput int
	editingID   int
	deletingID  int

	// Categories dialog
	categoryCursor int
	categoryAction categoryAction
	categoryInput  textinput.Model

	// Sorting and grouping state
	sortBy    SortBy
	groupBy   GroupBy
	sortOrder SortOrder

	calendarMonth       time.Time
	calendarSelectedDay int // Selected day in calendar view (1-31)
	now                 func() time.Time
}

// NewModel creates a new UI model on top of ctrl
func NewModel(ctrl *controller.Controller, cfg config.Config) Model {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Aufgabe", Width: 36},
		{Title: "Kategorie", Width: 14},
		{Title: "Priorität", Width: 10},
		{Title: "Fällig", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := cfg.Styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{
		fieldTitle:    "Title (you can include +Category and !Priority tags)",
		fieldDue:      "Due Date (YYYY-MM-DD or DD.MM.YYYY, optional)",
		fieldCategory: "Category (optional)",
		fieldPriority: "Priority (Niedrig, Mittel, Hoch, optional)",
	}
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].Width = 40
	}

	categoryInput := textinput.New()
	categoryInput.Placeholder = "Category name"
	categoryInput.Width = 30

	now := time.Now()
	m := Model{
		ctrl:                ctrl,
		table:               t,
		styles:              styles,
		keyMap:              keymaps.BuildKeyMap(cfg.KeyMap),
		mode:                NormalMode,
		inputs:              inputs,
		categoryInput:       categoryInput,
		viewMode:            ListViewMode,
		sortBy:              SortByNone,
		calendarMonth:       time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		calendarSelectedDay: now.Day(),
		now:                 time.Now,
	}
	m.resetInputs()
	m.loadTasks()
	return m
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the interactive interface on s and blocks until it quits
func Run(s *session.Session) error {
	p := tea.NewProgram(NewModel(s.Controller, s.Config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// resetInputs clears all form inputs
func (m *Model) resetInputs() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	if !m.dayFilter.IsZero() {
		m.inputs[fieldDue].SetValue(m.dayFilter.Format(dateLayout))
	}
	m.focusInput(fieldTitle)
}
