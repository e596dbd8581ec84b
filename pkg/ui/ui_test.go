package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"todomvc/pkg/config"
	"todomvc/pkg/controller"
	"todomvc/pkg/model"
)

var june15 = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *controller.Controller) {
	t.Helper()
	svc := model.NewService(model.NewSessionRepository(model.DefaultMaxCategories))
	ctrl := controller.New(svc, nil)
	m := NewModel(ctrl, config.Default())
	m.now = func() time.Time { return june15 }
	return m, ctrl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestAddTaskThroughForm(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = press(t, m, runes("a"))
	if m.mode != AddMode {
		t.Fatalf("mode = %v, want AddMode", m.mode)
	}
	m = press(t, m,
		runes("Milch kaufen +Einkauf"), tea.KeyMsg{Type: tea.KeyEnter},
		runes("15.06.2025"), tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("hoch"), tea.KeyMsg{Type: tea.KeyEnter},
	)

	if m.mode != NormalMode {
		t.Fatalf("mode = %v after submit, err = %v", m.mode, m.err)
	}
	want := []model.Task{{ID: 1, Title: "Milch kaufen", DueDate: june15, Category: "Einkauf", Priority: model.PriorityHigh}}
	if diff := cmp.Diff(want, ctrl.ListTasks()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if got := m.selectedTaskID(); got != 1 {
		t.Errorf("selected task = %d, want 1", got)
	}
}

func TestAddFormRejectsBlankTitle(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = press(t, m, runes("a"), runes("   "))
	for i := 0; i < fieldCount; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if m.mode != AddMode || m.err == nil {
		t.Errorf("mode = %v, err = %v; want form kept open with an error", m.mode, m.err)
	}
	if len(ctrl.ListTasks()) != 0 {
		t.Errorf("blank task was added")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != NormalMode || m.err != nil {
		t.Errorf("esc did not leave the form cleanly")
	}
}

func TestToggleDoneAndFilter(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddTask("a", time.Time{}, "", "")
	ctrl.AddTask("b", time.Time{}, "", "")
	m.loadTasks()

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if task, _ := ctrl.Task(1); !task.Done {
		t.Fatalf("space did not toggle task 1")
	}
	if !strings.Contains(m.View(), "Erledigt: 1/2 (50%)") {
		t.Errorf("view lacks progress line:\n%s", m.View())
	}

	m = press(t, m, runes("f"))
	if ctrl.Filter != model.FilterOpen {
		t.Fatalf("filter = %q, want %q", ctrl.Filter, model.FilterOpen)
	}
	if diff := cmp.Diff([]int{2}, m.rowIDs); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	// x toggles the task under the cursor, which is now task 2
	m = press(t, m, runes("x"))
	if task, _ := ctrl.Task(2); !task.Done {
		t.Errorf("x did not toggle task 2")
	}
	if len(m.rowIDs) != 0 {
		t.Errorf("open filter still shows %v", m.rowIDs)
	}
	if !strings.Contains(m.View(), "No tasks.") {
		t.Errorf("empty view lacks placeholder")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddTask("a", time.Time{}, "", "")
	m.loadTasks()

	m = press(t, m, runes("d"), runes("n"))
	if len(ctrl.ListTasks()) != 1 || m.mode != NormalMode {
		t.Fatalf("n did not cancel the delete")
	}

	m = press(t, m, runes("d"))
	if !strings.Contains(m.View(), "Title: a") {
		t.Errorf("confirmation does not name the task")
	}
	m = press(t, m, runes("y"))
	if len(ctrl.ListTasks()) != 0 {
		t.Errorf("task not deleted")
	}
}

func TestEditKeepsDraftUntilCommitted(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddCategory("Arbeit")
	ctrl.AddTask("Bericht", time.Time{}, "Arbeit", "Niedrig")
	m.loadTasks()

	m = press(t, m, runes("e"))
	if m.mode != EditMode || m.inputs[fieldTitle].Value() != "Bericht" || m.inputs[fieldCategory].Value() != "Arbeit" {
		t.Fatalf("edit form not seeded: mode %v, title %q", m.mode, m.inputs[fieldTitle].Value())
	}

	m = press(t, m, runes(" schreiben"), tea.KeyMsg{Type: tea.KeyEsc})
	draft, ok := ctrl.Draft(1)
	if !ok || draft.Title != "Bericht schreiben" {
		t.Fatalf("draft = %+v, %v", draft, ok)
	}
	if task, _ := ctrl.Task(1); task.Title != "Bericht" {
		t.Errorf("cancelled edit changed the task: %q", task.Title)
	}

	// reopening shows the draft, submitting writes it
	m = press(t, m, runes("e"))
	if got := m.inputs[fieldTitle].Value(); got != "Bericht schreiben" {
		t.Fatalf("reopened title = %q", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("2025-06-15"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeInput != fieldPriority {
		t.Fatalf("shift+tab did not wrap around, active = %d", m.activeInput)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := model.Task{ID: 1, Title: "Bericht schreiben", DueDate: june15, Category: "Arbeit", Priority: model.PriorityLow}
	got, _ := ctrl.Task(1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("task mismatch (-want +got):\n%s", diff)
	}
	if _, ok := ctrl.Draft(1); ok {
		t.Errorf("draft kept after commit")
	}
}

func TestEditRejectsBadDate(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddTask("a", time.Time{}, "", "")
	m.loadTasks()

	m = press(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyTab}, runes("15/06/2025"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != EditMode || m.err == nil {
		t.Errorf("mode = %v, err = %v; want the form kept open", m.mode, m.err)
	}
	if task, _ := ctrl.Task(1); task.HasDueDate() {
		t.Errorf("bad date was written")
	}
}

func TestCategoryDialog(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddCategory("Arbeit")
	ctrl.AddTask("Bericht", time.Time{}, "Arbeit", "")
	m.loadTasks()

	m = press(t, m, runes("c"), runes("a"), runes("Haus"), tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]string{"Arbeit", "Haus"}, ctrl.Categories()); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	// rename the first entry; the task follows
	m = press(t, m, runes("r"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace},
		runes("Job"), tea.KeyMsg{Type: tea.KeyEnter})
	if task, _ := ctrl.Task(1); task.Category != "Job" {
		t.Errorf("task category = %q, want Job", task.Category)
	}

	// Haus sorts first now
	m = press(t, m, runes("d"))
	if diff := cmp.Diff([]string{"Job"}, ctrl.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != NormalMode {
		t.Errorf("esc did not close the dialog")
	}
}

func TestCategoryDialogRespectsCap(t *testing.T) {
	m, ctrl := newTestModel(t)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		ctrl.AddCategory(name)
	}

	m = press(t, m, runes("c"), runes("a"))
	if m.categoryAction != categoryBrowse || m.err == nil {
		t.Errorf("add allowed beyond the cap")
	}
	if !strings.Contains(m.View(), "Categories (5/5)") {
		t.Errorf("dialog lacks the counter:\n%s", m.View())
	}
}

func TestSortAndGroup(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddCategory("Haus")
	ctrl.AddTask("c", june15.AddDate(0, 0, 1), "", "Niedrig")
	ctrl.AddTask("a", time.Time{}, "Haus", "Hoch")
	ctrl.AddTask("b", june15, "Haus", "")
	tasks := ctrl.ListTasks()

	tests := []struct {
		by    SortBy
		order SortOrder
		want  []string
	}{
		{SortByNone, SortAsc, []string{"c", "a", "b"}},
		{SortByTitle, SortAsc, []string{"a", "b", "c"}},
		{SortByTitle, SortDesc, []string{"c", "b", "a"}},
		{SortByDueDate, SortAsc, []string{"b", "c", "a"}},
		{SortByPriority, SortAsc, []string{"a", "c", "b"}},
		{SortByCategory, SortAsc, []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		m.sortBy, m.sortOrder = tt.by, tt.order
		if diff := cmp.Diff(tt.want, titles(m.SortTasks(tasks))); diff != "" {
			t.Errorf("sort by %s (%d) mismatch (-want +got):\n%s", tt.by, tt.order, diff)
		}
	}

	m.sortBy, m.sortOrder = SortByNone, SortAsc
	groupTests := []struct {
		by   GroupBy
		want []string
	}{
		{GroupByCategory, []string{"+Haus", "Ohne Kategorie"}},
		{GroupByPriority, []string{"!Hoch", "!Niedrig", "Ohne Priorität"}},
		{GroupByDueDateDaily, []string{"2025-06-15", "2025-06-16", "Ohne Datum"}},
		{GroupByDueDateWeekly, []string{"2025 KW 24", "2025 KW 25", "Ohne Datum"}},
		{GroupByDueDateMonthly, []string{"2025-06", "Ohne Datum"}},
	}
	for _, tt := range groupTests {
		m.groupBy = tt.by
		var names []string
		for _, g := range m.GroupTasks(tasks) {
			names = append(names, g.GroupName)
		}
		if diff := cmp.Diff(tt.want, names); diff != "" {
			t.Errorf("group by %s mismatch (-want +got):\n%s", tt.by, diff)
		}
	}
}

func TestGroupHeadersAreNotSelectable(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddTask("a", time.Time{}, "", "")
	m.loadTasks()

	m = press(t, m, runes("g"))
	if m.groupBy != GroupByCategory {
		t.Fatalf("groupBy = %v", m.groupBy)
	}
	if diff := cmp.Diff([]int{0, 1}, m.rowIDs); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	m = press(t, m, runes("x"))
	if task, _ := ctrl.Task(1); task.Done {
		t.Errorf("toggle on a group header changed a task")
	}
}

func TestCalendarSelectsDay(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddTask("heute", june15, "", "")
	ctrl.AddTask("morgen", june15.AddDate(0, 0, 1), "", "")
	m.loadTasks()

	m = press(t, m, runes("v"), runes("t"))
	if m.viewMode != CalendarViewMode {
		t.Fatalf("v did not open the calendar")
	}
	if !m.daysWithTasks()[16] || m.daysWithTasks()[14] {
		t.Errorf("daysWithTasks = %v", m.daysWithTasks())
	}
	if !strings.Contains(m.View(), "June 2025") {
		t.Errorf("calendar header missing:\n%s", m.View())
	}

	m = press(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.viewMode != ListViewMode || !m.dayFilter.Equal(june15.AddDate(0, 0, 1)) {
		t.Fatalf("viewMode = %v, dayFilter = %v", m.viewMode, m.dayFilter)
	}
	if diff := cmp.Diff([]int{2}, m.rowIDs); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.dayFilter.IsZero() || len(m.rowIDs) != 2 {
		t.Errorf("esc did not clear the day filter")
	}
}

func TestCalendarCrossesMonths(t *testing.T) {
	m, _ := newTestModel(t)
	m.jumpToToday()

	m.moveCalendar(-15)
	if m.calendarMonth.Month() != time.May || m.calendarSelectedDay != 31 {
		t.Errorf("back 15 days = %s %d", m.calendarMonth.Month(), m.calendarSelectedDay)
	}
	m.moveCalendar(7 * 5)
	if m.calendarMonth.Month() != time.July || m.calendarSelectedDay != 5 {
		t.Errorf("forward 35 days = %s %d", m.calendarMonth.Month(), m.calendarSelectedDay)
	}
}

func TestHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("?"))
	if m.mode != HelpViewMode || !strings.Contains(m.View(), "Available Commands") {
		t.Fatalf("? did not open help")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != NormalMode {
		t.Fatalf("esc did not close help")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}

func TestQuitKeyIsTextInForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("a"), runes("q"))
	if m.mode != AddMode || m.inputs[fieldTitle].Value() != "q" {
		t.Errorf("q in the form: mode %v, title %q", m.mode, m.inputs[fieldTitle].Value())
	}
}
