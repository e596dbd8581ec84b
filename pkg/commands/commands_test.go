package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"todomvc/pkg/controller"
	"todomvc/pkg/model"
)

func newController(t *testing.T) *controller.Controller {
	t.Helper()
	svc := model.NewService(model.NewSessionRepository(model.DefaultMaxCategories))
	svc.Initialize()
	return controller.New(svc, nil)
}

var june15 = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestParseQuickAdd(t *testing.T) {
	tests := []struct {
		in   string
		want QuickAdd
	}{
		{"Buy milk", QuickAdd{Title: "Buy milk"}},
		{"Buy milk +Einkauf", QuickAdd{Title: "Buy milk", Category: "Einkauf"}},
		{"+Arbeit Report schreiben !hoch", QuickAdd{Title: "Report schreiben", Category: "Arbeit", Priority: "hoch"}},
		{"a +Büro +Home b", QuickAdd{Title: "a b", Category: "Büro"}},
		{"   ", QuickAdd{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseQuickAdd(tt.in)); diff != "" {
			t.Errorf("ParseQuickAdd(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestFormatQuickAddRoundTrip(t *testing.T) {
	task := model.Task{Title: "Report", Category: "Arbeit", Priority: model.PriorityHigh}
	line := FormatQuickAdd(task)
	if line != "Report +Arbeit !Hoch" {
		t.Fatalf("FormatQuickAdd = %q", line)
	}
	q := ParseQuickAdd(line)
	if q.Title != task.Title || q.Category != task.Category || q.Priority != string(task.Priority) {
		t.Errorf("round trip = %+v", q)
	}
}

func TestAddTask(t *testing.T) {
	c := newController(t)
	var out bytes.Buffer

	if err := AddTask(&out, c, "Report +Arbeit !hoch", "2025-06-15", "", ""); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if got := out.String(); got != "Added task 1: Report\n" {
		t.Errorf("output = %q", got)
	}
	want := model.Task{ID: 1, Title: "Report", DueDate: june15, Category: "Arbeit", Priority: model.PriorityHigh}
	if diff := cmp.Diff([]model.Task{want}, c.ListTasks()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}

	if err := AddTask(&out, c, "x +Arbeit", "", "Privat", "Niedrig"); err != nil {
		t.Fatalf("AddTask with overrides: %v", err)
	}
	if got := c.ListTasks()[1]; got.Category != "Privat" || got.Priority != model.PriorityLow {
		t.Errorf("flags did not override tags: %+v", got)
	}

	if err := AddTask(&out, c, "+Arbeit", "", "", ""); !errors.Is(err, ErrRejected) {
		t.Errorf("tag-only text err = %v, want ErrRejected", err)
	}
	if err := AddTask(&out, c, "y", "someday", "", ""); err == nil {
		t.Errorf("invalid date accepted")
	}
	if got := len(c.ListTasks()); got != 2 {
		t.Errorf("got %d tasks, want 2", got)
	}
}

func seed(t *testing.T, c *controller.Controller) {
	t.Helper()
	c.AddCategory("Arbeit")
	c.AddTask("undated", time.Time{}, "", "")
	c.AddTask("report", june15, "Arbeit", "Hoch")
	c.AddTask("call", june15.AddDate(0, 0, -1), "", "Niedrig")
	c.ToggleDone(3)
}

func TestPurge(t *testing.T) {
	tests := []struct {
		name      string
		opts      PurgeOptions
		input     string
		deleted   int
		remaining []string
	}{
		{"confirmed all", PurgeOptions{}, "y\n", 3, nil},
		{"declined", PurgeOptions{}, "n\n", 0, []string{"undated", "report", "call"}},
		{"no answer", PurgeOptions{}, "", 0, []string{"undated", "report", "call"}},
		{"done only", PurgeOptions{DoneOnly: true, SkipConfirm: true}, "", 1, []string{"undated", "report"}},
		{"undone only", PurgeOptions{UndoneOnly: true, SkipConfirm: true}, "", 2, []string{"call"}},
		{"by category", PurgeOptions{Category: "Arbeit", SkipConfirm: true}, "", 1, []string{"undated", "call"}},
		{"by date", PurgeOptions{Date: "15.06.2025", SkipConfirm: true}, "", 1, []string{"undated", "call"}},
		{"nothing matches", PurgeOptions{Category: "Gym", SkipConfirm: true}, "", 0, []string{"undated", "report", "call"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t)
			seed(t, c)
			var out bytes.Buffer

			n, err := Purge(strings.NewReader(tt.input), &out, c.Service(), tt.opts)
			if err != nil {
				t.Fatalf("Purge: %v", err)
			}
			if n != tt.deleted {
				t.Errorf("deleted %d, want %d", n, tt.deleted)
			}
			var titles []string
			for _, task := range c.ListTasks() {
				titles = append(titles, task.Title)
			}
			if diff := cmp.Diff(tt.remaining, titles); diff != "" {
				t.Errorf("remaining mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPurgeRejectsConflictingFlags(t *testing.T) {
	c := newController(t)
	if _, err := Purge(strings.NewReader(""), &bytes.Buffer{}, c.Service(), PurgeOptions{DoneOnly: true, UndoneOnly: true}); err == nil {
		t.Errorf("Purge accepted --done with --undone")
	}
}

func TestEncodeTXT(t *testing.T) {
	c := newController(t)
	seed(t, c)

	var buf bytes.Buffer
	if err := EncodeTasks(&buf, c, ExportTXT); err != nil {
		t.Fatalf("EncodeTasks: %v", err)
	}
	want := `- [ ] undated

14.06.2025:
- [x] call !Niedrig

15.06.2025:
- [ ] report +Arbeit !Hoch
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("txt mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnknownType(t *testing.T) {
	if err := EncodeTasks(&bytes.Buffer{}, newController(t), "csv"); err == nil {
		t.Errorf("EncodeTasks accepted csv")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, tc := range []struct{ exportType, file string }{
		{ExportJSON, "tasks.json"},
		{ExportTXT, "tasks.txt"},
		{ExportExternal, "tasks.ext.json"},
	} {
		t.Run(tc.exportType, func(t *testing.T) {
			src := newController(t)
			seed(t, src)
			path := filepath.Join(t.TempDir(), "out", tc.file)

			n, err := Export(context.Background(), src, path, tc.exportType)
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			if n != 3 {
				t.Errorf("exported %d tasks, want 3", n)
			}

			dst := newController(t)
			added, err := Import(dst, path, "")
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if added != 3 {
				t.Errorf("imported %d tasks, want 3", added)
			}

			byTitle := map[string]model.Task{}
			for _, task := range dst.ListTasks() {
				byTitle[task.Title] = task
			}
			report := byTitle["report"]
			if !report.DueDate.Equal(june15) || report.Category != "Arbeit" || report.Priority != model.PriorityHigh {
				t.Errorf("report = %+v", report)
			}
			if !byTitle["call"].Done || byTitle["undated"].HasDueDate() {
				t.Errorf("tasks = %+v", byTitle)
			}
		})
	}
}

func TestExportWaitsForLock(t *testing.T) {
	c := newController(t)
	path := filepath.Join(t.TempDir(), "tasks.json")

	held := flock.New(path + ".lock")
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if _, err := Export(ctx, c, path, ExportJSON); err == nil {
		t.Fatalf("Export succeeded while the file was locked")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file written despite lock: %v", err)
	}
}

func TestImportTXTHeaders(t *testing.T) {
	c := newController(t)
	src := `
- [ ] no date yet
2025-06-15:
- [x] done thing +Home
  - [ ] indented
not a task
01.07.2025
- [ ] july !mittel
- [ ]
`
	n, err := ImportTXTTasks(c, strings.NewReader(src))
	if err != nil {
		t.Fatalf("ImportTXTTasks: %v", err)
	}
	if n != 4 {
		t.Fatalf("added %d, want 4", n)
	}
	want := []model.Task{
		{ID: 1, Title: "no date yet"},
		{ID: 2, Title: "done thing", Done: true, DueDate: june15, Category: "Home"},
		{ID: 3, Title: "indented", DueDate: june15},
		{ID: 4, Title: "july", DueDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Priority: model.PriorityMedium},
	}
	if diff := cmp.Diff(want, c.ListTasks()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestImportExternalYAML(t *testing.T) {
	c := newController(t)
	path := filepath.Join(t.TempDir(), "feed.yaml")
	src := "- item_id: EXT-1000\n  name: Buy milk\n  urgency: 1\n  label: Einkauf\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	n, err := Import(c, path, "")
	if err != nil || n != 1 {
		t.Fatalf("Import = %d, %v", n, err)
	}
	got := c.ListTasks()[0]
	if got.Title != "Buy milk" || got.Category != "Einkauf" || got.Priority != model.PriorityLow {
		t.Errorf("task = %+v", got)
	}
}

func TestDetectImportFormat(t *testing.T) {
	tests := map[string]string{
		"a.txt":      ImportTXT,
		"a":          ImportTXT,
		"a.json":     ImportJSON,
		"a.ext.json": ImportExternal,
		"a.YML":      ImportExternal,
		"a.yaml":     ImportExternal,
	}
	for in, want := range tests {
		if got := DetectImportFormat(in); got != want {
			t.Errorf("DetectImportFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImportErrors(t *testing.T) {
	c := newController(t)
	if _, err := Import(c, filepath.Join(t.TempDir(), "missing.txt"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := Import(c, path, ""); err == nil {
		t.Errorf("malformed json accepted")
	}
	if _, err := Import(c, path, "csv"); err == nil {
		t.Errorf("unknown format accepted")
	}
}
