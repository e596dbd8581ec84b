package adapter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"tasks.json":     FormatJSON,
		"tasks.ext.json": FormatJSON,
		"tasks.yaml":     FormatYAML,
		"TASKS.YML":      FormatYAML,
		"tasks":          FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadExternalTasksYAML(t *testing.T) {
	src := `
- item_id: EXT-1000
  name: Buy milk
  urgency: 2
  label: Shopping
- item_id: EXT-1001
  name: Ship release
  is_completed: true
  due: "2025-06-15"
  urgency: 5
`
	items, err := LoadExternalTasks(strings.NewReader(src), "yaml")
	if err != nil {
		t.Fatalf("LoadExternalTasks: %v", err)
	}
	want := []ExternalTask{
		{ItemID: "EXT-1000", Name: "Buy milk", Urgency: 2, Label: strp("Shopping")},
		{ItemID: "EXT-1001", Name: "Ship release", IsCompleted: true, Due: strp("2025-06-15"), Urgency: 5},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExternalTasksJSONNulls(t *testing.T) {
	src := `[{"item_id":"EXT-1","name":"a","is_completed":false,"due":null,"urgency":3,"label":null}]`
	items, err := LoadExternalTasks(strings.NewReader(src), "json")
	if err != nil {
		t.Fatalf("LoadExternalTasks: %v", err)
	}
	if len(items) != 1 || items[0].Due != nil || items[0].Label != nil {
		t.Errorf("items = %+v", items)
	}
}

func TestLoadExternalTasksErrors(t *testing.T) {
	if _, err := LoadExternalTasks(strings.NewReader("[]"), "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
	if _, err := LoadExternalTasks(strings.NewReader("{not json"), "json"); err == nil {
		t.Errorf("expected decode error")
	}
	items, err := LoadExternalTasks(strings.NewReader(""), "json")
	if err != nil || len(items) != 0 {
		t.Errorf("empty input = %v, %v; want no items", items, err)
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	items := NewBidirectionalTaskAdapter().ToExternalMany(nil)
	svc := NewExternalService()
	svc.CreateItem("a", 1, strp("Home"), strp("2025-06-15T00:00:00"))
	svc.CreateItem("b", 4, nil, nil)
	items = append(items, svc.FetchAll()...)

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			var buf bytes.Buffer
			if err := WriteExternalTasks(&buf, FormatFromPath(path), items); err != nil {
				t.Fatalf("WriteExternalTasks: %v", err)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := LoadExternalFile(path)
			if err != nil {
				t.Fatalf("LoadExternalFile: %v", err)
			}
			if diff := cmp.Diff(items, got); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadExternalFileMissing(t *testing.T) {
	if _, err := LoadExternalFile(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
