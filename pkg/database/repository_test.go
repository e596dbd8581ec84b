package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"todomvc/pkg/model"
	"todomvc/pkg/model/modeltest"
)

func openTestRepo(t *testing.T, maxCategories int) *Repository {
	t.Helper()
	db, err := Open(MemoryDSN(uuid.NewString()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := NewRepository(db, maxCategories)
	repo.EnsureInitialized()
	if err := repo.Err(); err != nil {
		t.Fatalf("EnsureInitialized: %v", err)
	}
	return repo
}

func TestRepositoryContract(t *testing.T) {
	modeltest.RunRepositoryContract(t, func(t *testing.T, maxCategories int) model.Repository {
		return openTestRepo(t, maxCategories)
	})
}

func TestMemoryDatabasesAreIsolated(t *testing.T) {
	a := openTestRepo(t, 5)
	b := openTestRepo(t, 5)

	a.Add(model.Task{ID: a.NextID(), Title: "a"})
	if got := len(b.ListAll()); got != 0 {
		t.Errorf("second database sees %d tasks", got)
	}
}

func TestDueDateStoredAsDate(t *testing.T) {
	repo := openTestRepo(t, 5)
	loc := time.FixedZone("X", -5*60*60)
	repo.Add(model.Task{ID: repo.NextID(), Title: "a", DueDate: time.Date(2025, 6, 15, 22, 0, 0, 0, loc)})

	got := repo.ListAll()[0].DueDate
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("due date = %v, want %v", got, want)
	}
}

func TestFileDatabaseSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	repo := NewRepository(db, 5)
	repo.AddCategory("Work")
	repo.Add(model.Task{ID: repo.NextID(), Title: "persisted", Category: "Work"})
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	repo = NewRepository(db, 5)

	tasks := repo.ListAll()
	if len(tasks) != 1 || tasks[0].Title != "persisted" || tasks[0].Category != "Work" {
		t.Fatalf("tasks after reopen = %+v", tasks)
	}
	if got := repo.NextID(); got != 2 {
		t.Errorf("NextID after reopen = %d, want 2", got)
	}
}

func TestClosedDatabaseDegrades(t *testing.T) {
	repo := openTestRepo(t, 5)
	repo.db.Close()

	if got := repo.ListAll(); got == nil || len(got) != 0 {
		t.Errorf("ListAll on closed db = %#v", got)
	}
	if repo.AddCategory("Work") {
		t.Errorf("AddCategory succeeded on closed db")
	}
	if repo.Err() == nil {
		t.Errorf("Err() = nil after failures")
	}
}
