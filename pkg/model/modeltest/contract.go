// Package modeltest holds checks shared by every model.Repository implementation.
package modeltest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"todomvc/pkg/model"
)

// NewRepoFunc builds a fresh, empty repository with the given category cap
type NewRepoFunc func(t *testing.T, maxCategories int) model.Repository

// RunRepositoryContract exercises the repository contract against newRepo
func RunRepositoryContract(t *testing.T, newRepo NewRepoFunc) {
	t.Run("EnsureInitializedIsIdempotent", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.EnsureInitialized()
		repo.Add(model.Task{ID: repo.NextID(), Title: "keep me"})
		repo.EnsureInitialized()

		if got := len(repo.ListAll()); got != 1 {
			t.Fatalf("EnsureInitialized wiped tasks: got %d tasks, want 1", got)
		}
		if got := repo.NextID(); got != 2 {
			t.Errorf("NextID after re-init = %d, want 2", got)
		}
	})

	t.Run("NextIDStrictlyIncreasing", func(t *testing.T) {
		repo := newRepo(t, 5)
		prev := 0
		for i := 0; i < 50; i++ {
			id := repo.NextID()
			if i == 0 && id != model.FirstID {
				t.Fatalf("first id = %d, want %d", id, model.FirstID)
			}
			if id <= prev {
				t.Fatalf("id %d after %d is not increasing", id, prev)
			}
			prev = id
		}
	})

	t.Run("IDsNotReusedAfterDelete", func(t *testing.T) {
		repo := newRepo(t, 5)
		id := repo.NextID()
		repo.Add(model.Task{ID: id, Title: "a"})
		repo.Delete(id)
		if next := repo.NextID(); next == id {
			t.Errorf("id %d was reused", id)
		}
	})

	t.Run("ListAllIsSnapshot", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.Add(model.Task{ID: repo.NextID(), Title: "original"})

		snapshot := repo.ListAll()
		snapshot[0].Title = "mutated"
		_ = append(snapshot, model.Task{ID: 99, Title: "extra"})

		got := repo.ListAll()
		if len(got) != 1 || got[0].Title != "original" {
			t.Errorf("repository changed through snapshot: %+v", got)
		}
	})

	t.Run("AddAllowsDuplicateTitles", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.Add(model.Task{ID: repo.NextID(), Title: "same"})
		repo.Add(model.Task{ID: repo.NextID(), Title: "same"})
		if got := len(repo.ListAll()); got != 2 {
			t.Errorf("got %d tasks, want 2", got)
		}
	})

	t.Run("DeleteUnknownIsNoop", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.Add(model.Task{ID: repo.NextID(), Title: "a"})
		repo.Delete(12345)
		if got := len(repo.ListAll()); got != 1 {
			t.Errorf("got %d tasks, want 1", got)
		}
	})

	t.Run("UpdateReplacesOnlyGivenFields", func(t *testing.T) {
		repo := newRepo(t, 5)
		due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		repo.AddCategory("Work")
		repo.Add(model.Task{ID: repo.NextID(), Title: "a", DueDate: due, Category: "Work", Priority: model.PriorityHigh})
		repo.Add(model.Task{ID: repo.NextID(), Title: "b"})

		before := repo.ListAll()
		repo.Update(1, model.TaskPatch{Done: model.Ptr(true)})
		repo.Update(404, model.TaskPatch{Title: model.Ptr("ghost")})

		want := []model.Task{
			{ID: 1, Title: "a", Done: true, DueDate: due, Category: "Work", Priority: model.PriorityHigh},
			{ID: 2, Title: "b"},
		}
		if diff := cmp.Diff(want, repo.ListAll()); diff != "" {
			t.Errorf("tasks after update mismatch (-want +got):\n%s", diff)
		}
		if before[0].Done {
			t.Errorf("earlier snapshot changed after update")
		}
	})

	t.Run("UpdateClearsWithZeroValues", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.AddCategory("Work")
		repo.Add(model.Task{ID: repo.NextID(), Title: "a", DueDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Category: "Work", Priority: model.PriorityLow})
		repo.Update(1, model.TaskPatch{
			DueDate:  model.Ptr(time.Time{}),
			Category: model.Ptr(""),
			Priority: model.Ptr(model.PriorityNone),
		})

		got := repo.ListAll()[0]
		if got.HasDueDate() || got.HasCategory() || got.HasPriority() {
			t.Errorf("fields not cleared: %+v", got)
		}
	})

	t.Run("AddCategoryRules", func(t *testing.T) {
		repo := newRepo(t, 5)
		tests := []struct {
			name string
			in   string
			want bool
		}{
			{"new", "Work", true},
			{"trimmed", "  Home  ", true},
			{"empty", "", false},
			{"blank", "   ", false},
			{"duplicate", "Work", false},
			{"duplicate after trim", " Home", false},
			{"different case is distinct", "work", true},
		}
		for _, tt := range tests {
			if got := repo.AddCategory(tt.in); got != tt.want {
				t.Errorf("%s: AddCategory(%q) = %v, want %v", tt.name, tt.in, got, tt.want)
			}
		}
		want := []string{"Work", "Home", "work"}
		if diff := cmp.Diff(want, repo.ListCategories()); diff != "" {
			t.Errorf("categories mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("CategoryCap", func(t *testing.T) {
		repo := newRepo(t, 5)
		for _, name := range []string{"A", "B", "C", "D", "E"} {
			if !repo.AddCategory(name) {
				t.Fatalf("AddCategory(%q) failed below the cap", name)
			}
		}
		if repo.AddCategory("F") {
			t.Errorf("AddCategory beyond the cap succeeded")
		}
		if got := len(repo.ListCategories()); got != 5 {
			t.Errorf("got %d categories, want 5", got)
		}
		if got := repo.MaxCategories(); got != 5 {
			t.Errorf("MaxCategories = %d, want 5", got)
		}
	})

	t.Run("RenameCategoryCascades", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.AddCategory("Work")
		repo.AddCategory("Home")
		repo.Add(model.Task{ID: repo.NextID(), Title: "a", Category: "Work"})
		repo.Add(model.Task{ID: repo.NextID(), Title: "b", Category: "Home"})

		if !repo.RenameCategory(" Work ", "Job") {
			t.Fatalf("RenameCategory failed")
		}
		if diff := cmp.Diff([]string{"Job", "Home"}, repo.ListCategories()); diff != "" {
			t.Errorf("categories mismatch (-want +got):\n%s", diff)
		}
		tasks := repo.ListAll()
		if tasks[0].Category != "Job" || tasks[1].Category != "Home" {
			t.Errorf("cascade wrong: %+v", tasks)
		}
	})

	t.Run("RenameCategoryRules", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.AddCategory("Work")
		repo.AddCategory("Home")

		tests := []struct {
			name     string
			old, new string
			want     bool
		}{
			{"empty old", "", "X", false},
			{"empty new", "Work", "  ", false},
			{"unknown old", "Gym", "X", false},
			{"collision", "Work", "Home", false},
			{"same name", "Work", "Work", true},
		}
		for _, tt := range tests {
			if got := repo.RenameCategory(tt.old, tt.new); got != tt.want {
				t.Errorf("%s: RenameCategory(%q, %q) = %v, want %v", tt.name, tt.old, tt.new, got, tt.want)
			}
		}
		if diff := cmp.Diff([]string{"Work", "Home"}, repo.ListCategories()); diff != "" {
			t.Errorf("categories changed (-want +got):\n%s", diff)
		}
	})

	t.Run("DeleteCategoryCascades", func(t *testing.T) {
		repo := newRepo(t, 5)
		repo.AddCategory("Work")
		repo.Add(model.Task{ID: repo.NextID(), Title: "a", Category: "Work"})

		if repo.DeleteCategory("") || repo.DeleteCategory("Gym") {
			t.Errorf("DeleteCategory accepted empty or unknown name")
		}
		if !repo.DeleteCategory("Work") {
			t.Fatalf("DeleteCategory failed")
		}
		if got := repo.ListCategories(); len(got) != 0 {
			t.Errorf("categories = %v, want none", got)
		}
		if got := repo.ListAll()[0].Category; got != "" {
			t.Errorf("task category = %q, want cleared", got)
		}
	})
}
