package model_test

import (
	"testing"

	"todomvc/pkg/model"
	"todomvc/pkg/model/modeltest"
)

func TestSessionRepositoryContract(t *testing.T) {
	modeltest.RunRepositoryContract(t, func(t *testing.T, maxCategories int) model.Repository {
		return model.NewSessionRepository(maxCategories)
	})
}

func TestSessionRepositoryZeroValue(t *testing.T) {
	var repo model.SessionRepository

	if got := repo.ListAll(); got == nil || len(got) != 0 {
		t.Errorf("ListAll on zero value = %#v, want empty slice", got)
	}
	if got := repo.NextID(); got != model.FirstID {
		t.Errorf("NextID on zero value = %d, want %d", got, model.FirstID)
	}
	if got := repo.MaxCategories(); got != model.DefaultMaxCategories {
		t.Errorf("MaxCategories on zero value = %d, want %d", got, model.DefaultMaxCategories)
	}
}

func TestNewSessionRepositoryDefaultsCap(t *testing.T) {
	for _, max := range []int{0, -3} {
		if got := model.NewSessionRepository(max).MaxCategories(); got != model.DefaultMaxCategories {
			t.Errorf("NewSessionRepository(%d).MaxCategories() = %d, want %d", max, got, model.DefaultMaxCategories)
		}
	}
	if got := model.NewSessionRepository(2).MaxCategories(); got != 2 {
		t.Errorf("MaxCategories = %d, want 2", got)
	}
}

func TestSessionRepositoriesAreIsolated(t *testing.T) {
	a := model.NewSessionRepository(5)
	b := model.NewSessionRepository(5)

	a.Add(model.Task{ID: a.NextID(), Title: "only in a"})
	a.AddCategory("Work")

	if len(b.ListAll()) != 0 || len(b.ListCategories()) != 0 {
		t.Errorf("state leaked between sessions")
	}
	if got := b.NextID(); got != model.FirstID {
		t.Errorf("second session NextID = %d, want %d", got, model.FirstID)
	}
}
