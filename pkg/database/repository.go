package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

const (
	dateLayout = "2006-01-02"
	nextIDKey  = "next_id"
)

var taskColumns = []string{"id", "title", "done", "duedate", "category", "priority"}

// Repository implements model.Repository on a SQLite database.
//
// The interface has no error returns, so failures are logged, remembered
// for Err and turned into the same "nothing happened" result bad input gets.
type Repository struct {
	db            *sql.DB
	sq            squirrel.StatementBuilderType
	maxCategories int
	initialized   bool
	err           error
}

var _ model.Repository = (*Repository)(nil)

// NewRepository wraps db. Non-positive maxCategories selects
// model.DefaultMaxCategories.
func NewRepository(db *sql.DB, maxCategories int) *Repository {
	if maxCategories <= 0 {
		maxCategories = model.DefaultMaxCategories
	}
	return &Repository{
		db:            db,
		sq:            squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		maxCategories: maxCategories,
	}
}

// Err returns the last database error, if any
func (r *Repository) Err() error {
	return r.err
}

func (r *Repository) fail(op string, err error) {
	r.err = fmt.Errorf("%s: %w", op, err)
	utils.Logger().Error("database operation failed", "op", op, "error", err)
}

func (r *Repository) EnsureInitialized() {
	if r.initialized {
		return
	}
	if err := EnsureSchema(r.db); err != nil {
		r.fail("ensure schema", err)
		return
	}
	query, args, err := r.sq.Insert("meta").Options("OR IGNORE").
		Columns("key", "value").Values(nextIDKey, model.FirstID).ToSql()
	if err == nil {
		_, err = r.db.Exec(query, args...)
	}
	if err != nil {
		r.fail("seed next id", err)
		return
	}
	r.initialized = true
}

// inTx runs fn inside a transaction and reports whether it committed
func (r *Repository) inTx(op string, fn func(tx *sql.Tx) error) bool {
	r.EnsureInitialized()
	tx, err := r.db.Begin()
	if err != nil {
		r.fail(op, err)
		return false
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		if !errors.Is(err, errRejected) {
			r.fail(op, err)
		}
		return false
	}
	if err := tx.Commit(); err != nil {
		r.fail(op, err)
		return false
	}
	return true
}

// errRejected aborts a transaction for input the repository refuses
var errRejected = errors.New("rejected")

func (r *Repository) exec(tx *sql.Tx, b squirrel.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return tx.Exec(query, args...)
}

// ---------- Tasks ----------

func (r *Repository) ListAll() []model.Task {
	r.EnsureInitialized()
	tasks := []model.Task{}

	query, args, err := r.sq.Select(taskColumns...).From("tasks").OrderBy("seq").ToSql()
	if err != nil {
		r.fail("list tasks", err)
		return tasks
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.fail("list tasks", err)
		return tasks
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t        model.Task
			dueDate  sql.NullString
			priority string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Done, &dueDate, &t.Category, &priority); err != nil {
			r.fail("scan task", err)
			return tasks
		}
		t.Priority = model.Priority(priority)
		if dueDate.Valid && dueDate.String != "" {
			if d, err := time.Parse(dateLayout, dueDate.String); err == nil {
				t.DueDate = d
			}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.fail("list tasks", err)
	}
	return tasks
}

// NextID hands out the stored counter and advances it
func (r *Repository) NextID() int {
	var id int
	ok := r.inTx("next id", func(tx *sql.Tx) error {
		query, args, err := r.sq.Select("value").From("meta").Where(squirrel.Eq{"key": nextIDKey}).ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(query, args...).Scan(&id); err != nil {
			return err
		}
		_, err = r.exec(tx, r.sq.Update("meta").Set("value", id+1).Where(squirrel.Eq{"key": nextIDKey}))
		return err
	})
	if !ok {
		return 0
	}
	return id
}

func dueDateValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return model.DateOf(t).Format(dateLayout)
}

func (r *Repository) Add(task model.Task) {
	ok := r.inTx("add task", func(tx *sql.Tx) error {
		_, err := r.exec(tx, r.sq.Insert("tasks").Columns(taskColumns...).Values(
			task.ID, task.Title, task.Done, dueDateValue(task.DueDate), task.Category, string(task.Priority),
		))
		return err
	})
	if ok {
		utils.Log("task added", "id", task.ID, "title", task.Title, "backend", "sqlite")
	}
}

func (r *Repository) Delete(id int) {
	r.inTx("delete task", func(tx *sql.Tx) error {
		_, err := r.exec(tx, r.sq.Delete("tasks").Where(squirrel.Eq{"id": id}))
		return err
	})
}

// Update overwrites the columns named by patch for the task with the given id
func (r *Repository) Update(id int, patch model.TaskPatch) {
	if patch.Empty() {
		return
	}
	update := r.sq.Update("tasks").Where(squirrel.Eq{"id": id})
	if patch.Title != nil {
		update = update.Set("title", *patch.Title)
	}
	if patch.Done != nil {
		update = update.Set("done", *patch.Done)
	}
	if patch.DueDate != nil {
		update = update.Set("duedate", dueDateValue(*patch.DueDate))
	}
	if patch.Category != nil {
		update = update.Set("category", *patch.Category)
	}
	if patch.Priority != nil {
		update = update.Set("priority", string(*patch.Priority))
	}
	r.inTx("update task", func(tx *sql.Tx) error {
		_, err := r.exec(tx, update)
		return err
	})
}

// ---------- Categories ----------

func (r *Repository) ListCategories() []string {
	r.EnsureInitialized()
	names := []string{}

	query, args, err := r.sq.Select("name").From("categories").OrderBy("seq").ToSql()
	if err != nil {
		r.fail("list categories", err)
		return names
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.fail("list categories", err)
		return names
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.fail("scan category", err)
			return names
		}
		names = append(names, name)
	}
	return names
}

func (r *Repository) MaxCategories() int {
	return r.maxCategories
}

func categoryExists(tx *sql.Tx, sq squirrel.StatementBuilderType, name string) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").From("categories").Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := tx.QueryRow(query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) AddCategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return r.inTx("add category", func(tx *sql.Tx) error {
		query, args, err := r.sq.Select("COUNT(*)").From("categories").ToSql()
		if err != nil {
			return err
		}
		var count int
		if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
			return err
		}
		if count >= r.maxCategories {
			return errRejected
		}
		exists, err := categoryExists(tx, r.sq, name)
		if err != nil {
			return err
		}
		if exists {
			return errRejected
		}
		_, err = r.exec(tx, r.sq.Insert("categories").Columns("name").Values(name))
		return err
	})
}

func (r *Repository) RenameCategory(oldName, newName string) bool {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return false
	}
	return r.inTx("rename category", func(tx *sql.Tx) error {
		exists, err := categoryExists(tx, r.sq, oldName)
		if err != nil {
			return err
		}
		if !exists {
			return errRejected
		}
		if newName == oldName {
			return nil
		}
		taken, err := categoryExists(tx, r.sq, newName)
		if err != nil {
			return err
		}
		if taken {
			return errRejected
		}
		if _, err := r.exec(tx, r.sq.Update("categories").Set("name", newName).Where(squirrel.Eq{"name": oldName})); err != nil {
			return err
		}
		_, err = r.exec(tx, r.sq.Update("tasks").Set("category", newName).Where(squirrel.Eq{"category": oldName}))
		return err
	})
}

func (r *Repository) DeleteCategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return r.inTx("delete category", func(tx *sql.Tx) error {
		res, err := r.exec(tx, r.sq.Delete("categories").Where(squirrel.Eq{"name": name}))
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return errRejected
		}
		_, err = r.exec(tx, r.sq.Update("tasks").Set("category", "").Where(squirrel.Eq{"category": name}))
		return err
	})
}
