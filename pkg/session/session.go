// Package session wires one isolated set of repository, service, adapter and
// controller. Nothing is shared between two sessions.
package session

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"todomvc/pkg/adapter"
	"todomvc/pkg/config"
	"todomvc/pkg/controller"
	"todomvc/pkg/database"
	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

type Session struct {
	ID         string
	Config     config.Config
	Repo       model.Repository
	Service    *model.Service
	Adapter    *adapter.BidirectionalTaskAdapter
	Controller *controller.Controller

	db *sql.DB
}

// New validates cfg and builds a fresh session. With the sqlite backend and
// no database configured, the session gets its own in-memory database.
func New(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:     uuid.NewString(),
		Config: cfg,
	}

	switch cfg.Backend {
	case config.BackendSQLite:
		dsn := cfg.Database
		if dsn == "" {
			dsn = database.MemoryDSN(s.ID)
		}
		db, err := database.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		repo := database.NewRepository(db, cfg.MaxCategories)
		repo.EnsureInitialized()
		if err := repo.Err(); err != nil {
			db.Close()
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		s.db = db
		s.Repo = repo
	default:
		s.Repo = model.NewSessionRepository(cfg.MaxCategories)
	}

	s.Service = model.NewService(s.Repo,
		model.WithInvalidPriorityPolicy(cfg.PriorityPolicy()),
		model.WithDefaultPriority(model.Priority(cfg.DefaultPriority)),
	)
	s.Service.Initialize()
	s.Adapter = adapter.NewBidirectionalTaskAdapter(adapter.WithIDOffset(cfg.IDOffset))
	s.Controller = controller.New(s.Service, s.Adapter)

	utils.Log("session started", "session", s.ID, "backend", cfg.Backend)
	return s, nil
}

// Close releases the database of a sqlite session
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	utils.Log("session closed", "session", s.ID)
	err := s.db.Close()
	s.db = nil
	return err
}
