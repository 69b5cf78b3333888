// Package sqlite is the persistent record store, selected with STORE=sqlite.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/regexplorer/internal/repository"
)

// Store exposes sqlite-backed repositories over a single connection pool.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Puzzles() repository.PuzzleRepository   { return NewPuzzleRepository(s.db) }
func (s *Store) Progress() repository.ProgressRepository { return NewProgressRepository(s.db) }
func (s *Store) Ping(ctx context.Context) error          { return s.db.PingContext(ctx) }
func (s *Store) Close() error                            { return s.db.Close() }
