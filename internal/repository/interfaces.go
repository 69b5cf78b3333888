package repository

import (
	"context"

	"github.com/vytor/regexplorer/internal/models"
)

// PuzzleRepository handles puzzle data access
type PuzzleRepository interface {
	// List returns puzzles sorted by order ascending (ties by id). An empty
	// difficulty returns every tier.
	List(ctx context.Context, difficulty models.Difficulty) ([]models.Puzzle, error)
	// Get returns nil, nil when the id is unknown.
	Get(ctx context.Context, id int64) (*models.Puzzle, error)
	Create(ctx context.Context, puzzle models.NewPuzzle) (*models.Puzzle, error)
	Count(ctx context.Context) (int, error)
}

// ProgressRepository handles progress data access
type ProgressRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.Progress, error)
	Create(ctx context.Context, progress models.NewProgress) (*models.Progress, error)
	// Update changes only the completed flag. Returns nil, nil when the id is unknown.
	Update(ctx context.Context, id int64, completed bool) (*models.Progress, error)
	// Upsert updates the row for (sessionID, puzzleID) or creates it, as one
	// atomic step. created reports which happened.
	Upsert(ctx context.Context, sessionID string, puzzleID int64, completed bool) (progress *models.Progress, created bool, err error)
}

// Store bundles the repositories a backend provides.
type Store interface {
	Puzzles() PuzzleRepository
	Progress() ProgressRepository
	Ping(ctx context.Context) error
	Close() error
}
