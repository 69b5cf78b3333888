package services

import (
	"context"

	"github.com/vytor/regexplorer/internal/errors"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
)

// PuzzleService handles puzzle-related business logic
type PuzzleService interface {
	// ListPuzzles returns puzzles of one tier, or all when difficulty is empty.
	// An unknown tier yields an empty list.
	ListPuzzles(ctx context.Context, difficulty string) ([]models.Puzzle, error)
	GetPuzzle(ctx context.Context, id int64) (*models.Puzzle, error)
	CreatePuzzle(ctx context.Context, puzzle models.NewPuzzle) (*models.Puzzle, error)
}

type puzzleService struct {
	puzzleRepo repository.PuzzleRepository
}

// NewPuzzleService creates a new PuzzleService
func NewPuzzleService(puzzleRepo repository.PuzzleRepository) PuzzleService {
	return &puzzleService{puzzleRepo: puzzleRepo}
}

func (s *puzzleService) ListPuzzles(ctx context.Context, difficulty string) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing puzzles: difficulty=%q", difficulty)

	tier := models.Difficulty(difficulty)
	if tier != "" && !tier.Valid() {
		log.Debug("unknown difficulty %q, returning no puzzles", difficulty)
		return []models.Puzzle{}, nil
	}

	puzzles, err := s.puzzleRepo.List(ctx, tier)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzles == nil {
		puzzles = []models.Puzzle{}
	}
	return puzzles, nil
}

func (s *puzzleService) GetPuzzle(ctx context.Context, id int64) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting puzzle: id=%d", id)

	puzzle, err := s.puzzleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, errors.NewNotFoundError("puzzle", id)
	}
	return puzzle, nil
}

func (s *puzzleService) CreatePuzzle(ctx context.Context, in models.NewPuzzle) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating puzzle: difficulty=%s, order=%d", in.Difficulty, in.Order)

	if !in.Difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
	}
	if in.Solution == "" {
		return nil, errors.NewValidationError("solution", "cannot be empty")
	}

	puzzle, err := s.puzzleRepo.Create(ctx, in)
	if err != nil {
		log.Error("failed to create puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("puzzle created: id=%d", puzzle.ID)
	return puzzle, nil
}
