package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
)

var puzzleColumns = []string{"id", "difficulty", "instructions", "text", "solution", "hint", "sort_order"}

type puzzleRepository struct {
	db *sql.DB
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(db *sql.DB) repository.PuzzleRepository {
	return &puzzleRepository{db: db}
}

func (r *puzzleRepository) List(ctx context.Context, difficulty models.Difficulty) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing puzzles: difficulty=%q", difficulty)

	query := sqlBuilder.Select(puzzleColumns...).From("puzzles")
	if difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": string(difficulty)})
	}
	query = query.OrderBy("sort_order ASC", "id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, err
	}
	defer rows.Close()

	puzzles := []models.Puzzle{}
	for rows.Next() {
		var p models.Puzzle
		if err := rows.Scan(&p.ID, &p.Difficulty, &p.Instructions, &p.Text, &p.Solution, &p.Hint, &p.Order); err != nil {
			log.Error("failed to scan puzzle row: %v", err)
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	log.Debug("found %d puzzles", len(puzzles))
	return puzzles, rows.Err()
}

func (r *puzzleRepository) Get(ctx context.Context, id int64) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: id=%d", id)

	sqlStr, args, err := sqlBuilder.Select(puzzleColumns...).From("puzzles").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Puzzle
	err = r.db.QueryRowContext(ctx, sqlStr, args...).
		Scan(&p.ID, &p.Difficulty, &p.Instructions, &p.Text, &p.Solution, &p.Hint, &p.Order)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("puzzle not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepository) Create(ctx context.Context, in models.NewPuzzle) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")

	sqlStr, args, err := sqlBuilder.Insert("puzzles").
		Columns("difficulty", "instructions", "text", "solution", "hint", "sort_order").
		Values(string(in.Difficulty), in.Instructions, in.Text, in.Solution, in.Hint, in.Order).
		ToSql()
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to insert puzzle: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get puzzle id: %v", err)
		return nil, err
	}
	log.Debug("puzzle created: id=%d, difficulty=%s, order=%d", id, in.Difficulty, in.Order)

	return &models.Puzzle{
		ID:           id,
		Difficulty:   in.Difficulty,
		Instructions: in.Instructions,
		Text:         in.Text,
		Solution:     in.Solution,
		Hint:         in.Hint,
		Order:        in.Order,
	}, nil
}

func (r *puzzleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM puzzles`).Scan(&n); err != nil {
		logger.FromContext(ctx).WithPrefix("puzzle_repo").Error("failed to count puzzles: %v", err)
		return 0, err
	}
	return n, nil
}
