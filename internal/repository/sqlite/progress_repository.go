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

var progressColumns = []string{"id", "user_id", "puzzle_id", "completed", "session_id"}

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: session=%s", sessionID)

	sqlStr, args, err := sqlBuilder.Select(progressColumns...).
		From("progress").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *progressRepository) Create(ctx context.Context, in models.NewProgress) (*models.Progress, error) {
	return insertProgress(ctx, r.db, in.SessionID, in.PuzzleID, in.IsCompleted(), in.UserID)
}

func (r *progressRepository) Update(ctx context.Context, id int64, completed bool) (*models.Progress, error) {
	return updateProgress(ctx, r.db, id, completed)
}

func (r *progressRepository) Upsert(ctx context.Context, sessionID string, puzzleID int64, completed bool) (*models.Progress, bool, error) {
	var (
		result  *models.Progress
		created bool
	)
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := findProgress(ctx, tx, sessionID, puzzleID)
		if err != nil {
			return err
		}
		if existing != nil {
			result, err = updateProgress(ctx, tx, existing.ID, completed)
			return err
		}
		result, err = insertProgress(ctx, tx, sessionID, puzzleID, completed, nil)
		created = true
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

func findProgress(ctx context.Context, q queryer, sessionID string, puzzleID int64) (*models.Progress, error) {
	sqlStr, args, err := sqlBuilder.Select(progressColumns...).
		From("progress").
		Where(squirrel.Eq{"session_id": sessionID, "puzzle_id": puzzleID}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanProgress(q.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func insertProgress(ctx context.Context, q queryer, sessionID string, puzzleID int64, completed bool, userID *int64) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var uid sql.NullInt64
	if userID != nil {
		uid = sql.NullInt64{Int64: *userID, Valid: true}
	}

	sqlStr, args, err := sqlBuilder.Insert("progress").
		Columns("user_id", "puzzle_id", "completed", "session_id").
		Values(uid, puzzleID, completed, sessionID).
		ToSql()
	if err != nil {
		return nil, err
	}
	res, err := q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to insert progress: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	log.Debug("progress created: id=%d, session=%s, puzzle_id=%d", id, sessionID, puzzleID)

	p := &models.Progress{ID: id, PuzzleID: puzzleID, Completed: completed, SessionID: sessionID}
	if uid.Valid {
		v := uid.Int64
		p.UserID = &v
	}
	return p, nil
}

func updateProgress(ctx context.Context, q queryer, id int64, completed bool) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	sqlStr, args, err := sqlBuilder.Update("progress").
		Set("completed", completed).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	res, err := q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to update progress: %v", err)
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		log.Debug("progress not found: id=%d", id)
		return nil, nil
	}

	sqlStr, args, err = sqlBuilder.Select(progressColumns...).From("progress").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanProgress(q.QueryRowContext(ctx, sqlStr, args...))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*models.Progress, error) {
	var (
		p   models.Progress
		uid sql.NullInt64
	)
	if err := row.Scan(&p.ID, &uid, &p.PuzzleID, &p.Completed, &p.SessionID); err != nil {
		return nil, err
	}
	if uid.Valid {
		v := uid.Int64
		p.UserID = &v
	}
	return &p, nil
}
