package services

import (
	"context"

	"github.com/vytor/regexplorer/internal/errors"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/metrics"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
)

// ProgressService tracks which puzzles an anonymous session has completed.
type ProgressService interface {
	ListProgress(ctx context.Context, sessionID string) ([]models.Progress, error)
	// RecordProgress updates the (session, puzzle) row in place or creates it.
	// created reports whether a new row was written.
	RecordProgress(ctx context.Context, in models.NewProgress) (progress *models.Progress, created bool, err error)
	// MarkCompleted records a completion for the session.
	MarkCompleted(ctx context.Context, sessionID string, puzzleID int64) (*models.Progress, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{progressRepo: progressRepo}
}

func (s *progressService) ListProgress(ctx context.Context, sessionID string) ([]models.Progress, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing progress: session=%s", sessionID)

	rows, err := s.progressRepo.ListBySession(ctx, sessionID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rows == nil {
		rows = []models.Progress{}
	}
	return rows, nil
}

func (s *progressService) RecordProgress(ctx context.Context, in models.NewProgress) (*models.Progress, bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording progress: session=%s, puzzle_id=%d, completed=%t", in.SessionID, in.PuzzleID, in.IsCompleted())

	if in.SessionID == "" {
		return nil, false, errors.NewValidationError("sessionId", "cannot be empty")
	}

	progress, created, err := s.progressRepo.Upsert(ctx, in.SessionID, in.PuzzleID, in.IsCompleted())
	if err != nil {
		log.Error("failed to record progress: %v", err)
		return nil, false, errors.NewInternalError(err)
	}
	if progress == nil {
		return nil, false, errors.NewNotFoundError("progress", in.PuzzleID)
	}

	if created {
		metrics.ProgressWrites.WithLabelValues("create").Inc()
		log.Info("progress created: id=%d, puzzle_id=%d", progress.ID, progress.PuzzleID)
	} else {
		metrics.ProgressWrites.WithLabelValues("update").Inc()
		log.Debug("progress updated: id=%d", progress.ID)
	}
	return progress, created, nil
}

func (s *progressService) MarkCompleted(ctx context.Context, sessionID string, puzzleID int64) (*models.Progress, error) {
	completed := true
	progress, _, err := s.RecordProgress(ctx, models.NewProgress{
		PuzzleID:  puzzleID,
		SessionID: sessionID,
		Completed: &completed,
	})
	return progress, err
}
