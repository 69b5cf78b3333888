package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/regexplorer/internal/errors"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/matcher"
	"github.com/vytor/regexplorer/internal/metrics"
	"github.com/vytor/regexplorer/internal/models"
)

// Submission is a graded answer plus the progress row it produced, if any.
type Submission struct {
	matcher.SubmissionResult
	Progress *models.Progress `json:"progress,omitempty"`
}

// EvaluationService runs learner patterns against stored puzzles.
type EvaluationService interface {
	// Preview highlights pattern's matches in the puzzle text. An invalid
	// pattern is reported inside the result, not as an error.
	Preview(ctx context.Context, puzzleID int64, pattern string) (*matcher.LiveResult, error)
	// Submit grades pattern against the puzzle's solution and, when correct and
	// sessionID is set, marks the puzzle completed for the session.
	Submit(ctx context.Context, puzzleID int64, pattern, sessionID string) (*Submission, error)
	// Reveal returns the reference solution (the "give up" action).
	Reveal(ctx context.Context, puzzleID int64) (string, error)
}

type evaluationService struct {
	puzzles   PuzzleService
	progress  ProgressService
	evaluator *matcher.Evaluator
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(puzzles PuzzleService, progress ProgressService, evaluator *matcher.Evaluator) EvaluationService {
	return &evaluationService{
		puzzles:   puzzles,
		progress:  progress,
		evaluator: evaluator,
	}
}

func (s *evaluationService) Preview(ctx context.Context, puzzleID int64, pattern string) (*matcher.LiveResult, error) {
	log := logger.FromContext(ctx)

	puzzle, err := s.puzzles.GetPuzzle(ctx, puzzleID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.evaluator.EvaluateLive(puzzle.Text, pattern)
	metrics.EvaluationDuration.WithLabelValues("live").Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		log.Debug("preview pattern rejected: puzzle_id=%d: %v", puzzleID, err)
		metrics.Evaluations.WithLabelValues("live", "pattern_error").Inc()
	case res.HasMatches:
		metrics.Evaluations.WithLabelValues("live", "matched").Inc()
	default:
		metrics.Evaluations.WithLabelValues("live", "unmatched").Inc()
	}
	return &res, nil
}

func (s *evaluationService) Submit(ctx context.Context, puzzleID int64, pattern, sessionID string) (*Submission, error) {
	log := logger.FromContext(ctx)
	log.Debug("grading submission: puzzle_id=%d, session=%s", puzzleID, sessionID)

	if matcher.IsBlank(pattern) {
		metrics.Evaluations.WithLabelValues("submission", "empty").Inc()
		return nil, errors.NewValidationError("pattern", matcher.EmptyPatternMessage)
	}

	puzzle, err := s.puzzles.GetPuzzle(ctx, puzzleID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.evaluator.EvaluateSubmission(puzzle.Text, pattern, puzzle.Solution)
	metrics.EvaluationDuration.WithLabelValues("submission").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, s.submissionError(ctx, puzzle, err)
	}

	out := &Submission{SubmissionResult: res}
	if !res.IsCorrect {
		metrics.Evaluations.WithLabelValues("submission", "incorrect").Inc()
		log.Debug("submission incorrect: puzzle_id=%d, got=%d, expected=%d", puzzleID, res.MatchCount, res.ExpectedCount)
		return out, nil
	}

	metrics.Evaluations.WithLabelValues("submission", "correct").Inc()
	log.Info("submission correct: puzzle_id=%d", puzzleID)
	if sessionID == "" {
		return out, nil
	}

	progress, err := s.progress.MarkCompleted(ctx, sessionID, puzzleID)
	if err != nil {
		// The verdict stands even if the completion could not be stored.
		if errors.Is(err, errors.ErrCodeInternal) {
			log.Warn("failed to record completion: %v", err)
		} else {
			log.Debug("completion not recorded: %v", err)
		}
		return out, nil
	}
	out.Progress = progress
	return out, nil
}

func (s *evaluationService) submissionError(ctx context.Context, puzzle *models.Puzzle, err error) error {
	log := logger.FromContext(ctx)

	metrics.Evaluations.WithLabelValues("submission", "pattern_error").Inc()
	var patternErr *matcher.PatternError
	if stderrors.As(err, &patternErr) {
		if patternErr.Pattern == puzzle.Solution {
			log.Error("stored solution for puzzle %d is unusable: %v", puzzle.ID, err)
		} else {
			log.Debug("submission pattern rejected: %v", err)
		}
		return errors.NewPatternError(patternErr.Message, err)
	}
	return errors.NewPatternError(matcher.CheckFailedMessage, err)
}

func (s *evaluationService) Reveal(ctx context.Context, puzzleID int64) (string, error) {
	puzzle, err := s.puzzles.GetPuzzle(ctx, puzzleID)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Debug("solution revealed: puzzle_id=%d", puzzleID)
	return puzzle.Solution, nil
}
