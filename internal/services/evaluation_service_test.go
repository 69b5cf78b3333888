package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/regexplorer/internal/errors"
	"github.com/vytor/regexplorer/internal/matcher"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository/memory"
	"github.com/vytor/regexplorer/internal/services"
	"github.com/vytor/regexplorer/internal/testutil/mocks"
)

type EvaluationServiceSuite struct {
	suite.Suite
	store    *memory.Store
	progress services.ProgressService
	svc      services.EvaluationService
	puzzle   *models.Puzzle
}

func (s *EvaluationServiceSuite) SetupTest() {
	ctx := context.Background()
	s.store = memory.New()
	puzzles := services.NewPuzzleService(s.store.Puzzles())
	s.progress = services.NewProgressService(s.store.Progress())
	s.svc = services.NewEvaluationService(puzzles, s.progress,
		matcher.New(matcher.WithHighlighter(matcher.Highlighter{Open: "[", Close: "]"})))

	p, err := puzzles.CreatePuzzle(ctx, models.NewPuzzle{
		Difficulty:   models.Easy,
		Instructions: "Match the email address.",
		Text:         "Contact support@x.com now.",
		Solution:     `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		Hint:         "Look for the @.",
		Order:        1,
	})
	s.Require().NoError(err)
	s.puzzle = p
}

func (s *EvaluationServiceSuite) TestPreview_Highlights() {
	res, err := s.svc.Preview(context.Background(), s.puzzle.ID, `\S+@\S+\.\w+`)
	s.Require().NoError(err)
	s.Assert().Equal("Contact [support@x.com] now.", res.Rendered)
	s.Assert().Equal(1, res.MatchCount)
}

func (s *EvaluationServiceSuite) TestPreview_InvalidPatternIsNotAnError() {
	res, err := s.svc.Preview(context.Background(), s.puzzle.ID, "[")
	s.Require().NoError(err)
	s.Assert().False(res.Valid)
	s.Assert().Equal(matcher.InvalidPatternMessage, res.Error)
}

func (s *EvaluationServiceSuite) TestPreview_UnknownPuzzle() {
	_, err := s.svc.Preview(context.Background(), 999, "a")
	s.Assert().True(errors.Is(err, errors.ErrCodeNotFound))
}

func (s *EvaluationServiceSuite) TestSubmit_CorrectRecordsCompletionOnce() {
	ctx := context.Background()

	first, err := s.svc.Submit(ctx, s.puzzle.ID, `\S+@\S+\.\w+`, "session-1")
	s.Require().NoError(err)
	s.Assert().True(first.IsCorrect)
	s.Require().NotNil(first.Progress)
	s.Assert().True(first.Progress.Completed)

	second, err := s.svc.Submit(ctx, s.puzzle.ID, `\S+@\S+\.\w+`, "session-1")
	s.Require().NoError(err)
	s.Assert().Equal(first.Progress.ID, second.Progress.ID)

	rows, err := s.progress.ListProgress(ctx, "session-1")
	s.Require().NoError(err)
	s.Assert().Len(rows, 1)
}

func (s *EvaluationServiceSuite) TestSubmit_IncorrectRecordsNothing() {
	ctx := context.Background()

	res, err := s.svc.Submit(ctx, s.puzzle.ID, `\w+`, "session-1")
	s.Require().NoError(err)
	s.Assert().False(res.IsCorrect)
	s.Assert().Equal(1, res.ExpectedCount)
	s.Assert().Nil(res.Progress)

	rows, err := s.progress.ListProgress(ctx, "session-1")
	s.Require().NoError(err)
	s.Assert().Empty(rows)
}

func (s *EvaluationServiceSuite) TestSubmit_WithoutSessionOnlyGrades() {
	res, err := s.svc.Submit(context.Background(), s.puzzle.ID, s.puzzle.Solution, "")
	s.Require().NoError(err)
	s.Assert().True(res.IsCorrect)
	s.Assert().Nil(res.Progress)
}

func (s *EvaluationServiceSuite) TestSubmit_InvalidPattern() {
	_, err := s.svc.Submit(context.Background(), s.puzzle.ID, "(", "session-1")
	s.Require().Error(err)

	appErr, ok := errors.As(err)
	s.Require().True(ok)
	s.Assert().Equal(errors.ErrCodePattern, appErr.Code)
	s.Assert().Equal(matcher.CheckFailedMessage, appErr.Message)
}

func (s *EvaluationServiceSuite) TestSubmit_BlankPattern() {
	_, err := s.svc.Submit(context.Background(), s.puzzle.ID, " ", "session-1")
	s.Assert().True(errors.Is(err, errors.ErrCodeValidation))
}

func (s *EvaluationServiceSuite) TestReveal() {
	solution, err := s.svc.Reveal(context.Background(), s.puzzle.ID)
	s.Require().NoError(err)
	s.Assert().Equal(s.puzzle.Solution, solution)
}

func TestSubmit_BlankPatternRejectedBeforeLookup(t *testing.T) {
	puzzleRepo := new(mocks.MockPuzzleRepository)
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewEvaluationService(
		services.NewPuzzleService(puzzleRepo),
		services.NewProgressService(progressRepo),
		matcher.New(),
	)

	_, err := svc.Submit(context.Background(), 1, " \t", "session-1")

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, matcher.EmptyPatternMessage, appErr.Details[0].Message)
	puzzleRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestEvaluationService(t *testing.T) {
	suite.Run(t, new(EvaluationServiceSuite))
}
