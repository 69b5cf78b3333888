package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/regexplorer/internal/errors"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository/memory"
	"github.com/vytor/regexplorer/internal/services"
	"github.com/vytor/regexplorer/internal/testutil/mocks"
)

func TestMarkCompleted_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := services.NewProgressService(store.Progress())

	first, err := svc.MarkCompleted(ctx, "s1", 5)
	require.NoError(t, err)
	second, err := svc.MarkCompleted(ctx, "s1", 5)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Completed)
	assert.Nil(t, second.UserID)

	rows, err := svc.ListProgress(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
}

func TestRecordProgress_UpdatesExistingRowInPlace(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := services.NewProgressService(store.Progress())

	created, isNew, err := svc.RecordProgress(ctx, models.NewProgress{PuzzleID: 2, SessionID: "s1"})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.False(t, created.Completed)

	yes := true
	updated, isNew, err := svc.RecordProgress(ctx, models.NewProgress{PuzzleID: 2, SessionID: "s1", Completed: &yes})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Completed)
}

func TestRecordProgress_RequiresSession(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	_, _, err := services.NewProgressService(repo).RecordProgress(context.Background(), models.NewProgress{PuzzleID: 1})

	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordProgress_VanishedRowIsNotFound(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("Upsert", mock.Anything, "s1", int64(1), false).Return(nil, false, nil)

	_, _, err := services.NewProgressService(repo).RecordProgress(context.Background(), models.NewProgress{PuzzleID: 1, SessionID: "s1"})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestRecordProgress_StoreFailureIsInternal(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("Upsert", mock.Anything, "s1", int64(1), false).Return(nil, false, assert.AnError)

	_, _, err := services.NewProgressService(repo).RecordProgress(context.Background(), models.NewProgress{PuzzleID: 1, SessionID: "s1"})
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestListProgress_EmptySession(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("ListBySession", mock.Anything, "nobody").Return(nil, nil)

	rows, err := services.NewProgressService(repo).ListProgress(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
