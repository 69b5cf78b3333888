package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/regexplorer/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Progress, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Create(ctx context.Context, progress models.NewProgress) (*models.Progress, error) {
	args := m.Called(ctx, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Update(ctx context.Context, id int64, completed bool) (*models.Progress, error) {
	args := m.Called(ctx, id, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, sessionID string, puzzleID int64, completed bool) (*models.Progress, bool, error) {
	args := m.Called(ctx, sessionID, puzzleID, completed)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Progress), args.Bool(1), args.Error(2)
}
