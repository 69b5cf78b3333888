package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
	"github.com/vytor/regexplorer/internal/repository/memory"
	"github.com/vytor/regexplorer/internal/repository/storetest"
)

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &storetest.StoreSuite{
		NewStore: func() repository.Store { return memory.New() },
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	p, err := store.Puzzles().Create(ctx, models.NewPuzzle{Difficulty: models.Easy, Text: "abc", Solution: "a", Order: 1})
	require.NoError(t, err)
	p.Text = "mutated"

	got, err := store.Puzzles().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Text)
}

func TestMemoryStore_IDsNotSharedBetweenCollections(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := store.Puzzles().Create(ctx, models.NewPuzzle{Difficulty: models.Easy, Order: 1})
	require.NoError(t, err)
	_, err = store.Puzzles().Create(ctx, models.NewPuzzle{Difficulty: models.Easy, Order: 2})
	require.NoError(t, err)

	progress, err := store.Progress().Create(ctx, models.NewProgress{PuzzleID: 2, SessionID: "s"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), progress.ID)
}
