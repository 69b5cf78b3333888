// Package storetest holds the contract every repository.Store backend must
// satisfy. Backends embed StoreSuite in their own tests.
package storetest

import (
	"context"
	"sync"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
)

// StoreSuite runs the record store contract against the store built by NewStore.
type StoreSuite struct {
	suite.Suite
	NewStore func() repository.Store
	store    repository.Store
}

func (s *StoreSuite) SetupTest() {
	s.store = s.NewStore()
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreSuite) createPuzzle(difficulty models.Difficulty, order int) *models.Puzzle {
	p, err := s.store.Puzzles().Create(context.Background(), models.NewPuzzle{
		Difficulty:   difficulty,
		Instructions: "Match the digits.",
		Text:         "a1 b22 c333",
		Solution:     `\d+`,
		Hint:         "Digits are \\d.",
		Order:        order,
	})
	s.Require().NoError(err)
	return p
}

func (s *StoreSuite) TestCreatePuzzle_AssignsMonotonicIDs() {
	first := s.createPuzzle(models.Easy, 1)
	second := s.createPuzzle(models.Easy, 2)

	s.Assert().Equal(int64(1), first.ID)
	s.Assert().Equal(int64(2), second.ID)

	got, err := s.store.Puzzles().Get(context.Background(), second.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(*second, *got)
}

func (s *StoreSuite) TestGetPuzzle_NotFound() {
	got, err := s.store.Puzzles().Get(context.Background(), 404)
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *StoreSuite) TestListPuzzles_FiltersAndSortsByOrder() {
	ctx := context.Background()
	s.createPuzzle(models.Hard, 3)
	s.createPuzzle(models.Easy, 1)
	s.createPuzzle(models.Hard, 1)
	s.createPuzzle(models.Hard, 2)

	hard, err := s.store.Puzzles().List(ctx, models.Hard)
	s.Require().NoError(err)
	s.Require().Len(hard, 3)
	for i, p := range hard {
		s.Assert().Equal(models.Hard, p.Difficulty)
		s.Assert().Equal(i+1, p.Order)
	}

	all, err := s.store.Puzzles().List(ctx, "")
	s.Require().NoError(err)
	s.Assert().Len(all, 4)
	for i := 1; i < len(all); i++ {
		s.Assert().LessOrEqual(all[i-1].Order, all[i].Order)
	}

	count, err := s.store.Puzzles().Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(4, count)
}

func (s *StoreSuite) TestListPuzzles_EmptyIsNotAnError() {
	got, err := s.store.Puzzles().List(context.Background(), models.Medium)
	s.Assert().NoError(err)
	s.Assert().Empty(got)
}

func (s *StoreSuite) TestCreateProgress_Defaults() {
	ctx := context.Background()
	p, err := s.store.Progress().Create(ctx, models.NewProgress{PuzzleID: 5, SessionID: "s1"})
	s.Require().NoError(err)

	s.Assert().Equal(int64(1), p.ID)
	s.Assert().False(p.Completed)
	s.Assert().Nil(p.UserID)

	rows, err := s.store.Progress().ListBySession(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Assert().Equal(*p, rows[0])
}

func (s *StoreSuite) TestListProgress_ScopedToSession() {
	ctx := context.Background()
	_, err := s.store.Progress().Create(ctx, models.NewProgress{PuzzleID: 1, SessionID: "s1"})
	s.Require().NoError(err)
	_, err = s.store.Progress().Create(ctx, models.NewProgress{PuzzleID: 1, SessionID: "s2"})
	s.Require().NoError(err)

	rows, err := s.store.Progress().ListBySession(ctx, "s2")
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Assert().Equal("s2", rows[0].SessionID)

	none, err := s.store.Progress().ListBySession(ctx, "nobody")
	s.Require().NoError(err)
	s.Assert().NotNil(none)
	s.Assert().Empty(none)
}

func (s *StoreSuite) TestUpdateProgress() {
	ctx := context.Background()
	created, err := s.store.Progress().Create(ctx, models.NewProgress{PuzzleID: 2, SessionID: "s1"})
	s.Require().NoError(err)

	updated, err := s.store.Progress().Update(ctx, created.ID, true)
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Assert().Equal(created.ID, updated.ID)
	s.Assert().True(updated.Completed)
	s.Assert().Equal(int64(2), updated.PuzzleID)

	missing, err := s.store.Progress().Update(ctx, 999, true)
	s.Assert().NoError(err)
	s.Assert().Nil(missing)
}

func (s *StoreSuite) TestUpsert_CreatesThenUpdatesSameRow() {
	ctx := context.Background()

	first, created, err := s.store.Progress().Upsert(ctx, "s1", 5, true)
	s.Require().NoError(err)
	s.Assert().True(created)
	s.Assert().True(first.Completed)

	second, created, err := s.store.Progress().Upsert(ctx, "s1", 5, true)
	s.Require().NoError(err)
	s.Assert().False(created)
	s.Assert().Equal(first.ID, second.ID)

	rows, err := s.store.Progress().ListBySession(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Len(rows, 1)
}

func (s *StoreSuite) TestUpsert_ConcurrentSubmissionsLeaveOneRow() {
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.store.Progress().Upsert(ctx, "racer", 9, true)
			s.Assert().NoError(err)
		}()
	}
	wg.Wait()

	rows, err := s.store.Progress().ListBySession(ctx, "racer")
	s.Require().NoError(err)
	s.Assert().Len(rows, 1)
}

func (s *StoreSuite) TestPing() {
	s.Assert().NoError(s.store.Ping(context.Background()))
}
