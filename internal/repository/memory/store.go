// Package memory is the process-local record store. Its contents live as
// long as the process and are re-seeded from the catalog on start.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
)

// Store keeps puzzles and progress in maps keyed by id. Ids come from
// monotonic counters and are never reused.
type Store struct {
	mu             sync.RWMutex
	puzzles        map[int64]models.Puzzle
	progress       map[int64]models.Progress
	nextPuzzleID   int64
	nextProgressID int64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		puzzles:        make(map[int64]models.Puzzle),
		progress:       make(map[int64]models.Progress),
		nextPuzzleID:   1,
		nextProgressID: 1,
	}
}

func (s *Store) Puzzles() repository.PuzzleRepository   { return puzzleRepository{s} }
func (s *Store) Progress() repository.ProgressRepository { return progressRepository{s} }
func (s *Store) Ping(ctx context.Context) error          { return ctx.Err() }
func (s *Store) Close() error                            { return nil }

type puzzleRepository struct {
	s *Store
}

func (r puzzleRepository) List(ctx context.Context, difficulty models.Difficulty) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing puzzles: difficulty=%q", difficulty)

	r.s.mu.RLock()
	out := make([]models.Puzzle, 0, len(r.s.puzzles))
	for _, p := range r.s.puzzles {
		if difficulty == "" || p.Difficulty == difficulty {
			out = append(out, p)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	log.Debug("found %d puzzles", len(out))
	return out, nil
}

func (r puzzleRepository) Get(ctx context.Context, id int64) (*models.Puzzle, error) {
	r.s.mu.RLock()
	p, ok := r.s.puzzles[id]
	r.s.mu.RUnlock()
	if !ok {
		logger.FromContext(ctx).WithPrefix("puzzle_repo").Debug("puzzle not found: id=%d", id)
		return nil, nil
	}
	return &p, nil
}

func (r puzzleRepository) Create(ctx context.Context, in models.NewPuzzle) (*models.Puzzle, error) {
	r.s.mu.Lock()
	p := models.Puzzle{
		ID:           r.s.nextPuzzleID,
		Difficulty:   in.Difficulty,
		Instructions: in.Instructions,
		Text:         in.Text,
		Solution:     in.Solution,
		Hint:         in.Hint,
		Order:        in.Order,
	}
	r.s.nextPuzzleID++
	r.s.puzzles[p.ID] = p
	r.s.mu.Unlock()

	logger.FromContext(ctx).WithPrefix("puzzle_repo").Debug("puzzle created: id=%d, difficulty=%s, order=%d", p.ID, p.Difficulty, p.Order)
	return &p, nil
}

func (r puzzleRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.puzzles), nil
}

type progressRepository struct {
	s *Store
}

func (r progressRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Progress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Progress{}
	for _, p := range r.s.progress {
		if p.SessionID == sessionID {
			out = append(out, cloneProgress(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r progressRepository) Create(ctx context.Context, in models.NewProgress) (*models.Progress, error) {
	r.s.mu.Lock()
	p := r.s.insertProgressLocked(in.SessionID, in.PuzzleID, in.IsCompleted(), in.UserID)
	r.s.mu.Unlock()

	logger.FromContext(ctx).WithPrefix("progress_repo").Debug("progress created: id=%d, session=%s, puzzle_id=%d", p.ID, p.SessionID, p.PuzzleID)
	return &p, nil
}

func (r progressRepository) Update(ctx context.Context, id int64, completed bool) (*models.Progress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.progress[id]
	if !ok {
		return nil, nil
	}
	p.Completed = completed
	r.s.progress[id] = p
	out := cloneProgress(p)
	return &out, nil
}

func (r progressRepository) Upsert(ctx context.Context, sessionID string, puzzleID int64, completed bool) (*models.Progress, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.findProgressLocked(sessionID, puzzleID); ok {
		existing.Completed = completed
		r.s.progress[existing.ID] = existing
		log.Debug("progress updated: id=%d, completed=%t", existing.ID, completed)
		out := cloneProgress(existing)
		return &out, false, nil
	}

	p := r.s.insertProgressLocked(sessionID, puzzleID, completed, nil)
	log.Debug("progress created: id=%d, completed=%t", p.ID, completed)
	return &p, true, nil
}

// findProgressLocked returns the oldest row for the pair, so rows written
// through Create before an Upsert resolve deterministically.
func (s *Store) findProgressLocked(sessionID string, puzzleID int64) (models.Progress, bool) {
	var (
		found models.Progress
		ok    bool
	)
	for _, p := range s.progress {
		if p.SessionID == sessionID && p.PuzzleID == puzzleID && (!ok || p.ID < found.ID) {
			found, ok = p, true
		}
	}
	return found, ok
}

func (s *Store) insertProgressLocked(sessionID string, puzzleID int64, completed bool, userID *int64) models.Progress {
	p := models.Progress{
		ID:        s.nextProgressID,
		PuzzleID:  puzzleID,
		Completed: completed,
		SessionID: sessionID,
	}
	if userID != nil {
		uid := *userID
		p.UserID = &uid
	}
	s.nextProgressID++
	s.progress[p.ID] = p
	return cloneProgress(p)
}

func cloneProgress(p models.Progress) models.Progress {
	if p.UserID != nil {
		uid := *p.UserID
		p.UserID = &uid
	}
	return p
}
