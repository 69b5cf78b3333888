package catalog

import (
	"context"
	"fmt"

	"github.com/vytor/regexplorer/internal/matcher"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/worker"
)

// Problem is a catalog puzzle whose solution cannot grade itself.
type Problem struct {
	Difficulty models.Difficulty
	Order      int
	Reason     string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s #%d: %s", p.Difficulty, p.Order, p.Reason)
}

// Validate checks every solution compiles on the evaluator's engine, matches
// its own text at least once, and is accepted as its own answer. Puzzles are
// checked concurrently on workers goroutines; problems come back in input order.
func Validate(ctx context.Context, ev *matcher.Evaluator, puzzles []models.NewPuzzle, workers int) []Problem {
	found := make([]*Problem, len(puzzles))

	pool := worker.NewPool(workers, len(puzzles))
	pool.Start(ctx)
	for i := range puzzles {
		pool.Submit(&checkJob{ev: ev, puzzle: puzzles[i], out: &found[i]})
	}
	pool.Stop()

	var problems []Problem
	for _, p := range found {
		if p != nil {
			problems = append(problems, *p)
		}
	}
	return problems
}

// checkJob grades one puzzle's solution against itself.
type checkJob struct {
	ev     *matcher.Evaluator
	puzzle models.NewPuzzle
	out    **Problem
}

func (j *checkJob) Name() string { return "check_solution" }

func (j *checkJob) Run(context.Context) error {
	p := j.puzzle
	res, err := j.ev.EvaluateSubmission(p.Text, p.Solution, p.Solution)

	var reason string
	switch {
	case err != nil:
		reason = err.Error()
	case res.ExpectedCount == 0:
		reason = "solution matches nothing in its text"
	case !res.IsCorrect:
		reason = "solution does not grade as correct"
	default:
		return nil
	}

	*j.out = &Problem{p.Difficulty, p.Order, reason}
	return fmt.Errorf("%s #%d: %s", p.Difficulty, p.Order, reason)
}
