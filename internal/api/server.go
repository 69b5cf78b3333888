// Package api exposes the puzzle catalog, progress tracking and pattern
// grading over a JSON HTTP interface.
package api

import (
	"context"
	"time"

	"github.com/vytor/regexplorer/internal/services"
)

// Pinger reports whether the backing store can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	PuzzleService     services.PuzzleService
	ProgressService   services.ProgressService
	EvaluationService services.EvaluationService
	Store             Pinger
	RequestTimeout    time.Duration
}
