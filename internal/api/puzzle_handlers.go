package api

import (
	"net/http"

	"github.com/vytor/regexplorer/internal/logger"
)

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	puzzles, err := s.PuzzleService.ListPuzzles(r.Context(), r.URL.Query().Get("difficulty"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("listed %d puzzles", len(puzzles))
	writeJSON(w, r, http.StatusOK, puzzles)
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	id, err := puzzleIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	puzzle, err := s.PuzzleService.GetPuzzle(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, puzzle)
}
