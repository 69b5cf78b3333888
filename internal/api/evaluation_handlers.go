package api

import (
	"net/http"
)

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, err := puzzleIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req previewRequest
	if err := decodeRequest(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.EvaluationService.Preview(r.Context(), id, req.Pattern)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := puzzleIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitRequest
	if err := decodeRequest(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.EvaluationService.Submit(r.Context(), id, req.Pattern, req.SessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleSolution reveals the reference pattern when the learner gives up.
func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	id, err := puzzleIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	solution, err := s.EvaluationService.Reveal(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"puzzleId": id, "solution": solution})
}
