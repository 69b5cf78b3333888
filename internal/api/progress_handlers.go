package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/models"
)

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.ProgressService.ListProgress(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress)
}

// handleRecordProgress updates the (session, puzzle) row when it exists and
// creates it otherwise: 200 for an update, 201 for a new row.
func (s *Server) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeRequest(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	progress, created, err := s.ProgressService.RecordProgress(r.Context(), models.NewProgress{
		PuzzleID:  *req.PuzzleID,
		SessionID: *req.SessionID,
		Completed: req.Completed,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, progress)
}

// handleCreateSession issues an anonymous session id for progress tracking.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	logger.FromContext(r.Context()).Debug("session issued: %s", id)
	writeJSON(w, r, http.StatusCreated, map[string]string{"sessionId": id})
}
