package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/context-engine/internal/db"
)

// RunStatusResponse represents a selection run in API responses
type RunStatusResponse struct {
	RunID          string `json:"run_id"`
	CatalogID      string `json:"catalog_id"`
	BoundedContext string `json:"bounded_context"`
	UserStoryID    string `json:"user_story_id"`
	Budget         int    `json:"budget"`
	UsedBudget     int    `json:"used_budget"`
	DroppedCount   int    `json:"dropped_count"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func runStatusResponse(run *db.SelectionRun) RunStatusResponse {
	return RunStatusResponse{
		RunID:          run.ID.String(),
		CatalogID:      run.CatalogID.String(),
		BoundedContext: run.BoundedContext,
		UserStoryID:    run.UserStoryID,
		Budget:         run.Budget,
		UsedBudget:     run.UsedBudget,
		DroppedCount:   run.DroppedCount,
		Status:         run.Status,
		CreatedAt:      run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// parseRunID extracts and parses the run ID path value, writing an error
// response and returning false on failure.
func (s *Server) parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Run ID is required")
		return uuid.Nil, false
	}
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

// handleListRuns returns recent selection runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListSelectionRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	responses := make([]RunStatusResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, runStatusResponse(&runs[i]))
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": responses})
}

// handleGetRun returns the status of one selection run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	run, err := s.db.GetSelectionRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, runStatusResponse(run))
}

// handleGetRunResult returns the stored selection result of a completed run
func (s *Server) handleGetRunResult(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	result, err := s.db.GetSelectionResult(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "Result not available")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetRunBundle returns the assembled bundle text of a completed run
func (s *Server) handleGetRunBundle(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	text, err := s.db.GetBundleText(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if text == "" {
		s.errorResponse(w, http.StatusNotFound, "Bundle not available")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
