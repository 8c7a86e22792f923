package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/context-engine/internal/policy"
	"github.com/jonathan/context-engine/internal/types"
)

// handleGetPolicy returns a stored policy table by name
func (s *Server) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Policy name is required")
		return
	}

	table, err := s.db.GetPolicyTable(r.Context(), name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if table == nil {
		s.errorResponse(w, http.StatusNotFound, "Policy table not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, table)
}

// handlePutPolicy stores a policy table under a name after validating it
func (s *Server) handlePutPolicy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Policy name is required")
		return
	}

	var table types.PolicyTable
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Reject tables that would fail at selection time
	if _, err := policy.FromConfig(&table); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid policy table: "+err.Error())
		return
	}

	if err := s.db.SavePolicyTable(r.Context(), name, &table); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved", "name": name})
}
