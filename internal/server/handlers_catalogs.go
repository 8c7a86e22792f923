package server

import (
	"net/http"

	"github.com/google/uuid"
)

// CatalogResponse represents a catalog record in API responses
type CatalogResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	Artifacts int    `json:"artifacts"`
	CreatedAt string `json:"created_at"`
}

// handleListCatalogs returns all stored catalogs
func (s *Server) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListCatalogs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	catalogs := make([]CatalogResponse, 0, len(records))
	for _, record := range records {
		catalogs = append(catalogs, CatalogResponse{
			ID:        record.ID.String(),
			Name:      record.Name,
			Source:    record.Source,
			Artifacts: record.Artifacts,
			CreatedAt: record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"catalogs": catalogs})
}

// handleGetCatalog returns one catalog by name
func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Catalog name is required")
		return
	}

	record, err := s.db.GetCatalog(r.Context(), name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Catalog not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, CatalogResponse{
		ID:        record.ID.String(),
		Name:      record.Name,
		Source:    record.Source,
		Artifacts: record.Artifacts,
		CreatedAt: record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// handleGetCatalogArtifacts returns the artifacts of one catalog
func (s *Server) handleGetCatalogArtifacts(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Catalog name is required")
		return
	}

	record, err := s.db.GetCatalog(r.Context(), name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Catalog not found")
		return
	}

	artifacts, err := s.db.GetCatalogArtifacts(r.Context(), record.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"catalog":   record.Name,
		"artifacts": artifacts,
	})
}

// handleDeleteCatalog removes a catalog and its artifacts
func (s *Server) handleDeleteCatalog(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	catalogID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid catalog ID format")
		return
	}

	if err := s.db.DeleteCatalog(r.Context(), catalogID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
