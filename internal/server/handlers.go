package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/context-engine/internal/pipeline"
	"github.com/jonathan/context-engine/internal/types"
)

// SelectRequest represents the request body for /select
type SelectRequest struct {
	CatalogPath    string       `json:"catalog,omitempty"`
	CatalogName    string       `json:"catalog_name,omitempty"`
	DocsURLs       []string     `json:"docs_urls,omitempty"`
	PolicyPath     string       `json:"policy,omitempty"`
	BoundedContext string       `json:"bounded_context"`
	UserStoryID    string       `json:"user_story_id"`
	Budget         int          `json:"budget"`
	Enhancers      []types.Kind `json:"enhancers,omitempty"`
	UseBrowser     bool         `json:"use_browser,omitempty"`
}

// SelectResponse represents the async response for /select
type SelectResponse struct {
	Status string `json:"status"`
}

// validate checks the request and returns an error message, empty if valid
func (req *SelectRequest) validate() string {
	if req.CatalogPath == "" && len(req.DocsURLs) == 0 {
		return "Either catalog or docs_urls is required"
	}
	if req.BoundedContext == "" {
		return "bounded_context is required"
	}
	if req.UserStoryID == "" {
		return "user_story_id is required"
	}
	if req.Budget < 0 {
		return "budget must be non-negative"
	}
	return ""
}

// toRunOptions converts the request into pipeline options
func (s *Server) toRunOptions(req *SelectRequest) pipeline.RunOptions {
	return pipeline.RunOptions{
		CatalogPath:    req.CatalogPath,
		CatalogName:    req.CatalogName,
		DocsURLs:       req.DocsURLs,
		PolicyPath:     req.PolicyPath,
		BoundedContext: req.BoundedContext,
		UserStoryID:    req.UserStoryID,
		Budget:         req.Budget,
		Enhancers:      req.Enhancers,
		UseBrowser:     req.UseBrowser,
		APIKey:         s.apiKey,
		DatabaseURL:    s.databaseURL,
		Verbose:        true,
	}
}

// handleSelect starts a new selection pipeline run in the background
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if msg := req.validate(); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	opts := s.toRunOptions(&req)

	log.Printf("Starting selection run for %s", req.UserStoryID)

	// Run pipeline in background; the run record carries the outcome
	go func() {
		ctx := context.Background()
		if _, err := pipeline.RunPipeline(ctx, opts); err != nil {
			log.Printf("Selection run failed: %v", err)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, SelectResponse{Status: "started"})
}

// handleSelectStream runs a selection pipeline and streams progress via SSE
func (s *Server) handleSelectStream(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if msg := req.validate(); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	// Setup SSE writer
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming selection run for %s", req.UserStoryID)

	opts := s.toRunOptions(&req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	// Run pipeline synchronously (blocking until complete)
	result, err := pipeline.RunPipeline(r.Context(), opts)
	if err != nil {
		log.Printf("Selection run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("bundle", result.Bundle); err != nil {
		log.Printf("Error writing bundle event: %v", err)
	}
	sse.WriteComplete(result.RunID.String(), "completed")
	log.Printf("Streaming selection run completed")
}
