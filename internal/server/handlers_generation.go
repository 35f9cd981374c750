package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/generation"
)

// GenerationRunRequest represents the request to start a generation run
type GenerationRunRequest struct {
	Stages   []string `json:"stages,omitempty" validate:"omitempty,dive,max=50"`
	Provider string   `json:"provider,omitempty" validate:"omitempty,max=50"`
	Extra    string   `json:"extra,omitempty" validate:"omitempty,max=2000"`
}

// StageRunRequest represents the request to run a single stage
type StageRunRequest struct {
	Prompt   string `json:"prompt,omitempty" validate:"omitempty,max=8000"`
	Provider string `json:"provider,omitempty" validate:"omitempty,max=50"`
}

// GenerationRunResponse represents the response for a completed run
type GenerationRunResponse struct {
	JobID  string   `json:"job_id"`
	Status string   `json:"status"`
	Stages []string `json:"stages"`
}

// JobResponse represents a generation job in API responses
type JobResponse struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	StartedAt    string  `json:"started_at"`
	CompletedAt  *string `json:"completed_at,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// GenerationStatusResponse represents the generation state of an itinerary
type GenerationStatusResponse struct {
	ItineraryID string       `json:"itinerary_id"`
	Job         *JobResponse `json:"job"`
	Stages      []string     `json:"stages"`
}

// StageLogResponse represents one audit log row
type StageLogResponse struct {
	ID        string                 `json:"id"`
	Stage     string                 `json:"stage"`
	Status    string                 `json:"status"`
	Prompt    map[string]interface{} `json:"prompt"`
	Response  map[string]interface{} `json:"response,omitempty"`
	Error     *string                `json:"error,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

func jobResponse(job *db.GenerationJob) *JobResponse {
	if job == nil {
		return nil
	}
	resp := &JobResponse{
		ID:           job.ID.String(),
		Status:       job.Status,
		StartedAt:    job.StartedAt.Format(time.RFC3339),
		ErrorMessage: job.ErrorMessage,
	}
	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

// handleStartGeneration runs the generation pipeline for an itinerary.
// The run executes synchronously; the response carries the terminal job.
func (s *Server) handleStartGeneration(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req GenerationRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.engine.ExecuteRun(r.Context(), generation.RunRequest{
		ItineraryID: id,
		Stages:      req.Stages,
		Provider:    req.Provider,
		Extra:       req.Extra,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerationRunResponse{
		JobID:  result.JobID.String(),
		Status: db.JobStatusCompleted,
		Stages: result.Stages,
	})
}

// handleGenerateStage runs a single stage for an itinerary
func (s *Server) handleGenerateStage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	stage := r.PathValue("stage")

	var req StageRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.engine.ExecuteSingleStage(r.Context(), generation.StageRequest{
		ItineraryID: id,
		Stage:       stage,
		Prompt:      req.Prompt,
		Provider:    req.Provider,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerationRunResponse{
		JobID:  result.JobID.String(),
		Status: db.JobStatusCompleted,
		Stages: result.Stages,
	})
}

// handleGenerationStatus returns the latest job and the logged stages
func (s *Server) handleGenerationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	status, err := s.engine.GetStatus(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stages := status.Stages
	if stages == nil {
		stages = []string{}
	}
	s.jsonResponse(w, http.StatusOK, GenerationStatusResponse{
		ItineraryID: id.String(),
		Job:         jobResponse(status.Job),
		Stages:      stages,
	})
}

// handleGenerationLogs returns the audit log, most recent first
func (s *Server) handleGenerationLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	logs, err := s.engine.ListLogs(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	out := make([]StageLogResponse, 0, len(logs))
	for _, row := range logs {
		out = append(out, StageLogResponse{
			ID:        row.ID.String(),
			Stage:     row.Stage,
			Status:    row.Status,
			Prompt:    row.Prompt,
			Response:  row.Response,
			Error:     row.ErrorText,
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"itinerary_id": id.String(),
		"logs":         out,
	})
}
