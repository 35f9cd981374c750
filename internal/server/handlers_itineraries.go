package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/travel-planner/internal/db"
)

// ItineraryCreateRequest represents the request to create an itinerary
type ItineraryCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Destination string `json:"destination" validate:"max=200"`
}

// ItineraryResponse represents an itinerary in API responses
type ItineraryResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Destination string            `json:"destination,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	AISources   map[string]string `json:"ai_sources,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

func itineraryResponse(it *db.Itinerary) ItineraryResponse {
	return ItineraryResponse{
		ID:          it.ID.String(),
		Title:       it.Title,
		Destination: it.Destination,
		Summary:     it.Summary,
		AISources:   it.AISources,
		CreatedAt:   it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   it.UpdatedAt.Format(time.RFC3339),
	}
}

// handleCreateItinerary creates a new itinerary
func (s *Server) handleCreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req ItineraryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	it, err := s.itineraries.CreateItinerary(r.Context(), req.Title, req.Destination)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, itineraryResponse(it))
}

// handleGetItinerary returns a single itinerary with its generated content
func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	it, err := s.itineraries.GetItinerary(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if it == nil {
		s.errorResponse(w, http.StatusNotFound, "itinerary not found: "+id.String())
		return
	}

	s.jsonResponse(w, http.StatusOK, itineraryResponse(it))
}

// pathUUID parses a UUID path value, writing a 400 on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
