package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/travel-planner/internal/generation"
)

func TestHTTPStatus(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", &generation.NotFoundError{ItineraryID: id}, http.StatusNotFound},
		{"conflict", &generation.ConflictError{ItineraryID: id}, http.StatusConflict},
		{"invalid stage", &generation.InvalidStageError{Stage: "bogus"}, http.StatusBadRequest},
		{"invalid provider", &generation.InvalidProviderError{Provider: "bogus"}, http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "title", Message: "required"}, http.StatusBadRequest},
		{"stage failure", &generation.StageError{Stage: "tips", Cause: errors.New("timeout")}, http.StatusBadGateway},
		{"wrapped stage failure", fmt.Errorf("run aborted: %w", &generation.StageError{Stage: "tips", Cause: errors.New("timeout")}), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation_Error(t *testing.T) {
	err := &ErrValidation{Field: "title", Message: "required"}
	assert.Equal(t, "validation error: title - required", err.Error())
}
