// Package server provides the HTTP REST API for the travel planner.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/travel-planner/internal/generation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound        *generation.NotFoundError
		conflict        *generation.ConflictError
		invalidStage    *generation.InvalidStageError
		invalidProvider *generation.InvalidProviderError
		stageFailure    *generation.StageError
		validation      *ErrValidation
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &invalidStage), errors.As(err, &invalidProvider), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &stageFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
