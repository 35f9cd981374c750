package generation

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError indicates the target itinerary does not exist.
type NotFoundError struct {
	ItineraryID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("itinerary not found: %s", e.ItineraryID)
}

// ConflictError indicates a running generation job already exists for
// the itinerary.
type ConflictError struct {
	ItineraryID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a generation job is already running for itinerary %s", e.ItineraryID)
}

// InvalidStageError indicates a request named no canonical stage.
type InvalidStageError struct {
	Stage string
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage: %s", e.Stage)
}

// InvalidProviderError indicates an unknown completion provider id.
type InvalidProviderError struct {
	Provider string
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("invalid provider: %s", e.Provider)
}

// StageError represents a stage execution failure. It aborts the
// remaining stages of the run and marks the job failed.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("stage %s failed", e.Stage)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
