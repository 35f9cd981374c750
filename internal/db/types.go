package db

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus constants for generation job lifecycle states.
// A job starts as running and transitions exactly once to a terminal state.
const (
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// LogStatus constants for stage invocation outcomes.
const (
	LogStatusSuccess = "success"
	LogStatusFailure = "failure"
)

// Itinerary represents a travel itinerary record. The generation engine
// reads Title/Destination and owns writes to AISources and Summary.
type Itinerary struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Destination string            `json:"destination"`
	Summary     string            `json:"summary"`
	AISources   map[string]string `json:"ai_sources"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GenerationJob represents one run of the generation pipeline.
// CompletedAt and ErrorMessage are set only for terminal states.
type GenerationJob struct {
	ID           uuid.UUID  `json:"id"`
	ItineraryID  uuid.UUID  `json:"itinerary_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
}

// StageLog is one append-only record of a stage attempt.
type StageLog struct {
	ID          uuid.UUID              `json:"id"`
	ItineraryID uuid.UUID              `json:"itinerary_id"`
	Stage       string                 `json:"stage"`
	Status      string                 `json:"status"`
	Prompt      map[string]interface{} `json:"prompt"`
	Response    map[string]interface{} `json:"response,omitempty"`
	ErrorText   *string                `json:"error_text,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// StageLogInput represents input for appending a stage log row.
type StageLogInput struct {
	Stage     string
	Status    string
	Prompt    map[string]interface{}
	Response  map[string]interface{}
	ErrorText *string
}
