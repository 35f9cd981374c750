// Package generation orchestrates AI content generation for itineraries:
// it enforces the one-running-job-per-itinerary guard, executes stages
// strictly in order, keeps an append-only log of every attempt, and
// commits itinerary changes only when a whole run succeeds.
package generation

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/llm"
	"github.com/jonathan/travel-planner/internal/stages"
)

// genTemperature is the sampling temperature used for every stage.
const genTemperature float32 = 0.7

// ItineraryStore is the narrow view of itinerary persistence the engine
// needs: read the aggregate, write back generated content.
type ItineraryStore interface {
	GetItinerary(ctx context.Context, id uuid.UUID) (*db.Itinerary, error)
	UpdateItineraryGeneration(ctx context.Context, id uuid.UUID, sources map[string]string, summary *string) (*db.Itinerary, error)
}

// JobStore persists run-level lifecycle records.
type JobStore interface {
	CreateGenerationJob(ctx context.Context, itineraryID uuid.UUID) (*db.GenerationJob, error)
	GetRunningJob(ctx context.Context, itineraryID uuid.UUID) (*db.GenerationJob, error)
	GetLatestJob(ctx context.Context, itineraryID uuid.UUID) (*db.GenerationJob, error)
	CompleteGenerationJob(ctx context.Context, jobID uuid.UUID, status string, errorMessage *string) error
}

// LogStore persists the append-only stage invocation log.
type LogStore interface {
	CreateStageLog(ctx context.Context, itineraryID uuid.UUID, input *db.StageLogInput) (*db.StageLog, error)
	ListStageLogs(ctx context.Context, itineraryID uuid.UUID) ([]db.StageLog, error)
	ListLoggedStages(ctx context.Context, itineraryID uuid.UUID) ([]string, error)
}

// ClientFunc builds a completion client for a provider. The engine
// resolves the client before any job bookkeeping so a bad provider
// never produces an orphaned running job.
type ClientFunc func(ctx context.Context, provider llm.Provider) (llm.Client, error)

// Engine coordinates generation runs against itineraries.
type Engine struct {
	itineraries ItineraryStore
	jobs        JobStore
	logs        LogStore
	newClient   ClientFunc
}

// NewEngine creates a generation engine.
func NewEngine(itineraries ItineraryStore, jobs JobStore, logs LogStore, newClient ClientFunc) *Engine {
	return &Engine{
		itineraries: itineraries,
		jobs:        jobs,
		logs:        logs,
		newClient:   newClient,
	}
}

// RunRequest describes a full pipeline run. An empty Stages list means
// the full canonical order; an empty Provider means the default.
type RunRequest struct {
	ItineraryID uuid.UUID
	Stages      []string
	Provider    string
	Extra       string
}

// StageRequest describes a single-stage run. Prompt, when non-empty,
// replaces the stage's built prompt entirely.
type StageRequest struct {
	ItineraryID uuid.UUID
	Stage       string
	Prompt      string
	Provider    string
}

// RunResult identifies the job created for a run and the stages it covered.
type RunResult struct {
	JobID  uuid.UUID `json:"job_id"`
	Stages []string  `json:"stages"`
}

// Status reports the most recent job for an itinerary and the stage ids
// that have any log entry. Job is nil when no run has ever started.
type Status struct {
	Job    *db.GenerationJob `json:"job"`
	Stages []string          `json:"stages"`
}

// ExecuteRun runs the requested stages in order for one itinerary.
// Itinerary mutations are all-or-nothing per run: they are held on an
// in-run working copy and persisted in one write only after every stage
// succeeded. Log rows and the job record are durable regardless.
func (e *Engine) ExecuteRun(ctx context.Context, req RunRequest) (*RunResult, error) {
	stageList := stages.Normalize(req.Stages)
	if len(stageList) == 0 {
		// Only possible when the caller supplied stages and none were canonical.
		return nil, &InvalidStageError{Stage: fmt.Sprintf("%v", req.Stages)}
	}

	return e.run(ctx, req.ItineraryID, stageList, req.Provider, req.Extra, "")
}

// ExecuteSingleStage runs exactly one stage, with an optional prompt
// override. Rejects non-canonical stage ids before any job is created.
func (e *Engine) ExecuteSingleStage(ctx context.Context, req StageRequest) (*RunResult, error) {
	if !stages.Valid(req.Stage) {
		return nil, &InvalidStageError{Stage: req.Stage}
	}

	return e.run(ctx, req.ItineraryID, []string{req.Stage}, req.Provider, "", req.Prompt)
}

// run is the shared pipeline executor behind both entry points.
func (e *Engine) run(ctx context.Context, itineraryID uuid.UUID, stageList []string, providerID, extra, promptOverride string) (*RunResult, error) {
	provider, err := llm.ParseProvider(providerID)
	if err != nil {
		return nil, &InvalidProviderError{Provider: providerID}
	}

	it, err := e.itineraries.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary: %w", err)
	}
	if it == nil {
		return nil, &NotFoundError{ItineraryID: itineraryID}
	}

	client, err := e.newClient(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}
	defer client.Close()

	// Single-flight guard: reject while another run is active. The
	// check is not atomic on its own; the job store's unique-running
	// constraint backstops the race below.
	running, err := e.jobs.GetRunningJob(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check running jobs: %w", err)
	}
	if running != nil {
		return nil, &ConflictError{ItineraryID: itineraryID}
	}

	job, err := e.jobs.CreateGenerationJob(ctx, itineraryID)
	if err != nil {
		if err == db.ErrActiveJobExists {
			return nil, &ConflictError{ItineraryID: itineraryID}
		}
		return nil, fmt.Errorf("failed to create generation job: %w", err)
	}

	working := workingCopy(it)
	frameworkRan := false

	for _, stageID := range stageList {
		text, stageErr := e.executeStage(ctx, client, working, stageID, extra, promptOverride)
		if stageErr != nil {
			e.failJob(ctx, job.ID, stageErr)
			return nil, &StageError{Stage: stageID, Cause: stageErr}
		}

		working = applyResult(working, stageID, text)
		if stageID == stages.StageFramework {
			frameworkRan = true
		}
	}

	var summary *string
	if frameworkRan {
		summary = &working.Summary
	}
	if _, err := e.itineraries.UpdateItineraryGeneration(ctx, itineraryID, working.AISources, summary); err != nil {
		err = fmt.Errorf("failed to persist generated content: %w", err)
		e.failJob(ctx, job.ID, err)
		return nil, err
	}

	if err := e.jobs.CompleteGenerationJob(ctx, job.ID, db.JobStatusCompleted, nil); err != nil {
		// The content is already saved, but a job stuck in running
		// blocks every later run for this itinerary. Surface the job
		// id so an operator can close it out manually.
		log.Printf("Warning: content saved but job %s could not be marked completed: %v", job.ID, err)
		return nil, fmt.Errorf("content saved but job %s could not be marked completed: %w", job.ID, err)
	}

	return &RunResult{JobID: job.ID, Stages: stageList}, nil
}

// executeStage builds the prompt, invokes the completion client, and
// appends exactly one log row for the attempt.
func (e *Engine) executeStage(ctx context.Context, client llm.Client, it *db.Itinerary, stageID, extra, promptOverride string) (string, error) {
	prompt := promptOverride
	if prompt == "" {
		var err error
		prompt, err = BuildPrompt(it, stageID, extra)
		if err != nil {
			return "", err
		}
	}

	promptPayload := map[string]interface{}{
		"text":        prompt,
		"stage":       stageID,
		"provider":    string(client.Provider()),
		"temperature": genTemperature,
	}
	if extra != "" {
		promptPayload["extra"] = extra
	}

	text, err := client.Complete(ctx, llm.UserMessage(prompt), genTemperature)
	if err == nil && text == "" {
		err = fmt.Errorf("provider returned an empty completion")
	}

	if err != nil {
		errText := err.Error()
		e.appendLog(ctx, it.ID, &db.StageLogInput{
			Stage:     stageID,
			Status:    db.LogStatusFailure,
			Prompt:    promptPayload,
			ErrorText: &errText,
		})
		return "", err
	}

	e.appendLog(ctx, it.ID, &db.StageLogInput{
		Stage:  stageID,
		Status: db.LogStatusSuccess,
		Prompt: promptPayload,
		Response: map[string]interface{}{
			"text":   text,
			"length": len(text),
		},
	})

	return text, nil
}

// appendLog writes a log row, degrading to a placeholder payload when
// the structured one cannot be stored. Log failures never fail the run.
func (e *Engine) appendLog(ctx context.Context, itineraryID uuid.UUID, input *db.StageLogInput) {
	if _, err := e.logs.CreateStageLog(ctx, itineraryID, input); err != nil {
		log.Printf("Warning: failed to write stage log for %s/%s: %v", itineraryID, input.Stage, err)

		placeholder := &db.StageLogInput{
			Stage:     input.Stage,
			Status:    input.Status,
			Prompt:    map[string]interface{}{"note": "payload could not be stored"},
			ErrorText: input.ErrorText,
		}
		if _, err := e.logs.CreateStageLog(ctx, itineraryID, placeholder); err != nil {
			log.Printf("Warning: failed to write placeholder stage log for %s/%s: %v", itineraryID, input.Stage, err)
		}
	}
}

// failJob records a terminal failure on the job, attributing the same
// message the caller receives.
func (e *Engine) failJob(ctx context.Context, jobID uuid.UUID, cause error) {
	msg := cause.Error()
	if err := e.jobs.CompleteGenerationJob(ctx, jobID, db.JobStatusFailed, &msg); err != nil {
		log.Printf("Warning: failed to mark job %s failed: %v", jobID, err)
	}
}

// GetStatus returns the most recent job for an itinerary plus the stage
// ids with any log entry, in canonical stage order. Status.Job is nil
// when no run has ever been started.
func (e *Engine) GetStatus(ctx context.Context, itineraryID uuid.UUID) (*Status, error) {
	it, err := e.itineraries.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary: %w", err)
	}
	if it == nil {
		return nil, &NotFoundError{ItineraryID: itineraryID}
	}

	job, err := e.jobs.GetLatestJob(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest job: %w", err)
	}

	logged, err := e.logs.ListLoggedStages(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load logged stages: %w", err)
	}
	sortCanonically(logged)

	return &Status{Job: job, Stages: logged}, nil
}

// ListLogs returns all log rows for an itinerary, most recent first.
func (e *Engine) ListLogs(ctx context.Context, itineraryID uuid.UUID) ([]db.StageLog, error) {
	it, err := e.itineraries.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary: %w", err)
	}
	if it == nil {
		return nil, &NotFoundError{ItineraryID: itineraryID}
	}

	return e.logs.ListStageLogs(ctx, itineraryID)
}

// sortCanonically orders stage ids by their pipeline position.
func sortCanonically(ids []string) {
	order := make(map[string]int, 6)
	for i, id := range stages.CanonicalOrder() {
		order[id] = i
	}
	sort.Slice(ids, func(a, b int) bool {
		return order[ids[a]] < order[ids[b]]
	})
}
