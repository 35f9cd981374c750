package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrActiveJobExists indicates the partial unique index on
// generation_jobs (itinerary_id WHERE status = 'running') rejected a
// second concurrent job for the same itinerary.
var ErrActiveJobExists = errors.New("a running generation job already exists for this itinerary")

// CreateGenerationJob inserts a new running job for an itinerary.
// The schema carries a partial unique index so that a concurrent insert
// racing past the caller's FindRunning check still cannot produce two
// running jobs; that violation surfaces as ErrActiveJobExists.
func (db *DB) CreateGenerationJob(ctx context.Context, itineraryID uuid.UUID) (*GenerationJob, error) {
	var job GenerationJob

	err := db.pool.QueryRow(ctx,
		`INSERT INTO generation_jobs (itinerary_id, status)
		 VALUES ($1, $2)
		 RETURNING id, itinerary_id, status, started_at, completed_at, error_message`,
		itineraryID, JobStatusRunning,
	).Scan(&job.ID, &job.ItineraryID, &job.Status, &job.StartedAt, &job.CompletedAt, &job.ErrorMessage)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrActiveJobExists
		}
		return nil, fmt.Errorf("failed to create generation job: %w", err)
	}

	return &job, nil
}

// GetGenerationJob retrieves a job by ID. Returns nil if not found.
func (db *DB) GetGenerationJob(ctx context.Context, jobID uuid.UUID) (*GenerationJob, error) {
	return db.queryJob(ctx,
		`SELECT id, itinerary_id, status, started_at, completed_at, error_message
		 FROM generation_jobs WHERE id = $1`,
		jobID,
	)
}

// GetRunningJob retrieves the running job for an itinerary, if any.
func (db *DB) GetRunningJob(ctx context.Context, itineraryID uuid.UUID) (*GenerationJob, error) {
	return db.queryJob(ctx,
		`SELECT id, itinerary_id, status, started_at, completed_at, error_message
		 FROM generation_jobs
		 WHERE itinerary_id = $1 AND status = $2`,
		itineraryID, JobStatusRunning,
	)
}

// GetLatestJob retrieves the most recently started job for an itinerary.
func (db *DB) GetLatestJob(ctx context.Context, itineraryID uuid.UUID) (*GenerationJob, error) {
	return db.queryJob(ctx,
		`SELECT id, itinerary_id, status, started_at, completed_at, error_message
		 FROM generation_jobs
		 WHERE itinerary_id = $1
		 ORDER BY started_at DESC
		 LIMIT 1`,
		itineraryID,
	)
}

// CompleteGenerationJob transitions a job to a terminal state.
func (db *DB) CompleteGenerationJob(ctx context.Context, jobID uuid.UUID, status string, errorMessage *string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE generation_jobs
		 SET status = $2, completed_at = NOW(), error_message = $3
		 WHERE id = $1 AND status = $4`,
		jobID, status, errorMessage, JobStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to complete generation job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s is not running", jobID)
	}
	return nil
}

func (db *DB) queryJob(ctx context.Context, query string, args ...any) (*GenerationJob, error) {
	var job GenerationJob
	err := db.pool.QueryRow(ctx, query, args...).Scan(
		&job.ID, &job.ItineraryID, &job.Status, &job.StartedAt, &job.CompletedAt, &job.ErrorMessage,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation job: %w", err)
	}
	return &job, nil
}
