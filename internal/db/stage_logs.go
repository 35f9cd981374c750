package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// CreateStageLog appends one stage attempt record. Log rows are
// append-only and survive a failed run.
func (db *DB) CreateStageLog(ctx context.Context, itineraryID uuid.UUID, input *StageLogInput) (*StageLog, error) {
	promptJSON, err := json.Marshal(input.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompt payload: %w", err)
	}

	var responseJSON []byte
	if input.Response != nil {
		responseJSON, err = json.Marshal(input.Response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response payload: %w", err)
		}
	}

	var row StageLog
	err = db.pool.QueryRow(ctx,
		`INSERT INTO stage_logs (itinerary_id, stage, status, prompt, response, error_text)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, itinerary_id, stage, status, prompt, response, error_text, created_at`,
		itineraryID, input.Stage, input.Status, promptJSON, responseJSON, input.ErrorText,
	).Scan(&row.ID, &row.ItineraryID, &row.Stage, &row.Status, &promptJSON, &responseJSON, &row.ErrorText, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage log: %w", err)
	}

	if promptJSON != nil {
		_ = json.Unmarshal(promptJSON, &row.Prompt)
	}
	if responseJSON != nil {
		_ = json.Unmarshal(responseJSON, &row.Response)
	}

	return &row, nil
}

// ListStageLogs retrieves all log rows for an itinerary, most recent first.
func (db *DB) ListStageLogs(ctx context.Context, itineraryID uuid.UUID) ([]StageLog, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, itinerary_id, stage, status, prompt, response, error_text, created_at
		 FROM stage_logs
		 WHERE itinerary_id = $1
		 ORDER BY created_at DESC`,
		itineraryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage logs: %w", err)
	}
	defer rows.Close()

	var logs []StageLog
	for rows.Next() {
		var row StageLog
		var promptJSON, responseJSON []byte

		if err := rows.Scan(&row.ID, &row.ItineraryID, &row.Stage, &row.Status,
			&promptJSON, &responseJSON, &row.ErrorText, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stage log: %w", err)
		}

		if promptJSON != nil {
			_ = json.Unmarshal(promptJSON, &row.Prompt)
		}
		if responseJSON != nil {
			_ = json.Unmarshal(responseJSON, &row.Response)
		}

		logs = append(logs, row)
	}

	return logs, nil
}

// ListLoggedStages retrieves the distinct stage ids that have at least
// one log row for an itinerary.
func (db *DB) ListLoggedStages(ctx context.Context, itineraryID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT stage FROM stage_logs WHERE itinerary_id = $1`,
		itineraryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list logged stages: %w", err)
	}
	defer rows.Close()

	var stages []string
	for rows.Next() {
		var stage string
		if err := rows.Scan(&stage); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, stage)
	}

	return stages, nil
}
