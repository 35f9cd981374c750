package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateItinerary inserts a new itinerary and returns the stored record.
func (db *DB) CreateItinerary(ctx context.Context, title, destination string) (*Itinerary, error) {
	var it Itinerary
	var sourcesJSON []byte

	err := db.pool.QueryRow(ctx,
		`INSERT INTO itineraries (title, destination, ai_sources)
		 VALUES ($1, $2, '{}'::jsonb)
		 RETURNING id, title, destination, summary, ai_sources, created_at, updated_at`,
		title, destination,
	).Scan(&it.ID, &it.Title, &it.Destination, &it.Summary, &sourcesJSON, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary: %w", err)
	}

	if err := unmarshalSources(sourcesJSON, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItinerary retrieves an itinerary by ID. Returns nil if not found.
func (db *DB) GetItinerary(ctx context.Context, id uuid.UUID) (*Itinerary, error) {
	var it Itinerary
	var sourcesJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, title, destination, summary, ai_sources, created_at, updated_at
		 FROM itineraries WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Title, &it.Destination, &it.Summary, &sourcesJSON, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	if err := unmarshalSources(sourcesJSON, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// UpdateItineraryGeneration overwrites the generated-content fields of an
// itinerary: the full ai_sources map and, when summary is non-nil, the
// summary. Returns the updated record.
func (db *DB) UpdateItineraryGeneration(ctx context.Context, id uuid.UUID, sources map[string]string, summary *string) (*Itinerary, error) {
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ai_sources: %w", err)
	}

	var it Itinerary
	var storedJSON []byte

	err = db.pool.QueryRow(ctx,
		`UPDATE itineraries
		 SET ai_sources = $2, summary = COALESCE($3, summary), updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, title, destination, summary, ai_sources, created_at, updated_at`,
		id, sourcesJSON, summary,
	).Scan(&it.ID, &it.Title, &it.Destination, &it.Summary, &storedJSON, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update itinerary: %w", err)
	}

	if err := unmarshalSources(storedJSON, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func unmarshalSources(data []byte, it *Itinerary) error {
	it.AISources = make(map[string]string)
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &it.AISources); err != nil {
		return fmt.Errorf("failed to parse ai_sources: %w", err)
	}
	return nil
}
