//go:build integration
// +build integration

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGenerationJob_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	it, err := db.CreateItinerary(ctx, "Spring in Lisbon", "Lisbon")
	require.NoError(t, err)

	job, err := db.CreateGenerationJob(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, job.ItineraryID)
	assert.Equal(t, JobStatusRunning, job.Status)
	assert.Nil(t, job.CompletedAt)

	// cleanup so later tests start from a clean slate
	require.NoError(t, db.CompleteGenerationJob(ctx, job.ID, JobStatusCompleted, nil))
}

func TestCreateGenerationJob_UniqueRunningGuard_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	it, err := db.CreateItinerary(ctx, "Kyoto in Autumn", "Kyoto")
	require.NoError(t, err)

	first, err := db.CreateGenerationJob(ctx, it.ID)
	require.NoError(t, err)

	_, err = db.CreateGenerationJob(ctx, it.ID)
	assert.ErrorIs(t, err, ErrActiveJobExists)

	require.NoError(t, db.CompleteGenerationJob(ctx, first.ID, JobStatusFailed, strPtr("provider timeout")))

	// A terminal first job no longer blocks a fresh run.
	second, err := db.CreateGenerationJob(ctx, it.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	require.NoError(t, db.CompleteGenerationJob(ctx, second.ID, JobStatusCompleted, nil))
}

func TestCompleteGenerationJob_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	it, err := db.CreateItinerary(ctx, "Oslo Weekend", "Oslo")
	require.NoError(t, err)

	job, err := db.CreateGenerationJob(ctx, it.ID)
	require.NoError(t, err)

	require.NoError(t, db.CompleteGenerationJob(ctx, job.ID, JobStatusFailed, strPtr("boom")))

	stored, err := db.GetGenerationJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, JobStatusFailed, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "boom", *stored.ErrorMessage)

	// Terminal jobs are immutable: completing again fails.
	err = db.CompleteGenerationJob(ctx, job.ID, JobStatusCompleted, nil)
	assert.Error(t, err)
}

func TestGetLatestJob_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	it, err := db.CreateItinerary(ctx, "Rome Getaway", "Rome")
	require.NoError(t, err)

	none, err := db.GetLatestJob(ctx, it.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := db.CreateGenerationJob(ctx, it.ID)
	require.NoError(t, err)
	require.NoError(t, db.CompleteGenerationJob(ctx, first.ID, JobStatusCompleted, nil))

	second, err := db.CreateGenerationJob(ctx, it.ID)
	require.NoError(t, err)

	latest, err := db.GetLatestJob(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	running, err := db.GetRunningJob(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, second.ID, running.ID)

	require.NoError(t, db.CompleteGenerationJob(ctx, second.ID, JobStatusCompleted, nil))
}

func strPtr(s string) *string {
	return &s
}
