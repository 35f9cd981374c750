package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/travel-planner/internal/db"
)

func TestPrintItinerary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintItinerary(&db.Itinerary{
		ID:          uuid.New(),
		Title:       "Spring in Lisbon",
		Destination: "Lisbon",
		Summary:     "A week split between the coast and the old town.",
		AISources: map[string]string{
			"framework": "day plan",
			"tips":      "bring cash",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ITINERARY")
	assert.Contains(t, out, "Spring in Lisbon")
	assert.Contains(t, out, "framework")
	assert.Contains(t, out, "tips")
}

func TestPrintItinerary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintItinerary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintJobStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	errMsg := "stage transport failed"
	completed := time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC)
	p.PrintJobStatus(&db.GenerationJob{
		ID:           uuid.New(),
		Status:       db.JobStatusFailed,
		StartedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		CompletedAt:  &completed,
		ErrorMessage: &errMsg,
	}, []string{"framework", "transport"})

	out := buf.String()
	assert.Contains(t, out, "GENERATION STATUS")
	assert.Contains(t, out, db.JobStatusFailed)
	assert.Contains(t, out, "framework, transport")
}

func TestPrintJobStatus_NoJob(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobStatus(nil, nil)
	assert.Contains(t, buf.String(), "No generation jobs yet")
}

func TestPrintStageLogs_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	logs := make([]db.StageLog, maxLogRowsToShow+3)
	for i := range logs {
		logs[i] = db.StageLog{
			Stage:     "daily",
			Status:    db.LogStatusSuccess,
			CreatedAt: time.Date(2026, 3, 1, 9, 0, i, 0, time.UTC),
		}
	}
	p.PrintStageLogs(logs)

	assert.Contains(t, buf.String(), "... and 3 more")
}
