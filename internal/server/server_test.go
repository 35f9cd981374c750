package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/travel-planner/internal/config"
	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/generation"
	"github.com/jonathan/travel-planner/internal/server/ratelimit"
)

// fakeGeneration is a scripted GenerationService for handler tests.
type fakeGeneration struct {
	runResult   *generation.RunResult
	runErr      error
	stageResult *generation.RunResult
	stageErr    error
	status      *generation.Status
	statusErr   error
	logs        []db.StageLog
	logsErr     error

	lastRun   generation.RunRequest
	lastStage generation.StageRequest
}

func (f *fakeGeneration) ExecuteRun(_ context.Context, req generation.RunRequest) (*generation.RunResult, error) {
	f.lastRun = req
	return f.runResult, f.runErr
}

func (f *fakeGeneration) ExecuteSingleStage(_ context.Context, req generation.StageRequest) (*generation.RunResult, error) {
	f.lastStage = req
	return f.stageResult, f.stageErr
}

func (f *fakeGeneration) GetStatus(_ context.Context, _ uuid.UUID) (*generation.Status, error) {
	return f.status, f.statusErr
}

func (f *fakeGeneration) ListLogs(_ context.Context, _ uuid.UUID) ([]db.StageLog, error) {
	return f.logs, f.logsErr
}

// fakeItineraries is an in-memory ItineraryService.
type fakeItineraries struct {
	items     map[uuid.UUID]*db.Itinerary
	createErr error
}

func newFakeItineraries() *fakeItineraries {
	return &fakeItineraries{items: make(map[uuid.UUID]*db.Itinerary)}
}

func (f *fakeItineraries) CreateItinerary(_ context.Context, title, destination string) (*db.Itinerary, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	it := &db.Itinerary{ID: uuid.New(), Title: title, Destination: destination}
	f.items[it.ID] = it
	return it, nil
}

func (f *fakeItineraries) GetItinerary(_ context.Context, id uuid.UUID) (*db.Itinerary, error) {
	return f.items[id], nil
}

// newTestServer builds a server with fakes and no database connection.
func newTestServer(engine GenerationService, itineraries ItineraryService) *Server {
	return &Server{
		engine:      engine,
		itineraries: itineraries,
		validate:    validator.New(),
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeGeneration{}, newFakeItineraries())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&fakeGeneration{}, newFakeItineraries())

	req := httptest.NewRequest(http.MethodOptions, "/itineraries", nil)
	w := httptest.NewRecorder()
	s.handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth_RejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)

	s := newTestServer(&fakeGeneration{}, newFakeItineraries())
	s.jwtService = NewJWTService(jwtConfig)

	req := httptest.NewRequest(http.MethodGet, "/itineraries/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	s.handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_AllowsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)

	itineraries := newFakeItineraries()
	it, err := itineraries.CreateItinerary(context.Background(), "Kyoto in Autumn", "Kyoto")
	require.NoError(t, err)

	s := newTestServer(&fakeGeneration{}, itineraries)
	s.jwtService = NewJWTService(jwtConfig)

	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/itineraries/"+it.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_HealthStaysOpen(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)

	s := newTestServer(&fakeGeneration{}, newFakeItineraries())
	s.jwtService = NewJWTService(jwtConfig)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
