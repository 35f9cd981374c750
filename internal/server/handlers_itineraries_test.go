package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRequest(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func TestHandleCreateItinerary(t *testing.T) {
	itineraries := newFakeItineraries()
	s := newTestServer(&fakeGeneration{}, itineraries)

	w := postJSON(t, s, "/itineraries", ItineraryCreateRequest{
		Title:       "Spring in Lisbon",
		Destination: "Lisbon",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ItineraryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Spring in Lisbon", resp.Title)
	assert.Equal(t, "Lisbon", resp.Destination)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, itineraries.items, 1)
}

func TestHandleCreateItinerary_MissingTitle(t *testing.T) {
	s := newTestServer(&fakeGeneration{}, newFakeItineraries())

	w := postJSON(t, s, "/itineraries", ItineraryCreateRequest{Destination: "Lisbon"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateItinerary_InvalidBody(t *testing.T) {
	s := newTestServer(&fakeGeneration{}, newFakeItineraries())

	req, w := rawRequest(http.MethodPost, "/itineraries", "{not json")
	s.handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetItinerary(t *testing.T) {
	itineraries := newFakeItineraries()
	it, err := itineraries.CreateItinerary(context.Background(), "Kyoto in Autumn", "Kyoto")
	require.NoError(t, err)
	it.AISources = map[string]string{"framework": "day one"}
	it.Summary = "day one"

	s := newTestServer(&fakeGeneration{}, itineraries)

	w := getJSON(s, "/itineraries/"+it.ID.String())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ItineraryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, it.ID.String(), resp.ID)
	assert.Equal(t, "day one", resp.Summary)
	assert.Equal(t, map[string]string{"framework": "day one"}, resp.AISources)
}

func TestHandleGetItinerary_NotFound(t *testing.T) {
	s := newTestServer(&fakeGeneration{}, newFakeItineraries())

	w := getJSON(s, "/itineraries/"+uuid.New().String())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetItinerary_InvalidID(t *testing.T) {
	s := newTestServer(&fakeGeneration{}, newFakeItineraries())

	w := getJSON(s, "/itineraries/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
