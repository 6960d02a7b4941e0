package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/memstore"
	"TOURMAP_BACK-END/internal/middleware"
)

func newToursHandler() (*ToursHandler, *memstore.Store) {
	store := memstore.New()
	return NewToursHandler(store.Tours(), store.Highlights(), nopLogger()), store
}

func TestCreateTour_KeepsHighlightOrder(t *testing.T) {
	h, store := newToursHandler()
	first := seedHighlight(t, store, "B first", true, nil, nil)
	second := seedHighlight(t, store, "A second", true, nil, nil)

	rec := serve(t, h.Create, call{method: http.MethodPost, target: "/tours", body: map[string]any{
		"name":          "Old town loop",
		"description":   "Walk the main sights",
		"duration":      90,
		"start_time":    "2025-06-01T11:30:00+02:00",
		"highlight_ids": []string{first.ID.String(), second.ID.String()},
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tour := decode[dto.TourResponse](t, rec)
	assert.Equal(t, 90, tour.Duration)
	require.NotNil(t, tour.StartTime)
	assert.Equal(t, "2025-06-01T09:30:00Z", *tour.StartTime)
	require.Len(t, tour.Highlights, 2)
	assert.Equal(t, first.ID.String(), tour.Highlights[0].ID)
	assert.Equal(t, second.ID.String(), tour.Highlights[1].ID)

	rec = serve(t, h.Get, call{method: http.MethodGet, target: "/tours/" + tour.ID, params: map[string]string{"id": tour.ID}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Old town loop", decode[dto.TourResponse](t, rec).Name)
}

func TestCreateTour_BadRequest(t *testing.T) {
	h, store := newToursHandler()
	hl := seedHighlight(t, store, "Only", true, nil, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "bad start time", body: map[string]any{"name": "x", "description": "y", "start_time": "next tuesday"}},
		{name: "negative duration", body: map[string]any{"name": "x", "description": "y", "duration": -5}},
		{name: "unknown highlight", body: map[string]any{"name": "x", "description": "y", "highlight_ids": []string{uuid.NewString()}}},
		{name: "malformed highlight id", body: map[string]any{"name": "x", "description": "y", "highlight_ids": []string{"abc"}}},
		{name: "repeated highlight", body: map[string]any{"name": "x", "description": "y", "highlight_ids": []string{hl.ID.String(), hl.ID.String()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h.Create, call{method: http.MethodPost, target: "/tours", body: tt.body})
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateTour(t *testing.T) {
	h, store := newToursHandler()
	a := seedHighlight(t, store, "A", true, nil, nil)
	b := seedHighlight(t, store, "B", true, nil, nil)

	created := serve(t, h.Create, call{method: http.MethodPost, target: "/tours", body: map[string]any{
		"name": "Loop", "description": "Walk", "highlight_ids": []string{a.ID.String(), b.ID.String()},
	}})
	require.Equal(t, http.StatusCreated, created.Code)
	id := decode[dto.TourResponse](t, created).ID

	// No highlight_ids keeps the current highlights.
	rec := serve(t, h.Update, call{method: http.MethodPut, target: "/tours/" + id, params: map[string]string{"id": id}, body: map[string]any{"duration": 45}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.TourResponse](t, rec)
	assert.Equal(t, "Loop", got.Name)
	assert.Equal(t, 45, got.Duration)
	assert.Len(t, got.Highlights, 2)

	rec = serve(t, h.Update, call{method: http.MethodPut, target: "/tours/" + id, params: map[string]string{"id": id}, body: map[string]any{
		"highlight_ids": []string{b.ID.String()},
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[dto.TourResponse](t, rec)
	require.Len(t, got.Highlights, 1)
	assert.Equal(t, b.ID.String(), got.Highlights[0].ID)

	rec = serve(t, h.Update, call{method: http.MethodPut, target: "/tours/" + id, params: map[string]string{"id": id}, body: map[string]any{
		"highlight_ids": []string{},
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[dto.TourResponse](t, rec).Highlights)

	missing := uuid.NewString()
	rec = serve(t, h.Update, call{method: http.MethodPut, target: "/tours/" + missing, params: map[string]string{"id": missing}, body: map[string]any{"name": "x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTour_Idempotent(t *testing.T) {
	h, store := newToursHandler()
	created := serve(t, h.Create, call{method: http.MethodPost, target: "/tours", body: map[string]any{"name": "Loop", "description": "Walk"}})
	require.Equal(t, http.StatusCreated, created.Code)
	id := decode[dto.TourResponse](t, created).ID

	for i := 0; i < 2; i++ {
		rec := serve(t, h.Delete, call{method: http.MethodDelete, target: "/tours/" + id, params: map[string]string{"id": id}})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	tours, err := store.Tours().List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, tours)
}

func TestTourMapHighlights(t *testing.T) {
	h, store := newToursHandler()
	approved := seedHighlight(t, store, "Approved", true, ptr(10.0), ptr(20.0))
	pending := seedHighlight(t, store, "Pending", false, ptr(11.0), ptr(21.0))

	created := serve(t, h.Create, call{method: http.MethodPost, target: "/tours", body: map[string]any{
		"name": "Loop", "description": "Walk", "highlight_ids": []string{approved.ID.String(), pending.ID.String()},
	}})
	require.Equal(t, http.StatusCreated, created.Code)
	id := decode[dto.TourResponse](t, created).ID

	rec := serve(t, h.MapHighlights, call{method: http.MethodGet, target: "/tours/" + id + "/map/highlights", params: map[string]string{"id": id}})
	require.Equal(t, http.StatusOK, rec.Code)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, []float64{20, 10}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "Approved", fc.Features[0].Properties["name"])

	missing := uuid.NewString()
	rec = serve(t, h.MapHighlights, call{method: http.MethodGet, target: "/tours/" + missing + "/map/highlights", params: map[string]string{"id": missing}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTour_HidesPendingHighlightsFromPublic(t *testing.T) {
	h, store := newToursHandler()
	approved := seedHighlight(t, store, "Approved", true, nil, nil)
	pending := seedHighlight(t, store, "Pending", false, nil, nil)
	admin := seedUser(t, store, "admin@example.com", "password123", true, true)
	member := seedUser(t, store, "member@example.com", "password123", false, true)

	created := serve(t, h.Create, call{method: http.MethodPost, target: "/tours", body: map[string]any{
		"name": "Loop", "description": "Walk", "highlight_ids": []string{pending.ID.String(), approved.ID.String()},
	}})
	require.Equal(t, http.StatusCreated, created.Code)
	id := decode[dto.TourResponse](t, created).ID

	tests := []struct {
		name   string
		claims *middleware.JWTClaims
		want   []string
	}{
		{name: "anonymous", want: []string{approved.ID.String()}},
		{name: "member", claims: claimsFor(member), want: []string{approved.ID.String()}},
		{name: "admin", claims: claimsFor(admin), want: []string{pending.ID.String(), approved.ID.String()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h.Get, call{method: http.MethodGet, target: "/tours/" + id, params: map[string]string{"id": id}, claims: tt.claims})
			require.Equal(t, http.StatusOK, rec.Code)

			got := []string{}
			for _, hl := range decode[dto.TourResponse](t, rec).Highlights {
				got = append(got, hl.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
