package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/geo"
	"TOURMAP_BACK-END/internal/middleware"
	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// ToursHandler serves tour endpoints
type ToursHandler struct {
	tours      TourStore
	highlights HighlightStore
	logger     *zap.Logger
}

// NewToursHandler creates a new ToursHandler
func NewToursHandler(tours TourStore, highlights HighlightStore, logger *zap.Logger) *ToursHandler {
	return &ToursHandler{tours: tours, highlights: highlights, logger: logger}
}

// List handles GET /tours
// @Summary List tours
// @Tags tours
// @Produce json
// @Success 200 {array} dto.TourResponse
// @Failure 500 {object} utils.ErrorBody
// @Router /tours [get]
func (h *ToursHandler) List(w http.ResponseWriter, r *http.Request) {
	tours, err := h.tours.List(r.Context())
	if err != nil {
		internalError(w, h.logger, "list tours", err)
		return
	}

	resp := make([]dto.TourResponse, 0, len(tours))
	for i := range tours {
		resp = append(resp, toTourResponse(&tours[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// Get handles GET /tours/{id}
// @Summary Get a tour with its highlights in order
// @Description Pending highlights are only included for admins
// @Tags tours
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} dto.TourResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours/{id} [get]
func (h *ToursHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	tour, ok := h.load(w, r, id)
	if !ok {
		return
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); !ok || !claims.IsAdmin {
		tour.Highlights = approvedOnly(tour.Highlights)
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTourResponse(tour))
}

// Create handles POST /tours
// @Summary Create a tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTourRequest true "Tour payload"
// @Success 201 {object} dto.TourResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours [post]
func (h *ToursHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTourRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	startTime, ok := parseStartTime(w, req.StartTime)
	if !ok {
		return
	}
	highlightIDs, ok := parseHighlightIDs(w, req.HighlightIDs)
	if !ok {
		return
	}

	tour := &models.Tour{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Duration:    req.Duration,
		StartTime:   startTime,
	}

	if err := h.tours.Create(r.Context(), tour, highlightIDs); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Unknown highlight in highlight_ids")
			return
		}
		internalError(w, h.logger, "create tour", err)
		return
	}

	h.logger.Info("tour created", zap.String("tour_id", tour.ID.String()), zap.Int("highlights", len(highlightIDs)))
	h.respondWithTour(w, r, tour.ID, http.StatusCreated)
}

// Update handles PUT /tours/{id}
// @Summary Update a tour
// @Description A present highlight_ids array replaces the tour's highlights in the given order
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param payload body dto.UpdateTourRequest true "Fields to change"
// @Success 200 {object} dto.TourResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours/{id} [put]
func (h *ToursHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	tour, ok := h.load(w, r, id)
	if !ok {
		return
	}

	var req dto.UpdateTourRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Name != nil {
		tour.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		tour.Description = strings.TrimSpace(*req.Description)
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.StartTime != nil {
		startTime, ok := parseStartTime(w, req.StartTime)
		if !ok {
			return
		}
		tour.StartTime = startTime
	}

	var highlightIDs []uuid.UUID
	if req.HighlightIDs != nil {
		highlightIDs, ok = parseHighlightIDs(w, *req.HighlightIDs)
		if !ok {
			return
		}
	}

	if err := h.tours.Update(r.Context(), tour, highlightIDs); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.WriteErrorResponse(w, http.StatusNotFound, "Tour not found")
		case errors.Is(err, repository.ErrInvalidReference):
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Unknown highlight in highlight_ids")
		default:
			internalError(w, h.logger, "update tour", err)
		}
		return
	}

	h.respondWithTour(w, r, tour.ID, http.StatusOK)
}

// Delete handles DELETE /tours/{id}
// @Summary Delete a tour
// @Description Deleting an unknown id succeeds without effect
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours/{id} [delete]
func (h *ToursHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tours.Delete(r.Context(), id); err != nil {
		internalError(w, h.logger, "delete tour", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Tour deleted")
}

// MapHighlights handles GET /tours/{id}/map/highlights
// @Summary GeoJSON of a tour's approved highlights
// @Tags map
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours/{id}/map/highlights [get]
func (h *ToursHandler) MapHighlights(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if _, ok := h.load(w, r, id); !ok {
		return
	}

	highlights, err := h.highlights.ListByTour(r.Context(), id, true)
	if err != nil {
		internalError(w, h.logger, "list tour highlights", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, geo.HighlightsToFeatureCollection(highlights))
}

func (h *ToursHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*models.Tour, bool) {
	tour, err := h.tours.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Tour not found")
			return nil, false
		}
		internalError(w, h.logger, "load tour", err)
		return nil, false
	}
	return tour, true
}

// respondWithTour reloads the tour so the response carries its ordered highlights.
func (h *ToursHandler) respondWithTour(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	tour, ok := h.load(w, r, id)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, status, toTourResponse(tour))
}

func parseStartTime(w http.ResponseWriter, value *string) (*time.Time, bool) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, true
	}
	t, err := utils.ParseDate(*value)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "start_time must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return nil, false
	}
	return &t, true
}

func approvedOnly(highlights []models.Highlight) []models.Highlight {
	out := make([]models.Highlight, 0, len(highlights))
	for _, hl := range highlights {
		if hl.IsApproved {
			out = append(out, hl)
		}
	}
	return out
}

// parseHighlightIDs returns a non-nil slice even for empty input.
func parseHighlightIDs(w http.ResponseWriter, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "highlight_ids must contain valid UUIDs")
			return nil, false
		}
		if _, dup := seen[id]; dup {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "highlight_ids must not repeat a highlight")
			return nil, false
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, true
}
