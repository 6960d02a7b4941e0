package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/middleware"
	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// HighlightsHandler manages highlight endpoints and their moderation
type HighlightsHandler struct {
	highlights HighlightStore
	logger     *zap.Logger
}

// NewHighlightsHandler creates a new HighlightsHandler
func NewHighlightsHandler(highlights HighlightStore, logger *zap.Logger) *HighlightsHandler {
	return &HighlightsHandler{highlights: highlights, logger: logger}
}

// List handles GET /highlights
// @Summary List highlights
// @Description Anonymous and regular callers only see approved highlights. Admins may ask for pending or all.
// @Tags highlights
// @Produce json
// @Param status query string false "approved|pending|all (admin only for pending/all)"
// @Success 200 {array} dto.HighlightResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights [get]
func (h *HighlightsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := repository.HighlightStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	if status == "" {
		status = repository.HighlightsApproved
	}

	switch status {
	case repository.HighlightsApproved:
	case repository.HighlightsPending, repository.HighlightsAll:
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			utils.WriteErrorResponse(w, http.StatusForbidden, "Only admins can list unapproved highlights")
			return
		}
	default:
		utils.WriteErrorResponse(w, http.StatusBadRequest, "status must be approved, pending, or all")
		return
	}

	h.list(w, r, status)
}

// ListSuggestions handles GET /highlights/suggestions
// @Summary List pending highlight suggestions
// @Tags highlights
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.HighlightResponse
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/suggestions [get]
func (h *HighlightsHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repository.HighlightsPending)
}

func (h *HighlightsHandler) list(w http.ResponseWriter, r *http.Request, status repository.HighlightStatus) {
	highlights, err := h.highlights.List(r.Context(), status)
	if err != nil {
		internalError(w, h.logger, "list highlights", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toHighlightResponses(highlights))
}

// Get handles GET /highlights/{id}
// @Summary Get a highlight
// @Tags highlights
// @Produce json
// @Param id path string true "Highlight ID"
// @Success 200 {object} dto.HighlightResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/{id} [get]
func (h *HighlightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	highlight, ok := h.load(w, r, id)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toHighlightResponse(highlight))
}

// Create handles POST /highlights
// @Summary Create or suggest a highlight
// @Description Admin submissions are approved immediately. Other users create a pending suggestion linked to their account.
// @Tags highlights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateHighlightRequest true "Highlight payload"
// @Success 201 {object} dto.HighlightResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights [post]
func (h *HighlightsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req dto.CreateHighlightRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	highlight := &models.Highlight{
		Name:                strings.TrimSpace(req.Name),
		Description:         strings.TrimSpace(req.Description),
		Category:            models.Category(req.Category),
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		BusinessDescription: req.BusinessDescription,
		IsApproved:          claims.IsAdmin,
	}

	var suggester *uuid.UUID
	if !claims.IsAdmin {
		suggester = &claims.ID
	}

	if err := h.highlights.Create(r.Context(), highlight, suggester); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "create highlight", err)
		return
	}

	h.logger.Info("highlight created",
		zap.String("highlight_id", highlight.ID.String()),
		zap.String("user_id", claims.ID.String()),
		zap.Bool("approved", highlight.IsApproved))
	utils.WriteJSONResponse(w, http.StatusCreated, toHighlightResponse(highlight))
}

// Update handles PUT /highlights/{id}
// @Summary Update a highlight
// @Tags highlights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Highlight ID"
// @Param payload body dto.UpdateHighlightRequest true "Fields to change"
// @Success 200 {object} dto.HighlightResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/{id} [put]
func (h *HighlightsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	highlight, ok := h.load(w, r, id)
	if !ok {
		return
	}

	var req dto.UpdateHighlightRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Name != nil {
		highlight.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		highlight.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		highlight.Category = models.Category(*req.Category)
	}
	if req.Latitude != nil {
		highlight.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		highlight.Longitude = req.Longitude
	}
	if req.BusinessDescription != nil {
		highlight.BusinessDescription = req.BusinessDescription
	}

	if err := h.highlights.Update(r.Context(), highlight); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Highlight not found")
			return
		}
		internalError(w, h.logger, "update highlight", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toHighlightResponse(highlight))
}

// Approve handles PUT /highlights/{id}/approve
// @Summary Approve a suggested highlight
// @Tags highlights
// @Produce json
// @Security BearerAuth
// @Param id path string true "Highlight ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/{id}/approve [put]
func (h *HighlightsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.highlights.Approve(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Highlight not found")
			return
		}
		internalError(w, h.logger, "approve highlight", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Highlight approved")
}

// Delete handles DELETE /highlights/{id}
// @Summary Delete a highlight
// @Description Deleting an unknown id succeeds without effect
// @Tags highlights
// @Produce json
// @Security BearerAuth
// @Param id path string true "Highlight ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/{id} [delete]
func (h *HighlightsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.highlights.Delete(r.Context(), id); err != nil {
		internalError(w, h.logger, "delete highlight", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Highlight deleted")
}

func (h *HighlightsHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*models.Highlight, bool) {
	highlight, err := h.highlights.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Highlight not found")
			return nil, false
		}
		internalError(w, h.logger, "load highlight", err)
		return nil, false
	}
	return highlight, true
}
