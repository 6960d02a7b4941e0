package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// FeedbackHandler serves ratings and comments on highlights and tours
type FeedbackHandler struct {
	feedbacks  FeedbackStore
	users      UserStore
	highlights HighlightStore
	tours      TourStore
	logger     *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbacks FeedbackStore, users UserStore, highlights HighlightStore, tours TourStore, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbacks:  feedbacks,
		users:      users,
		highlights: highlights,
		tours:      tours,
		logger:     logger,
	}
}

// CreateForHighlight handles POST /highlights/{id}/feedbacks
// @Summary Leave feedback on a highlight
// @Description Feedback from verified users is approved immediately
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Highlight ID"
// @Param payload body dto.FeedbackRequest true "Rating and comment"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/{id}/feedbacks [post]
func (h *FeedbackHandler) CreateForHighlight(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.highlights.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Highlight not found")
			return
		}
		internalError(w, h.logger, "load highlight", err)
		return
	}

	h.create(w, r, &models.Feedback{HighlightID: &id})
}

// CreateForTour handles POST /tours/{id}/feedbacks
// @Summary Leave feedback on a tour
// @Description Feedback from verified users is approved immediately
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param payload body dto.FeedbackRequest true "Rating and comment"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours/{id}/feedbacks [post]
func (h *FeedbackHandler) CreateForTour(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.tours.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Tour not found")
			return
		}
		internalError(w, h.logger, "load tour", err)
		return
	}

	h.create(w, r, &models.Feedback{TourID: &id})
}

func (h *FeedbackHandler) create(w http.ResponseWriter, r *http.Request, feedback *models.Feedback) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Tokens can outlive their account.
	author, err := h.users.FindByID(r.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "load feedback author", err)
		return
	}

	feedback.UserID = author.ID
	feedback.Rating = req.Rating
	feedback.Comment = strings.TrimSpace(req.Comment)
	feedback.IsApproved = author.Verified

	if err := h.feedbacks.Create(r.Context(), feedback); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Feedback target not found")
			return
		}
		internalError(w, h.logger, "create feedback", err)
		return
	}

	h.logger.Info("feedback created",
		zap.String("feedback_id", feedback.ID.String()),
		zap.String("user_id", author.ID.String()),
		zap.Bool("approved", feedback.IsApproved))
	utils.WriteJSONResponse(w, http.StatusCreated, toFeedbackResponse(feedback))
}

// ListByHighlight handles GET /highlights/{id}/feedbacks
// @Summary List approved feedback for a highlight
// @Tags feedback
// @Produce json
// @Param id path string true "Highlight ID"
// @Success 200 {array} dto.FeedbackResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /highlights/{id}/feedbacks [get]
func (h *FeedbackHandler) ListByHighlight(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	feedbacks, err := h.feedbacks.ListByHighlight(r.Context(), id, true)
	if err != nil {
		internalError(w, h.logger, "list highlight feedbacks", err)
		return
	}
	writeFeedbackList(w, feedbacks, "No feedbacks found for this highlight")
}

// ListByTour handles GET /tours/{id}/feedbacks
// @Summary List approved feedback for a tour
// @Tags feedback
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {array} dto.FeedbackResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tours/{id}/feedbacks [get]
func (h *FeedbackHandler) ListByTour(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	feedbacks, err := h.feedbacks.ListByTour(r.Context(), id, true)
	if err != nil {
		internalError(w, h.logger, "list tour feedbacks", err)
		return
	}
	writeFeedbackList(w, feedbacks, "No feedbacks found for this tour")
}

// Update handles PUT /feedbacks/{id}
// @Summary Edit a feedback
// @Description Only the author or an admin may edit
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Param payload body dto.FeedbackRequest true "Rating and comment"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /feedbacks/{id} [put]
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	feedback, ok := h.loadModifiable(w, r, "id")
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	feedback.Rating = req.Rating
	feedback.Comment = strings.TrimSpace(req.Comment)

	if err := h.feedbacks.Update(r.Context(), feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Feedback not found")
			return
		}
		internalError(w, h.logger, "update feedback", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toFeedbackResponse(feedback))
}

// Delete handles DELETE /feedbacks/{id}
// @Summary Delete a feedback
// @Description Only the author or an admin may delete
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /feedbacks/{id} [delete]
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	feedback, ok := h.loadModifiable(w, r, "id")
	if !ok {
		return
	}
	h.delete(w, r, feedback.ID)
}

// Approve handles PUT /feedbacks/{id}/approve
// @Summary Approve a feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /feedbacks/{id}/approve [put]
func (h *FeedbackHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.feedbacks.Approve(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Feedback not found")
			return
		}
		internalError(w, h.logger, "approve feedback", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Feedback approved")
}

func (h *FeedbackHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.feedbacks.Delete(r.Context(), id); err != nil {
		internalError(w, h.logger, "delete feedback", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Feedback deleted")
}

// loadModifiable fetches the feedback named by the path parameter and checks
// that the caller is its author or an admin.
func (h *FeedbackHandler) loadModifiable(w http.ResponseWriter, r *http.Request, param string) (*models.Feedback, bool) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return nil, false
	}

	id, ok := urlUUID(w, r, param)
	if !ok {
		return nil, false
	}

	feedback, err := h.feedbacks.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Feedback not found")
			return nil, false
		}
		internalError(w, h.logger, "load feedback", err)
		return nil, false
	}

	if !canModify(claims, feedback.UserID) {
		utils.WriteErrorResponse(w, http.StatusForbidden, "You can only modify your own feedback")
		return nil, false
	}
	return feedback, true
}

func writeFeedbackList(w http.ResponseWriter, feedbacks []models.Feedback, emptyMessage string) {
	if len(feedbacks) == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, emptyMessage)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toFeedbackResponses(feedbacks))
}
