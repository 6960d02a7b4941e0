package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// UsersHandler serves user administration and per-user feedback endpoints
type UsersHandler struct {
	users     UserStore
	feedbacks FeedbackStore
	logger    *zap.Logger
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(users UserStore, feedbacks FeedbackStore, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, feedbacks: feedbacks, logger: logger}
}

// List handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /users [get]
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		internalError(w, h.logger, "list users", err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// Get handles GET /users/{id}
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /users/{id} [get]
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "load user", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users/{id}
// @Summary Delete a user
// @Description Deleting an unknown id succeeds without effect
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /users/{id} [delete]
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		internalError(w, h.logger, "delete user", err)
		return
	}

	h.logger.Info("user deleted", zap.String("user_id", id.String()))
	utils.WriteMessage(w, http.StatusOK, "User deleted")
}

// Verify handles PUT /users/{id}/verify
// @Summary Mark a user as verified
// @Description Feedback from verified users is approved on creation
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /users/{id}/verify [put]
func (h *UsersHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.users.SetVerified(r.Context(), id, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "verify user", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "User verified")
}

// ListFeedbacks handles GET /users/{id}/feedbacks
// @Summary List a user's feedback
// @Description Available to the user themself and to admins
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} dto.FeedbackResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /users/{id}/feedbacks [get]
func (h *UsersHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if !canModify(claims, id) {
		utils.WriteErrorResponse(w, http.StatusForbidden, "You can only view your own feedback")
		return
	}

	feedbacks, err := h.feedbacks.ListByUser(r.Context(), id)
	if err != nil {
		internalError(w, h.logger, "list user feedbacks", err)
		return
	}
	writeFeedbackList(w, feedbacks, "No feedbacks found for this user")
}

// DeleteFeedback handles DELETE /users/{id}/feedbacks/{feedbackId}
// @Summary Delete one of a user's feedbacks
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param feedbackId path string true "Feedback ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /users/{id}/feedbacks/{feedbackId} [delete]
func (h *UsersHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	userID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	feedbackID, ok := urlUUID(w, r, "feedbackId")
	if !ok {
		return
	}

	feedback, err := h.feedbacks.FindByID(r.Context(), feedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Feedback not found")
			return
		}
		internalError(w, h.logger, "load feedback", err)
		return
	}
	if feedback.UserID != userID {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Feedback not found")
		return
	}

	if !canModify(claims, feedback.UserID) {
		utils.WriteErrorResponse(w, http.StatusForbidden, "You can only modify your own feedback")
		return
	}

	if err := h.feedbacks.Delete(r.Context(), feedback.ID); err != nil {
		internalError(w, h.logger, "delete feedback", err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Feedback deleted")
}
