package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/middleware"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// DashboardHandler lets a signed-in user manage their own account
type DashboardHandler struct {
	users  UserStore
	jwt    *config.JWTConfig
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(users UserStore, jwtCfg *config.JWTConfig, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{users: users, jwt: jwtCfg, logger: logger}
}

// UpdateUsername handles POST /userDashboard/update-username
// @Summary Change username
// @Description The response carries a new token because the username is a token claim
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateUsernameRequest true "New username"
// @Success 200 {object} dto.UpdateUsernameResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /userDashboard/update-username [post]
func (h *DashboardHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUsernameRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	username := strings.TrimSpace(req.Username)

	if err := h.users.UpdateUsername(r.Context(), claims.ID, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "update username", err)
		return
	}

	user, err := h.users.FindByID(r.Context(), claims.ID)
	if err != nil {
		internalError(w, h.logger, "update username: reload user", err)
		return
	}
	token, err := middleware.GenerateToken(user, h.jwt)
	if err != nil {
		internalError(w, h.logger, "update username: sign token", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UpdateUsernameResponse{
		Message: "Username updated successfully",
		Token:   token,
	})
}

// UpdatePassword handles POST /userDashboard/update-password
// @Summary Change password
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /userDashboard/update-password [post]
func (h *DashboardHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, err := h.users.FindByID(r.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "update password: load user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		internalError(w, h.logger, "update password: hash", err)
		return
	}
	if err := h.users.UpdatePassword(r.Context(), user.ID, string(hashed)); err != nil {
		internalError(w, h.logger, "update password", err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Password updated successfully")
}
