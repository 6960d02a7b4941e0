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
	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users  UserStore
	jwt    *config.JWTConfig
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users UserStore, jwtCfg *config.JWTConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwtCfg, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with username, email, and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} utils.ErrorBody "Invalid request data"
// @Failure 409 {object} utils.ErrorBody "Email already in use"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /auth [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	email := req.Email

	// Check if user already exists
	_, err := h.users.FindByEmail(r.Context(), email)
	switch {
	case err == nil:
		utils.WriteErrorResponse(w, http.StatusConflict, "Email already in use")
		return
	case !errors.Is(err, repository.ErrNotFound):
		internalError(w, h.logger, "register: lookup email", err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(w, h.logger, "register: hash password", err)
		return
	}

	user := &models.User{
		Username:     defaultUsername(req.Username, email),
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      req.IsAdmin,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Email already in use")
			return
		}
		internalError(w, h.logger, "register: create user", err)
		return
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.Bool("is_admin", user.IsAdmin))
	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password and issue a bearer token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse "Login successful"
// @Failure 400 {object} utils.ErrorBody "Invalid request data"
// @Failure 401 {object} utils.ErrorBody "Wrong password"
// @Failure 404 {object} utils.ErrorBody "Unknown email"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /auth/tokens [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, h.logger, "login: lookup email", err)
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(user, h.jwt)
	if err != nil {
		internalError(w, h.logger, "login: sign token", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Protected is an authentication smoke test
// @Summary Protected smoke test
// @Tags test
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProtectedResponse
// @Failure 401 {object} utils.ErrorBody
// @Router /test/protected [get]
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ProtectedResponse{
		Message: "You are authenticated",
		UserID:  claims.ID.String(),
		IsAdmin: claims.IsAdmin,
	})
}

// AdminProtected is an admin authorization smoke test
// @Summary Admin smoke test
// @Tags test
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProtectedResponse
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /test/adminprotected [get]
func (h *AuthHandler) AdminProtected(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ProtectedResponse{
		Message: "You are an admin",
		UserID:  claims.ID.String(),
		IsAdmin: claims.IsAdmin,
	})
}

func defaultUsername(username, email string) string {
	if username != "" {
		return username
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
