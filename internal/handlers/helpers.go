package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/middleware"
	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/utils"
)

// urlUUID reads a path parameter as a UUID, answering 400 when it is not one.
func urlUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// requireClaims returns the caller's claims or answers 401.
func requireClaims(w http.ResponseWriter, r *http.Request) (*middleware.JWTClaims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return claims, true
}

// canModify reports whether the caller owns the resource or is an admin.
func canModify(claims *middleware.JWTClaims, ownerID uuid.UUID) bool {
	return claims.IsAdmin || claims.ID == ownerID
}

func internalError(w http.ResponseWriter, logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Verified:  u.Verified,
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}

func toHighlightResponse(h *models.Highlight) dto.HighlightResponse {
	return dto.HighlightResponse{
		ID:                  h.ID.String(),
		Name:                h.Name,
		Description:         h.Description,
		Category:            string(h.Category),
		Latitude:            h.Latitude,
		Longitude:           h.Longitude,
		IsApproved:          h.IsApproved,
		BusinessDescription: h.BusinessDescription,
		CreatedAt:           formatTimestamp(h.CreatedAt),
		UpdatedAt:           formatTimestamp(h.UpdatedAt),
	}
}

func toHighlightResponses(hs []models.Highlight) []dto.HighlightResponse {
	out := make([]dto.HighlightResponse, 0, len(hs))
	for i := range hs {
		out = append(out, toHighlightResponse(&hs[i]))
	}
	return out
}

func toTourResponse(t *models.Tour) dto.TourResponse {
	resp := dto.TourResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Duration:    t.Duration,
		CreatedAt:   formatTimestamp(t.CreatedAt),
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
	if t.StartTime != nil {
		s := formatTimestamp(*t.StartTime)
		resp.StartTime = &s
	}
	if t.Highlights != nil {
		resp.Highlights = toHighlightResponses(t.Highlights)
	}
	return resp
}

func toFeedbackResponse(f *models.Feedback) dto.FeedbackResponse {
	resp := dto.FeedbackResponse{
		ID:         f.ID.String(),
		UserID:     f.UserID.String(),
		Rating:     f.Rating,
		Comment:    f.Comment,
		IsApproved: f.IsApproved,
		CreatedAt:  formatTimestamp(f.CreatedAt),
		UpdatedAt:  formatTimestamp(f.UpdatedAt),
	}
	if f.TourID != nil {
		s := f.TourID.String()
		resp.TourID = &s
	}
	if f.HighlightID != nil {
		s := f.HighlightID.String()
		resp.HighlightID = &s
	}
	return resp
}

func toFeedbackResponses(fs []models.Feedback) []dto.FeedbackResponse {
	out := make([]dto.FeedbackResponse, 0, len(fs))
	for i := range fs {
		out = append(out, toFeedbackResponse(&fs[i]))
	}
	return out
}
