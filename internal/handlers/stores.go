package handlers

import (
	"context"

	"github.com/google/uuid"

	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/repository"
)

// UserStore is the user persistence the handlers depend on
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// HighlightStore is the highlight persistence the handlers depend on
type HighlightStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Highlight, error)
	List(ctx context.Context, status repository.HighlightStatus) ([]models.Highlight, error)
	ListByTour(ctx context.Context, tourID uuid.UUID, approvedOnly bool) ([]models.Highlight, error)
	Create(ctx context.Context, h *models.Highlight, suggesterID *uuid.UUID) error
	Update(ctx context.Context, h *models.Highlight) error
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TourStore is the tour persistence the handlers depend on
type TourStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tour, error)
	List(ctx context.Context) ([]models.Tour, error)
	Create(ctx context.Context, t *models.Tour, highlightIDs []uuid.UUID) error
	Update(ctx context.Context, t *models.Tour, highlightIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedbackStore is the feedback persistence the handlers depend on
type FeedbackStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error)
	ListByHighlight(ctx context.Context, highlightID uuid.UUID, approvedOnly bool) ([]models.Feedback, error)
	ListByTour(ctx context.Context, tourID uuid.UUID, approvedOnly bool) ([]models.Feedback, error)
	Create(ctx context.Context, f *models.Feedback) error
	Update(ctx context.Context, f *models.Feedback) error
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	_ UserStore      = (*repository.UserRepository)(nil)
	_ HighlightStore = (*repository.HighlightRepository)(nil)
	_ TourStore      = (*repository.TourRepository)(nil)
	_ FeedbackStore  = (*repository.FeedbackRepository)(nil)
)
