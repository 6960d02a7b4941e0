package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"TOURMAP_BACK-END/internal/models"
)

const feedbackColumns = `id, tour_id, highlight_id, user_id, rating, comment, is_approved, created_at, updated_at`

// FeedbackRepository provides access to the feedbacks table
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// FindByID returns a single feedback
func (r *FeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var f models.Feedback
	err := r.db.GetContext(ctx, &f, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return nil, translate("find feedback", err)
	}
	return &f, nil
}

// ListByUser returns every feedback written by userID, newest first
func (r *FeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	return r.list(ctx, "list user feedbacks", `user_id = $1`, userID, false)
}

// ListByHighlight returns the feedback left on a highlight
func (r *FeedbackRepository) ListByHighlight(ctx context.Context, highlightID uuid.UUID, approvedOnly bool) ([]models.Feedback, error) {
	return r.list(ctx, "list highlight feedbacks", `highlight_id = $1`, highlightID, approvedOnly)
}

// ListByTour returns the feedback left on a tour
func (r *FeedbackRepository) ListByTour(ctx context.Context, tourID uuid.UUID, approvedOnly bool) ([]models.Feedback, error) {
	return r.list(ctx, "list tour feedbacks", `tour_id = $1`, tourID, approvedOnly)
}

func (r *FeedbackRepository) list(ctx context.Context, op, where string, id uuid.UUID, approvedOnly bool) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks WHERE ` + where
	if approvedOnly {
		query += ` AND is_approved = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	feedbacks := []models.Feedback{}
	if err := r.db.SelectContext(ctx, &feedbacks, query, id); err != nil {
		return nil, translate(op, err)
	}
	return feedbacks, nil
}

// Create inserts f. A missing user, tour or highlight yields ErrInvalidReference.
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedbacks (`+feedbackColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		f.ID, f.TourID, f.HighlightID, f.UserID, f.Rating, f.Comment, f.IsApproved, f.CreatedAt, f.UpdatedAt)
	return translate("create feedback", err)
}

// Update stores a new rating and comment
func (r *FeedbackRepository) Update(ctx context.Context, f *models.Feedback) error {
	f.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE feedbacks SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`,
		f.Rating, f.Comment, f.UpdatedAt, f.ID)
	if err != nil {
		return translate("update feedback", err)
	}
	return expectOne("update feedback", res)
}

// Approve publishes a feedback
func (r *FeedbackRepository) Approve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE feedbacks SET is_approved = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return translate("approve feedback", err)
	}
	return expectOne("approve feedback", res)
}

// Delete removes a feedback. Deleting an unknown id is not an error.
func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	return translate("delete feedback", err)
}
