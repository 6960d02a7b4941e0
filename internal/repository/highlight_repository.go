package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"TOURMAP_BACK-END/internal/models"
)

const highlightColumns = `id, name, description, category, latitude, longitude, is_approved, business_description, created_at, updated_at`

const joinedHighlightColumns = `h.id, h.name, h.description, h.category, h.latitude, h.longitude, h.is_approved, h.business_description, h.created_at, h.updated_at`

// HighlightStatus selects highlights by moderation state
type HighlightStatus string

const (
	HighlightsApproved HighlightStatus = "approved"
	HighlightsPending  HighlightStatus = "pending"
	HighlightsAll      HighlightStatus = "all"
)

// HighlightRepository provides access to highlights and their suggesters
type HighlightRepository struct {
	db *sqlx.DB
}

// NewHighlightRepository creates a new HighlightRepository
func NewHighlightRepository(db *sqlx.DB) *HighlightRepository {
	return &HighlightRepository{db: db}
}

// FindByID returns a highlight regardless of its moderation state
func (r *HighlightRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Highlight, error) {
	var h models.Highlight
	err := r.db.GetContext(ctx, &h, `SELECT `+highlightColumns+` FROM highlights WHERE id = $1`, id)
	if err != nil {
		return nil, translate("find highlight", err)
	}
	return &h, nil
}

// List returns highlights in the given moderation state ordered by name
func (r *HighlightRepository) List(ctx context.Context, status HighlightStatus) ([]models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM highlights`
	switch status {
	case HighlightsApproved:
		query += ` WHERE is_approved = TRUE`
	case HighlightsPending:
		query += ` WHERE is_approved = FALSE`
	case HighlightsAll:
	default:
		return nil, fmt.Errorf("list highlights: unknown status %q", status)
	}
	query += ` ORDER BY name`

	highlights := []models.Highlight{}
	if err := r.db.SelectContext(ctx, &highlights, query); err != nil {
		return nil, translate("list highlights", err)
	}
	return highlights, nil
}

// ListByTour returns the highlights of a tour in tour order
func (r *HighlightRepository) ListByTour(ctx context.Context, tourID uuid.UUID, approvedOnly bool) ([]models.Highlight, error) {
	query := `SELECT ` + joinedHighlightColumns + `
		FROM highlights h
		JOIN tour_highlights th ON th.highlight_id = h.id
		WHERE th.tour_id = $1`
	if approvedOnly {
		query += ` AND h.is_approved = TRUE`
	}
	query += ` ORDER BY th.position`

	highlights := []models.Highlight{}
	if err := r.db.SelectContext(ctx, &highlights, query, tourID); err != nil {
		return nil, translate("list tour highlights", err)
	}
	return highlights, nil
}

// Create inserts h and, when suggesterID is set, links the suggesting user.
// Both writes share one transaction.
func (r *HighlightRepository) Create(ctx context.Context, h *models.Highlight, suggesterID *uuid.UUID) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	now := time.Now().UTC()
	h.CreatedAt, h.UpdatedAt = now, now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create highlight: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO highlights (`+highlightColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		h.ID, h.Name, h.Description, h.Category, h.Latitude, h.Longitude, h.IsApproved, h.BusinessDescription, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return translate("create highlight", err)
	}

	if suggesterID != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO highlight_suggesters (highlight_id, user_id) VALUES ($1, $2)`,
			h.ID, *suggesterID)
		if err != nil {
			return translate("link highlight suggester", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create highlight: commit: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of h. The moderation flag is left alone.
func (r *HighlightRepository) Update(ctx context.Context, h *models.Highlight) error {
	h.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE highlights SET name = $1, description = $2, category = $3, latitude = $4, longitude = $5,
		 business_description = $6, updated_at = $7 WHERE id = $8`,
		h.Name, h.Description, h.Category, h.Latitude, h.Longitude, h.BusinessDescription, h.UpdatedAt, h.ID)
	if err != nil {
		return translate("update highlight", err)
	}
	return expectOne("update highlight", res)
}

// Approve marks a suggested highlight as approved
func (r *HighlightRepository) Approve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE highlights SET is_approved = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return translate("approve highlight", err)
	}
	return expectOne("approve highlight", res)
}

// Delete removes a highlight. Deleting an unknown id is not an error.
func (r *HighlightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM highlights WHERE id = $1`, id)
	return translate("delete highlight", err)
}
