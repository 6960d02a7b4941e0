package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"TOURMAP_BACK-END/internal/models"
)

const tourColumns = `id, name, description, duration, start_time, created_at, updated_at`

// TourRepository provides access to tours and their highlight order
type TourRepository struct {
	db         *sqlx.DB
	highlights *HighlightRepository
}

// NewTourRepository creates a new TourRepository
func NewTourRepository(db *sqlx.DB) *TourRepository {
	return &TourRepository{db: db, highlights: NewHighlightRepository(db)}
}

// FindByID returns the tour with its highlights loaded in order
func (r *TourRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tour, error) {
	var t models.Tour
	if err := r.db.GetContext(ctx, &t, `SELECT `+tourColumns+` FROM tours WHERE id = $1`, id); err != nil {
		return nil, translate("find tour", err)
	}

	highlights, err := r.highlights.ListByTour(ctx, id, false)
	if err != nil {
		return nil, err
	}
	t.Highlights = highlights
	return &t, nil
}

// List returns all tours without their highlights, soonest first
func (r *TourRepository) List(ctx context.Context) ([]models.Tour, error) {
	tours := []models.Tour{}
	err := r.db.SelectContext(ctx, &tours,
		`SELECT `+tourColumns+` FROM tours ORDER BY start_time NULLS LAST, name`)
	if err != nil {
		return nil, translate("list tours", err)
	}
	return tours, nil
}

// Create inserts t and attaches highlightIDs in the given order
func (r *TourRepository) Create(ctx context.Context, t *models.Tour, highlightIDs []uuid.UUID) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create tour: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tours (`+tourColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.Description, t.Duration, t.StartTime, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return translate("create tour", err)
	}
	if err := insertTourHighlights(ctx, tx, t.ID, highlightIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create tour: commit: %w", err)
	}
	return nil
}

// Update overwrites the tour fields. A nil highlightIDs keeps the current
// highlights; a non-nil slice (even empty) replaces them.
func (r *TourRepository) Update(ctx context.Context, t *models.Tour, highlightIDs []uuid.UUID) error {
	t.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update tour: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE tours SET name = $1, description = $2, duration = $3, start_time = $4, updated_at = $5 WHERE id = $6`,
		t.Name, t.Description, t.Duration, t.StartTime, t.UpdatedAt, t.ID)
	if err != nil {
		return translate("update tour", err)
	}
	if err := expectOne("update tour", res); err != nil {
		return err
	}

	if highlightIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tour_highlights WHERE tour_id = $1`, t.ID); err != nil {
			return translate("clear tour highlights", err)
		}
		if err := insertTourHighlights(ctx, tx, t.ID, highlightIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update tour: commit: %w", err)
	}
	return nil
}

// Delete removes a tour. Deleting an unknown id is not an error.
func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, id)
	return translate("delete tour", err)
}

func insertTourHighlights(ctx context.Context, tx *sqlx.Tx, tourID uuid.UUID, highlightIDs []uuid.UUID) error {
	for i, hid := range highlightIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tour_highlights (tour_id, highlight_id, position) VALUES ($1, $2, $3)`,
			tourID, hid, i)
		if err != nil {
			return translate("attach tour highlight", err)
		}
	}
	return nil
}
