package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TOURMAP_BACK-END/internal/models"
)

var highlightRowColumns = []string{"id", "name", "description", "category", "latitude", "longitude", "is_approved", "business_description", "created_at", "updated_at"}

func TestHighlightRepository_Create_WithSuggester(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewHighlightRepository(db)

	suggester := uuid.New()
	h := &models.Highlight{
		Name:        "Old Bridge",
		Description: "Stone bridge from 1350",
		Category:    models.CategoryAttraction,
		Latitude:    ptr(10.0),
		Longitude:   ptr(20.0),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO highlights (`)).
		WithArgs(sqlmock.AnyArg(), "Old Bridge", "Stone bridge from 1350", "attraction", 10.0, 20.0, false, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO highlight_suggesters (highlight_id, user_id) VALUES ($1, $2)`)).
		WithArgs(sqlmock.AnyArg(), suggester).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), h, &suggester))
	assert.NotEqual(t, uuid.Nil, h.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHighlightRepository_Create_RollsBackWhenLinkFails(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewHighlightRepository(db)

	suggester := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO highlights (`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO highlight_suggesters`)).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Highlight{Name: "x", Category: models.CategoryOther}, &suggester)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHighlightRepository_Create_AdminSkipsLink(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewHighlightRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO highlights (`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), &models.Highlight{Name: "x", Category: models.CategoryOther, IsApproved: true}, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHighlightRepository_List(t *testing.T) {
	tests := []struct {
		status HighlightStatus
		query  string
	}{
		{HighlightsApproved, `FROM highlights WHERE is_approved = TRUE ORDER BY name`},
		{HighlightsPending, `FROM highlights WHERE is_approved = FALSE ORDER BY name`},
		{HighlightsAll, `FROM highlights ORDER BY name`},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			db, mock := setupMock(t)
			repo := NewHighlightRepository(db)

			now := time.Now()
			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WillReturnRows(sqlmock.NewRows(highlightRowColumns).
					AddRow(uuid.NewString(), "Museum", "Art", "museum", 1.5, 2.5, true, "Open daily", now, now).
					AddRow(uuid.NewString(), "Park", "Green", "nature", nil, nil, false, nil, now, now))

			got, err := repo.List(context.Background(), tt.status)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, models.CategoryMuseum, got[0].Category)
			require.NotNil(t, got[0].BusinessDescription)
			assert.Equal(t, "Open daily", *got[0].BusinessDescription)
			assert.Nil(t, got[1].Latitude)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHighlightRepository_List_UnknownStatus(t *testing.T) {
	db, _ := setupMock(t)
	repo := NewHighlightRepository(db)

	_, err := repo.List(context.Background(), HighlightStatus("rejected"))
	assert.Error(t, err)
}

func TestHighlightRepository_Approve(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewHighlightRepository(db)

	found, missing := uuid.New(), uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE highlights SET is_approved = TRUE, updated_at = $1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), found).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE highlights SET is_approved = TRUE`)).
		WithArgs(sqlmock.AnyArg(), missing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Approve(context.Background(), found))
	assert.ErrorIs(t, repo.Approve(context.Background(), missing), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHighlightRepository_Delete_MissingIsNoop(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewHighlightRepository(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM highlights WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHighlightRepository_ListByTour_ApprovedOnly(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewHighlightRepository(db)

	tourID := uuid.New()
	mock.ExpectQuery(`JOIN tour_highlights th ON th.highlight_id = h.id\s+WHERE th.tour_id = \$1 AND h.is_approved = TRUE ORDER BY th.position`).
		WithArgs(tourID).
		WillReturnRows(sqlmock.NewRows(highlightRowColumns))

	got, err := repo.ListByTour(context.Background(), tourID, true)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
