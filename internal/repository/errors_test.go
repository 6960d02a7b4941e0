package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, want: ErrNotFound},
		{name: "duplicate email", err: &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "idx_users_email"}, want: ErrDuplicateEmail},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503", TableName: "feedbacks"}, want: ErrInvalidReference},
		{name: "other", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate("op", tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslate_WrapsWithOperation(t *testing.T) {
	err := translate("list tours", errors.New("connection reset"))
	assert.EqualError(t, err, "list tours: connection reset")
}
