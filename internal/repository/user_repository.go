package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"TOURMAP_BACK-END/internal/models"
)

const userColumns = `id, username, email, password_hash, is_admin, verified, created_at, updated_at`

// UserRepository provides access to the users table
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns the user with the given id
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, translate("find user by id", err)
	}
	return &u, nil
}

// FindByEmail returns the user registered with email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, translate("find user by email", err)
	}
	return &u, nil
}

// List returns all users, oldest first
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at`); err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

// Create inserts u, assigning an id and timestamps when they are unset.
// A taken email yields ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.Verified, u.CreatedAt, u.UpdatedAt)
	return translate("create user", err)
}

// UpdateUsername renames the user
func (r *UserRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = $1, updated_at = $2 WHERE id = $3`,
		username, time.Now().UTC(), id)
	if err != nil {
		return translate("update username", err)
	}
	return expectOne("update username", res)
}

// UpdatePassword stores a new password hash for the user
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return translate("update password", err)
	}
	return expectOne("update password", res)
}

// SetVerified flips the verified flag that lets feedback skip moderation
func (r *UserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET verified = $1, updated_at = $2 WHERE id = $3`,
		verified, time.Now().UTC(), id)
	if err != nil {
		return translate("set verified", err)
	}
	return expectOne("set verified", res)
}

// Delete removes the user. Deleting an unknown id is not an error.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return translate("delete user", err)
}
