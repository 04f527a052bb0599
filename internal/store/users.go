package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// UserRepository persists accounts
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, full_name, password_hash, avatar_url, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.AvatarURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts u, assigning an id and timestamps when unset. A taken
// email is reported as ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.AvatarURL, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	return mapError("insert user", err)
}

// GetByID loads a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, mapError("get user", err)
}

// GetByEmail loads a user by case-insensitive email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	return u, mapError("get user by email", err)
}

// Update writes the mutable profile fields of u
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users
            SET email = $1,
                full_name = $2,
                password_hash = $3,
                avatar_url = $4,
                is_active = $5,
                updated_at = $6
          WHERE id = $7`,
		u.Email, u.FullName, u.PasswordHash, u.AvatarURL, u.IsActive, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return mapError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a user and, through cascading keys, their itineraries
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
