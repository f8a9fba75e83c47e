package store

import (
	"context"
	"database/sql"
	"errors"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
)

// CreateUser inserts a new user. A duplicate email surfaces as a
// Validation error so registration can report it directly.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, company_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_blocked, created_at, updated_at`

	err := s.db.GetContext(ctx, user, query,
		user.Name, user.CompanyName, user.Email, user.PasswordHash, user.Role)
	if isUniqueViolation(err) {
		return apperr.Validation("email already registered")
	}
	return err
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found: %s", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers retrieves all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY created_at DESC")
	return users, err
}

// SetUserBlocked flips the block flag on a user.
func (s *Store) SetUserBlocked(ctx context.Context, id int64, blocked bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_blocked = $1, updated_at = NOW() WHERE id = $2",
		blocked, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("user not found: %d", id)
	}
	return nil
}
