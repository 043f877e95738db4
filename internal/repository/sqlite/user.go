package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/textshare/textshare/internal/model"
	"github.com/textshare/textshare/internal/repository"
)

// CreateUser inserts a new user and fills in its generated ID and CreatedAt.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, password_hash, created_at)
		VALUES (?, ?, ?)
	`

	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, user.Email, user.PasswordHash, createdAt)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return repository.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// GetUserByEmail retrieves a user by exact email match.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`

	var user model.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}
