package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/textshare/textshare/internal/model"
)

// CreatePaste inserts a paste and fills in its generated ID and CreatedAt.
// Returns ErrPasteUUIDTaken if the UUID collides with an existing paste.
func (r *Repository) CreatePaste(ctx context.Context, paste *model.Paste) error {
	query := `
		INSERT INTO pastes (uuid, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, paste.UUID, paste.Content, paste.OwnerID).Scan(&paste.ID, &paste.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "pastes_uuid_key") {
			return ErrPasteUUIDTaken
		}
		return fmt.Errorf("failed to create paste: %w", err)
	}

	return nil
}

// GetPasteByUUID retrieves a paste by its public UUID.
func (r *Repository) GetPasteByUUID(ctx context.Context, uuid string) (*model.Paste, error) {
	query := `
		SELECT id, uuid::text, content, user_id, created_at
		FROM pastes
		WHERE uuid = $1
	`

	paste, err := scanPaste(r.pool.QueryRow(ctx, query, uuid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPasteNotFound
		}
		return nil, fmt.Errorf("failed to get paste: %w", err)
	}

	return paste, nil
}

// ListPastesByOwner returns every paste owned by ownerID, newest first.
// Ties on created_at fall back to insertion order.
func (r *Repository) ListPastesByOwner(ctx context.Context, ownerID int64) ([]*model.Paste, error) {
	query := `
		SELECT id, uuid::text, content, user_id, created_at
		FROM pastes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pastes: %w", err)
	}
	defer rows.Close()

	pastes := make([]*model.Paste, 0)
	for rows.Next() {
		paste, err := scanPaste(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paste: %w", err)
		}
		pastes = append(pastes, paste)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pastes: %w", err)
	}

	return pastes, nil
}

// DeletePasteForOwner removes the paste only if ownerID owns it. A missing
// paste and a paste owned by someone else both return ErrPasteNotFound.
func (r *Repository) DeletePasteForOwner(ctx context.Context, uuid string, ownerID int64) error {
	query := `DELETE FROM pastes WHERE uuid = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, uuid, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete paste: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPasteNotFound
	}

	return nil
}

func scanPaste(row pgx.Row) (*model.Paste, error) {
	var paste model.Paste
	if err := row.Scan(
		&paste.ID,
		&paste.UUID,
		&paste.Content,
		&paste.OwnerID,
		&paste.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &paste, nil
}
