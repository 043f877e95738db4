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

type scanner interface {
	Scan(dest ...any) error
}

// CreatePaste inserts a paste and fills in its generated ID and CreatedAt.
func (s *Store) CreatePaste(ctx context.Context, paste *model.Paste) error {
	query := `
		INSERT INTO pastes (uuid, content, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, paste.UUID, paste.Content, paste.OwnerID, createdAt)
	if err != nil {
		if isUniqueViolation(err, "pastes.uuid") {
			return repository.ErrPasteUUIDTaken
		}
		return fmt.Errorf("failed to create paste: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read paste id: %w", err)
	}

	paste.ID = id
	paste.CreatedAt = createdAt
	return nil
}

// GetPasteByUUID retrieves a paste by its public UUID.
func (s *Store) GetPasteByUUID(ctx context.Context, uuid string) (*model.Paste, error) {
	query := `
		SELECT id, uuid, content, user_id, created_at
		FROM pastes
		WHERE uuid = ?
	`

	paste, err := scanPaste(s.db.QueryRowContext(ctx, query, uuid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrPasteNotFound
		}
		return nil, fmt.Errorf("failed to get paste: %w", err)
	}

	return paste, nil
}

// ListPastesByOwner returns every paste owned by ownerID, newest first.
func (s *Store) ListPastesByOwner(ctx context.Context, ownerID int64) ([]*model.Paste, error) {
	query := `
		SELECT id, uuid, content, user_id, created_at
		FROM pastes
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
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

// DeletePasteForOwner removes the paste only if ownerID owns it.
func (s *Store) DeletePasteForOwner(ctx context.Context, uuid string, ownerID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pastes WHERE uuid = ? AND user_id = ?`, uuid, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete paste: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return repository.ErrPasteNotFound
	}

	return nil
}

func scanPaste(row scanner) (*model.Paste, error) {
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
