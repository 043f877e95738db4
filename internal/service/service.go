// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"

	"github.com/textshare/textshare/internal/model"
)

// Service errors.
var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyContent       = errors.New("content required")
	ErrNULInContent       = errors.New("content contains NUL characters")
	ErrPasteNotFound      = errors.New("paste not found")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasteStore persists pastes.
type PasteStore interface {
	CreatePaste(ctx context.Context, paste *model.Paste) error
	GetPasteByUUID(ctx context.Context, uuid string) (*model.Paste, error)
	ListPastesByOwner(ctx context.Context, ownerID int64) ([]*model.Paste, error)
	DeletePasteForOwner(ctx context.Context, uuid string, ownerID int64) error
}

// PasteCache is an optional read-through cache in front of PasteStore.
type PasteCache interface {
	GetPaste(ctx context.Context, uuid string) (*model.Paste, error)
	SetPaste(ctx context.Context, paste *model.Paste) error
	SetNegative(ctx context.Context, uuid string) error
	DeletePaste(ctx context.Context, uuid string) error
}

// PasswordHasher derives and checks password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}
