// Package model defines domain entities for the application.
package model

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the caller resolved from a verified session token.
type Identity struct {
	UserID  int64
	Email   string
	TokenID string
}
