// Package session keeps the CLI's login state: an explicit Session value
// persisted in a local bbolt file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")
	currentKey    = []byte("current")
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// User is the account a session belongs to.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Session is the token and user returned by signup or login.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	Server    string    `json:"server"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// New builds a Session and reads the token's expiry. The signature is not
// checked here; the server does that on every request.
func New(token string, user User, server string) Session {
	s := Session{Token: token, User: user, Server: server}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return s
}

// Expired reports whether the token's expiry has passed. Sessions with an
// unknown expiry are treated as live.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists at most one Session.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the session file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the saved session or ErrNoSession.
func (s *Store) Load() (Session, error) {
	var sess Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSession).Get(currentKey)
		if data == nil {
			return ErrNoSession
		}
		if err := json.Unmarshal(data, &sess); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}
		return nil
	})

	return sess, err
}

// Save replaces the stored session.
func (s *Store) Save(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSession).Put(currentKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// Clear forgets the stored session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSession).Delete(currentKey); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}
