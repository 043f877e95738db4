package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/textshare/textshare/internal/metrics"
	"github.com/textshare/textshare/internal/model"
	"github.com/textshare/textshare/internal/repository"
)

// MinPasswordLength is the shortest password accepted at signup, in characters.
const MinPasswordLength = 6

// AuthService handles signup and login.
type AuthService struct {
	users   UserStore
	hasher  PasswordHasher
	issuer  TokenIssuer
	metrics metrics.Recorder
	logger  *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher PasswordHasher, issuer TokenIssuer, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		issuer:  issuer,
		metrics: recorder,
		logger:  logger,
	}
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Email    string
	Password string
	// ConfirmPassword is checked only when the client sends it.
	ConfirmPassword *string
}

// Session is a freshly issued token and the user it belongs to.
type Session struct {
	Token string
	User  *model.User
}

// Signup validates the input, creates the account and issues a session.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}
	if input.ConfirmPassword != nil && *input.ConfirmPassword != input.Password {
		return nil, ErrPasswordMismatch
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Early exit avoids hashing for a known duplicate; the unique constraint
	// still decides concurrent signups.
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{Email: input.Email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncSignup()
	s.logger.Info("user_signed_up", slog.Int64("user_id", user.ID))

	return &Session{Token: token, User: user}, nil
}

// Login verifies the credentials and issues a session. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// Burn the same hashing cost as a real check.
		s.verifyDummy(password)
		s.metrics.IncLogin(metrics.LoginFailure)
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password for user %d: %w", user.ID, err)
	}
	if !ok {
		s.metrics.IncLogin(metrics.LoginFailure)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncLogin(metrics.LoginSuccess)
	return &Session{Token: token, User: user}, nil
}

func (s *AuthService) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("textshare-dummy-password")
		if err != nil {
			s.logger.Warn("dummy hash unavailable", slog.String("error", err.Error()))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
