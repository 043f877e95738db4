package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/textshare/textshare/internal/cache"
	"github.com/textshare/textshare/internal/metrics"
	"github.com/textshare/textshare/internal/model"
	"github.com/textshare/textshare/internal/repository"
)

const maxUUIDRetries = 3

// PasteService handles paste business logic.
type PasteService struct {
	store   PasteStore
	cache   PasteCache
	metrics metrics.Recorder
	logger  *slog.Logger
	newUUID func() string
}

// NewPasteService creates a new PasteService. pasteCache may be nil.
func NewPasteService(store PasteStore, pasteCache PasteCache, recorder metrics.Recorder, logger *slog.Logger) *PasteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PasteService{
		store:   store,
		cache:   pasteCache,
		metrics: recorder,
		logger:  logger,
		newUUID: uuid.NewString,
	}
}

// Create stores content under a fresh UUID. owner is nil for anonymous pastes.
func (s *PasteService) Create(ctx context.Context, content string, owner *model.Identity) (*model.Paste, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	// PostgreSQL text columns cannot hold NUL.
	if strings.ContainsRune(content, 0) {
		return nil, ErrNULInContent
	}

	paste := &model.Paste{Content: content}
	if owner != nil {
		ownerID := owner.UserID
		paste.OwnerID = &ownerID
	}

	var err error
	for attempt := 0; attempt < maxUUIDRetries; attempt++ {
		paste.UUID = s.newUUID()
		err = s.store.CreatePaste(ctx, paste)
		if !errors.Is(err, repository.ErrPasteUUIDTaken) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paste: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPaste(ctx, paste); err != nil {
			s.logger.Warn("paste cache write failed", slog.String("error", err.Error()))
		}
	}

	s.metrics.IncPasteCreated(paste.IsAnonymous())
	attrs := []any{slog.Int64("paste_id", paste.ID), slog.Bool("anonymous", paste.IsAnonymous())}
	if owner != nil {
		attrs = append(attrs, slog.Int64("user_id", owner.UserID))
	}
	s.logger.Info("paste_created", attrs...)

	return paste, nil
}

// Get returns a paste by its public UUID. Anything that does not parse as a
// UUID is reported as not found.
func (s *PasteService) Get(ctx context.Context, publicID string) (*model.Paste, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObservePasteFetchDuration(time.Since(start))
	}()

	id, ok := canonicalUUID(publicID)
	if !ok {
		return nil, ErrPasteNotFound
	}

	if s.cache != nil {
		paste, err := s.cache.GetPaste(ctx, id)
		switch {
		case err == nil:
			s.metrics.IncPasteCacheHit()
			return paste, nil
		case errors.Is(err, cache.ErrNegativeHit):
			s.metrics.IncPasteCacheHit()
			return nil, ErrPasteNotFound
		case errors.Is(err, cache.ErrCacheMiss):
			s.metrics.IncPasteCacheMiss()
		default:
			s.logger.Warn("paste cache read failed", slog.String("error", err.Error()))
		}
	}

	paste, err := s.store.GetPasteByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPasteNotFound) {
			if s.cache != nil {
				if err := s.cache.SetNegative(ctx, id); err != nil {
					s.logger.Warn("paste negative cache write failed", slog.String("error", err.Error()))
				}
			}
			return nil, ErrPasteNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPaste(ctx, paste); err != nil {
			s.logger.Warn("paste cache backfill failed", slog.String("error", err.Error()))
		}
	}

	return paste, nil
}

// ListForOwner returns the owner's pastes, newest first.
func (s *PasteService) ListForOwner(ctx context.Context, ownerID int64) ([]*model.Paste, error) {
	return s.store.ListPastesByOwner(ctx, ownerID)
}

// Delete removes a paste owned by ownerID. Missing pastes and pastes owned by
// someone else are both ErrPasteNotFound.
func (s *PasteService) Delete(ctx context.Context, publicID string, ownerID int64) error {
	id, ok := canonicalUUID(publicID)
	if !ok {
		return ErrPasteNotFound
	}

	if err := s.store.DeletePasteForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrPasteNotFound) {
			return ErrPasteNotFound
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.DeletePaste(ctx, id); err != nil {
			s.logger.Warn("paste cache eviction failed", slog.String("error", err.Error()))
		}
	}

	s.metrics.IncPasteDeleted()
	s.logger.Info("paste_deleted", slog.Int64("user_id", ownerID))

	return nil
}

// canonicalUUID accepts only the hyphenated 36-character form, in either case.
func canonicalUUID(s string) (string, bool) {
	if len(s) != 36 {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
