package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/textshare/textshare/internal/cache"
	"github.com/textshare/textshare/internal/metrics"
	"github.com/textshare/textshare/internal/model"
	"github.com/textshare/textshare/internal/repository/sqlite"
	"github.com/textshare/textshare/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeCache is an in-process PasteCache. failing makes every call error.
type fakeCache struct {
	mu       sync.Mutex
	pastes   map[string]*model.Paste
	negative map[string]bool
	failing  bool
}

var errCacheDown = errors.New("cache down")

func newFakeCache() *fakeCache {
	return &fakeCache{pastes: map[string]*model.Paste{}, negative: map[string]bool{}}
}

func (c *fakeCache) GetPaste(_ context.Context, uuid string) (*model.Paste, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errCacheDown
	}
	if p, ok := c.pastes[uuid]; ok {
		cp := *p
		return &cp, nil
	}
	if c.negative[uuid] {
		return nil, cache.ErrNegativeHit
	}
	return nil, cache.ErrCacheMiss
}

func (c *fakeCache) SetPaste(_ context.Context, p *model.Paste) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errCacheDown
	}
	cp := *p
	c.pastes[p.UUID] = &cp
	delete(c.negative, p.UUID)
	return nil
}

func (c *fakeCache) SetNegative(_ context.Context, uuid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errCacheDown
	}
	c.negative[uuid] = true
	return nil
}

func (c *fakeCache) DeletePaste(_ context.Context, uuid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errCacheDown
	}
	delete(c.pastes, uuid)
	return nil
}

func (c *fakeCache) has(uuid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pastes[uuid]
	return ok
}

func newAuthService(t *testing.T, store *sqlite.Store, rec metrics.Recorder) *AuthService {
	t.Helper()
	return NewAuthService(store, testutil.NewHasher(), testutil.NewIssuer(), rec, discardLogger())
}
