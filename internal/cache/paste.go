package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/textshare/textshare/internal/model"
)

const (
	pasteKeyPrefix    = "paste:"
	negCacheKeySuffix = ":neg"

	// NegativeCacheTTL is the TTL for "no such paste" entries.
	NegativeCacheTTL = time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrNegativeHit means the paste is known not to exist.
	ErrNegativeHit = errors.New("paste known missing")
)

func pasteKey(uuid string) string {
	return pasteKeyPrefix + uuid
}

// GetPaste retrieves a paste by UUID. Returns ErrCacheMiss when nothing is
// cached and ErrNegativeHit when the UUID was recently looked up and not found.
func (c *Cache) GetPaste(ctx context.Context, uuid string) (*model.Paste, error) {
	key := pasteKey(uuid)

	pipe := c.client.Pipeline()
	fields := pipe.HGetAll(ctx, key)
	neg := pipe.Exists(ctx, key+negCacheKeySuffix)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis pipeline failed: %w", err)
	}

	result := fields.Val()
	if len(result) == 0 {
		if neg.Val() > 0 {
			return nil, ErrNegativeHit
		}
		return nil, ErrCacheMiss
	}

	cached := &model.CachedPaste{
		ID:        result["id"],
		Content:   result["content"],
		CreatedAt: result["created_at"],
	}

	return cached.ToPaste(uuid), nil
}

// SetPaste stores a paste and clears any negative entry for its UUID.
func (c *Cache) SetPaste(ctx context.Context, paste *model.Paste) error {
	key := pasteKey(paste.UUID)
	cached := paste.ToCachedPaste()

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"id":         cached.ID,
		"content":    cached.Content,
		"created_at": cached.CreatedAt,
	})
	pipe.Expire(ctx, key, c.ttl)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache paste: %w", err)
	}

	return nil
}

// SetNegative records that no paste exists for uuid.
func (c *Cache) SetNegative(ctx context.Context, uuid string) error {
	if err := c.client.SetEx(ctx, pasteKey(uuid)+negCacheKeySuffix, "", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}
	return nil
}

// DeletePaste evicts a paste.
func (c *Cache) DeletePaste(ctx context.Context, uuid string) error {
	key := pasteKey(uuid)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete paste from cache: %w", err)
	}

	return nil
}
