package model

import (
	"strconv"
	"time"
)

// Paste is a stored piece of text addressed by its public UUID.
// OwnerID is nil for anonymous pastes.
type Paste struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Content   string    `json:"content"`
	OwnerID   *int64    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAnonymous reports whether the paste was created without a session.
func (p *Paste) IsAnonymous() bool {
	return p.OwnerID == nil
}

// IsOwnedBy reports whether userID owns the paste.
func (p *Paste) IsOwnedBy(userID int64) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}

// CachedPaste represents paste data stored in a Redis hash.
// Owner is intentionally absent: public reads never expose it.
type CachedPaste struct {
	ID        string `redis:"id"`
	Content   string `redis:"content"`
	CreatedAt string `redis:"created_at"` // Unix nanoseconds
}

// ToPaste converts CachedPaste to the Paste domain model.
func (c *CachedPaste) ToPaste(uuid string) *Paste {
	paste := &Paste{
		UUID:    uuid,
		Content: c.Content,
	}
	if id, err := strconv.ParseInt(c.ID, 10, 64); err == nil {
		paste.ID = id
	}
	if ns, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
		paste.CreatedAt = time.Unix(0, ns).UTC()
	}
	return paste
}

// ToCachedPaste converts Paste to its cached form.
func (p *Paste) ToCachedPaste() *CachedPaste {
	return &CachedPaste{
		ID:        strconv.FormatInt(p.ID, 10),
		Content:   p.Content,
		CreatedAt: strconv.FormatInt(p.CreatedAt.UnixNano(), 10),
	}
}
