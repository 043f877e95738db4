package dto

import (
	"time"

	"github.com/textshare/textshare/internal/model"
)

// CreatePasteRequest represents the request body for POST /api/pastes.
type CreatePasteRequest struct {
	Content string `json:"content"`
}

// CreatePasteResponse carries the public identifier of a new paste.
type CreatePasteResponse struct {
	UUID string `json:"uuid"`
}

// PasteResponse represents a paste in API responses. The owner is never exposed.
type PasteResponse struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToPasteResponse converts a Paste model to PasteResponse DTO.
func ToPasteResponse(p *model.Paste) PasteResponse {
	return PasteResponse{
		ID:        p.ID,
		UUID:      p.UUID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

// ToPasteListResponse converts pastes in order. An empty input yields an
// empty array, not null.
func ToPasteListResponse(pastes []*model.Paste) []PasteResponse {
	out := make([]PasteResponse, 0, len(pastes))
	for _, p := range pastes {
		out = append(out, ToPasteResponse(p))
	}
	return out
}
