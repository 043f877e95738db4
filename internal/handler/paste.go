package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/textshare/textshare/internal/auth"
	"github.com/textshare/textshare/internal/handler/dto"
	"github.com/textshare/textshare/internal/service"
)

// PasteHandler handles HTTP requests for paste operations.
type PasteHandler struct {
	svc    *service.PasteService
	logger *slog.Logger
}

// NewPasteHandler creates a new PasteHandler.
func NewPasteHandler(svc *service.PasteService, logger *slog.Logger) *PasteHandler {
	return &PasteHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/pastes. Identity is optional; without one the
// paste is anonymous.
func (h *PasteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePasteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	paste, err := h.svc.Create(r.Context(), req.Content, auth.IdentityFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CreatePasteResponse{UUID: paste.UUID})
}

// Get handles GET /api/pastes/{uuid}.
func (h *PasteHandler) Get(w http.ResponseWriter, r *http.Request) {
	paste, err := h.svc.Get(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPasteResponse(paste))
}

// List handles GET /api/pastes. Mounted behind RequireIdentity.
func (h *PasteHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pastes, err := h.svc.ListForOwner(r.Context(), ownerID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPasteListResponse(pastes))
}

// Delete handles DELETE /api/pastes/{uuid}. Mounted behind RequireIdentity.
// Unknown and foreign pastes get the same 404.
func (h *PasteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.svc.Delete(r.Context(), chi.URLParam(r, "uuid"), ownerID)
	if errors.Is(err, service.ErrPasteNotFound) {
		writeError(w, http.StatusNotFound, msgPasteNotOwned)
		return
	}
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Paste deleted"})
}
