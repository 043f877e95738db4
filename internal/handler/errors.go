package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/textshare/textshare/internal/middleware"
	"github.com/textshare/textshare/internal/service"
)

// Client-facing error messages.
const (
	msgMissingCredentials = "Email and password required"
	msgPasswordTooShort   = "Password must be at least 6 characters"
	msgPasswordMismatch   = "Passwords do not match"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgContentRequired    = "Content required"
	msgContentNUL         = "Content must not contain NUL characters"
	msgPasteNotFound      = "Paste not found"
	msgPasteNotOwned      = "Paste not found or unauthorized"
	msgServerError        = "Server error"
)

// handleServiceError maps service errors to HTTP responses. Anything
// unrecognised is logged and reported as a bare 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, msgMissingCredentials)
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, msgPasswordTooShort)
	case errors.Is(err, service.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, msgPasswordMismatch)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, service.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, msgContentRequired)
	case errors.Is(err, service.ErrNULInContent):
		writeError(w, http.StatusBadRequest, msgContentNUL)
	case errors.Is(err, service.ErrPasteNotFound):
		writeError(w, http.StatusNotFound, msgPasteNotFound)
	default:
		logger.Error("internal_error",
			"error", err,
			"method", r.Method,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}
