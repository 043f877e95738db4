package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/textshare/textshare/internal/auth"
	"github.com/textshare/textshare/internal/model"
)

// TokenVerifier resolves a session token into an identity.
type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// Identity resolves the bearer token, if any, into the request context.
// Missing, malformed, expired or forged tokens all leave the request
// anonymous; routes that need a caller add RequireIdentity.
func Identity(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("session token ignored",
					slog.String("reason", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken returns the token from "Authorization: Bearer <token>".
// The scheme is case-insensitive.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
