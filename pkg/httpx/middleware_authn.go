package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/chocomax/shop/pkg/slogx"
)

// SessionVerifier resolves an opaque session token to the account that owns it.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (userID string, err error)
}

// AuthnMiddleware requires a "Bearer <session token>" Authorization header
// and injects the owning account id into the request context.
func AuthnMiddleware(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			userID, err := v.VerifySession(ctx, raw)
			if err != nil {
				log.Warn("session verification failed", "err", err)
				writeBearerError(w, "invalid session token")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, userID)
			ctx = context.WithValue(ctx, CtxKeySessionToken, raw)
			ctx = slogx.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
