package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID       ctxKey = "user_id"
	CtxKeySessionToken ctxKey = "session_token"
)

// UserIDFromContext returns the account id injected by AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}

// SessionTokenFromContext returns the bearer session token of the request.
func SessionTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeySessionToken).(string)
	return v, ok && v != ""
}
