package auth

import "context"

type contextKey string

const userKey contextKey = "auth_user"

// WithUser stores the authenticated username in the context
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// UserFromContext returns the authenticated username, if any
func UserFromContext(ctx context.Context) string {
	if v := ctx.Value(userKey); v != nil {
		return v.(string)
	}
	return ""
}
