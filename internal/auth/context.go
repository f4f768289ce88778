package auth

import "context"

// ctxKey is unexported so only this package can set the principal.
type ctxKey struct{}

// WithPrincipal returns a child context carrying the authenticated user's
// opaque identity. The auth middleware calls this after verifying the token.
func WithPrincipal(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, principalID)
}

// PrincipalID returns the authenticated identity stored in ctx.
// ok is false when the request never passed the auth middleware; handlers
// behind the middleware can treat that as a programming error.
func PrincipalID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
