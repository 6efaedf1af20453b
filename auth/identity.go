package auth

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned by any operation attempted without a
// signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated: please sign in")

// Identity is the signed-in user a request acts for. It is passed
// explicitly into every component that scopes a query by user.
type Identity struct {
	UserID   uint
	Subject  string
	Nickname string
}

// Valid reports whether the identity refers to a stored user.
func (i Identity) Valid() bool {
	return i.UserID != 0
}

type identityKey struct{}

func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// FromContext returns the identity attached by the user sync middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || !ident.Valid() {
		return Identity{}, false
	}
	return ident, true
}
