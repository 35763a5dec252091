// Package authctx propagates the authenticated principal through request
// context. The gate middleware stores the principal once per request;
// handlers retrieve it without threading it through every call.
package authctx

import (
	"context"
	"errors"

	"github.com/adboard/authcore/identity"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// ErrNoPrincipal is returned when no principal is stored in the context.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// Set stores the authenticated principal in the context.
func Set(ctx context.Context, p identity.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context.
func Get(ctx context.Context) (identity.Principal, bool) {
	p, ok := ctx.Value(principalKey).(identity.Principal)
	return p, ok
}

// MustGet retrieves the principal from the context.
// Panics if missing; use in handlers behind the gate middleware, which
// guarantees a principal is present.
func MustGet(ctx context.Context) identity.Principal {
	p, ok := Get(ctx)
	if !ok {
		panic("authctx: principal not found in context")
	}
	return p
}

// GetOrError retrieves the principal, returning ErrNoPrincipal if absent.
func GetOrError(ctx context.Context) (identity.Principal, error) {
	p, ok := Get(ctx)
	if !ok {
		return identity.Principal{}, ErrNoPrincipal
	}
	return p, nil
}
