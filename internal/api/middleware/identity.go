package middleware

import (
	"context"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

type identityKey struct{}

// WithIdentity returns a child context carrying the caller's identity.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by the guard, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}
