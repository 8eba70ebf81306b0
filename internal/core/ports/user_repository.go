package ports

import (
	"context"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

// UserRepository is the credential store. Implementations return
// domain.ErrUserNotFound when no record matches and domain.ErrEmailTaken on a
// unique email violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// LoginLimiter throttles repeated login attempts for the same key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
