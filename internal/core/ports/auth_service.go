package ports

import (
	"context"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

// SignupInput carries the self-registration payload.
type SignupInput struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	ProductKey string
	Role       domain.Role
}

// AuthService covers account creation, login and product keys.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateProductKey(email string, role domain.Role) (string, error)
	Me(ctx context.Context, subjectID string) (*domain.User, error)
}
