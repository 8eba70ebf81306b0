package ports

import "github.com/realtyhub/listing-api/internal/core/domain"

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subjectID, name string, role domain.Role) (string, error)
}

// TokenVerifier checks a session token and decodes its claims. Every failure
// wraps domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
