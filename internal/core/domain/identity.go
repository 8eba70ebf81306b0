package domain

import "time"

// Identity is the verified set of claims decoded from a session token.
// It is never persisted and is valid only until ExpiresAt.
type Identity struct {
	SubjectID string
	Name      string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
