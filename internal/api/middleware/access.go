package middleware

import (
	"strings"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

// AccessKind distinguishes public routes from role-protected ones. The zero
// value is "undeclared" and the guard denies it.
type AccessKind int

const (
	AccessUndeclared AccessKind = iota
	AccessPublic
	AccessRoles
)

// Access is the static role requirement attached to a route at registration.
type Access struct {
	kind  AccessKind
	roles []domain.Role
}

// Public declares a route that skips the guard entirely.
func Public() Access {
	return Access{kind: AccessPublic}
}

// RequireRoles declares a route reachable only by the listed roles.
func RequireRoles(roles ...domain.Role) Access {
	if len(roles) == 0 {
		panic("middleware: RequireRoles needs at least one role")
	}
	seen := make(map[domain.Role]struct{}, len(roles))
	uniq := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		if !r.Valid() {
			panic("middleware: unknown role " + string(r))
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		uniq = append(uniq, r)
	}
	return Access{kind: AccessRoles, roles: uniq}
}

func (a Access) Kind() AccessKind { return a.kind }

func (a Access) IsPublic() bool { return a.kind == AccessPublic }

// Allows reports whether role satisfies the requirement.
func (a Access) Allows(role domain.Role) bool {
	if a.kind != AccessRoles {
		return false
	}
	for _, r := range a.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns a copy of the required role set.
func (a Access) Roles() []domain.Role {
	return append([]domain.Role(nil), a.roles...)
}

func (a Access) String() string {
	switch a.kind {
	case AccessPublic:
		return "public"
	case AccessRoles:
		parts := make([]string, len(a.roles))
		for i, r := range a.roles {
			parts[i] = string(r)
		}
		return strings.Join(parts, ",")
	default:
		return "undeclared"
	}
}
