package middleware

import (
	"context"
	"testing"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

func TestAccess_ZeroValueIsUndeclared(t *testing.T) {
	var a Access
	if a.Kind() != AccessUndeclared {
		t.Fatalf("expected undeclared, got %v", a.Kind())
	}
	if a.IsPublic() {
		t.Fatalf("zero access must not be public")
	}
	for _, r := range []domain.Role{domain.RoleBuyer, domain.RoleRealtor, domain.RoleAdmin} {
		if a.Allows(r) {
			t.Fatalf("zero access must not allow %s", r)
		}
	}
	if a.String() != "undeclared" {
		t.Fatalf("unexpected string %q", a.String())
	}
}

func TestAccess_PublicAllowsNoRole(t *testing.T) {
	a := Public()
	if !a.IsPublic() {
		t.Fatalf("expected public")
	}
	if a.Allows(domain.RoleAdmin) {
		t.Fatalf("public access is not a role grant")
	}
}

func TestRequireRoles_Membership(t *testing.T) {
	a := RequireRoles(domain.RoleRealtor, domain.RoleAdmin, domain.RoleRealtor)

	if !a.Allows(domain.RoleRealtor) || !a.Allows(domain.RoleAdmin) {
		t.Fatalf("expected realtor and admin to be allowed")
	}
	if a.Allows(domain.RoleBuyer) {
		t.Fatalf("buyer must be denied")
	}
	if a.Allows("") {
		t.Fatalf("empty role must be denied")
	}
	if got := a.String(); got != "REALTOR,ADMIN" {
		t.Fatalf("expected deduplicated roles, got %q", got)
	}

	roles := a.Roles()
	roles[0] = domain.RoleBuyer
	if a.Allows(domain.RoleBuyer) {
		t.Fatalf("Roles must return a copy")
	}
}

func TestRequireRoles_PanicsOnBadDeclaration(t *testing.T) {
	for name, fn := range map[string]func(){
		"empty":   func() { RequireRoles() },
		"unknown": func() { RequireRoles("OWNER") },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatalf("empty context must carry no identity")
	}
	ctx := WithIdentity(context.Background(), domain.Identity{SubjectID: "u1", Role: domain.RoleBuyer})
	id, ok := IdentityFrom(ctx)
	if !ok || id.SubjectID != "u1" || id.Role != domain.RoleBuyer {
		t.Fatalf("unexpected identity %+v", id)
	}
}
