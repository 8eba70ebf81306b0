package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/realtyhub/listing-api/internal/api/metrics"
	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

// RoleSource selects where the guard reads the authoritative role from.
type RoleSource int

const (
	// RoleFromStore re-reads the user's role on every protected request, so a
	// demotion takes effect immediately.
	RoleFromStore RoleSource = iota
	// RoleFromToken trusts the role embedded in the verified token until it expires.
	RoleFromToken
)

// ParseRoleSource maps the GUARD_ROLE_SOURCE setting.
func ParseRoleSource(s string) (RoleSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "store":
		return RoleFromStore, nil
	case "token":
		return RoleFromToken, nil
	}
	return 0, fmt.Errorf("unknown role source %q", s)
}

func (s RoleSource) String() string {
	if s == RoleFromToken {
		return "token"
	}
	return "store"
}

// errStore marks a credential store failure other than "not found".
var errStore = errors.New("credential store error")

// errUndeclared is returned for a route registered without an Access value.
var errUndeclared = errors.New("route has no access declaration")

// UserFinder is the read side of the credential store the guard needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Guard authenticates bearer tokens and enforces per-route role requirements.
// Every denial looks the same to the client; the reason goes to the audit
// sink, metrics and debug log.
type Guard struct {
	tokens ports.TokenVerifier
	users  UserFinder
	source RoleSource
	audit  ports.AuditSink
	log    zerolog.Logger
	now    func() time.Time
}

// GuardOption customises a Guard.
type GuardOption func(*Guard)

// WithAuditSink routes every guard decision to sink.
func WithAuditSink(sink ports.AuditSink) GuardOption {
	return func(g *Guard) { g.audit = sink }
}

func NewGuard(tokens ports.TokenVerifier, users UserFinder, source RoleSource, log zerolog.Logger, opts ...GuardOption) *Guard {
	g := &Guard{tokens: tokens, users: users, source: source, log: log, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize evaluates access for a request carrying authHeader. A nil error
// means allow; for public routes the identity is nil. It never panics.
func (g *Guard) Authorize(ctx context.Context, access Access, authHeader string) (id *domain.Identity, err error) {
	defer func() {
		if r := recover(); r != nil {
			id, err = nil, fmt.Errorf("guard panic: %v", r)
		}
	}()

	switch access.Kind() {
	case AccessPublic:
		return nil, nil
	case AccessRoles:
	default:
		return nil, errUndeclared
	}

	token, err := bearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	role, err := g.resolveRole(ctx, identity)
	if err != nil {
		return identity, err
	}
	identity.Role = role

	if !access.Allows(role) {
		return identity, fmt.Errorf("%w: %s not in [%s]", domain.ErrRoleNotAuthorized, role, access)
	}
	return identity, nil
}

// Require returns middleware enforcing access on a single route.
func (g *Guard) Require(access Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if access.IsPublic() {
				metrics.GuardDecisionsTotal.WithLabelValues("public", "").Inc()
				return next(c)
			}

			req := c.Request()
			identity, err := g.Authorize(req.Context(), access, req.Header.Get(echo.HeaderAuthorization))
			g.record(c, identity, err)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error())
			}

			c.SetRequest(req.WithContext(WithIdentity(req.Context(), *identity)))
			return next(c)
		}
	}
}

func (g *Guard) resolveRole(ctx context.Context, identity *domain.Identity) (domain.Role, error) {
	if g.source == RoleFromToken {
		if !identity.Role.Valid() {
			return "", fmt.Errorf("%w: token carries no role", domain.ErrRoleNotAuthorized)
		}
		return identity.Role, nil
	}

	user, err := g.users.FindByID(ctx, identity.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", errStore, err)
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	return user.Role, nil
}

func (g *Guard) record(c echo.Context, identity *domain.Identity, err error) {
	decision := domain.AuthDecision{
		At:        g.now().UTC(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
		Method:    c.Request().Method,
		Route:     c.Path(),
		Allowed:   err == nil,
	}
	if identity != nil {
		decision.SubjectID = identity.SubjectID
	}

	if err == nil {
		metrics.GuardDecisionsTotal.WithLabelValues("allow", "").Inc()
	} else {
		decision.Reason = denyReason(err)
		metrics.GuardDecisionsTotal.WithLabelValues("deny", decision.Reason).Inc()
		g.log.Debug().
			Err(err).
			Str("reason", decision.Reason).
			Str("method", decision.Method).
			Str("route", decision.Route).
			Str("request_id", decision.RequestID).
			Msg("access denied")
	}

	if g.audit != nil {
		g.audit.Record(decision)
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrMalformedToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMalformedToken
	}
	return token, nil
}

func denyReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrRoleNotAuthorized):
		return "role_not_authorized"
	case errors.Is(err, errStore):
		return "store_error"
	case errors.Is(err, errUndeclared):
		return "undeclared"
	default:
		return "internal"
	}
}
