package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/realtyhub/listing-api/internal/api/handler"
	"github.com/realtyhub/listing-api/internal/api/middleware"
	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
	infrahttp "github.com/realtyhub/listing-api/internal/infrastructure/http"
	"github.com/realtyhub/listing-api/internal/infrastructure/http/handlers"
)

// Route is one entry of the application route table.
type Route struct {
	Method  string
	Path    string
	Access  middleware.Access
	Handler echo.HandlerFunc
}

func (r Route) String() string {
	return fmt.Sprintf("%s %s [%s]", r.Method, r.Path, r.Access)
}

// Deps are the collaborators the router needs. Health checks are optional and
// a nil Registerer means the Prometheus default registry.
type Deps struct {
	Log          zerolog.Logger
	Guard        *middleware.Guard
	AuthService  ports.AuthService
	HomeService  ports.HomeService
	HealthChecks map[string]handlers.PingFunc
	Registerer   prometheus.Registerer
}

// RouteTable lists every application route with its access declaration.
// Operational endpoints (health, metrics, swagger) are not part of it.
func RouteTable(auth *handler.AuthHandler, homes *handler.HomeHandler) []Route {
	var (
		everyone = middleware.RequireRoles(domain.RoleBuyer, domain.RoleRealtor, domain.RoleAdmin)
		listers  = middleware.RequireRoles(domain.RoleRealtor, domain.RoleAdmin)
		realtors = middleware.RequireRoles(domain.RoleRealtor)
		buyers   = middleware.RequireRoles(domain.RoleBuyer)
		admins   = middleware.RequireRoles(domain.RoleAdmin)
		public   = middleware.Public()
	)
	return []Route{
		{http.MethodPost, "/auth/signup/:userType", public, auth.Signup},
		{http.MethodPost, "/auth/login", public, auth.Login},
		{http.MethodPost, "/auth/product-key", admins, auth.ProductKey},
		{http.MethodGet, "/auth/me", everyone, auth.Me},

		{http.MethodGet, "/home", public, homes.List},
		{http.MethodGet, "/home/search/:query", public, homes.Search},
		{http.MethodGet, "/home/:id", public, homes.Get},
		{http.MethodPost, "/home", listers, homes.Create},
		{http.MethodPatch, "/home/:id", listers, homes.Update},
		{http.MethodDelete, "/home/:id", listers, homes.Delete},
		{http.MethodPost, "/home/:id/inquire", buyers, homes.Inquire},
		{http.MethodGet, "/home/:id/messages", realtors, homes.Messages},
		{http.MethodGet, "/home/:id/homes", realtors, homes.RealtorHomes},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "listing",
		Registerer: deps.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	infrahttp.RegisterOps(e, deps.HealthChecks)

	// --- Application routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	homeHandler := handler.NewHomeHandler(deps.HomeService)
	for _, r := range RouteTable(authHandler, homeHandler) {
		e.Add(r.Method, r.Path, r.Handler, deps.Guard.Require(r.Access))
	}

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
