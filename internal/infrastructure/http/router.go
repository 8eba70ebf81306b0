package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/realtyhub/listing-api/internal/infrastructure/http/handlers"
)

// OpsPaths are the operational endpoints mounted outside the guarded route table.
var OpsPaths = []string{"/health", "/health/ready", "/metrics", "/swagger/*"}

// RegisterOps mounts health probes, the Prometheus scrape endpoint and the
// Swagger UI on e. None of them require authentication.
func RegisterOps(e *echo.Echo, checks map[string]handlers.PingFunc) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
