package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/realtyhub/listing-api/internal/api/middleware"
	"github.com/realtyhub/listing-api/internal/core/domain"
)

// callerIdentity returns the identity attached by the guard. A protected
// handler reached without one means the route was mounted without the guard.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c.Request().Context())
	if !ok || id.SubjectID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error())
	}
	return id, nil
}

// pathID reads the :id parameter and rejects anything that is not a UUID.
func pathID(c echo.Context) (string, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "id must be a valid uuid")
	}
	return id.String(), nil
}
