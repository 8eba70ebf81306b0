package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realtyhub/listing-api/internal/api/metrics"
	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new account of the given user type.
//
// @Summary      Sign up
// @Description  REALTOR and ADMIN accounts require a product key issued for the same email and user type.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        userType  path      string         true  "BUYER, REALTOR or ADMIN"
// @Param        body      body      signupRequest  true  "Account details"
// @Success      201       {object}  tokenResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /auth/signup/{userType} [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	role, err := domain.ParseRole(c.Param("userType"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user type must be one of: BUYER REALTOR ADMIN")
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		ProductKey: req.ProductKey,
		Role:       role,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// ProductKey mints a signup key for a REALTOR or ADMIN account.
//
// @Summary      Generate a product key
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productKeyRequest  true  "Target email and user type"
// @Success      200   {object}  productKeyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/product-key [post]
func (h *AuthHandler) ProductKey(c echo.Context) error {
	var req productKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key, err := h.authService.GenerateProductKey(req.Email, domain.Role(req.UserType))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productKeyResponse{ProductKey: key})
}

// Me returns the caller's profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), caller.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  string(u.Role),
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
