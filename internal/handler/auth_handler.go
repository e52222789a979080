package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"threadai/internal/schema"
	"threadai/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleAuth godoc
// @Summary Sign in with Google
// @Description Exchanges a Google ID token for an access token, creating the user on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body schema.GoogleAuthRequest true "Google ID token"
// @Success 200 {object} schema.GoogleAuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req schema.GoogleAuthRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.GoogleAuth(c.Request().Context(), req.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewGoogleAuthResponse(token, user))
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} schema.UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), claims)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewUserResponse(user))
}

// Logout godoc
// @Summary Revoke the current access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} schema.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.MessageResponse{Message: "Successfully logged out"})
}
