// Package handler holds the echo handlers of the HTTP API.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"threadai/internal/auth"
	apperrors "threadai/internal/errors"
	"threadai/internal/schema"
)

// ClaimsContextKey is where the bearer middleware stores *auth.Claims.
const ClaimsContextKey = "user"

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Detail: "Invalid request body"})
	}
	return validate(c, req)
}

func validate(c echo.Context, req interface{}) error {
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
			Detail: "Validation failed",
			Errors: schema.FieldErrors(err),
		})
	}
	return nil
}

// respondError converts a service error into an echo error. Internal causes
// are logged and never sent to the client.
func respondError(c echo.Context, err error) error {
	mapped := apperrors.MapErrorToHTTP(err)
	if mapped.IsInternal() {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}

// claimsFromContext returns the claims of an authenticated request.
func claimsFromContext(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// requireOwner fails with ErrForbidden unless the caller is ownerID.
func requireOwner(c echo.Context, ownerID string) (*auth.Claims, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return nil, err
	}
	if claims.UserID() != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return claims, nil
}
