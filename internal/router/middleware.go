package router

import (
	"errors"
	"log/slog"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "threadai/internal/errors"
	"threadai/internal/handler"
	"threadai/internal/service"
)

// BearerAuth requires a valid, unrevoked access token in the Authorization
// header and stores its claims under handler.ClaimsContextKey.
func BearerAuth(authService service.AuthService, log *slog.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.DebugContext(c.Request().Context(), "bearer authentication failed", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Detail: "Could not validate credentials",
			})
		},
	})
}

// NewHTTPErrorHandler renders every error, including echo's own routing
// errors, as {"detail": ...}.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := http.StatusInternalServerError, apperrors.ErrorResponse{Detail: "Internal server error"}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Detail: msg}
			case error:
				body = apperrors.ErrorResponse{Detail: msg.Error()}
			default:
				body = apperrors.ErrorResponse{Detail: http.StatusText(status)}
			}
		} else {
			mapped := apperrors.MapErrorToHTTP(err)
			status, body = mapped.StatusCode, mapped.ToErrorResponse()
			if mapped.IsInternal() {
				log.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
			}
		}

		if status == http.StatusUnauthorized && c.Response().Header().Get(echo.HeaderWWWAuthenticate) == "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}
