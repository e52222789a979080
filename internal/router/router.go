package router

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"threadai/docs"
	"threadai/internal/auth"
	"threadai/internal/config"
	"threadai/internal/handler"
	"threadai/internal/logger"
	"threadai/internal/metrics"
	"threadai/internal/schema"
	"threadai/internal/service"
)

// Version is reported by the root endpoint and the API docs.
const Version = "1.0.0"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *slog.Logger,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	draftHandler *handler.DraftHandler,
	aiHandler *handler.AIHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = &CustomValidator{validator: schema.NewValidator()}

	e.Use(middleware.RequestID())
	e.Use(logger.ContextMiddleware())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
	}))
	e.Use(middleware.BodyLimit(strconv.FormatInt(bodyLimit(cfg.MaxFileSize), 10)))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	docs.SwaggerInfo.Version = Version

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Welcome to Thread.AI API",
			"version": Version,
			"docs":    "/swagger/index.html",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), metricsGuard(cfg)...)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	bearer := BearerAuth(authService, log)

	api.POST("/auth/google", authHandler.GoogleAuth)
	api.GET("/auth/me", authHandler.Me, bearer)
	api.POST("/auth/logout", authHandler.Logout, bearer)

	api.POST("/users", userHandler.CreateUser)
	api.GET("/users/username/:username", userHandler.GetUserByUsername)
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/users/:id/profile", userHandler.GetProfile)
	api.PUT("/users/:id", userHandler.UpdateUser, bearer)
	api.DELETE("/users/:id", userHandler.DeleteUser, bearer)

	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)
	api.POST("/posts", postHandler.CreatePost, bearer)
	api.PUT("/posts/:id", postHandler.UpdatePost, bearer)
	api.DELETE("/posts/:id", postHandler.DeletePost, bearer)
	api.POST("/posts/:id/like", postHandler.LikePost)
	api.POST("/posts/:id/save", postHandler.SavePost)

	drafts := api.Group("/drafts", bearer)
	drafts.GET("", draftHandler.ListDrafts)
	drafts.POST("", draftHandler.CreateDraft)
	drafts.GET("/:id", draftHandler.GetDraft)
	drafts.PUT("/:id", draftHandler.UpdateDraft)
	drafts.DELETE("/:id", draftHandler.DeleteDraft)

	api.POST("/ai/generate", aiHandler.Generate)
	api.POST("/ai/validate-image", aiHandler.ValidateImage)
}

// metricsGuard puts /metrics behind basic auth when a bcrypt password hash is
// configured. Without one the endpoint stays open for in-cluster scrapers.
func metricsGuard(cfg *config.Config) []echo.MiddlewareFunc {
	if cfg.MetricsPasswordHash == "" {
		return nil
	}
	return []echo.MiddlewareFunc{
		middleware.BasicAuth(func(user, password string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(user), []byte(cfg.MetricsUser)) == 1 &&
				auth.CheckPassword(password, cfg.MetricsPasswordHash), nil
		}),
	}
}

// bodyLimit leaves room for a maximum size image sent as base64 inside JSON.
func bodyLimit(maxFileSize int64) int64 {
	return maxFileSize/3*4 + 64<<10
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
