package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
// It is built once at startup and passed to the components that need it.
type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string

	DBDriver    string
	DatabaseURL string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	MockGoogleAuth     bool

	FrontendURL string
	MaxFileSize int64

	AIAPIURL           string
	AIAPIKey           string
	AITimeout          time.Duration
	AIPlaceholderDelay time.Duration

	SwaggerHost string

	MetricsUser         string
	MetricsPasswordHash string
}

// Load reads an optional .env file and builds Config from the environment
// with sensible defaults.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/threadai?charset=utf8mb4&parseTime=True&loc=UTC"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:      getEnv("JWT_SECRET", getEnv("SECRET_KEY", "change-me")),
		JWTAlgorithm:   strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		MockGoogleAuth:     getEnvBool("AUTH_MOCK_GOOGLE", false),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		MaxFileSize: int64(getEnvInt("MAX_FILE_SIZE", 10485760)),

		AIAPIURL:           os.Getenv("AI_API_URL"),
		AIAPIKey:           os.Getenv("AI_API_KEY"),
		AITimeout:          getEnvDuration("AI_TIMEOUT", 60*time.Second),
		AIPlaceholderDelay: getEnvDuration("AI_PLACEHOLDER_DELAY", 2*time.Second),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		MetricsUser:         getEnv("METRICS_USER", "metrics"),
		MetricsPasswordHash: os.Getenv("METRICS_PASSWORD_HASH"),
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.IsProduction() {
		if c.JWTSecret == "" || c.JWTSecret == "change-me" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.GoogleClientID == "" && !c.MockGoogleAuth {
			return fmt.Errorf("GOOGLE_CLIENT_ID must be set in production")
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("90s") or a plain number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return def
}
