package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Identity      IdentityConfig
	Session       SessionConfig
	Email         EmailConfig
	Frontend      FrontendConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// IdentityConfig describes how to reach the external identity service.
// The service is addressed differently depending on where the caller
// runs: server-side code talks to the internal Docker address, while
// anything handed to a browser must use the public address.
type IdentityConfig struct {
	InternalBaseURL string
	PublicBaseURL   string
}

type SessionConfig struct {
	JWTSecret    string
	JWTIssuer    string
	MaxAgeDays   int
	CookieDomain string
	CookieSecure bool
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type FrontendConfig struct {
	BaseURL string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:3000")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("NEXT_PUBLIC_BACKEND_URL", "http://backend:5000")
	v.SetDefault("NEXT_PUBLIC_API_URL", "http://localhost:5000/api")
	v.SetDefault("NEXT_PUBLIC_FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("JWT_ISSUER", "skillyug-api")
	v.SetDefault("SESSION_MAX_AGE_DAYS", 7)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("EMAIL_SERVER_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_SERVER_PORT", 465)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, tracing disabled when empty
	v.SetDefault("O11Y_BE_SERVICE_NAME", "skillyug-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "skillyug")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Identity: IdentityConfig{
			InternalBaseURL: v.GetString("NEXT_PUBLIC_BACKEND_URL"),
			PublicBaseURL:   v.GetString("NEXT_PUBLIC_API_URL"),
		},
		Session: SessionConfig{
			JWTSecret:    v.GetString("NEXTAUTH_SECRET"),
			JWTIssuer:    v.GetString("JWT_ISSUER"),
			MaxAgeDays:   v.GetInt("SESSION_MAX_AGE_DAYS"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Email: EmailConfig{
			Host:     v.GetString("EMAIL_SERVER_HOST"),
			Port:     v.GetInt("EMAIL_SERVER_PORT"),
			Username: v.GetString("EMAIL_SERVER_USER"),
			Password: v.GetString("EMAIL_SERVER_PASSWORD"),
			From:     v.GetString("EMAIL_FROM"),
		},
		Frontend: FrontendConfig{
			BaseURL: v.GetString("NEXT_PUBLIC_FRONTEND_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("NEXTAUTH_SECRET is required")
	}
	if c.Session.MaxAgeDays <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE_DAYS must be positive")
	}

	if c.Identity.InternalBaseURL == "" {
		return fmt.Errorf("NEXT_PUBLIC_BACKEND_URL is required")
	}
	if c.Identity.PublicBaseURL == "" {
		return fmt.Errorf("NEXT_PUBLIC_API_URL is required")
	}

	if c.Email.Port <= 0 || c.Email.Port > 65535 {
		return fmt.Errorf("EMAIL_SERVER_PORT must be a valid port")
	}

	return nil
}

// EmailConfigured reports whether SMTP credentials are present.
// The email endpoint stays up without them but every dispatch will
// fail with a 503, which the healthcheck surfaces.
func (c *Config) EmailConfigured() bool {
	return c.Email.Host != "" && c.Email.Username != "" && c.Email.Password != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
