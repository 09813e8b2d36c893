package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsDevelopment()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_EmailConfigured(t *testing.T) {
	tests := []struct {
		name     string
		email    EmailConfig
		expected bool
	}{
		{
			name: "fully configured",
			email: EmailConfig{
				Host:     "smtp.gmail.com",
				Username: "noreply@example.com",
				Password: "secret",
			},
			expected: true,
		},
		{
			name: "missing password",
			email: EmailConfig{
				Host:     "smtp.gmail.com",
				Username: "noreply@example.com",
			},
			expected: false,
		},
		{
			name:     "empty",
			email:    EmailConfig{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Email: tt.email}
			assert.Equal(t, tt.expected, cfg.EmailConfigured())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:           "8080",
				BaseURL:        "http://localhost:3000",
				AllowedOrigins: []string{"http://localhost:3000"},
			},
			Identity: IdentityConfig{
				InternalBaseURL: "http://backend:5000",
				PublicBaseURL:   "http://localhost:5000/api",
			},
			Session: SessionConfig{
				JWTSecret:  "test-secret",
				MaxAgeDays: 7,
			},
			Email: EmailConfig{
				Port: 465,
			},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing session secret",
			mutate:      func(c *Config) { c.Session.JWTSecret = "" },
			expectError: true,
			errorMsg:    "NEXTAUTH_SECRET is required",
		},
		{
			name:        "missing internal identity URL",
			mutate:      func(c *Config) { c.Identity.InternalBaseURL = "" },
			expectError: true,
			errorMsg:    "NEXT_PUBLIC_BACKEND_URL is required",
		},
		{
			name:        "missing public identity URL",
			mutate:      func(c *Config) { c.Identity.PublicBaseURL = "" },
			expectError: true,
			errorMsg:    "NEXT_PUBLIC_API_URL is required",
		},
		{
			name:        "non-positive session age",
			mutate:      func(c *Config) { c.Session.MaxAgeDays = 0 },
			expectError: true,
			errorMsg:    "SESSION_MAX_AGE_DAYS must be positive",
		},
		{
			name:        "invalid SMTP port",
			mutate:      func(c *Config) { c.Email.Port = 70000 },
			expectError: true,
			errorMsg:    "EMAIL_SERVER_PORT must be a valid port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	// Run from a temp directory so a developer .env file is not picked up
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	// Clean environment
	os.Clearenv()

	// Set only required fields
	os.Setenv("NEXTAUTH_SECRET", "test-secret")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check defaults
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "http://backend:5000", cfg.Identity.InternalBaseURL)
	assert.Equal(t, "http://localhost:5000/api", cfg.Identity.PublicBaseURL)
	assert.Equal(t, 7, cfg.Session.MaxAgeDays)
	assert.Equal(t, 465, cfg.Email.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Frontend.BaseURL)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	// Clean environment
	os.Clearenv()

	// Set environment variables
	os.Setenv("PORT", "9000")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("APP_ENV", "development")
	os.Setenv("NEXTAUTH_SECRET", "env-secret")
	os.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://identity:5000")
	os.Setenv("NEXT_PUBLIC_API_URL", "https://api.example.com")
	os.Setenv("NEXT_PUBLIC_FRONTEND_URL", "https://app.example.com")
	os.Setenv("EMAIL_SERVER_HOST", "smtp.example.com")
	os.Setenv("EMAIL_SERVER_PORT", "587")
	os.Setenv("EMAIL_SERVER_USER", "noreply@example.com")
	os.Setenv("EMAIL_SERVER_PASSWORD", "smtp-pass")
	os.Setenv("EMAIL_FROM", `"Skillyug" <noreply@example.com>`)

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Verify values from environment
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "development", cfg.Server.AppEnv)
	assert.Equal(t, "env-secret", cfg.Session.JWTSecret)
	assert.Equal(t, "http://identity:5000", cfg.Identity.InternalBaseURL)
	assert.Equal(t, "https://api.example.com", cfg.Identity.PublicBaseURL)
	assert.Equal(t, "https://app.example.com", cfg.Frontend.BaseURL)
	assert.Equal(t, "smtp.example.com", cfg.Email.Host)
	assert.Equal(t, 587, cfg.Email.Port)
	assert.Equal(t, "noreply@example.com", cfg.Email.Username)
	assert.Equal(t, "smtp-pass", cfg.Email.Password)
	assert.True(t, cfg.EmailConfigured())
}

func TestLoad_ValidationFailure(t *testing.T) {
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	// Clean environment - missing NEXTAUTH_SECRET
	os.Clearenv()

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
