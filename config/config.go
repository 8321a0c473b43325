// Package config loads the application configuration from environment
// variables, with optional .env overlay for development. Each concern lives
// in its own file:
//   - http.go: web client HTTP server
//   - api.go: remote LRS API endpoint
//   - session.go: credential cookie
//   - views.go: template loading
//   - stub.go: development API stub
package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// AppConfig composes every configuration section.
type AppConfig struct {
	// IsDev enables development behavior (disk template reload, debug logs).
	IsDev bool `env:"DEV" envDefault:"false"`

	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Views   ViewsConfig
	Stub    StubConfig
}

// Load reads a .env file when present, then parses the environment into an
// AppConfig and applies guardrails.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return AppConfig{}, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load .env file")
		}
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to parse environment configuration")
	}

	cfg.Sanitize()
	return cfg, nil
}

// Sanitize applies guardrails to every section. Call after parsing.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.API.Sanitize()
	c.Session.Sanitize()
	c.Views.Sanitize(c.IsDev)
	c.Stub.Sanitize()
}
