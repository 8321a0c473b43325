package config

import "time"

// StubConfig configures the development API stub (cmd/lrs-apistub). It is
// unused by the web client itself.
type StubConfig struct {
	// Addr is the stub's bind address. The default matches the API URL the
	// web client points at out of the box.
	Addr string `env:"STUB_ADDR" envDefault:":3001"`

	// DSN is the sqlite data source. file::memory:?cache=shared keeps the
	// stub stateless across restarts.
	DSN string `env:"STUB_DSN" envDefault:"file::memory:?cache=shared"`

	// SigningKey signs the HS256 tokens the stub issues.
	SigningKey string `env:"STUB_SIGNING_KEY" envDefault:"dev-signing-key"`

	// TokenTTL is the exp claim offset on issued tokens.
	TokenTTL time.Duration `env:"STUB_TOKEN_TTL" envDefault:"24h"`

	// Issuer is the iss claim on issued tokens.
	Issuer string `env:"STUB_ISSUER" envDefault:"lrs-apistub"`

	// Seed loads fixture data on startup.
	Seed bool `env:"STUB_SEED" envDefault:"true"`
}

// Sanitize applies guardrails to stub settings.
func (s *StubConfig) Sanitize() {
	if s.Addr == "" {
		s.Addr = ":3001"
	}
	if s.DSN == "" {
		s.DSN = "file::memory:?cache=shared"
	}
	if s.SigningKey == "" {
		s.SigningKey = "dev-signing-key"
	}
	if s.TokenTTL <= 0 {
		s.TokenTTL = 24 * time.Hour
	}
	if s.Issuer == "" {
		s.Issuer = "lrs-apistub"
	}
}
