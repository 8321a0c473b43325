package config

import "time"

// SessionConfig controls the credential cookie the web client sets after
// login. The cookie holds the raw bearer token issued by the API; there is
// no server-side session state.
type SessionConfig struct {
	// CookieName is the credential cookie's name.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"token"`

	// CookieDuration is how long the credential cookie lives. The client
	// never inspects token expiry; the cookie lifetime is the only
	// client-side bound.
	CookieDuration time.Duration `env:"SESSION_COOKIE_DURATION" envDefault:"168h"`

	// CookieSecure marks the cookie Secure; leave off for local HTTP dev.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Sanitize applies guardrails to session settings.
func (s *SessionConfig) Sanitize() {
	if s.CookieName == "" {
		s.CookieName = "token"
	}
	if s.CookieDuration <= 0 {
		s.CookieDuration = 168 * time.Hour
	}
}
