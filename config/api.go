package config

import "time"

// APIConfig points the web client at the remote Lecture Reminder System API.
type APIConfig struct {
	// BaseURL is the root of the LRS API, without a trailing slash.
	BaseURL string `env:"LRS_API_URL" envDefault:"http://localhost:3001"`

	// Timeout bounds a single API round trip.
	Timeout time.Duration `env:"LRS_API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to API settings.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
}
