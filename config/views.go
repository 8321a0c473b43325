package config

// ViewsConfig controls template loading for the web client.
type ViewsConfig struct {
	// Dir is the on-disk views directory layered over the embedded
	// templates when DiskReload is on.
	Dir string `env:"VIEWS_DIR" envDefault:"server/views"`

	// DiskReload reads templates from disk on every render. Defaults to
	// the DEV flag.
	DiskReload bool `env:"VIEWS_DISK_RELOAD"`
}

// Sanitize applies guardrails to view settings. isDev turns disk reload on
// unless it was set explicitly.
func (v *ViewsConfig) Sanitize(isDev bool) {
	if v.Dir == "" {
		v.Dir = "server/views"
	}
	if isDev {
		v.DiskReload = true
	}
}
