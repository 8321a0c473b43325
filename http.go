package lrs

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// Router context keys populated by the RouteGuard for downstream handlers and
// templates.
const (
	ContextIdentityKey = "identity"
	ContextSessionKey  = "session"
)

// RejectedRouteKey names the short lived cookie remembering the protected URL
// a visitor was bounced from, so a successful login can return there.
const RejectedRouteKey = "rejected_route"

// CookieCredentialStore adapts the router cookie jar to the CredentialStore
// contract: one durable slot under a fixed name, surviving reloads within one
// browser profile.
type CookieCredentialStore struct {
	ctx      router.Context
	name     string
	duration time.Duration
	secure   bool
}

// NewCookieCredentialStore wraps the request context. An empty name falls back
// to DefaultCredentialKey; duration bounds how long a set credential persists.
// secure marks the cookie HTTPS-only; leave it off for local HTTP dev.
func NewCookieCredentialStore(ctx router.Context, name string, duration time.Duration, secure bool) *CookieCredentialStore {
	if name == "" {
		name = DefaultCredentialKey
	}
	if duration <= 0 {
		duration = 24 * time.Hour
	}
	return &CookieCredentialStore{ctx: ctx, name: name, duration: duration, secure: secure}
}

var _ CredentialStore = (*CookieCredentialStore)(nil)

func (c *CookieCredentialStore) Get() (string, bool) {
	credential := c.ctx.Cookies(c.name)
	return credential, credential != ""
}

func (c *CookieCredentialStore) Set(credential string) error {
	c.ctx.Cookie(&router.Cookie{
		Name:     c.name,
		Value:    credential,
		Expires:  time.Now().Add(c.duration),
		HTTPOnly: true,
		Secure:   c.secure,
		SameSite: "Lax",
	})
	return nil
}

func (c *CookieCredentialStore) Clear() error {
	c.ctx.Cookie(&router.Cookie{
		Name:     c.name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   c.secure,
		SameSite: "Lax",
	})
	return nil
}

// RouteGuard gates protected routes: it derives a per request session from
// the credential cookie, evaluates the guard state machine, and either lets
// the handler render or silently redirects to the login or unauthorized view.
type RouteGuard struct {
	CookieName     string
	CookieDuration time.Duration
	CookieSecure   bool
	LoginPath      string
	Unauthorized   string
	Logger         Logger
}

// NewRouteGuard returns a guard with the default cookie slot and redirect
// targets.
func NewRouteGuard(opts ...RouteGuardOption) *RouteGuard {
	rg := &RouteGuard{
		CookieName:     DefaultCredentialKey,
		CookieDuration: 24 * time.Hour,
		CookieSecure:   true,
		LoginPath:      DefaultLoginPath,
		Unauthorized:   DefaultUnauthorizedPath,
		Logger:         defLogger{},
	}

	for _, opt := range opts {
		opt(rg)
	}

	return rg
}

// RouteGuardOption customizes a RouteGuard
type RouteGuardOption func(*RouteGuard)

// WithGuardLogger overrides the guard's logger
func WithGuardLogger(logger Logger) RouteGuardOption {
	return func(rg *RouteGuard) {
		if logger != nil {
			rg.Logger = logger
		}
	}
}

// WithGuardCookie overrides the credential cookie name and lifetime
func WithGuardCookie(name string, duration time.Duration) RouteGuardOption {
	return func(rg *RouteGuard) {
		if name != "" {
			rg.CookieName = name
		}
		if duration > 0 {
			rg.CookieDuration = duration
		}
	}
}

// WithGuardCookieSecure controls the Secure attribute on every cookie the
// guard writes. Secure cookies never reach the server over plain HTTP, so
// this must be off for non-TLS dev hosts.
func WithGuardCookieSecure(secure bool) RouteGuardOption {
	return func(rg *RouteGuard) {
		rg.CookieSecure = secure
	}
}

// SessionStore builds the per request session store over the credential
// cookie. Initialize has not yet run on the returned store.
func (rg *RouteGuard) SessionStore(ctx router.Context) *Store {
	return NewStore(
		NewCookieCredentialStore(ctx, rg.CookieName, rg.CookieDuration, rg.CookieSecure),
		WithLogger(rg.Logger),
	)
}

// Protected wraps a handler with the guard. An empty allow list admits any
// authenticated role. Redirects are silent: no error flash, per design.
func (rg *RouteGuard) Protected(allowed ...Role) router.MiddlewareFunc {
	cfg := GuardConfig{
		AllowedRoles:     allowed,
		LoginPath:        rg.LoginPath,
		UnauthorizedPath: rg.Unauthorized,
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			store := rg.SessionStore(ctx)
			// synchronous on the server: a decode failure clears the stale
			// cookie here, self healing a corrupted credential
			store.Initialize()

			decision := Evaluate(store.Current(), cfg)

			switch decision.State {
			case GuardAuthorized:
				snap := store.Current()
				ctx.Locals(ContextIdentityKey, snap.Identity)
				ctx.Locals(ContextSessionKey, store)
				return next(ctx)
			case GuardRedirecting:
				if IsUnauthenticatedError(decision.Reason) {
					rg.SetRedirect(ctx)
				}
				rg.Logger.Info(
					"guard redirecting",
					"path", ctx.OriginalURL(),
					"target", decision.Target,
				)
				return ctx.Redirect(decision.Target, redirectStatus(ctx))
			default:
				// Pending cannot occur: Initialize completes before Evaluate
				rg.Logger.Error("guard stuck pending", "path", ctx.OriginalURL())
				return ctx.Redirect(cfg.loginPath(), redirectStatus(ctx))
			}
		}
	}
}

// SetRedirect remembers the rejected URL in a short lived cookie
func (rg *RouteGuard) SetRedirect(ctx router.Context) {
	ctx.Cookie(&router.Cookie{
		Name:     RejectedRouteKey,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   rg.CookieSecure,
		SameSite: "Lax",
	})
}

// GetRedirect consumes the rejected route cookie, falling back to def
func (rg *RouteGuard) GetRedirect(ctx router.Context, def string) string {
	r := ctx.Cookies(RejectedRouteKey)
	if r == "" {
		return def
	}
	ctx.Cookie(&router.Cookie{
		Name:     RejectedRouteKey,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   rg.CookieSecure,
		SameSite: "Lax",
	})
	return r
}

// IdentityFromRouter returns the identity stored by the guard middleware
func IdentityFromRouter(ctx router.Context) (*Identity, bool) {
	raw := ctx.Locals(ContextIdentityKey)
	if raw == nil {
		return nil, false
	}
	identity, ok := raw.(*Identity)
	return identity, ok && identity != nil
}

// SessionFromRouter returns the per request session store set by the guard
func SessionFromRouter(ctx router.Context) (*Store, bool) {
	raw := ctx.Locals(ContextSessionKey)
	if raw == nil {
		return nil, false
	}
	store, ok := raw.(*Store)
	return store, ok && store != nil
}

func redirectStatus(ctx router.Context) int {
	if ctx.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
