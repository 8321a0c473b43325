package lrs

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// AuthControllerRoutes holds the paths the controller mounts
type AuthControllerRoutes struct {
	Login        string
	Logout       string
	Unauthorized string
}

// AuthControllerViews holds the view names the controller renders
type AuthControllerViews struct {
	Login        string
	Unauthorized string
}

// AuthController serves the login form, performs the credential exchange with
// the remote API, and tears sessions down on logout.
type AuthController struct {
	Logger Logger
	Issuer CredentialIssuer
	Guard  *RouteGuard
	Routes *AuthControllerRoutes
	Views  *AuthControllerViews
	// LandingPath is the authenticated landing view after login
	LandingPath string
}

// AuthControllerOption configures the controller
type AuthControllerOption func(*AuthController) *AuthController

// WithControllerLogger sets the logger
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithCredentialIssuer sets the remote authentication endpoint
func WithCredentialIssuer(issuer CredentialIssuer) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Issuer = issuer
		return c
	}
}

// WithRouteGuard sets the guard whose cookie slot the controller writes
func WithRouteGuard(guard *RouteGuard) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Guard = guard
		return c
	}
}

// NewAuthController builds a controller with default routes and views
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:        DefaultLoginPath,
			Logout:       "/logout",
			Unauthorized: DefaultUnauthorizedPath,
		},
		Views: &AuthControllerViews{
			Login:        "login",
			Unauthorized: "unauthorized",
		},
		LandingPath: "/dashboard",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Issuer == nil {
		panic("Missing CredentialIssuer in auth controller...")
	}

	if c.Guard == nil {
		c.Guard = NewRouteGuard(WithGuardLogger(c.Logger))
	}

	return c
}

// RegisterAuthRoutes mounts the login, logout and unauthorized routes
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.
		Get(controller.Routes.Login, controller.LoginShow).
		SetName("sign-in.get")

	app.
		Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.LogOut).SetName("sign-out.get")

	app.Get(controller.Routes.Unauthorized, controller.UnauthorizedShow).
		SetName("unauthorized.get")

	return controller
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginShow renders the login form. A visitor who already carries a decodable
// credential is sent straight to the landing view.
func (a *AuthController) LoginShow(ctx router.Context) error {
	store := a.Guard.SessionStore(ctx)
	if _, ok := store.PeekIdentity(); ok {
		return ctx.Redirect(a.LandingPath, fiber.StatusFound)
	}

	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// LoginPost exchanges the form credentials with the remote API, then asks the
// session store to adopt the issued bearer credential. A credential that the
// API issued but the client cannot decode is surfaced inline without touching
// session or storage.
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		errors["form"] = "Failed to parse form"
		a.Logger.Error("login parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	credential, err := a.Issuer.IssueCredential(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("login error", "error", err)
		errors["authentication"] = "Invalid email or password"
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
		})
	}

	store := a.Guard.SessionStore(ctx)
	if err := store.Login(credential); err != nil {
		a.Logger.Error("issued credential failed to decode", "error", err)
		errors["authentication"] = "Authentication Error"
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
		})
	}

	redirect := a.Guard.GetRedirect(ctx, a.LandingPath)

	return ctx.Redirect(redirect, fiber.StatusSeeOther)
}

// LogOut empties the session and returns to the unauthenticated entry view
func (a *AuthController) LogOut(ctx router.Context) error {
	store := a.Guard.SessionStore(ctx)
	store.Logout()
	return ctx.Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

// UnauthorizedShow renders the unauthorized access page
func (a *AuthController) UnauthorizedShow(ctx router.Context) error {
	identity, _ := a.Guard.SessionStore(ctx).PeekIdentity()
	return ctx.Render(a.Views.Unauthorized, router.ViewContext{
		"identity": identity,
	})
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map for the views.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}
