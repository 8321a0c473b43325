// Package server is the Lecture Reminder System web client: server-rendered
// pages over the remote LRS API, with the session and role gating provided
// by the root package. Controllers stay thin (fetch, validate, submit,
// render) and every protected page mounts through the route guard with its
// role allow-list.
package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	cfs "github.com/goliatone/go-composite-fs"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
	"github.com/goliatone/lrs-client/config"
)

//go:embed views
var embeddedFS embed.FS

// App is the assembled web client.
type App struct {
	cfg    config.AppConfig
	api    *apiclient.Client
	guard  *lrs.RouteGuard
	logger lrs.Logger
	srv    router.Server[*fiber.App]
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger lrs.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New builds the web client: view engine, session guard, auth routes, and
// every page controller.
func New(cfg config.AppConfig, api *apiclient.Client, opts ...Option) (*App, error) {
	app := &App{
		cfg:    cfg,
		api:    api,
		logger: lrs.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(app)
	}

	engine, err := app.viewEngine()
	if err != nil {
		return nil, err
	}

	app.srv = router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:           "lrs-client",
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	app.guard = lrs.NewRouteGuard(
		lrs.WithGuardLogger(app.logger),
		lrs.WithGuardCookie(cfg.Session.CookieName, cfg.Session.CookieDuration),
		lrs.WithGuardCookieSecure(cfg.Session.CookieSecure),
	)

	app.registerRoutes()
	return app, nil
}

// Serve blocks serving the web client on the configured address.
func (a *App) Serve() error {
	return a.srv.Serve(a.cfg.HTTP.Addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (a *App) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

// Guard exposes the route guard, mainly for tests.
func (a *App) Guard() *lrs.RouteGuard {
	return a.guard
}

// Fiber exposes the underlying fiber app so tests can drive requests
// without a listener.
func (a *App) Fiber() *fiber.App {
	return a.srv.WrappedRouter()
}

// viewEngine loads the django templates from the embedded copy, layered
// under the on-disk directory when disk reload is enabled.
func (a *App) viewEngine() (*django.Engine, error) {
	views, err := fs.Sub(embeddedFS, "views")
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to scope embedded views")
	}

	var viewsFS fs.FS = views
	if a.cfg.Views.DiskReload {
		// Disk overrides embedded, so it goes first.
		viewsFS = cfs.NewCompositeFS(os.DirFS(a.cfg.Views.Dir), views)
	}

	engine := django.NewFileSystem(http.FS(viewsFS), ".html")
	engine.Reload(a.cfg.Views.DiskReload)
	for name, fn := range lrs.TemplateHelpers() {
		engine.AddFunc(name, fn)
	}
	return engine, nil
}

func (a *App) registerRoutes() {
	r := a.srv.Router()

	r.Use(mflash.New(mflash.ConfigDefault))

	lrs.RegisterAuthRoutes(r,
		lrs.WithControllerLogger(a.logger),
		lrs.WithCredentialIssuer(a.api),
		lrs.WithRouteGuard(a.guard),
	)

	home := &HomeController{app: a}
	r.Get("/", home.Index).SetName("home.get")

	dashboard := &DashboardController{app: a}
	r.Get("/dashboard", dashboard.Show, a.guard.Protected()).
		SetName("dashboard.get")

	courses := &CoursesController{app: a}
	lecturer := a.guard.Protected(lrs.RoleLecturer)
	r.Get("/courses", courses.Index, lecturer).SetName("courses.get")
	r.Post("/courses", courses.Create, lecturer).SetName("courses.post")
	r.Post("/courses/:id/update", courses.Update, lecturer).SetName("courses.update")
	r.Post("/courses/:id/delete", courses.Delete, lecturer).SetName("courses.delete")

	schedules := &SchedulesController{app: a}
	r.Get("/schedules", schedules.Index, lecturer).SetName("schedules.get")
	r.Post("/schedules", schedules.Create, lecturer).SetName("schedules.post")
	r.Post("/schedules/:id/update", schedules.Update, lecturer).SetName("schedules.update")
	r.Post("/schedules/:id/delete", schedules.Delete, lecturer).SetName("schedules.delete")

	enrollments := &EnrollmentsController{app: a}
	r.Get("/enrollments", enrollments.Index, lecturer).SetName("enrollments.get")
	r.Post("/enrollments", enrollments.Create, lecturer).SetName("enrollments.post")
	r.Post("/enrollments/:id/delete", enrollments.Delete, lecturer).SetName("enrollments.delete")

	users := &UsersController{app: a}
	admin := a.guard.Protected(lrs.RoleSuperAdmin)
	r.Get("/users", users.Index, admin).SetName("users.get")
	r.Post("/users", users.Create, admin).SetName("users.post")
	r.Post("/users/:id/delete", users.Delete, admin).SetName("users.delete")

	notifications := &NotificationsController{app: a}
	r.Get("/notifications", notifications.Show, lecturer).SetName("notifications.get")
	r.Post("/notifications", notifications.Save, lecturer).SetName("notifications.post")
	r.Post("/notifications/test", notifications.Test, lecturer).SetName("notifications.test")
}

// credentialFrom returns the bearer credential of the guarded request.
// Empty when the route was not mounted behind the guard.
func credentialFrom(ctx router.Context) string {
	store, ok := lrs.SessionFromRouter(ctx)
	if !ok {
		return ""
	}
	return store.Current().Credential
}

// render layers the session helpers under the page data.
func render(ctx router.Context, view string, data router.ViewContext) error {
	return ctx.Render(view, lrs.MergeTemplateData(ctx, data))
}

// apiErrorMessage maps an API failure to the inline message the page shows.
func apiErrorMessage(err error, fallback string) string {
	if apiErr, ok := apiclient.IsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
