package apistub

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	lrs "github.com/goliatone/lrs-client"
	"github.com/uptrace/bun"
)

const actorKey = "actor"

// Server hosts the stub API over a fiber adapter.
type Server struct {
	db     *bun.DB
	repos  RepositoryManager
	tokens *TokenService
	logger lrs.Logger
	srv    router.Server[*fiber.App]
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger lrs.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer wires the stub's routes onto a fresh fiber adapter.
func NewServer(db *bun.DB, repos RepositoryManager, tokens *TokenService, opts ...Option) *Server {
	s := &Server{
		db:     db,
		repos:  repos,
		tokens: tokens,
		logger: lrs.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName: "lrs-apistub",
		}))
	})
	s.registerRoutes()
	return s
}

// Serve blocks serving the API on addr.
func (s *Server) Serve(addr string) error {
	return s.srv.Serve(addr)
}

// Shutdown stops the underlying server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// App exposes the underlying fiber app, used by tests to drive requests
// without a listener.
func (s *Server) App() *fiber.App {
	return s.srv.WrappedRouter()
}

func (s *Server) registerRoutes() {
	r := s.srv.Router()

	r.Post("/api/auth/login", s.Login)

	r.Get("/api/schedules", s.ListSchedules)
	r.Get("/api/schedules/lecturer/:id", s.ListLecturerSchedules, s.requireAuth())
	r.Post("/api/schedules", s.CreateSchedule, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Put("/api/schedules/:id", s.UpdateSchedule, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Delete("/api/schedules/:id", s.DeleteSchedule, s.requireAuth(), s.requireRole(lrs.RoleLecturer))

	r.Get("/api/courses", s.ListCourses, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Post("/api/courses", s.CreateCourse, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Put("/api/courses/:id", s.UpdateCourse, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Delete("/api/courses/:id", s.DeleteCourse, s.requireAuth(), s.requireRole(lrs.RoleLecturer))

	r.Get("/api/enrollments", s.ListEnrollments, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Post("/api/enrollments", s.CreateEnrollment, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Put("/api/enrollments/:id", s.UpdateEnrollment, s.requireAuth(), s.requireRole(lrs.RoleLecturer))
	r.Delete("/api/enrollments/:id", s.DeleteEnrollment, s.requireAuth(), s.requireRole(lrs.RoleLecturer))

	// Lecturers read the user list to populate enrollment forms; only the
	// super admin manages accounts.
	r.Get("/api/users", s.ListUsers, s.requireAuth(), s.requireRole(lrs.RoleLecturer, lrs.RoleSuperAdmin))
	r.Post("/api/users", s.CreateUser, s.requireAuth(), s.requireRole(lrs.RoleSuperAdmin))
	r.Delete("/api/users/:id", s.DeleteUser, s.requireAuth(), s.requireRole(lrs.RoleSuperAdmin))

	r.Get("/api/settings/notifications", s.GetNotificationSettings, s.requireAuth())
	r.Put("/api/settings/notifications", s.SaveNotificationSettings, s.requireAuth())
	r.Post("/api/settings/notifications/test", s.TestNotificationChannel, s.requireAuth())
}

// requireAuth validates the bearer token and stores its claims for handlers.
func (s *Server) requireAuth() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			token := bearerToken(ctx)
			if token == "" {
				return jsonError(ctx, router.StatusUnauthorized, "missing authorization token")
			}

			claims, err := s.tokens.Validate(token)
			if err != nil {
				return jsonError(ctx, router.StatusUnauthorized, "invalid or expired token")
			}

			ctx.Locals(actorKey, claims)
			return next(ctx)
		}
	}
}

// requireRole gates a route on the actor's role claim. Mount after
// requireAuth.
func (s *Server) requireRole(roles ...lrs.Role) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			claims := actorFrom(ctx)
			if claims == nil {
				return jsonError(ctx, router.StatusUnauthorized, "missing authorization token")
			}
			if !lrs.Role(claims.UserRole).OneOf(roles...) {
				return jsonError(ctx, router.StatusForbidden, "insufficient permissions")
			}
			return next(ctx)
		}
	}
}

func bearerToken(ctx router.Context) string {
	const scheme = "Bearer "
	header := ctx.GetString("Authorization", "")
	if len(header) > len(scheme) && header[:len(scheme)] == scheme {
		return header[len(scheme):]
	}
	return ""
}

func actorFrom(ctx router.Context) *lrs.TokenClaims {
	claims, _ := ctx.Locals(actorKey).(*lrs.TokenClaims)
	return claims
}

func jsonError(ctx router.Context, status int, message string) error {
	return ctx.JSON(status, map[string]string{"message": message})
}
