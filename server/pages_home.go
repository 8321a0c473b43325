package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	lrs "github.com/goliatone/lrs-client"
)

// HomeController serves the public landing page: the full schedule
// board, no session required.
type HomeController struct {
	app *App
}

// Index lists every published schedule. The endpoint is public so no
// credential is attached.
func (c *HomeController) Index(ctx router.Context) error {
	schedules, err := c.app.api.ListSchedules(ctx.Context(), "")
	if err != nil {
		c.app.logger.Error("home schedule list", "error", err)
		return render(ctx, "home", router.ViewContext{
			"errors": map[string]string{
				"api": apiErrorMessage(err, "Could not load the schedule board"),
			},
		})
	}

	return render(ctx, "home", router.ViewContext{
		"schedules": schedules,
	})
}

// DashboardController is the authenticated landing page.
type DashboardController struct {
	app *App
}

// Show renders the role-aware dashboard. Lecturers additionally get their
// own course and schedule counts; other roles get the plain shell.
func (c *DashboardController) Show(ctx router.Context) error {
	identity, ok := lrs.IdentityFromRouter(ctx)
	if !ok {
		return ctx.Redirect(lrs.DefaultLoginPath, fiber.StatusSeeOther)
	}

	data := router.ViewContext{}

	if identity.Role == lrs.RoleLecturer || identity.Role == lrs.RoleSuperAdmin {
		credential := credentialFrom(ctx)

		if courses, err := c.app.api.ListCourses(ctx.Context(), credential); err == nil {
			data["course_count"] = len(courses)
		} else {
			c.app.logger.Warn("dashboard course count", "error", err)
		}

		if schedules, err := c.app.api.ListLecturerSchedules(ctx.Context(), credential, identity.ID); err == nil {
			data["schedule_count"] = len(schedules)
			data["schedules"] = schedules
		} else {
			c.app.logger.Warn("dashboard schedule count", "error", err)
		}
	}

	return render(ctx, "dashboard", data)
}
