package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
)

// SchedulesController manages the lecturer's own lecture schedules.
type SchedulesController struct {
	app *App
}

// Index lists the schedules owned by the signed-in lecturer.
func (c *SchedulesController) Index(ctx router.Context) error {
	return c.renderIndex(ctx, router.ViewContext{})
}

// Create validates the form and submits the new schedule to the API.
func (c *SchedulesController) Create(ctx router.Context) error {
	payload := new(ScheduleForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("schedule parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/schedules", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderIndex(ctx, router.ViewContext{
			"record":     payload,
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	_, err := c.app.api.CreateSchedule(ctx.Context(), credentialFrom(ctx), c.input(payload))
	if err != nil {
		c.app.logger.Error("schedule create", "error", err)
		return c.renderIndex(ctx, router.ViewContext{
			"record": payload,
			"errors": map[string]string{"api": apiErrorMessage(err, "Could not create the schedule")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Schedule created",
	}).Redirect("/schedules", fiber.StatusSeeOther)
}

// Update validates the form and submits the changed schedule to the API.
func (c *SchedulesController) Update(ctx router.Context) error {
	id := ctx.Param("id", "")

	payload := new(ScheduleForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("schedule parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/schedules", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderIndex(ctx, router.ViewContext{
			"record":     payload,
			"editing":    id,
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	_, err := c.app.api.UpdateSchedule(ctx.Context(), credentialFrom(ctx), id, c.input(payload))
	if err != nil {
		c.app.logger.Error("schedule update", "error", err, "schedule", id)
		return c.renderIndex(ctx, router.ViewContext{
			"record":  payload,
			"editing": id,
			"errors":  map[string]string{"api": apiErrorMessage(err, "Could not update the schedule")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Schedule updated",
	}).Redirect("/schedules", fiber.StatusSeeOther)
}

// Delete removes the schedule.
func (c *SchedulesController) Delete(ctx router.Context) error {
	id := ctx.Param("id", "")

	if err := c.app.api.DeleteSchedule(ctx.Context(), credentialFrom(ctx), id); err != nil {
		c.app.logger.Error("schedule delete", "error", err, "schedule", id)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  apiErrorMessage(err, "Could not delete the schedule"),
			"system_message": "Delete failed",
		}).Redirect("/schedules", fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Schedule deleted",
	}).Redirect("/schedules", fiber.StatusSeeOther)
}

func (c *SchedulesController) input(payload *ScheduleForm) apiclient.ScheduleInput {
	return apiclient.ScheduleInput{
		CourseTitle: payload.CourseTitle,
		CourseCode:  payload.CourseCode,
		Date:        payload.Date,
		Time:        payload.Time,
		Venue:       payload.Venue,
	}
}

// renderIndex fetches the lecturer's schedule list and renders the page
// with any extra view data layered on top.
func (c *SchedulesController) renderIndex(ctx router.Context, extra router.ViewContext) error {
	data := router.ViewContext{}
	for k, v := range extra {
		data[k] = v
	}

	identity, ok := lrs.IdentityFromRouter(ctx)
	if !ok {
		return ctx.Redirect(lrs.DefaultLoginPath, fiber.StatusSeeOther)
	}

	schedules, err := c.app.api.ListLecturerSchedules(ctx.Context(), credentialFrom(ctx), identity.ID)
	if err != nil {
		c.app.logger.Error("schedule list", "error", err)
		if _, ok := data["errors"]; !ok {
			data["errors"] = map[string]string{"api": apiErrorMessage(err, "Could not load schedules")}
		}
	}
	data["schedules"] = schedules

	return render(ctx, "schedules", data)
}
