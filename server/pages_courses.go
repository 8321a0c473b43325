package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
)

// CoursesController manages the lecturer's course catalog.
type CoursesController struct {
	app *App
}

// Index lists the courses owned by the signed-in lecturer.
func (c *CoursesController) Index(ctx router.Context) error {
	return c.renderIndex(ctx, router.ViewContext{})
}

// Create validates the form and submits the new course to the API.
func (c *CoursesController) Create(ctx router.Context) error {
	payload := new(CourseForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("course parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/courses", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderIndex(ctx, router.ViewContext{
			"record":     payload,
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	_, err := c.app.api.CreateCourse(ctx.Context(), credentialFrom(ctx), c.input(payload))
	if err != nil {
		c.app.logger.Error("course create", "error", err)
		return c.renderIndex(ctx, router.ViewContext{
			"record": payload,
			"errors": map[string]string{"api": apiErrorMessage(err, "Could not create the course")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Course created",
	}).Redirect("/courses", fiber.StatusSeeOther)
}

// Update validates the form and submits the changed course to the API.
func (c *CoursesController) Update(ctx router.Context) error {
	id := ctx.Param("id", "")

	payload := new(CourseForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("course parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/courses", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderIndex(ctx, router.ViewContext{
			"record":     payload,
			"editing":    id,
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	_, err := c.app.api.UpdateCourse(ctx.Context(), credentialFrom(ctx), id, c.input(payload))
	if err != nil {
		c.app.logger.Error("course update", "error", err, "course", id)
		return c.renderIndex(ctx, router.ViewContext{
			"record":  payload,
			"editing": id,
			"errors":  map[string]string{"api": apiErrorMessage(err, "Could not update the course")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Course updated",
	}).Redirect("/courses", fiber.StatusSeeOther)
}

// Delete removes the course. The API cascades the course enrollments.
func (c *CoursesController) Delete(ctx router.Context) error {
	id := ctx.Param("id", "")

	if err := c.app.api.DeleteCourse(ctx.Context(), credentialFrom(ctx), id); err != nil {
		c.app.logger.Error("course delete", "error", err, "course", id)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  apiErrorMessage(err, "Could not delete the course"),
			"system_message": "Delete failed",
		}).Redirect("/courses", fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Course deleted",
	}).Redirect("/courses", fiber.StatusSeeOther)
}

func (c *CoursesController) input(payload *CourseForm) apiclient.CourseInput {
	return apiclient.CourseInput{
		Code:        payload.Code,
		Title:       payload.Title,
		Description: payload.Description,
	}
}

// renderIndex fetches the course list and renders the page with any extra
// view data layered on top.
func (c *CoursesController) renderIndex(ctx router.Context, extra router.ViewContext) error {
	data := router.ViewContext{}
	for k, v := range extra {
		data[k] = v
	}

	courses, err := c.app.api.ListCourses(ctx.Context(), credentialFrom(ctx))
	if err != nil {
		c.app.logger.Error("course list", "error", err)
		if _, ok := data["errors"]; !ok {
			data["errors"] = map[string]string{"api": apiErrorMessage(err, "Could not load courses")}
		}
	}
	data["courses"] = courses

	return render(ctx, "courses", data)
}
