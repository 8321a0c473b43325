package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
)

// EnrollmentsController manages which students sit in the lecturer's
// courses.
type EnrollmentsController struct {
	app *App
}

// Index lists the lecturer's enrollments next to the student and course
// pickers for the create form.
func (c *EnrollmentsController) Index(ctx router.Context) error {
	return c.renderIndex(ctx, router.ViewContext{})
}

// Create validates the pick and submits the enrollment to the API.
func (c *EnrollmentsController) Create(ctx router.Context) error {
	payload := new(EnrollmentForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("enrollment parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/enrollments", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderIndex(ctx, router.ViewContext{
			"record":     payload,
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	_, err := c.app.api.CreateEnrollment(ctx.Context(), credentialFrom(ctx), apiclient.EnrollmentInput{
		StudentID: payload.StudentID,
		CourseID:  payload.CourseID,
	})
	if err != nil {
		c.app.logger.Error("enrollment create", "error", err)
		return c.renderIndex(ctx, router.ViewContext{
			"record": payload,
			"errors": map[string]string{"api": apiErrorMessage(err, "Could not enroll the student")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Student enrolled",
	}).Redirect("/enrollments", fiber.StatusSeeOther)
}

// Delete withdraws the enrollment.
func (c *EnrollmentsController) Delete(ctx router.Context) error {
	id := ctx.Param("id", "")

	if err := c.app.api.DeleteEnrollment(ctx.Context(), credentialFrom(ctx), id); err != nil {
		c.app.logger.Error("enrollment delete", "error", err, "enrollment", id)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  apiErrorMessage(err, "Could not remove the enrollment"),
			"system_message": "Delete failed",
		}).Redirect("/enrollments", fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Enrollment removed",
	}).Redirect("/enrollments", fiber.StatusSeeOther)
}

// renderIndex fetches the enrollment list plus the dropdown data: students
// from the user directory and the lecturer's own courses.
func (c *EnrollmentsController) renderIndex(ctx router.Context, extra router.ViewContext) error {
	data := router.ViewContext{}
	for k, v := range extra {
		data[k] = v
	}

	credential := credentialFrom(ctx)

	enrollments, err := c.app.api.ListEnrollments(ctx.Context(), credential)
	if err != nil {
		c.app.logger.Error("enrollment list", "error", err)
		if _, ok := data["errors"]; !ok {
			data["errors"] = map[string]string{"api": apiErrorMessage(err, "Could not load enrollments")}
		}
	}
	data["enrollments"] = enrollments

	if users, err := c.app.api.ListUsers(ctx.Context(), credential); err == nil {
		students := make([]apiclient.User, 0, len(users))
		for _, u := range users {
			if u.Role == string(lrs.RoleStudent) {
				students = append(students, u)
			}
		}
		data["students"] = students
	} else {
		c.app.logger.Warn("enrollment student picker", "error", err)
	}

	if courses, err := c.app.api.ListCourses(ctx.Context(), credential); err == nil {
		data["courses"] = courses
	} else {
		c.app.logger.Warn("enrollment course picker", "error", err)
	}

	return render(ctx, "enrollments", data)
}
