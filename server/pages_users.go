package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
)

// UsersController is the super admin's account directory.
type UsersController struct {
	app *App
}

// Index lists every account.
func (c *UsersController) Index(ctx router.Context) error {
	return c.renderIndex(ctx, router.ViewContext{})
}

// Create validates the form and submits the new account to the API.
// The password travels to the API once and is never rendered back.
func (c *UsersController) Create(ctx router.Context) error {
	payload := new(UserForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("user parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/users", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderIndex(ctx, router.ViewContext{
			"record":     c.redacted(payload),
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	_, err := c.app.api.CreateUser(ctx.Context(), credentialFrom(ctx), apiclient.UserInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Password:  payload.Password,
		Role:      payload.Role,
	})
	if err != nil {
		c.app.logger.Error("user create", "error", err)
		return c.renderIndex(ctx, router.ViewContext{
			"record": c.redacted(payload),
			"errors": map[string]string{"api": apiErrorMessage(err, "Could not create the account")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account created",
	}).Redirect("/users", fiber.StatusSeeOther)
}

// Delete removes the account. The API refuses self-deletion.
func (c *UsersController) Delete(ctx router.Context) error {
	id := ctx.Param("id", "")

	if err := c.app.api.DeleteUser(ctx.Context(), credentialFrom(ctx), id); err != nil {
		c.app.logger.Error("user delete", "error", err, "user", id)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  apiErrorMessage(err, "Could not delete the account"),
			"system_message": "Delete failed",
		}).Redirect("/users", fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account deleted",
	}).Redirect("/users", fiber.StatusSeeOther)
}

// redacted strips the password before the form echoes back.
func (c *UsersController) redacted(payload *UserForm) *UserForm {
	clone := *payload
	clone.Password = ""
	return &clone
}

func (c *UsersController) renderIndex(ctx router.Context, extra router.ViewContext) error {
	data := router.ViewContext{}
	for k, v := range extra {
		data[k] = v
	}

	users, err := c.app.api.ListUsers(ctx.Context(), credentialFrom(ctx))
	if err != nil {
		c.app.logger.Error("user list", "error", err)
		if _, ok := data["errors"]; !ok {
			data["errors"] = map[string]string{"api": apiErrorMessage(err, "Could not load accounts")}
		}
	}
	data["users"] = users
	data["roles"] = lrs.AllRoles()

	return render(ctx, "users", data)
}
