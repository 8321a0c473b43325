package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
)

// NotificationsController manages the lecturer's reminder delivery
// settings: channel toggles, provider config, and channel tests.
type NotificationsController struct {
	app *App
}

// Show renders the settings form, prefilled from the saved settings when
// any exist.
func (c *NotificationsController) Show(ctx router.Context) error {
	return c.renderPage(ctx, router.ViewContext{})
}

// Save validates the form and puts the full settings document to the API.
func (c *NotificationsController) Save(ctx router.Context) error {
	payload := new(NotificationForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("notification parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/notifications", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderPage(ctx, router.ViewContext{
			"record":     payload,
			"validation": lrs.FormatValidationErrorToMap(err),
		})
	}

	credential := credentialFrom(ctx)

	previous, err := c.app.api.GetNotificationSettings(ctx.Context(), credential)
	if err != nil {
		c.app.logger.Warn("notification settings fetch before save", "error", err)
	}

	if _, err := c.app.api.SaveNotificationSettings(ctx.Context(), credential, payload.Settings(previous)); err != nil {
		c.app.logger.Error("notification settings save", "error", err)
		return c.renderPage(ctx, router.ViewContext{
			"record": payload,
			"errors": map[string]string{"api": apiErrorMessage(err, "Could not save the settings")},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Settings saved",
	}).Redirect("/notifications", fiber.StatusSeeOther)
}

// Test asks the API to exercise one delivery channel and reports the
// outcome inline.
func (c *NotificationsController) Test(ctx router.Context) error {
	payload := new(NotificationTestForm)
	if err := ctx.Bind(payload); err != nil {
		c.app.logger.Error("notification test parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing form",
		}).Redirect("/notifications", fiber.StatusSeeOther)
	}

	if err := payload.Validate(); err != nil {
		return c.renderPage(ctx, router.ViewContext{
			"test_record": payload,
			"validation":  lrs.FormatValidationErrorToMap(err),
		})
	}

	result, err := c.app.api.TestNotificationChannel(ctx.Context(), credentialFrom(ctx), apiclient.NotificationTestRequest{
		Provider:  payload.Provider,
		TestEmail: payload.TestEmail,
		TestTo:    payload.TestTo,
	})
	if err != nil {
		c.app.logger.Error("notification channel test", "error", err, "provider", payload.Provider)
		return c.renderPage(ctx, router.ViewContext{
			"test_record": payload,
			"errors":      map[string]string{"api": apiErrorMessage(err, "Could not run the channel test")},
		})
	}

	return c.renderPage(ctx, router.ViewContext{
		"test_record": payload,
		"test_result": result,
	})
}

// renderPage fetches the saved settings and renders the page. Saved
// settings never preload the stored secrets into the test form.
func (c *NotificationsController) renderPage(ctx router.Context, extra router.ViewContext) error {
	data := router.ViewContext{}
	for k, v := range extra {
		data[k] = v
	}

	settings, err := c.app.api.GetNotificationSettings(ctx.Context(), credentialFrom(ctx))
	if err != nil {
		c.app.logger.Error("notification settings fetch", "error", err)
		if _, ok := data["errors"]; !ok {
			data["errors"] = map[string]string{"api": apiErrorMessage(err, "Could not load the settings")}
		}
	}
	data["settings"] = settings

	return render(ctx, "notifications", data)
}
