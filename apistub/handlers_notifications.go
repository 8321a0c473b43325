package apistub

import (
	"database/sql"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

var notificationProviders = []any{"email", "sms", "push", "calendar"}

// NotificationTestRequest asks the stub to exercise one delivery channel.
type NotificationTestRequest struct {
	Provider  string `json:"provider"`
	TestEmail string `json:"test_email"`
	TestTo    string `json:"test_to"`
}

// Validate checks the channel test payload.
func (r NotificationTestRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Provider, validation.Required, validation.In(notificationProviders...)),
	)
}

// GetNotificationSettings returns the acting user's saved configuration,
// 404 when nothing has been saved yet.
func (s *Server) GetNotificationSettings(ctx router.Context) error {
	actor := actorFrom(ctx)

	settings := &NotificationSettings{}
	err := s.db.NewSelect().
		Model(settings).
		Where("owner_id = ?", actor.Subject).
		Scan(ctx.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonError(ctx, router.StatusNotFound, "no settings saved")
		}
		s.logger.Error("failed to fetch notification settings: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to fetch settings")
	}

	return ctx.JSON(router.StatusOK, settings)
}

// SaveNotificationSettings upserts the acting user's configuration. The
// owner is always taken from the token, never from the payload.
func (s *Server) SaveNotificationSettings(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &NotificationSettings{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}

	ownerID, err := uuid.Parse(actor.Subject)
	if err != nil {
		return jsonError(ctx, router.StatusUnauthorized, "invalid token subject")
	}
	payload.OwnerType = "user"
	payload.OwnerID = ownerID

	existing := &NotificationSettings{}
	err = s.db.NewSelect().
		Model(existing).
		Where("owner_id = ?", ownerID).
		Scan(ctx.Context())
	switch {
	case err == nil:
		payload.ID = existing.ID
		if _, err := s.db.NewUpdate().
			Model(payload).
			WherePK().
			Exec(ctx.Context()); err != nil {
			s.logger.Error("failed to update notification settings: %v", err)
			return jsonError(ctx, router.StatusInternalServerError, "failed to save settings")
		}
	case errors.Is(err, sql.ErrNoRows):
		saved, err := s.repos.NotificationSettings().Create(ctx.Context(), payload)
		if err != nil {
			s.logger.Error("failed to create notification settings: %v", err)
			return jsonError(ctx, router.StatusInternalServerError, "failed to save settings")
		}
		payload = saved
	default:
		s.logger.Error("failed to fetch notification settings: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to save settings")
	}

	return ctx.JSON(router.StatusOK, payload)
}

// TestNotificationChannel simulates a delivery on one channel against the
// saved configuration. No provider is actually contacted.
func (s *Server) TestNotificationChannel(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &NotificationTestRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	settings := &NotificationSettings{}
	err := s.db.NewSelect().
		Model(settings).
		Where("owner_id = ?", actor.Subject).
		Scan(ctx.Context())
	if err != nil {
		return jsonError(ctx, router.StatusBadRequest, "save your settings before running a test")
	}

	result := s.simulateChannelTest(settings, payload)
	return ctx.JSON(router.StatusOK, result)
}

func (s *Server) simulateChannelTest(settings *NotificationSettings, req *NotificationTestRequest) map[string]any {
	fail := func(msg string) map[string]any {
		return map[string]any{"success": false, "message": msg}
	}

	switch req.Provider {
	case "email":
		if !settings.Channels.Email {
			return fail("email channel is disabled")
		}
		if settings.EmailConfig.SMTPHost == "" || settings.EmailConfig.FromEmail == "" {
			return fail("smtp host and from address are required")
		}
		if req.TestEmail == "" {
			return fail("test_email is required")
		}
		return map[string]any{
			"success": true,
			"message": fmt.Sprintf("test email sent to %s via %s", req.TestEmail, settings.EmailConfig.SMTPHost),
		}
	case "sms":
		if !settings.Channels.SMS {
			return fail("sms channel is disabled")
		}
		if settings.SMSConfig.TwilioSID == "" || settings.SMSConfig.TwilioToken == "" {
			return fail("twilio credentials are required")
		}
		num, err := phonenumbers.Parse(req.TestTo, "US")
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return fail("test_to must be a valid phone number")
		}
		return map[string]any{
			"success": true,
			"message": fmt.Sprintf("test sms sent to %s", phonenumbers.Format(num, phonenumbers.E164)),
		}
	case "push":
		if !settings.Channels.Push {
			return fail("push channel is disabled")
		}
		if settings.PushConfig.FirebaseServiceAccountJSON == "" {
			return fail("firebase service account is required")
		}
		return map[string]any{"success": true, "message": "test push notification sent"}
	case "calendar":
		if !settings.Channels.Calendar {
			return fail("calendar channel is disabled")
		}
		if settings.CalendarConfig.GoogleClientID == "" || settings.CalendarConfig.RefreshToken == "" {
			return fail("google oauth client and refresh token are required")
		}
		return map[string]any{"success": true, "message": "test calendar event created"}
	}
	return fail("unknown provider")
}
