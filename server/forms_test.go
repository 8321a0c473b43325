package server_test

import (
	"testing"

	"github.com/goliatone/lrs-client/apiclient"
	"github.com/goliatone/lrs-client/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseFormValidation(t *testing.T) {
	valid := server.CourseForm{Code: "CSC101", Title: "Intro to Computing"}
	assert.NoError(t, valid.Validate())

	missing := server.CourseForm{Code: "CSC101"}
	assert.Error(t, missing.Validate())

	short := server.CourseForm{Code: "C", Title: "Intro"}
	assert.Error(t, short.Validate())
}

func TestScheduleFormValidation(t *testing.T) {
	valid := server.ScheduleForm{
		CourseTitle: "Algorithms",
		CourseCode:  "CSC305",
		Date:        "2026-09-09",
		Time:        "14:00",
		Venue:       "Lab 2",
	}
	assert.NoError(t, valid.Validate())

	badDate := valid
	badDate.Date = "09/09/2026"
	assert.Error(t, badDate.Validate())

	badTime := valid
	badTime.Time = "2pm"
	assert.Error(t, badTime.Validate())
}

func TestUserFormValidation(t *testing.T) {
	valid := server.UserForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@uni.test",
		Password:  "lecture123",
		Role:      "lecturer",
	}
	assert.NoError(t, valid.Validate())

	withPhone := valid
	withPhone.Phone = "+14155552671"
	assert.NoError(t, withPhone.Validate())

	badPhone := valid
	badPhone.Phone = "not-a-number"
	assert.Error(t, badPhone.Validate())

	badRole := valid
	badRole.Role = "registrar"
	assert.Error(t, badRole.Validate())
}

func TestNotificationFormRequiresEnabledChannelConfig(t *testing.T) {
	disabled := server.NotificationForm{}
	assert.NoError(t, disabled.Validate())

	email := server.NotificationForm{EmailEnabled: true}
	assert.Error(t, email.Validate())

	email.SMTPHost = "smtp.uni.test"
	email.FromEmail = "alerts@uni.test"
	assert.NoError(t, email.Validate())

	sms := server.NotificationForm{SMSEnabled: true}
	assert.Error(t, sms.Validate())

	sms.TwilioSID = "AC123"
	sms.PhoneNumber = "+14155552671"
	assert.NoError(t, sms.Validate())
}

func TestNotificationFormKeepsStoredSecrets(t *testing.T) {
	previous := &apiclient.NotificationSettings{
		OwnerType: "lecturer",
		OwnerID:   "u-lect",
	}
	previous.EmailConfig.Password = "stored-secret"
	previous.SMSConfig.TwilioToken = "stored-token"

	form := server.NotificationForm{
		EmailEnabled: true,
		SMTPHost:     "smtp.uni.test",
		FromEmail:    "alerts@uni.test",
	}

	settings := form.Settings(previous)
	require.Equal(t, "lecturer", settings.OwnerType)
	assert.Equal(t, "stored-secret", settings.EmailConfig.Password)
	assert.Equal(t, "stored-token", settings.SMSConfig.TwilioToken)

	form.SMTPPass = "new-secret"
	settings = form.Settings(previous)
	assert.Equal(t, "new-secret", settings.EmailConfig.Password)
}

func TestNotificationTestFormValidation(t *testing.T) {
	email := server.NotificationTestForm{Provider: "email", TestEmail: "ada@uni.test"}
	assert.NoError(t, email.Validate())

	emailMissingTarget := server.NotificationTestForm{Provider: "email"}
	assert.Error(t, emailMissingTarget.Validate())

	sms := server.NotificationTestForm{Provider: "sms", TestTo: "+14155552671"}
	assert.NoError(t, sms.Validate())

	push := server.NotificationTestForm{Provider: "push"}
	assert.NoError(t, push.Validate())

	unknown := server.NotificationTestForm{Provider: "carrier-pigeon"}
	assert.Error(t, unknown.Validate())
}
