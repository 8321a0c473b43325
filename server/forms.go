package server

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	lrs "github.com/goliatone/lrs-client"
	"github.com/goliatone/lrs-client/apiclient"
	"github.com/nyaruka/phonenumbers"
)

// CourseForm is the create/update payload for a course.
type CourseForm struct {
	Code        string `form:"code" json:"code"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

// Validate runs the form rules.
func (f CourseForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Code, validation.Required, validation.Length(2, 32)),
		validation.Field(&f.Title, validation.Required, validation.Length(2, 255)),
		validation.Field(&f.Description, validation.Length(0, 2000)),
	)
}

// ScheduleForm is the create/update payload for a schedule.
type ScheduleForm struct {
	CourseTitle string `form:"course_title" json:"courseTitle"`
	CourseCode  string `form:"course_code" json:"courseCode"`
	Date        string `form:"date" json:"date"`
	Time        string `form:"time" json:"time"`
	Venue       string `form:"venue" json:"venue"`
}

// Validate runs the form rules. Date and Time stay raw strings; the rules
// only pin their shape.
func (f ScheduleForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CourseTitle, validation.Required),
		validation.Field(&f.CourseCode, validation.Required),
		validation.Field(&f.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&f.Time, validation.Required, validation.Date("15:04")),
		validation.Field(&f.Venue, validation.Required),
	)
}

// EnrollmentForm is the payload enrolling a student into a course.
type EnrollmentForm struct {
	StudentID string `form:"student_id" json:"studentId"`
	CourseID  string `form:"course_id" json:"courseId"`
}

// Validate runs the form rules.
func (f EnrollmentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.StudentID, validation.Required, is.UUID),
		validation.Field(&f.CourseID, validation.Required, is.UUID),
	)
}

// UserForm is the account-creation payload.
type UserForm struct {
	FirstName string `form:"first_name" json:"firstName"`
	LastName  string `form:"last_name" json:"lastName"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone" json:"phone"`
	Password  string `form:"password" json:"password"`
	Role      string `form:"role" json:"role"`
}

// Validate runs the form rules. Phone is optional; when present it must be
// a dialable number.
func (f UserForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName, validation.Required),
		validation.Field(&f.LastName, validation.Required),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Phone, validation.By(validPhone)),
		validation.Field(&f.Password, validation.Required, validation.Length(5, 128)),
		validation.Field(&f.Role, validation.Required, validation.By(validRole)),
	)
}

// NotificationForm is the flattened settings form. Channel toggles arrive
// as checkbox values; provider config fields are grouped by prefix.
type NotificationForm struct {
	EmailEnabled    bool `form:"channel_email" json:"channel_email"`
	SMSEnabled      bool `form:"channel_sms" json:"channel_sms"`
	PushEnabled     bool `form:"channel_push" json:"channel_push"`
	CalendarEnabled bool `form:"channel_calendar" json:"channel_calendar"`

	SMTPHost  string `form:"smtp_host" json:"smtp_host"`
	SMTPPort  int    `form:"smtp_port" json:"smtp_port"`
	SMTPUser  string `form:"smtp_username" json:"smtp_username"`
	SMTPPass  string `form:"smtp_password" json:"smtp_password"`
	FromName  string `form:"from_name" json:"from_name"`
	FromEmail string `form:"from_email" json:"from_email"`

	TwilioSID   string `form:"twilio_sid" json:"twilio_sid"`
	TwilioToken string `form:"twilio_token" json:"twilio_token"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`

	FirebaseServiceAccountJSON string `form:"firebase_service_account_json" json:"firebase_service_account_json"`

	GoogleClientID     string `form:"google_client_id" json:"google_client_id"`
	GoogleClientSecret string `form:"google_client_secret" json:"google_client_secret"`
	RefreshToken       string `form:"refresh_token" json:"refresh_token"`
	RedirectURI        string `form:"redirect_uri" json:"redirect_uri"`
}

// Validate requires the config for each enabled channel.
func (f NotificationForm) Validate() error {
	fields := []*validation.FieldRules{
		validation.Field(&f.PhoneNumber, validation.By(validPhoneWhen(f.SMSEnabled))),
		validation.Field(&f.RedirectURI, is.URL),
	}

	if f.EmailEnabled {
		fields = append(fields,
			validation.Field(&f.SMTPHost, validation.Required),
			validation.Field(&f.FromEmail, validation.Required, is.Email),
		)
	}

	// Secret fields stay optional: blanks mean "keep the stored value".
	if f.SMSEnabled {
		fields = append(fields,
			validation.Field(&f.TwilioSID, validation.Required),
		)
	}

	if f.CalendarEnabled {
		fields = append(fields,
			validation.Field(&f.GoogleClientID, validation.Required),
		)
	}

	return validation.ValidateStruct(&f, fields...)
}

// Settings folds the flat form back into the API payload, preserving the
// owner fields of the previous settings when present.
func (f NotificationForm) Settings(previous *apiclient.NotificationSettings) apiclient.NotificationSettings {
	settings := apiclient.NotificationSettings{}
	if previous != nil {
		settings = *previous
	}

	settings.Channels.Email = f.EmailEnabled
	settings.Channels.SMS = f.SMSEnabled
	settings.Channels.Push = f.PushEnabled
	settings.Channels.Calendar = f.CalendarEnabled

	settings.EmailConfig.Provider = "smtp"
	settings.EmailConfig.SMTPHost = f.SMTPHost
	settings.EmailConfig.SMTPPort = f.SMTPPort
	settings.EmailConfig.Username = f.SMTPUser
	settings.EmailConfig.FromName = f.FromName
	settings.EmailConfig.FromEmail = f.FromEmail

	settings.SMSConfig.TwilioSID = f.TwilioSID
	settings.SMSConfig.PhoneNumber = f.PhoneNumber

	settings.CalendarConfig.GoogleClientID = f.GoogleClientID
	settings.CalendarConfig.RefreshToken = f.RefreshToken
	settings.CalendarConfig.RedirectURI = f.RedirectURI

	// Secret fields are never echoed back into the form, so a blank
	// submission keeps the stored value.
	if f.SMTPPass != "" {
		settings.EmailConfig.Password = f.SMTPPass
	}
	if f.TwilioToken != "" {
		settings.SMSConfig.TwilioToken = f.TwilioToken
	}
	if f.FirebaseServiceAccountJSON != "" {
		settings.PushConfig.FirebaseServiceAccountJSON = f.FirebaseServiceAccountJSON
	}
	if f.GoogleClientSecret != "" {
		settings.CalendarConfig.GoogleClientSecret = f.GoogleClientSecret
	}

	return settings
}

// NotificationTestForm triggers a channel test.
type NotificationTestForm struct {
	Provider  string `form:"provider" json:"provider"`
	TestEmail string `form:"test_email" json:"test_email"`
	TestTo    string `form:"test_to" json:"test_to"`
}

// Validate runs the form rules.
func (f NotificationTestForm) Validate() error {
	fields := []*validation.FieldRules{
		validation.Field(&f.Provider, validation.Required,
			validation.In("email", "sms", "push", "calendar")),
	}

	switch f.Provider {
	case "email":
		fields = append(fields,
			validation.Field(&f.TestEmail, validation.Required, is.Email),
		)
	case "sms":
		fields = append(fields,
			validation.Field(&f.TestTo, validation.Required, validation.By(validPhone)),
		)
	}

	return validation.ValidateStruct(&f, fields...)
}

func validPhone(value any) error {
	return validPhoneWhen(true)(value)
}

func validPhoneWhen(enabled bool) validation.RuleFunc {
	return func(value any) error {
		phone, _ := value.(string)
		if !enabled || phone == "" {
			return nil
		}
		num, err := phonenumbers.Parse(phone, "US")
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return errors.New("must be a valid phone number")
		}
		return nil
	}
}

func validRole(value any) error {
	role, _ := value.(string)
	if !lrs.Role(role).IsValid() {
		return errors.New("must be one of: student, lecturer, super_admin")
	}
	return nil
}
