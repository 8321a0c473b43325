// Package apistub is a development stand-in for the remote Lecture Reminder
// System API. It serves the same wire surface the web client consumes, backed
// by sqlite, so the full login/browse/manage loop runs without the real
// backend. It is not a production service.
package apistub

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is an account record. PasswordHash never leaves the stub.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	FirstName    string     `bun:"first_name,notnull" json:"firstName"`
	LastName     string     `bun:"last_name,notnull" json:"lastName"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	Phone        string     `bun:"phone_number" json:"phone,omitempty"`
	Role         string     `bun:"user_role,notnull" json:"role"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"-"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"-"`
}

// Course is a course owned by one lecturer.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:crs"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Code        string     `bun:"code,notnull" json:"code"`
	Title       string     `bun:"title,notnull" json:"title"`
	Description string     `bun:"description" json:"description,omitempty"`
	LecturerID  uuid.UUID  `bun:"lecturer_id,notnull,type:uuid" json:"lecturerId"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"-"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"-"`
}

// Schedule is one lecture slot. Date and Time are stored as the raw form
// values ("2006-01-02", "15:04"); the stub never reinterprets them.
type Schedule struct {
	bun.BaseModel `bun:"table:schedules,alias:sch"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	CourseTitle string     `bun:"course_title,notnull" json:"courseTitle"`
	CourseCode  string     `bun:"course_code,notnull" json:"courseCode"`
	Date        string     `bun:"date,notnull" json:"date"`
	Time        string     `bun:"time,notnull" json:"time"`
	Venue       string     `bun:"venue,notnull" json:"venue"`
	LecturerID  uuid.UUID  `bun:"lecturer_id,notnull,type:uuid" json:"lecturerId"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"-"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"-"`
}

// Enrollment links a student to a course. Student and Course are loaded on
// list responses so the client can render names without extra round trips.
type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments,alias:enr"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	StudentID uuid.UUID  `bun:"student_id,notnull,type:uuid" json:"studentId"`
	CourseID  uuid.UUID  `bun:"course_id,notnull,type:uuid" json:"courseId"`
	Student   *User      `bun:"rel:belongs-to,join:student_id=id" json:"student,omitempty"`
	Course    *Course    `bun:"rel:belongs-to,join:course_id=id" json:"course,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"-"`
}

// ChannelToggles is the per-channel on/off state.
type ChannelToggles struct {
	Email    bool `json:"email"`
	SMS      bool `json:"sms"`
	Push     bool `json:"push"`
	Calendar bool `json:"calendar"`
}

// EmailConfig carries SMTP settings.
type EmailConfig struct {
	Provider  string `json:"provider"`
	SMTPHost  string `json:"smtp_host"`
	SMTPPort  int    `json:"smtp_port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
}

// SMSConfig carries Twilio settings.
type SMSConfig struct {
	TwilioSID   string `json:"twilio_sid"`
	TwilioToken string `json:"twilio_token"`
	PhoneNumber string `json:"phone_number"`
}

// PushConfig carries Firebase settings.
type PushConfig struct {
	FirebaseServiceAccountJSON string `json:"firebase_service_account_json"`
}

// CalendarConfig carries Google OAuth settings.
type CalendarConfig struct {
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	RefreshToken       string `json:"refresh_token"`
	RedirectURI        string `json:"redirect_uri"`
}

// NotificationSettings is one owner's reminder configuration. The config
// blobs are stored as JSON columns.
type NotificationSettings struct {
	bun.BaseModel `bun:"table:notification_settings,alias:nst"`

	ID             uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"-"`
	OwnerType      string         `bun:"owner_type,notnull" json:"owner_type"`
	OwnerID        uuid.UUID      `bun:"owner_id,notnull,unique,type:uuid" json:"owner_id"`
	Channels       ChannelToggles `bun:"channels" json:"channels"`
	EmailConfig    EmailConfig    `bun:"email_config" json:"email_config"`
	SMSConfig      SMSConfig      `bun:"sms_config" json:"sms_config"`
	PushConfig     PushConfig     `bun:"push_config" json:"push_config"`
	CalendarConfig CalendarConfig `bun:"calendar_config" json:"calendar_config"`
	UpdatedAt      *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"-"`
}

// Models lists every bun model the stub registers, in dependency order.
func Models() []any {
	return []any{
		(*User)(nil),
		(*Course)(nil),
		(*Schedule)(nil),
		(*Enrollment)(nil),
		(*NotificationSettings)(nil),
	}
}
