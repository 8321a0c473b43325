package apiclient

// Course is a course a lecturer teaches.
type Course struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	LecturerID  string `json:"lecturerId,omitempty"`
}

// CourseInput is the create/update payload for a course.
type CourseInput struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Schedule is one lecture slot. Date and Time are the raw form values the
// API stores ("2006-01-02" and "15:04"); the client does not reinterpret
// them across time zones.
type Schedule struct {
	ID          string `json:"id"`
	CourseTitle string `json:"courseTitle"`
	CourseCode  string `json:"courseCode"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	LecturerID  string `json:"lecturerId,omitempty"`
}

// ScheduleInput is the create/update payload for a schedule.
type ScheduleInput struct {
	CourseTitle string `json:"courseTitle"`
	CourseCode  string `json:"courseCode"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
}

// User is an account record as the API returns it. Password never comes
// back from the API.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// FullName joins the name parts, tolerating either being empty.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// UserInput is the account-creation payload.
type UserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId"`
	CourseID  string  `json:"courseId"`
	Student   *User   `json:"student,omitempty"`
	Course    *Course `json:"course,omitempty"`
}

// EnrollmentInput is the create/update payload for an enrollment.
type EnrollmentInput struct {
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
}

// ChannelToggles is the per-channel on/off state for reminders.
type ChannelToggles struct {
	Email    bool `json:"email"`
	SMS      bool `json:"sms"`
	Push     bool `json:"push"`
	Calendar bool `json:"calendar"`
}

// EmailConfig carries SMTP delivery settings.
type EmailConfig struct {
	Provider  string `json:"provider"`
	SMTPHost  string `json:"smtp_host"`
	SMTPPort  int    `json:"smtp_port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
}

// SMSConfig carries Twilio delivery settings.
type SMSConfig struct {
	TwilioSID   string `json:"twilio_sid"`
	TwilioToken string `json:"twilio_token"`
	PhoneNumber string `json:"phone_number"`
}

// PushConfig carries Firebase delivery settings.
type PushConfig struct {
	FirebaseServiceAccountJSON string `json:"firebase_service_account_json"`
}

// CalendarConfig carries Google Calendar OAuth settings.
type CalendarConfig struct {
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	RefreshToken       string `json:"refresh_token"`
	RedirectURI        string `json:"redirect_uri"`
}

// NotificationSettings is the full reminder configuration for one owner.
type NotificationSettings struct {
	OwnerType      string         `json:"owner_type"`
	OwnerID        string         `json:"owner_id"`
	Channels       ChannelToggles `json:"channels"`
	EmailConfig    EmailConfig    `json:"email_config"`
	SMSConfig      SMSConfig      `json:"sms_config"`
	PushConfig     PushConfig     `json:"push_config"`
	CalendarConfig CalendarConfig `json:"calendar_config"`
}

// NotificationTestRequest asks the API to exercise one delivery channel.
// TestEmail is required for the email provider, TestTo for sms.
type NotificationTestRequest struct {
	Provider  string `json:"provider"`
	TestEmail string `json:"test_email,omitempty"`
	TestTo    string `json:"test_to,omitempty"`
}

// NotificationTestResult reports the outcome of a channel test.
type NotificationTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
