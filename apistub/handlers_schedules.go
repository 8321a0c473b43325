package apistub

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// ScheduleRequest is the create/update payload for a schedule. Date and
// Time arrive as the raw form values.
type ScheduleRequest struct {
	CourseTitle string `json:"courseTitle"`
	CourseCode  string `json:"courseCode"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
}

// Validate checks the schedule payload.
func (r ScheduleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseTitle, validation.Required),
		validation.Field(&r.CourseCode, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Time, validation.Required, validation.Date("15:04")),
		validation.Field(&r.Venue, validation.Required),
	)
}

// ListSchedules returns every schedule. Public.
func (s *Server) ListSchedules(ctx router.Context) error {
	schedules := []*Schedule{}
	err := s.db.NewSelect().
		Model(&schedules).
		Order("date ASC", "time ASC").
		Scan(ctx.Context())
	if err != nil {
		s.logger.Error("failed to list schedules: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to fetch schedules")
	}

	return ctx.JSON(router.StatusOK, schedules)
}

// ListLecturerSchedules returns one lecturer's schedules.
func (s *Server) ListLecturerSchedules(ctx router.Context) error {
	schedules := []*Schedule{}
	err := s.db.NewSelect().
		Model(&schedules).
		Where("lecturer_id = ?", ctx.Param("id")).
		Order("date ASC", "time ASC").
		Scan(ctx.Context())
	if err != nil {
		s.logger.Error("failed to list lecturer schedules: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to fetch schedules")
	}

	return ctx.JSON(router.StatusOK, schedules)
}

// CreateSchedule creates a schedule owned by the acting lecturer.
func (s *Server) CreateSchedule(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &ScheduleRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	lecturerID, err := uuid.Parse(actor.Subject)
	if err != nil {
		return jsonError(ctx, router.StatusUnauthorized, "invalid token subject")
	}

	schedule, err := s.repos.Schedules().Create(ctx.Context(), &Schedule{
		CourseTitle: payload.CourseTitle,
		CourseCode:  payload.CourseCode,
		Date:        payload.Date,
		Time:        payload.Time,
		Venue:       payload.Venue,
		LecturerID:  lecturerID,
	})
	if err != nil {
		s.logger.Error("failed to create schedule: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to create schedule")
	}

	return ctx.JSON(router.StatusCreated, schedule)
}

// UpdateSchedule replaces a schedule's fields. Lecturers can only touch
// their own schedules.
func (s *Server) UpdateSchedule(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &ScheduleRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	schedule, err := s.repos.Schedules().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || schedule == nil {
		return jsonError(ctx, router.StatusNotFound, "schedule not found")
	}
	if schedule.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "schedule belongs to another lecturer")
	}

	schedule.CourseTitle = payload.CourseTitle
	schedule.CourseCode = payload.CourseCode
	schedule.Date = payload.Date
	schedule.Time = payload.Time
	schedule.Venue = payload.Venue

	updated, err := s.repos.Schedules().Update(ctx.Context(), schedule)
	if err != nil {
		s.logger.Error("failed to update schedule: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to update schedule")
	}

	return ctx.JSON(router.StatusOK, updated)
}

// DeleteSchedule removes a schedule.
func (s *Server) DeleteSchedule(ctx router.Context) error {
	actor := actorFrom(ctx)

	schedule, err := s.repos.Schedules().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || schedule == nil {
		return jsonError(ctx, router.StatusNotFound, "schedule not found")
	}
	if schedule.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "schedule belongs to another lecturer")
	}

	if _, err := s.db.NewDelete().
		Model((*Schedule)(nil)).
		Where("id = ?", schedule.ID).
		Exec(ctx.Context()); err != nil {
		s.logger.Error("failed to delete schedule: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to delete schedule")
	}

	return ctx.JSON(router.StatusOK, map[string]string{"message": "schedule deleted"})
}
