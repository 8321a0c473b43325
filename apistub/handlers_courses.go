package apistub

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// CourseRequest is the create/update payload for a course.
type CourseRequest struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks the course payload.
func (r CourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 32)),
		validation.Field(&r.Title, validation.Required, validation.Length(2, 255)),
	)
}

// ListCourses returns the acting lecturer's courses.
func (s *Server) ListCourses(ctx router.Context) error {
	actor := actorFrom(ctx)

	courses := []*Course{}
	err := s.db.NewSelect().
		Model(&courses).
		Where("lecturer_id = ?", actor.Subject).
		Order("code ASC").
		Scan(ctx.Context())
	if err != nil {
		s.logger.Error("failed to list courses: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to fetch courses")
	}

	return ctx.JSON(router.StatusOK, courses)
}

// CreateCourse creates a course owned by the acting lecturer.
func (s *Server) CreateCourse(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &CourseRequest{}
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

	course, err := s.repos.Courses().Create(ctx.Context(), &Course{
		Code:        payload.Code,
		Title:       payload.Title,
		Description: payload.Description,
		LecturerID:  lecturerID,
	})
	if err != nil {
		s.logger.Error("failed to create course: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to create course")
	}

	return ctx.JSON(router.StatusCreated, course)
}

// UpdateCourse replaces a course's fields. Lecturers can only touch their
// own courses.
func (s *Server) UpdateCourse(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &CourseRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	course, err := s.repos.Courses().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || course == nil {
		return jsonError(ctx, router.StatusNotFound, "course not found")
	}
	if course.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "course belongs to another lecturer")
	}

	course.Code = payload.Code
	course.Title = payload.Title
	course.Description = payload.Description

	updated, err := s.repos.Courses().Update(ctx.Context(), course)
	if err != nil {
		s.logger.Error("failed to update course: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to update course")
	}

	return ctx.JSON(router.StatusOK, updated)
}

// DeleteCourse removes a course and its enrollments.
func (s *Server) DeleteCourse(ctx router.Context) error {
	actor := actorFrom(ctx)

	course, err := s.repos.Courses().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || course == nil {
		return jsonError(ctx, router.StatusNotFound, "course not found")
	}
	if course.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "course belongs to another lecturer")
	}

	if _, err := s.db.NewDelete().
		Model((*Enrollment)(nil)).
		Where("course_id = ?", course.ID).
		Exec(ctx.Context()); err != nil {
		s.logger.Error("failed to delete course enrollments: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to delete course")
	}

	if _, err := s.db.NewDelete().
		Model((*Course)(nil)).
		Where("id = ?", course.ID).
		Exec(ctx.Context()); err != nil {
		s.logger.Error("failed to delete course: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to delete course")
	}

	return ctx.JSON(router.StatusOK, map[string]string{"message": "course deleted"})
}
