package apistub

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// EnrollmentRequest is the create/update payload for an enrollment.
type EnrollmentRequest struct {
	StudentID string `json:"studentId"`
	CourseID  string `json:"courseId"`
}

// Validate checks the enrollment payload.
func (r EnrollmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StudentID, validation.Required, is.UUID.Error("must be a valid id")),
		validation.Field(&r.CourseID, validation.Required, is.UUID.Error("must be a valid id")),
	)
}

// ListEnrollments returns enrollments for the acting lecturer's courses,
// with student and course records attached.
func (s *Server) ListEnrollments(ctx router.Context) error {
	actor := actorFrom(ctx)

	enrollments := []*Enrollment{}
	err := s.db.NewSelect().
		Model(&enrollments).
		Relation("Student").
		Relation("Course").
		Join("JOIN courses AS crs ON crs.id = enr.course_id").
		Where("crs.lecturer_id = ?", actor.Subject).
		Scan(ctx.Context())
	if err != nil {
		s.logger.Error("failed to list enrollments: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to fetch enrollments")
	}

	return ctx.JSON(router.StatusOK, enrollments)
}

// CreateEnrollment enrolls a student into one of the acting lecturer's
// courses. Duplicate enrollments are rejected.
func (s *Server) CreateEnrollment(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &EnrollmentRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	student, err := s.repos.Users().GetByID(ctx.Context(), payload.StudentID)
	if err != nil || student == nil || student.Role != "student" {
		return jsonError(ctx, router.StatusBadRequest, "student not found")
	}

	course, err := s.repos.Courses().GetByID(ctx.Context(), payload.CourseID)
	if err != nil || course == nil {
		return jsonError(ctx, router.StatusBadRequest, "course not found")
	}
	if course.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "course belongs to another lecturer")
	}

	exists, err := s.db.NewSelect().
		Model((*Enrollment)(nil)).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Exists(ctx.Context())
	if err != nil {
		s.logger.Error("failed to check enrollment: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to create enrollment")
	}
	if exists {
		return jsonError(ctx, router.StatusConflict, "student is already enrolled in this course")
	}

	enrollment, err := s.repos.Enrollments().Create(ctx.Context(), &Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
	})
	if err != nil {
		s.logger.Error("failed to create enrollment: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to create enrollment")
	}

	enrollment.Student = student
	enrollment.Course = course
	return ctx.JSON(router.StatusCreated, enrollment)
}

// UpdateEnrollment moves an enrollment to a different student or course.
func (s *Server) UpdateEnrollment(ctx router.Context) error {
	actor := actorFrom(ctx)

	payload := &EnrollmentRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	enrollment, err := s.repos.Enrollments().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || enrollment == nil {
		return jsonError(ctx, router.StatusNotFound, "enrollment not found")
	}

	course, err := s.repos.Courses().GetByID(ctx.Context(), payload.CourseID)
	if err != nil || course == nil {
		return jsonError(ctx, router.StatusBadRequest, "course not found")
	}
	if course.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "course belongs to another lecturer")
	}

	studentID, err := uuid.Parse(payload.StudentID)
	if err != nil {
		return jsonError(ctx, router.StatusBadRequest, "student not found")
	}

	enrollment.StudentID = studentID
	enrollment.CourseID = course.ID

	updated, err := s.repos.Enrollments().Update(ctx.Context(), enrollment)
	if err != nil {
		s.logger.Error("failed to update enrollment: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to update enrollment")
	}

	return ctx.JSON(router.StatusOK, updated)
}

// DeleteEnrollment removes an enrollment from one of the acting lecturer's
// courses.
func (s *Server) DeleteEnrollment(ctx router.Context) error {
	actor := actorFrom(ctx)

	enrollment, err := s.repos.Enrollments().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || enrollment == nil {
		return jsonError(ctx, router.StatusNotFound, "enrollment not found")
	}

	course, err := s.repos.Courses().GetByID(ctx.Context(), enrollment.CourseID.String())
	if err == nil && course != nil && course.LecturerID.String() != actor.Subject {
		return jsonError(ctx, router.StatusForbidden, "course belongs to another lecturer")
	}

	if _, err := s.db.NewDelete().
		Model((*Enrollment)(nil)).
		Where("id = ?", enrollment.ID).
		Exec(ctx.Context()); err != nil {
		s.logger.Error("failed to delete enrollment: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to delete enrollment")
	}

	return ctx.JSON(router.StatusOK, map[string]string{"message": "enrollment deleted"})
}
