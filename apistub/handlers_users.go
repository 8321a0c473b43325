package apistub

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-router"
	lrs "github.com/goliatone/lrs-client"
	"github.com/nyaruka/phonenumbers"
)

// UserRequest is the account-creation payload.
type UserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Validate checks the account payload. Phone is optional but must parse as
// a real number when present.
func (r UserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.By(validPhone)),
		validation.Field(&r.Password, validation.Required, validation.Length(5, 128)),
		validation.Field(&r.Role, validation.Required, validation.By(validRole)),
	)
}

func validPhone(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}
	num, err := phonenumbers.Parse(phone, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

func validRole(value any) error {
	role, _ := value.(string)
	if !lrs.Role(role).IsValid() {
		return errors.New("must be one of: student, lecturer, super_admin")
	}
	return nil
}

// ListUsers returns every account, without password hashes.
func (s *Server) ListUsers(ctx router.Context) error {
	users := []*User{}
	err := s.db.NewSelect().
		Model(&users).
		Order("email ASC").
		Scan(ctx.Context())
	if err != nil {
		s.logger.Error("failed to list users: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to fetch users")
	}

	return ctx.JSON(router.StatusOK, users)
}

// CreateUser provisions a new account.
func (s *Server) CreateUser(ctx router.Context) error {
	payload := &UserRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, err.Error())
	}

	if existing, err := s.repos.Users().GetByIdentifier(ctx.Context(), payload.Email); err == nil && existing != nil {
		return jsonError(ctx, router.StatusConflict, "an account with this email already exists")
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("failed to hash password: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to create account")
	}

	user, err := s.repos.Users().Create(ctx.Context(), &User{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Role:         payload.Role,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error("failed to create user: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to create account")
	}

	return ctx.JSON(router.StatusCreated, user)
}

// DeleteUser removes an account and its enrollments. The acting super
// admin cannot delete itself.
func (s *Server) DeleteUser(ctx router.Context) error {
	actor := actorFrom(ctx)

	user, err := s.repos.Users().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil || user == nil {
		return jsonError(ctx, router.StatusNotFound, "user not found")
	}
	if user.ID.String() == actor.Subject {
		return jsonError(ctx, router.StatusBadRequest, "cannot delete your own account")
	}

	if _, err := s.db.NewDelete().
		Model((*Enrollment)(nil)).
		Where("student_id = ?", user.ID).
		Exec(ctx.Context()); err != nil {
		s.logger.Error("failed to delete user enrollments: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to delete user")
	}

	if _, err := s.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", user.ID).
		Exec(ctx.Context()); err != nil {
		s.logger.Error("failed to delete user: %v", err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to delete user")
	}

	return ctx.JSON(router.StatusOK, map[string]string{"message": "user deleted"})
}
