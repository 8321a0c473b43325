package apistub

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-router"
)

// LoginRequest is the credential exchange payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login verifies the email/password pair and issues a bearer token.
func (s *Server) Login(ctx router.Context) error {
	payload := &LoginRequest{}
	if err := ctx.Bind(payload); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return jsonError(ctx, router.StatusBadRequest, "email and password are required")
	}

	user, err := s.repos.Users().GetByIdentifier(ctx.Context(), payload.Email)
	if err != nil || user == nil {
		// Same response for unknown account and wrong password.
		return jsonError(ctx, router.StatusUnauthorized, "invalid email or password")
	}

	if err := ComparePasswordAndHash(payload.Password, user.PasswordHash); err != nil {
		return jsonError(ctx, router.StatusUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("failed to sign token for %s: %v", user.Email, err)
		return jsonError(ctx, router.StatusInternalServerError, "failed to issue token")
	}

	return ctx.JSON(router.StatusOK, map[string]string{"token": token})
}
