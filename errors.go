package lrs

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeCredentialMalformed flags structural decode failures
	TextCodeCredentialMalformed = "CREDENTIAL_MALFORMED"
	// TextCodeUnauthenticated flags requests with no credential present
	TextCodeUnauthenticated = "UNAUTHENTICATED"
	// TextCodeUnauthorized flags authenticated requests whose role is not permitted
	TextCodeUnauthorized = "UNAUTHORIZED"
)

// ErrCredentialMalformed is returned when an Identity cannot be recovered from
// a credential string: malformed structure, invalid encoding, invalid JSON, or
// missing required claims.
var ErrCredentialMalformed = goerrors.New("unable to decode credential", goerrors.CategoryAuth).
	WithTextCode(TextCodeCredentialMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthenticated is returned when a protected view is requested with no
// credential present.
var ErrUnauthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthorized is returned when the authenticated role is not in a view's
// allow list.
var ErrUnauthorized = goerrors.New("role not permitted", goerrors.CategoryAuthz).
	WithTextCode(TextCodeUnauthorized).
	WithCode(goerrors.CodeForbidden)

// IsDecodeError will check for credential decode failures
func IsDecodeError(err error) bool {
	return hasTextCode(err, TextCodeCredentialMalformed)
}

// IsUnauthenticatedError will check for missing-credential failures
func IsUnauthenticatedError(err error) bool {
	return hasTextCode(err, TextCodeUnauthenticated)
}

// IsUnauthorizedError will check for role-not-permitted failures
func IsUnauthorizedError(err error) bool {
	return hasTextCode(err, TextCodeUnauthorized)
}

func hasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == textCode
	}
	return false
}

func decodeError(reason string, err error) error {
	if err == nil {
		return ErrCredentialMalformed.Clone().WithMetadata(map[string]any{
			"reason": reason,
		})
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, "unable to decode credential").
		WithTextCode(TextCodeCredentialMalformed).
		WithCode(goerrors.CodeUnauthorized).
		WithMetadata(map[string]any{
			"reason": reason,
		})
}
