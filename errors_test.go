package lrs_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	lrs "github.com/goliatone/lrs-client"
	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	assert.Equal(t, goerrors.CategoryAuth, lrs.ErrCredentialMalformed.Category)
	assert.Equal(t, lrs.TextCodeCredentialMalformed, lrs.ErrCredentialMalformed.TextCode)

	assert.Equal(t, goerrors.CategoryAuth, lrs.ErrUnauthenticated.Category)
	assert.Equal(t, lrs.TextCodeUnauthenticated, lrs.ErrUnauthenticated.TextCode)

	assert.Equal(t, goerrors.CategoryAuthz, lrs.ErrUnauthorized.Category)
	assert.Equal(t, lrs.TextCodeUnauthorized, lrs.ErrUnauthorized.TextCode)
}

func TestErrorPredicates(t *testing.T) {
	_, decodeErr := lrs.DecodeIdentity("not-a-token")

	assert.True(t, lrs.IsDecodeError(decodeErr))
	assert.False(t, lrs.IsUnauthenticatedError(decodeErr))
	assert.False(t, lrs.IsUnauthorizedError(decodeErr))

	assert.True(t, lrs.IsUnauthenticatedError(lrs.ErrUnauthenticated))
	assert.True(t, lrs.IsUnauthorizedError(lrs.ErrUnauthorized))

	assert.False(t, lrs.IsDecodeError(nil))
	assert.False(t, lrs.IsDecodeError(errors.New("plain error")))
}
