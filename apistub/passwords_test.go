package apistub_test

import (
	"testing"

	"github.com/goliatone/lrs-client/apistub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := apistub.HashPassword("lecture123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "lecture123", hash)

	assert.NoError(t, apistub.ComparePasswordAndHash("lecture123", hash))
	assert.ErrorIs(t,
		apistub.ComparePasswordAndHash("wrong", hash),
		apistub.ErrMismatchedHashAndPassword)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := apistub.HashPassword("")
	assert.Error(t, err)
}
