package lrs_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// makeCredential signs a three part HS256 token carrying the given claims.
// The signing key is irrelevant to the client, which never verifies it.
func makeCredential(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	return signed
}

func lecturerCredential(t *testing.T) string {
	t.Helper()
	return makeCredential(t, jwt.MapClaims{
		"sub":       "9cd2b052-31f2-44f5-9b4c-0e6a9f28c746",
		"email":     "ada@uni.test",
		"role":      "lecturer",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"iat":       jwt.NewNumericDate(time.Now()),
	})
}

func studentCredential(t *testing.T) string {
	t.Helper()
	return makeCredential(t, jwt.MapClaims{
		"sub":   "2f1f9a22-8de1-4b5e-bb16-7a41f3f0b0aa",
		"email": "sam@uni.test",
		"role":  "student",
	})
}

// recordingLogger keeps messages so tests can assert on logging without
// caring about format
type recordingLogger struct {
	debugs []string
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(format string, args ...any) { l.debugs = append(l.debugs, format) }
func (l *recordingLogger) Info(format string, args ...any)  { l.infos = append(l.infos, format) }
func (l *recordingLogger) Warn(format string, args ...any)  { l.warns = append(l.warns, format) }
func (l *recordingLogger) Error(format string, args ...any) { l.errors = append(l.errors, format) }

// failingCredentialStore errors on writes to exercise persistence failures
type failingCredentialStore struct {
	credential string
	present    bool
	setErr     error
	clearErr   error
}

func (f *failingCredentialStore) Get() (string, bool) { return f.credential, f.present }
func (f *failingCredentialStore) Set(string) error    { return f.setErr }
func (f *failingCredentialStore) Clear() error        { return f.clearErr }
