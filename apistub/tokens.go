package apistub

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	lrs "github.com/goliatone/lrs-client"
)

// ErrTokenInvalid is returned for bearer tokens the stub cannot validate.
var ErrTokenInvalid = goerrors.New("invalid or expired token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// TokenService mints and validates the HS256 bearer tokens the stub issues.
// Claims are laid out the way the web client decodes them: `sub` plus
// top-level `email`, `role`, `firstName`, `lastName`.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
}

// NewTokenService creates a token service with the given signing key,
// token lifetime, and issuer.
func NewTokenService(signingKey []byte, ttl time.Duration, issuer string) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		ttl:        ttl,
		issuer:     issuer,
	}
}

// Generate signs a token for the given account.
func (ts *TokenService) Generate(user *User) (string, error) {
	if user == nil {
		return "", goerrors.New("user must not be nil", goerrors.CategoryInternal)
	}

	now := time.Now()
	claims := &lrs.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		Email:     user.Email,
		UserRole:  user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}
	return signed, nil
}

// Validate checks the signature and expiry of a bearer token and returns
// its claims. This is the stub's side of the contract; the web client only
// does a structural decode.
func (ts *TokenService) Validate(tokenString string) (*lrs.TokenClaims, error) {
	claims := &lrs.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
