package lrs

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the decoded payload carried in the credential's middle
// segment. Derived, never constructed by the client.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	UserRole  string `json:"role,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// DecodeIdentity extracts a structured Identity from a bearer credential
// without contacting the network. The credential must be a three part token
// whose middle segment base64 decodes to a JSON claims object with `sub`,
// `email`, and `role`; the optional `firstName`/`lastName` claims surface as
// empty strings when absent.
//
// The decoder is structural only: it does NOT validate the cryptographic
// signature, which is the remote API's responsibility. Any failure returns
// ErrCredentialMalformed; it never panics past its own boundary.
func DecodeIdentity(credential string) (*Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, decodeError("empty credential", nil)
	}

	claims := &TokenClaims{}

	// ParseUnverified splits on ".", reverses the transport safe base64
	// encoding of the second segment, and unmarshals the claims JSON.
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return nil, decodeError("malformed token", err)
	}

	return identityFromClaims(claims)
}

func identityFromClaims(claims *TokenClaims) (*Identity, error) {
	if claims.Subject == "" {
		return nil, decodeError("missing sub claim", nil)
	}

	if claims.Email == "" {
		return nil, decodeError("missing email claim", nil)
	}

	if claims.UserRole == "" {
		return nil, decodeError("missing role claim", nil)
	}

	role, ok := ParseRole(claims.UserRole)
	if !ok {
		return nil, decodeError("unknown role "+claims.UserRole, nil)
	}

	return &Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		Role:      role,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}
