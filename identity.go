package lrs

import "strings"

// Identity is the client side projection of the credential's claims used for
// UI decisions. It is owned by the session Store and rebuilt from claims on
// every decode; it is never persisted independently of the credential.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// FullName joins the optional name claims, empty when neither is present
func (i Identity) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
}

// DisplayName returns the full name when available, falling back to the email
func (i Identity) DisplayName() string {
	if name := i.FullName(); name != "" {
		return name
	}
	return i.Email
}
