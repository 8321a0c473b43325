package apiclient

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// IssueCredential exchanges an email/password pair for a bearer credential.
// It satisfies lrs.CredentialIssuer so the login controller can plug the
// client in directly. The returned credential is opaque here; decoding it
// is the session core's job.
func (c *Client) IssueCredential(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}
