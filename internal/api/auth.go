package api

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

// Credentials is the signin payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the signup payload.
type SignUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// signInResponse mirrors the server's /auth/signin body: the token plus the
// flattened identity record.
type signInResponse struct {
	Token     string `json:"token"`
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// SignIn exchanges credentials for a session. The caller (not this client)
// hands the result to the session store.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (core.Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return core.Session{}, core.ErrInvalidCredentials
	}

	var resp signInResponse
	if err := c.post(ctx, "/auth/signin", creds, &resp); err != nil {
		return core.Session{}, fmt.Errorf("sign in: %w", err)
	}
	return core.Session{
		ID:        resp.ID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Email:     resp.Email,
		Token:     resp.Token,
	}, nil
}

// SignUp creates a new user account. The caller still signs in afterwards.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	if err := c.post(ctx, "/auth/signup", req, nil); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}
