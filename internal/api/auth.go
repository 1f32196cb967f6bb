package api

import (
	"context"

	"staffdeck/internal/domain"
)

// LoginResult is what the auth endpoint returns on success
type LoginResult struct {
	Token       string
	User        domain.User
	Permissions []string // raw keys, resolved into capabilities by the session layer
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userWire struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
	RoleID    string `json:"role_id"`
	Language  string `json:"language"`
}

type loginWire struct {
	Token       string   `json:"token"`
	User        userWire `json:"user"`
	Permissions []string `json:"permissions"`
}

func (w userWire) toDomain() domain.User {
	return domain.User{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		CompanyID: w.CompanyID,
		RoleID:    w.RoleID,
		Language:  w.Language,
	}
}

// Login authenticates and installs the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var wire loginWire
	if err := c.post(ctx, "/v1/auth/login", loginRequest{Email: email, Password: password}, &wire); err != nil {
		return nil, err
	}

	c.SetToken(wire.Token)
	return &LoginResult{
		Token:       wire.Token,
		User:        wire.User.toDomain(),
		Permissions: wire.Permissions,
	}, nil
}

// Me re-fetches the authenticated user and their permission keys, used when
// restoring a persisted session.
func (c *Client) Me(ctx context.Context) (*LoginResult, error) {
	var wire loginWire
	if err := c.get(ctx, "/v1/auth/me", nil, &wire); err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:       c.token,
		User:        wire.User.toDomain(),
		Permissions: wire.Permissions,
	}, nil
}

// Logout invalidates the server-side session; the client token is cleared
// regardless of the call outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/v1/auth/logout", struct{}{}, nil)
	c.ClearToken()
	return err
}
