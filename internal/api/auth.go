package api

import (
	"context"
	"fmt"

	"github.com/milesync/mscoach/internal/models"
)

// LoginRequest is the credential payload for email login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new email-provider account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenResponse is the backend's JWT issuance reply.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// ProfileUpdate carries optional profile edits; nil fields are untouched.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Login exchanges credentials for a bearer token. The token is NOT
// installed on the client; callers decide whether to keep it.
func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.post(ctx, "/api/auth/login", req, &out)
	return out, err
}

// Register creates an account and returns a token for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.post(ctx, "/api/auth/register", req, &out)
	return out, err
}

// Me returns the account behind the installed token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.get(ctx, "/api/auth/me", nil, &out)
	return out, err
}

// UpdateProfile edits the current user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (models.User, error) {
	var out models.User
	err := c.patch(ctx, "/api/auth/me", update, &out)
	return out, err
}

// path helper shared by id-scoped endpoints.
func idPath(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
