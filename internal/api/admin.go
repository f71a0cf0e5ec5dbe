package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/milesync/mscoach/internal/models"
)

// UserAdminUpdate edits account flags and quota; nil fields are untouched.
type UserAdminUpdate struct {
	IsActive    *bool  `json:"is_active,omitempty"`
	IsSuperuser *bool  `json:"is_superuser,omitempty"`
	TokenLimit  *int64 `json:"token_limit,omitempty"`
}

// SystemPromptUpdate replaces a prompt template's content.
type SystemPromptUpdate struct {
	Content string `json:"content"`
}

// ListUsers pages through all accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	var out []models.User
	query := url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}
	err := c.get(ctx, "/api/admin/users", query, &out)
	return out, err
}

// UpdateUser edits one account. Admin only.
func (c *Client) UpdateUser(ctx context.Context, userID int64, update UserAdminUpdate) (models.User, error) {
	var out models.User
	err := c.put(ctx, idPath("/api/admin/users/%d", userID), update, &out)
	return out, err
}

// ListPrompts returns all system prompts. Admin only.
func (c *Client) ListPrompts(ctx context.Context) ([]models.SystemPrompt, error) {
	var out []models.SystemPrompt
	err := c.get(ctx, "/api/admin/prompts", nil, &out)
	return out, err
}

// UpdatePrompt replaces one prompt's content. Admin only.
func (c *Client) UpdatePrompt(ctx context.Context, key, content string) (models.SystemPrompt, error) {
	var out models.SystemPrompt
	err := c.put(ctx, idPath("/api/admin/prompts/%s", url.PathEscape(key)), SystemPromptUpdate{Content: content}, &out)
	return out, err
}
