package api

import (
	"context"

	"github.com/milesync/mscoach/internal/models"
)

// StartChatResponse is a fresh session plus the coach's greeting.
type StartChatResponse struct {
	Session        models.ChatSession `json:"session"`
	InitialMessage models.ChatMessage `json:"initial_message"`
}

// SendMessageRequest is one outgoing user message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse holds the persisted user message and the
// coach's reply, in order.
type SendMessageResponse struct {
	UserMessage      models.ChatMessage `json:"user_message"`
	AssistantMessage models.ChatMessage `json:"assistant_message"`
}

// SessionWithMessages is a session plus its full history.
type SessionWithMessages struct {
	Session  models.ChatSession   `json:"session"`
	Messages []models.ChatMessage `json:"messages"`
}

// FinalizeResponse is the goal generated from a completed conversation.
type FinalizeResponse struct {
	Session models.ChatSession `json:"session"`
	Goal    models.Goal        `json:"goal"`
}

// StartChat opens a new coaching session.
func (c *Client) StartChat(ctx context.Context) (StartChatResponse, error) {
	var out StartChatResponse
	err := c.post(ctx, "/api/chat/start", nil, &out)
	return out, err
}

// ListSessions returns the user's sessions, most recent first.
func (c *Client) ListSessions(ctx context.Context) ([]models.ChatListItem, error) {
	var out []models.ChatListItem
	err := c.get(ctx, "/api/chat/sessions", nil, &out)
	return out, err
}

// GetSession returns a session with its full message history.
func (c *Client) GetSession(ctx context.Context, sessionID int64) (SessionWithMessages, error) {
	var out SessionWithMessages
	err := c.get(ctx, idPath("/api/chat/%d", sessionID), nil, &out)
	return out, err
}

// SendMessage posts a user message and waits for the coach's reply.
func (c *Client) SendMessage(ctx context.Context, sessionID int64, content string) (SendMessageResponse, error) {
	var out SendMessageResponse
	err := c.post(ctx, idPath("/api/chat/%d/message", sessionID), SendMessageRequest{Content: content}, &out)
	return out, err
}

// DeleteSession removes a session and all of its messages.
func (c *Client) DeleteSession(ctx context.Context, sessionID int64) error {
	return c.delete(ctx, idPath("/api/chat/%d", sessionID))
}

// FinalizeChat turns a completed conversation into a generated goal
// with its roadmap.
func (c *Client) FinalizeChat(ctx context.Context, sessionID int64) (FinalizeResponse, error) {
	var out FinalizeResponse
	err := c.post(ctx, idPath("/api/chat/%d/finalize", sessionID), nil, &out)
	return out, err
}
