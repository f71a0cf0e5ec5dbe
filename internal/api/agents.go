package api

import (
	"context"

	"github.com/milesync/mscoach/internal/models"
)

// AskAgentRequest is a direct question to one specialist agent.
type AskAgentRequest struct {
	Question string `json:"question"`
	GoalID   *int64 `json:"goal_id,omitempty"`
}

// AskAgentResponse is the agent's answer.
type AskAgentResponse struct {
	AgentType string `json:"agent_type"`
	Message   string `json:"message"`
}

// ListAgents enumerates the backend's specialist agents.
func (c *Client) ListAgents(ctx context.Context) ([]models.AgentInfo, error) {
	var out []models.AgentInfo
	err := c.get(ctx, "/api/agents", nil, &out)
	return out, err
}

// AskAgent routes a question directly to one agent type, bypassing
// the coordinator.
func (c *Client) AskAgent(ctx context.Context, agentType string, req AskAgentRequest) (AskAgentResponse, error) {
	var out AskAgentResponse
	err := c.post(ctx, idPath("/api/agents/%s/ask", agentType), req, &out)
	return out, err
}
