package tui

import (
	"context"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/models"
)

// Backend defines the API surface the views require. *api.Client
// satisfies it; tests substitute a mock.
type Backend interface {
	SetToken(token string)

	Login(ctx context.Context, req api.LoginRequest) (api.TokenResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.TokenResponse, error)
	Me(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (models.User, error)

	StartChat(ctx context.Context) (api.StartChatResponse, error)
	ListSessions(ctx context.Context) ([]models.ChatListItem, error)
	GetSession(ctx context.Context, sessionID int64) (api.SessionWithMessages, error)
	SendMessage(ctx context.Context, sessionID int64, content string) (api.SendMessageResponse, error)
	FinalizeChat(ctx context.Context, sessionID int64) (api.FinalizeResponse, error)
	DeleteSession(ctx context.Context, sessionID int64) error

	ListGoals(ctx context.Context) ([]models.Goal, error)
	GetGoal(ctx context.Context, goalID int64) (models.Goal, error)
	UpdateTaskStatus(ctx context.Context, goalID, taskID int64, status string) (models.Task, error)
	DeleteGoal(ctx context.Context, goalID int64) error
	SubmitCheckIn(ctx context.Context, goalID int64, req api.CheckInRequest) (models.CheckIn, error)
	ListCheckIns(ctx context.Context, goalID int64) ([]models.CheckIn, error)

	GetQuota(ctx context.Context) (models.Quota, error)
	GetDashboard(ctx context.Context) (models.DashboardSummary, error)

	GetAnalytics(ctx context.Context) (models.AnalyticsSummary, error)
	GetInsights(ctx context.Context, goalID int64) ([]models.Insight, error)
	GetResources(ctx context.Context, goalID int64) ([]models.Resource, error)

	ListAgents(ctx context.Context) ([]models.AgentInfo, error)
	AskAgent(ctx context.Context, agentType string, req api.AskAgentRequest) (api.AskAgentResponse, error)

	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, userID int64, update api.UserAdminUpdate) (models.User, error)
	ListPrompts(ctx context.Context) ([]models.SystemPrompt, error)
	UpdatePrompt(ctx context.Context, key, content string) (models.SystemPrompt, error)
}
