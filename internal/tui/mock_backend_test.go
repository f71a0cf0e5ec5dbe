package tui

import (
	"context"
	"errors"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/models"
)

// mockBackend satisfies Backend with canned responses. Tests set the
// fields they care about; everything else returns zero values.
type mockBackend struct {
	token string

	loginResp api.TokenResponse
	loginErr  error

	sessions    []models.ChatListItem
	sessionsErr error

	sessionData api.SessionWithMessages
	sessionErr  error

	startResp api.StartChatResponse
	startErr  error

	sendResp    api.SendMessageResponse
	sendErr     error
	sentContent []string

	finalizeResp api.FinalizeResponse
	finalizeErr  error

	deleteSessionErr error
	deletedSessions  []int64

	goals    []models.Goal
	goalsErr error

	goal    models.Goal
	goalErr error

	taskResp   models.Task
	taskErr    error
	taskCalls  []string
	deleteErr  error
	deletedIDs []int64

	checkin     models.CheckIn
	checkinErr  error
	checkinReqs []api.CheckInRequest

	checkins    []models.CheckIn
	checkinsErr error

	quota    models.Quota
	quotaErr error

	summary    models.DashboardSummary
	summaryErr error

	analytics    models.AnalyticsSummary
	analyticsErr error

	insights     []models.Insight
	insightsErr  error
	resources    []models.Resource
	resourcesErr error

	agents    []models.AgentInfo
	agentsErr error

	askResp api.AskAgentResponse
	askErr  error
	asked   []string

	users    []models.User
	usersErr error

	updatedUser     models.User
	updateUserErr   error
	userUpdates     []api.UserAdminUpdate
	prompts         []models.SystemPrompt
	promptsErr      error
	savedPrompt     models.SystemPrompt
	savePromptErr   error
	savedPromptKeys []string

	profileUser models.User
	profileErr  error

	callCounts map[string]int
}

func newMockBackend() *mockBackend {
	return &mockBackend{callCounts: make(map[string]int)}
}

func (m *mockBackend) count(name string) { m.callCounts[name]++ }

func (m *mockBackend) SetToken(token string) { m.token = token }

func (m *mockBackend) Login(ctx context.Context, req api.LoginRequest) (api.TokenResponse, error) {
	m.count("Login")
	return m.loginResp, m.loginErr
}

func (m *mockBackend) Register(ctx context.Context, req api.RegisterRequest) (api.TokenResponse, error) {
	m.count("Register")
	return m.loginResp, m.loginErr
}

func (m *mockBackend) Me(ctx context.Context) (models.User, error) {
	m.count("Me")
	return m.profileUser, m.profileErr
}

func (m *mockBackend) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (models.User, error) {
	m.count("UpdateProfile")
	return m.profileUser, m.profileErr
}

func (m *mockBackend) StartChat(ctx context.Context) (api.StartChatResponse, error) {
	m.count("StartChat")
	return m.startResp, m.startErr
}

func (m *mockBackend) ListSessions(ctx context.Context) ([]models.ChatListItem, error) {
	m.count("ListSessions")
	return m.sessions, m.sessionsErr
}

func (m *mockBackend) GetSession(ctx context.Context, sessionID int64) (api.SessionWithMessages, error) {
	m.count("GetSession")
	return m.sessionData, m.sessionErr
}

func (m *mockBackend) SendMessage(ctx context.Context, sessionID int64, content string) (api.SendMessageResponse, error) {
	m.count("SendMessage")
	m.sentContent = append(m.sentContent, content)
	return m.sendResp, m.sendErr
}

func (m *mockBackend) FinalizeChat(ctx context.Context, sessionID int64) (api.FinalizeResponse, error) {
	m.count("FinalizeChat")
	return m.finalizeResp, m.finalizeErr
}

func (m *mockBackend) DeleteSession(ctx context.Context, sessionID int64) error {
	m.count("DeleteSession")
	m.deletedSessions = append(m.deletedSessions, sessionID)
	return m.deleteSessionErr
}

func (m *mockBackend) ListGoals(ctx context.Context) ([]models.Goal, error) {
	m.count("ListGoals")
	return m.goals, m.goalsErr
}

func (m *mockBackend) GetGoal(ctx context.Context, goalID int64) (models.Goal, error) {
	m.count("GetGoal")
	return m.goal, m.goalErr
}

func (m *mockBackend) UpdateTaskStatus(ctx context.Context, goalID, taskID int64, status string) (models.Task, error) {
	m.count("UpdateTaskStatus")
	m.taskCalls = append(m.taskCalls, status)
	return m.taskResp, m.taskErr
}

func (m *mockBackend) DeleteGoal(ctx context.Context, goalID int64) error {
	m.count("DeleteGoal")
	m.deletedIDs = append(m.deletedIDs, goalID)
	return m.deleteErr
}

func (m *mockBackend) SubmitCheckIn(ctx context.Context, goalID int64, req api.CheckInRequest) (models.CheckIn, error) {
	m.count("SubmitCheckIn")
	m.checkinReqs = append(m.checkinReqs, req)
	return m.checkin, m.checkinErr
}

func (m *mockBackend) ListCheckIns(ctx context.Context, goalID int64) ([]models.CheckIn, error) {
	m.count("ListCheckIns")
	return m.checkins, m.checkinsErr
}

func (m *mockBackend) GetQuota(ctx context.Context) (models.Quota, error) {
	m.count("GetQuota")
	return m.quota, m.quotaErr
}

func (m *mockBackend) GetDashboard(ctx context.Context) (models.DashboardSummary, error) {
	m.count("GetDashboard")
	return m.summary, m.summaryErr
}

func (m *mockBackend) GetAnalytics(ctx context.Context) (models.AnalyticsSummary, error) {
	m.count("GetAnalytics")
	return m.analytics, m.analyticsErr
}

func (m *mockBackend) GetInsights(ctx context.Context, goalID int64) ([]models.Insight, error) {
	m.count("GetInsights")
	return m.insights, m.insightsErr
}

func (m *mockBackend) GetResources(ctx context.Context, goalID int64) ([]models.Resource, error) {
	m.count("GetResources")
	return m.resources, m.resourcesErr
}

func (m *mockBackend) ListAgents(ctx context.Context) ([]models.AgentInfo, error) {
	m.count("ListAgents")
	return m.agents, m.agentsErr
}

func (m *mockBackend) AskAgent(ctx context.Context, agentType string, req api.AskAgentRequest) (api.AskAgentResponse, error) {
	m.count("AskAgent")
	m.asked = append(m.asked, agentType+": "+req.Question)
	return m.askResp, m.askErr
}

func (m *mockBackend) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	m.count("ListUsers")
	return m.users, m.usersErr
}

func (m *mockBackend) UpdateUser(ctx context.Context, userID int64, update api.UserAdminUpdate) (models.User, error) {
	m.count("UpdateUser")
	m.userUpdates = append(m.userUpdates, update)
	return m.updatedUser, m.updateUserErr
}

func (m *mockBackend) ListPrompts(ctx context.Context) ([]models.SystemPrompt, error) {
	m.count("ListPrompts")
	return m.prompts, m.promptsErr
}

func (m *mockBackend) UpdatePrompt(ctx context.Context, key, content string) (models.SystemPrompt, error) {
	m.count("UpdatePrompt")
	m.savedPromptKeys = append(m.savedPromptKeys, key)
	return m.savedPrompt, m.savePromptErr
}

var errBoom = errors.New("boom")
