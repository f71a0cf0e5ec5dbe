package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/voice"
)

// AppModel is the signed-in application: a tab bar over the views.
type AppModel struct {
	ctx     context.Context
	backend Backend
	user    models.User

	active View
	width  int
	height int

	dashboard DashboardModel
	goals     GoalsModel
	chat      ChatModel
	checkin   CheckinModel
	insights  InsightsModel
	analytics AnalyticsModel
	profile   ProfileModel
	admin     AdminModel
}

func NewAppModel(ctx context.Context, backend Backend, cap *voice.Capture, user models.User) AppModel {
	// One transcript slot shared by the voice-using views; only one
	// capture runs at a time.
	voiceText := make(chan string, 1)

	return AppModel{
		ctx:       ctx,
		backend:   backend,
		user:      user,
		active:    ViewDashboard,
		dashboard: NewDashboardModel(ctx, backend),
		goals:     NewGoalsModel(ctx, backend),
		chat:      NewChatModel(ctx, backend, cap, voiceText),
		checkin:   NewCheckinModel(ctx, backend, cap, voiceText),
		insights:  NewInsightsModel(ctx, backend),
		analytics: NewAnalyticsModel(ctx, backend),
		profile:   NewProfileModel(ctx, backend, user),
		admin:     NewAdminModel(ctx, backend),
	}
}

// visibleViews lists the tabs this user may open.
func (m AppModel) visibleViews() []View {
	views := []View{ViewDashboard, ViewGoals, ViewChat, ViewCheckin, ViewInsights, ViewAnalytics, ViewProfile}
	if m.user.IsSuperuser {
		views = append(views, ViewAdmin)
	}
	return views
}

func (m AppModel) Init() tea.Cmd {
	return m.dashboard.load()
}

// switchTo activates a view and fires its load.
func (m AppModel) switchTo(v View) (AppModel, tea.Cmd) {
	m.active = v
	switch v {
	case ViewDashboard:
		return m, m.dashboard.load()
	case ViewGoals:
		return m, m.goals.load()
	case ViewChat:
		return m, m.chat.load()
	case ViewCheckin:
		return m, m.checkin.load()
	case ViewInsights:
		return m, m.insights.load()
	case ViewAnalytics:
		return m, m.analytics.load()
	case ViewProfile:
		return m, nil
	case ViewAdmin:
		return m, m.admin.load()
	}
	return m, nil
}

// inputActive reports whether the active view is consuming free text,
// which suspends tab-switch shortcuts.
func (m AppModel) inputActive() bool {
	switch m.active {
	case ViewChat:
		return m.chat.inputActive()
	case ViewCheckin:
		return m.checkin.inputActive()
	case ViewInsights:
		return m.insights.inputActive()
	case ViewProfile:
		return m.profile.inputActive()
	case ViewAdmin:
		return m.admin.inputActive()
	}
	return false
}

func (m AppModel) Update(msg tea.Msg) (AppModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.setSizes()
		return m, nil

	case tea.KeyMsg:
		if !m.inputActive() {
			if next, cmd, handled := m.handleTabKeys(msg.String()); handled {
				return next, cmd
			}
		}
		// Keys go to the active view only.
		return m.updateActive(msg)
	}

	// Everything else (command results, ticks) is broadcast: a result
	// may belong to a view that is no longer active.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	m.goals, cmd = m.goals.Update(msg)
	cmds = append(cmds, cmd)
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)
	m.checkin, cmd = m.checkin.Update(msg)
	cmds = append(cmds, cmd)
	m.insights, cmd = m.insights.Update(msg)
	cmds = append(cmds, cmd)
	m.analytics, cmd = m.analytics.Update(msg)
	cmds = append(cmds, cmd)
	m.profile, cmd = m.profile.Update(msg)
	cmds = append(cmds, cmd)
	m.admin, cmd = m.admin.Update(msg)
	cmds = append(cmds, cmd)

	// Goal selection hand-off: opening a goal from the Goals view
	// also retargets Check-in and Insights.
	if sel, ok := msg.(goalSelectedMsg); ok {
		m.checkin.setGoal(sel.goal)
		var insCmd tea.Cmd
		m.insights, insCmd = m.insights.selectGoal(sel.goal.ID)
		cmds = append(cmds, insCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m AppModel) handleTabKeys(key string) (AppModel, tea.Cmd, bool) {
	views := m.visibleViews()
	idx := 0
	for i, v := range views {
		if v == m.active {
			idx = i
			break
		}
	}

	switch key {
	case "tab":
		next, cmd := m.switchTo(views[(idx+1)%len(views)])
		return next, cmd, true
	case "shift+tab":
		next, cmd := m.switchTo(views[(idx-1+len(views))%len(views)])
		return next, cmd, true
	case "q":
		return m, tea.Quit, true
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(views) {
		next, cmd := m.switchTo(views[n-1])
		return next, cmd, true
	}
	return m, nil, false
}

func (m AppModel) updateActive(msg tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewGoals:
		m.goals, cmd = m.goals.Update(msg)
	case ViewChat:
		m.chat, cmd = m.chat.Update(msg)
	case ViewCheckin:
		m.checkin, cmd = m.checkin.Update(msg)
	case ViewInsights:
		m.insights, cmd = m.insights.Update(msg)
	case ViewAnalytics:
		m.analytics, cmd = m.analytics.Update(msg)
	case ViewProfile:
		m.profile, cmd = m.profile.Update(msg)
	case ViewAdmin:
		m.admin, cmd = m.admin.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) setSizes() {
	contentHeight := m.height - 3 // tab bar + spacing
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.dashboard.setSize(m.width, contentHeight)
	m.goals.setSize(m.width, contentHeight)
	m.chat.setSize(m.width, contentHeight)
	m.checkin.setSize(m.width, contentHeight)
	m.insights.setSize(m.width, contentHeight)
	m.analytics.setSize(m.width, contentHeight)
	m.profile.setSize(m.width, contentHeight)
	m.admin.setSize(m.width, contentHeight)
}

func (m AppModel) renderTabs() string {
	theme := CurrentTheme
	var tabs []string
	for i, v := range m.visibleViews() {
		label := strconv.Itoa(i+1) + ":" + viewNames[v]
		if v == m.active {
			tabs = append(tabs, theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, theme.TabInactive.Render(label))
		}
	}
	return fitLine(" "+strings.Join(tabs, "  "), m.width)
}

func (m AppModel) View() string {
	var body string
	switch m.active {
	case ViewDashboard:
		body = m.dashboard.View()
	case ViewGoals:
		body = m.goals.View()
	case ViewChat:
		body = m.chat.View()
	case ViewCheckin:
		body = m.checkin.View()
	case ViewInsights:
		body = m.insights.View()
	case ViewAnalytics:
		body = m.analytics.View()
	case ViewProfile:
		body = m.profile.View()
	case ViewAdmin:
		body = m.admin.View()
	}
	return m.renderTabs() + "\n\n" + body
}
