package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
)

type insightsGoalsMsg struct {
	goals  []models.Goal
	agents []models.AgentInfo
	err    error
}

type agentAnswerMsg struct {
	gen    int
	agent  string
	answer string
	err    error
}

// insightsLoadedMsg carries one of the two concurrent loads. Both
// are generation-tagged: when the selected goal changes mid-flight,
// late results for the old goal are dropped instead of overwriting
// the new selection's data.
type insightsLoadedMsg struct {
	gen       int
	insights  []models.Insight
	resources []models.Resource
	kind      string // "insights" or "resources"
	err       error
}

// InsightsModel shows per-goal coaching insights and suggested
// resources, loaded concurrently.
type InsightsModel struct {
	ctx context.Context
	b   Backend

	width  int
	height int

	loading bool
	status  string

	goals  []models.Goal
	cursor int

	gen       int
	goalID    int64
	goalTitle string
	insights  []models.Insight
	resources []models.Resource
	picked    bool

	// Direct questions to one specialist agent.
	agents     []models.AgentInfo
	agentIdx   int
	asking     bool
	askBusy    bool
	askInput   textinput.Model
	agentReply string
	agentName  string
}

func NewInsightsModel(ctx context.Context, b Backend) InsightsModel {
	ask := textinput.New()
	ask.Placeholder = "ask a question"
	ask.CharLimit = config.MaxMessageLength
	ask.Width = 60
	return InsightsModel{ctx: ctx, b: b, askInput: ask}
}

func (m *InsightsModel) setSize(w, h int) {
	m.width, m.height = w, h
	if w > 20 {
		m.askInput.Width = w - 12
	}
}

func (m InsightsModel) inputActive() bool {
	return m.asking
}

func (m InsightsModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		goals, err := b.ListGoals(ctx)
		if err != nil {
			return insightsGoalsMsg{err: err}
		}
		agents, err := b.ListAgents(ctx)
		if err != nil {
			agents = nil // goal picker still works without the roster
		}
		return insightsGoalsMsg{goals: goals, agents: agents}
	}
}

// selectGoal retargets the view and fires both loads. Used directly
// and via the cross-view goal hand-off.
func (m InsightsModel) selectGoal(goalID int64) (InsightsModel, tea.Cmd) {
	m.gen++
	m.goalID = goalID
	m.picked = true
	m.loading = true
	m.insights = nil
	m.resources = nil
	for _, g := range m.goals {
		if g.ID == goalID {
			m.goalTitle = g.Title
		}
	}

	ctx, b := m.ctx, m.b
	gen := m.gen
	fetchInsights := func() tea.Msg {
		insights, err := b.GetInsights(ctx, goalID)
		return insightsLoadedMsg{gen: gen, kind: "insights", insights: insights, err: err}
	}
	fetchResources := func() tea.Msg {
		resources, err := b.GetResources(ctx, goalID)
		return insightsLoadedMsg{gen: gen, kind: "resources", resources: resources, err: err}
	}
	return m, tea.Batch(fetchInsights, fetchResources)
}

func (m InsightsModel) Update(msg tea.Msg) (InsightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsGoalsMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.goals = msg.goals
		if msg.agents != nil {
			m.agents = msg.agents
			m.agentIdx = util.Clamp(m.agentIdx, 0, max(len(m.agents)-1, 0))
		}
		m.cursor = util.Clamp(m.cursor, 0, max(len(m.goals)-1, 0))
		for _, g := range m.goals {
			if g.ID == m.goalID {
				m.goalTitle = g.Title
			}
		}
		return m, nil

	case insightsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil // stale response for a superseded selection
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		switch msg.kind {
		case "insights":
			m.insights = msg.insights
		case "resources":
			m.resources = msg.resources
		}
		return m, nil

	case agentAnswerMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.askBusy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.agentReply = msg.answer
		m.agentName = msg.agent
		return m, nil

	case tea.KeyMsg:
		if m.asking {
			return m.handleAskKey(msg)
		}
		switch msg.String() {
		case "r":
			if m.picked {
				next, cmd := m.selectGoal(m.goalID)
				return next, tea.Batch(cmd, next.load())
			}
			return m, m.load()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.goals) {
				return m.selectGoal(m.goals[m.cursor].ID)
			}
		case "a":
			if m.picked && len(m.agents) > 0 {
				m.asking = true
				m.agentReply = ""
				m.askInput.Reset()
				m.askInput.Focus()
				return m, textinput.Blink
			}
		case "esc":
			m.picked = false
			m.agentReply = ""
		}
	}
	return m, nil
}

func (m InsightsModel) handleAskKey(msg tea.KeyMsg) (InsightsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.asking = false
		m.askInput.Blur()
		return m, nil
	case tea.KeyLeft:
		if m.agentIdx > 0 {
			m.agentIdx--
		}
		return m, nil
	case tea.KeyRight:
		if m.agentIdx < len(m.agents)-1 {
			m.agentIdx++
		}
		return m, nil
	case tea.KeyEnter:
		question := strings.TrimSpace(m.askInput.Value())
		if question == "" || m.askBusy {
			return m, nil
		}
		agent := m.agents[m.agentIdx]
		m.asking = false
		m.askBusy = true
		m.askInput.Blur()
		ctx, b := m.ctx, m.b
		gen, goalID := m.gen, m.goalID
		return m, func() tea.Msg {
			resp, err := b.AskAgent(ctx, agent.Type, api.AskAgentRequest{Question: question, GoalID: &goalID})
			return agentAnswerMsg{gen: gen, agent: agent.Name, answer: resp.Message, err: err}
		}
	}
	var cmd tea.Cmd
	m.askInput, cmd = m.askInput.Update(msg)
	return m, cmd
}

func (m InsightsModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(" " + theme.Header.Render("Insights") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}

	if !m.picked {
		if len(m.goals) == 0 {
			return b.String() + " " + theme.Dim.Render("no goals yet") + "\n"
		}
		b.WriteString(" Pick a goal:\n\n")
		for i, g := range m.goals {
			cursor := "  "
			style := theme.Coach
			if i == m.cursor {
				cursor = "> "
				style = theme.Focused
			}
			b.WriteString(fitLine(cursor+style.Render(util.Truncate(g.Title, 60)), m.width) + "\n")
		}
		b.WriteString("\n " + theme.Dim.Render("[enter] choose  [j/k] move") + "\n")
		return b.String()
	}

	b.WriteString(" " + theme.Focused.Render(m.goalTitle) + "\n\n")
	if m.loading && len(m.insights) == 0 && len(m.resources) == 0 {
		return b.String() + " " + theme.Dim.Render("loading…") + "\n"
	}

	if m.asking {
		agent := m.agents[m.agentIdx]
		b.WriteString(" Ask " + theme.Highlight.Render(agent.Name) + " " + theme.Dim.Render("(←/→ to switch agent)") + "\n")
		b.WriteString(" " + theme.Dim.Render(agent.Description) + "\n\n")
		b.WriteString(" " + m.askInput.View() + "\n")
		b.WriteString(" " + theme.Dim.Render("[enter] ask  [esc] cancel") + "\n")
		return b.String()
	}

	b.WriteString(" " + theme.Header.Render("Coaching insights") + "\n")
	if len(m.insights) == 0 {
		b.WriteString(" " + theme.Dim.Render("nothing yet — keep checking in") + "\n")
	}
	for _, ins := range m.insights {
		b.WriteString(" " + theme.Highlight.Render("• "+ins.Category) + "\n")
		b.WriteString(wrapText("   "+ins.Content, m.width-2) + "\n")
	}

	b.WriteString("\n " + theme.Header.Render("Resources") + "\n")
	if len(m.resources) == 0 {
		b.WriteString(" " + theme.Dim.Render("none suggested yet") + "\n")
	}
	for _, res := range m.resources {
		b.WriteString(fitLine(" • "+res.Title+"  "+theme.Dim.Render(res.URL), m.width) + "\n")
	}

	if m.askBusy {
		b.WriteString("\n " + theme.Dim.Render("waiting for "+m.agents[m.agentIdx].Name+"…") + "\n")
	}
	if m.agentReply != "" {
		b.WriteString("\n " + theme.Header.Render(m.agentName+" says") + "\n")
		b.WriteString(renderMarkdown(m.agentReply, m.width-2) + "\n")
	}

	hint := "[esc] pick another goal  [r] reload"
	if len(m.agents) > 0 {
		hint = "[a] ask an agent  " + hint
	}
	b.WriteString("\n " + theme.Dim.Render(hint) + "\n")
	return b.String()
}
