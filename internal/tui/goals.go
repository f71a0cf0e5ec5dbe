package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
)

type goalsLoadedMsg struct {
	goals []models.Goal
	err   error
}

// goalSelectedMsg announces that a goal was opened; other views key
// their data on it.
type goalSelectedMsg struct {
	goal models.Goal
}

// GoalsModel lists the user's goals; enter drills into the roadmap.
type GoalsModel struct {
	ctx context.Context
	b   Backend

	width   int
	height  int
	loading bool
	status  string

	goals  []models.Goal
	cursor int

	detail     GoalDetailModel
	showDetail bool
}

func NewGoalsModel(ctx context.Context, b Backend) GoalsModel {
	return GoalsModel{ctx: ctx, b: b, detail: NewGoalDetailModel(ctx, b)}
}

func (m *GoalsModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.detail.setSize(w, h)
}

func (m GoalsModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		goals, err := b.ListGoals(ctx)
		return goalsLoadedMsg{goals: goals, err: err}
	}
}

func (m GoalsModel) Update(msg tea.Msg) (GoalsModel, tea.Cmd) {
	// The detail sub-view owns everything while open, except its
	// explicit close.
	if m.showDetail {
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			m.showDetail = false
			return m, m.load()
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.closed {
			m.showDetail = false
			return m, m.load()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.goals = msg.goals
		m.cursor = util.Clamp(m.cursor, 0, max(len(m.goals)-1, 0))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
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
				goal := m.goals[m.cursor]
				m.showDetail = true
				var cmd tea.Cmd
				m.detail, cmd = m.detail.open(goal)
				return m, tea.Batch(cmd, cmdOf(goalSelectedMsg{goal: goal}))
			}
		}
	}

	// Result messages for the detail view can arrive while the list
	// is displayed (stale-guarded there).
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m GoalsModel) View() string {
	if m.showDetail {
		return m.detail.View()
	}

	theme := CurrentTheme
	var b strings.Builder
	b.WriteString(" " + theme.Header.Render("Goals") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}
	if m.loading && len(m.goals) == 0 {
		return b.String() + " " + theme.Dim.Render("loading…") + "\n"
	}
	if len(m.goals) == 0 {
		b.WriteString(" " + theme.Dim.Render("no goals yet — finish a coaching chat to generate one") + "\n")
		return b.String()
	}

	for i, g := range m.goals {
		cursor := "  "
		style := theme.Coach
		if i == m.cursor {
			cursor = "> "
			style = theme.Focused
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			cursor,
			style.Render(util.Truncate(g.Title, 50)),
			theme.Dim.Render(g.Status),
			theme.Highlight.Render(formatPercent(g.ProgressPercent)),
		)
		if g.TargetDate != nil {
			line += theme.Dim.Render("  due " + formatDate(g.TargetDate))
		}
		b.WriteString(fitLine(line, m.width) + "\n")
	}

	b.WriteString("\n " + theme.Dim.Render("[enter] open  [j/k] move  [r] refresh") + "\n")
	return b.String()
}
