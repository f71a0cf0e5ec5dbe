package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
)

type dashboardLoadedMsg struct {
	quota   models.Quota
	summary models.DashboardSummary
	err     error
}

// DashboardModel is the landing view: quota gauge, goal counts, and
// today's tasks.
type DashboardModel struct {
	ctx context.Context
	b   Backend

	width   int
	height  int
	loading bool
	status  string

	quota   *models.Quota
	summary *models.DashboardSummary
	gauge   progress.Model
}

func NewDashboardModel(ctx context.Context, b Backend) DashboardModel {
	gauge := progress.New(progress.WithDefaultGradient())
	gauge.Width = 40
	return DashboardModel{ctx: ctx, b: b, gauge: gauge}
}

func (m *DashboardModel) setSize(w, h int) {
	m.width, m.height = w, h
	if w > 20 {
		m.gauge.Width = min(w-20, 60)
	}
}

func (m DashboardModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		quota, err := b.GetQuota(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		summary, err := b.GetDashboard(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{quota: quota, summary: summary}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Keep whatever was rendered before; just surface the failure.
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		quota, summary := msg.quota, msg.summary
		m.quota = &quota
		m.summary = &summary
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m DashboardModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(" " + theme.Header.Render("Dashboard") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}
	if m.loading && m.quota == nil {
		return b.String() + " " + theme.Dim.Render("loading…") + "\n"
	}
	if m.quota == nil && m.summary == nil {
		return b.String() + " " + theme.Dim.Render("no data yet — press r to load") + "\n"
	}

	if m.quota != nil {
		frac := m.quota.UsedFraction()
		style := theme.QuotaOK
		if frac >= config.QuotaCritFraction {
			style = theme.QuotaCrit
		} else if frac >= config.QuotaWarnFraction {
			style = theme.QuotaWarn
		}
		b.WriteString(" " + style.Render("AI quota") + "  " + m.gauge.ViewAs(frac))
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  %d / %d tokens", m.quota.TokensUsed, m.quota.TokenLimit)) + "\n")
		if m.quota.ResetAt != nil {
			b.WriteString(" " + theme.Dim.Render("resets "+m.quota.ResetAt.Format("2006-01-02 15:04")) + "\n")
		}
		b.WriteString("\n")
	}

	if m.summary != nil {
		b.WriteString(fmt.Sprintf(" Active goals: %d\n", m.summary.ActiveGoals))
		if m.summary.CheckedInToday {
			b.WriteString(" " + theme.Banner.Render("✓ checked in today") + "\n")
		} else {
			b.WriteString(" " + theme.Dim.Render("no check-in yet today") + "\n")
		}
		b.WriteString("\n " + theme.Header.Render("Due today") + "\n")
		if len(m.summary.TasksDueToday) == 0 {
			b.WriteString(" " + theme.Dim.Render("nothing due") + "\n")
		}
		for _, task := range m.summary.TasksDueToday {
			mark := "[ ]"
			style := theme.Coach
			if task.Status == "done" {
				mark = "[x]"
				style = theme.DoneTask
			}
			b.WriteString(fitLine("  "+mark+" "+style.Render(task.Title), m.width) + "\n")
		}
	}

	b.WriteString("\n " + theme.Dim.Render("[r] refresh  [tab] next view  [q] quit") + "\n")
	return b.String()
}
