package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/models"
)

type analyticsLoadedMsg struct {
	summary models.AnalyticsSummary
	err     error
}

type reportWrittenMsg struct {
	path string
	err  error
}

// AnalyticsModel shows cross-goal progress: totals, streak, weekly
// activity, with PDF export.
type AnalyticsModel struct {
	ctx context.Context
	b   Backend

	width  int
	height int

	loading bool
	status  string
	notice  string

	summary *models.AnalyticsSummary
}

func NewAnalyticsModel(ctx context.Context, b Backend) AnalyticsModel {
	return AnalyticsModel{ctx: ctx, b: b}
}

func (m *AnalyticsModel) setSize(w, h int) {
	m.width, m.height = w, h
}

func (m AnalyticsModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		summary, err := b.GetAnalytics(ctx)
		return analyticsLoadedMsg{summary: summary, err: err}
	}
}

func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		summary := msg.summary
		m.summary = &summary
		return m, nil

	case reportWrittenMsg:
		if msg.err != nil {
			m.status = "report failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = "report written to " + msg.path
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.load()
		case "e":
			if m.summary != nil {
				summary := *m.summary
				ctx, b := m.ctx, m.b
				return m, func() tea.Msg {
					goals, err := b.ListGoals(ctx)
					if err != nil {
						return reportWrittenMsg{err: err}
					}
					path, err := WriteProgressReport(summary, goals)
					return reportWrittenMsg{path: path, err: err}
				}
			}
		}
	}
	return m, nil
}

// activityBar renders one week's completion count as a bar.
func activityBar(count, maxCount, width int) string {
	if maxCount <= 0 || width <= 0 {
		return ""
	}
	n := count * width / maxCount
	if count > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func (m AnalyticsModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(" " + theme.Header.Render("Analytics") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(" " + theme.Banner.Render(m.notice) + "\n\n")
	}
	if m.loading && m.summary == nil {
		return b.String() + " " + theme.Dim.Render("loading…") + "\n"
	}
	if m.summary == nil {
		return b.String() + " " + theme.Dim.Render("no data — press r to load") + "\n"
	}

	s := m.summary
	b.WriteString(fmt.Sprintf(" Goals: %d total, %d active\n", s.TotalGoals, s.ActiveGoals))
	b.WriteString(fmt.Sprintf(" Tasks: %d done, %d open (%.0f%% completion)\n", s.CompletedTasks, s.PendingTasks, s.CompletionRate*100))
	streak := theme.Banner.Render(fmt.Sprintf("%d-day streak", s.StreakDays))
	if s.StreakDays == 0 {
		streak = theme.Dim.Render("no active streak")
	}
	b.WriteString(" " + streak + "\n\n")

	if len(s.WeeklyActivity) > 0 {
		b.WriteString(" " + theme.Header.Render("Weekly activity") + "\n")
		maxCount := 0
		for _, w := range s.WeeklyActivity {
			if w.Completed > maxCount {
				maxCount = w.Completed
			}
		}
		barWidth := m.width - 30
		if barWidth < 10 {
			barWidth = 10
		}
		for _, w := range s.WeeklyActivity {
			bar := theme.Highlight.Render(activityBar(w.Completed, maxCount, barWidth))
			b.WriteString(fmt.Sprintf(" %s %s %d\n", w.WeekStart, bar, w.Completed))
		}
	}

	b.WriteString("\n " + theme.Dim.Render("[e] export PDF report  [r] refresh") + "\n")
	return b.String()
}
