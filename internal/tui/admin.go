package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
)

type adminUsersMsg struct {
	users []models.User
	err   error
}

type adminUserUpdatedMsg struct {
	user models.User
	err  error
}

type adminPromptsMsg struct {
	prompts []models.SystemPrompt
	err     error
}

type adminPromptSavedMsg struct {
	prompt models.SystemPrompt
	err    error
}

const (
	adminPaneUsers = iota
	adminPanePrompts
)

const adminPageSize = 100

// AdminModel manages user accounts and system prompt templates.
// Only reachable for superusers.
type AdminModel struct {
	ctx context.Context
	b   Backend

	width  int
	height int

	pane    int
	loading bool
	status  string
	notice  string

	users      []models.User
	userCursor int

	prompts      []models.SystemPrompt
	promptCursor int

	editingQuota  bool
	editingPrompt bool
	editInput     textinput.Model
}

func NewAdminModel(ctx context.Context, b Backend) AdminModel {
	edit := textinput.New()
	edit.Width = 60
	return AdminModel{ctx: ctx, b: b, editInput: edit}
}

func (m *AdminModel) setSize(w, h int) {
	m.width, m.height = w, h
	if w > 20 {
		m.editInput.Width = w - 12
	}
}

func (m AdminModel) inputActive() bool {
	return m.editingQuota || m.editingPrompt
}

func (m AdminModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return tea.Batch(
		func() tea.Msg {
			users, err := b.ListUsers(ctx, 0, adminPageSize)
			return adminUsersMsg{users: users, err: err}
		},
		func() tea.Msg {
			prompts, err := b.ListPrompts(ctx)
			return adminPromptsMsg{prompts: prompts, err: err}
		},
	)
}

func (m AdminModel) Update(msg tea.Msg) (AdminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminUsersMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.users = msg.users
		m.userCursor = util.Clamp(m.userCursor, 0, max(len(m.users)-1, 0))
		return m, nil

	case adminPromptsMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.prompts = msg.prompts
		m.promptCursor = util.Clamp(m.promptCursor, 0, max(len(m.prompts)-1, 0))
		return m, nil

	case adminUserUpdatedMsg:
		if msg.err != nil {
			m.status = "user update failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.notice = fmt.Sprintf("updated %s", msg.user.Email)
		for i := range m.users {
			if m.users[i].ID == msg.user.ID {
				m.users[i] = msg.user
				break
			}
		}
		return m, nil

	case adminPromptSavedMsg:
		if msg.err != nil {
			m.status = "prompt update failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.notice = "prompt " + msg.prompt.Key + " saved"
		for i := range m.prompts {
			if m.prompts[i].Key == msg.prompt.Key {
				m.prompts[i] = msg.prompt
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AdminModel) handleKey(msg tea.KeyMsg) (AdminModel, tea.Cmd) {
	if m.editingQuota || m.editingPrompt {
		switch msg.Type {
		case tea.KeyEsc:
			m.editingQuota = false
			m.editingPrompt = false
			m.editInput.Blur()
			return m, nil
		case tea.KeyEnter:
			if m.editingQuota {
				return m.saveQuota()
			}
			return m.savePrompt()
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "r":
		m.loading = true
		return m, m.load()
	case "u":
		m.pane = adminPaneUsers
		return m, nil
	case "p":
		m.pane = adminPanePrompts
		return m, nil
	}

	if m.pane == adminPaneUsers {
		return m.handleUserKey(msg)
	}
	return m.handlePromptKey(msg)
}

func (m AdminModel) handleUserKey(msg tea.KeyMsg) (AdminModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.userCursor > 0 {
			m.userCursor--
		}
	case "down", "j":
		if m.userCursor < len(m.users)-1 {
			m.userCursor++
		}
	case "a":
		if m.userCursor < len(m.users) {
			user := m.users[m.userCursor]
			return m, m.updateUser(user.ID, api.UserAdminUpdate{IsActive: util.Ptr(!user.IsActive)})
		}
	case "s":
		if m.userCursor < len(m.users) {
			user := m.users[m.userCursor]
			return m, m.updateUser(user.ID, api.UserAdminUpdate{IsSuperuser: util.Ptr(!user.IsSuperuser)})
		}
	case "t":
		if m.userCursor < len(m.users) {
			m.editingQuota = true
			m.notice = ""
			m.editInput.Placeholder = "token limit"
			m.editInput.SetValue(strconv.FormatInt(m.users[m.userCursor].TokenLimit, 10))
			m.editInput.CursorEnd()
			m.editInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m AdminModel) handlePromptKey(msg tea.KeyMsg) (AdminModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.promptCursor > 0 {
			m.promptCursor--
		}
	case "down", "j":
		if m.promptCursor < len(m.prompts)-1 {
			m.promptCursor++
		}
	case "enter":
		if m.promptCursor < len(m.prompts) {
			m.editingPrompt = true
			m.notice = ""
			m.editInput.Placeholder = "prompt content"
			m.editInput.SetValue(m.prompts[m.promptCursor].Content)
			m.editInput.CursorEnd()
			m.editInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m AdminModel) updateUser(userID int64, update api.UserAdminUpdate) tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		user, err := b.UpdateUser(ctx, userID, update)
		return adminUserUpdatedMsg{user: user, err: err}
	}
}

func (m AdminModel) saveQuota() (AdminModel, tea.Cmd) {
	limit, err := strconv.ParseInt(strings.TrimSpace(m.editInput.Value()), 10, 64)
	if err != nil || limit < 0 {
		m.status = "token limit must be a non-negative number"
		return m, nil
	}
	m.editingQuota = false
	m.editInput.Blur()
	user := m.users[m.userCursor]
	return m, m.updateUser(user.ID, api.UserAdminUpdate{TokenLimit: util.Ptr(limit)})
}

func (m AdminModel) savePrompt() (AdminModel, tea.Cmd) {
	content := m.editInput.Value()
	if strings.TrimSpace(content) == "" {
		m.status = "prompt content must not be empty"
		return m, nil
	}
	m.editingPrompt = false
	m.editInput.Blur()
	key := m.prompts[m.promptCursor].Key
	ctx, b := m.ctx, m.b
	return m, func() tea.Msg {
		prompt, err := b.UpdatePrompt(ctx, key, content)
		return adminPromptSavedMsg{prompt: prompt, err: err}
	}
}

func (m AdminModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	paneName := "Users"
	if m.pane == adminPanePrompts {
		paneName = "Prompts"
	}
	b.WriteString(" " + theme.Header.Render("Admin — "+paneName) + "  " + theme.Dim.Render("[u] users  [p] prompts") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(" " + theme.Banner.Render(m.notice) + "\n\n")
	}
	if m.loading && len(m.users) == 0 && len(m.prompts) == 0 {
		return b.String() + " " + theme.Dim.Render("loading…") + "\n"
	}

	if m.editingQuota {
		b.WriteString(" New token limit: " + m.editInput.View() + "\n")
		b.WriteString(" " + theme.Dim.Render("[enter] save  [esc] cancel") + "\n")
		return b.String()
	}
	if m.editingPrompt {
		b.WriteString(" " + theme.Focused.Render(m.prompts[m.promptCursor].Key) + "\n")
		b.WriteString(" " + m.editInput.View() + "\n")
		b.WriteString(" " + theme.Dim.Render("[enter] save  [esc] cancel") + "\n")
		return b.String()
	}

	if m.pane == adminPaneUsers {
		for i, user := range m.users {
			cursor := "  "
			style := theme.Coach
			if i == m.userCursor {
				cursor = "> "
				style = theme.Focused
			}
			flags := ""
			if !user.IsActive {
				flags += theme.ErrorBanner.Render(" disabled")
			}
			if user.IsSuperuser {
				flags += theme.Highlight.Render(" admin")
			}
			line := fmt.Sprintf("%s%s  %s%s  %s",
				cursor,
				style.Render(util.Truncate(user.Email, 30)),
				theme.Dim.Render(fmt.Sprintf("%d/%d tokens", user.TokensUsed, user.TokenLimit)),
				flags,
				theme.Dim.Render(user.CreatedAt.Format("2006-01-02")),
			)
			b.WriteString(fitLine(line, m.width) + "\n")
		}
		b.WriteString("\n " + theme.Dim.Render("[a] toggle active  [s] toggle admin  [t] token limit  [j/k] move  [r] refresh") + "\n")
		return b.String()
	}

	for i, prompt := range m.prompts {
		cursor := "  "
		style := theme.Coach
		if i == m.promptCursor {
			cursor = "> "
			style = theme.Focused
		}
		line := cursor + style.Render(prompt.Key) + "  " + theme.Dim.Render(util.Preview(prompt.Content, 60))
		b.WriteString(fitLine(line, m.width) + "\n")
	}
	b.WriteString("\n " + theme.Dim.Render("[enter] edit  [j/k] move  [r] refresh") + "\n")
	return b.String()
}
