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
	"github.com/milesync/mscoach/internal/voice"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateLogin SessionState = iota
	StateApp
)

// loginResultMsg is the outcome of a login or register attempt.
type loginResultMsg struct {
	resp api.TokenResponse
	err  error
}

// MainModel is the root bubbletea model that switches between the
// login screen and the signed-in application.
type MainModel struct {
	state   SessionState
	backend Backend
	ctx     context.Context
	cap     *voice.Capture

	// Login screen state.
	registering bool
	emailInput  textinput.Model
	passInput   textinput.Model
	nameInput   textinput.Model
	focusIdx    int
	busy        bool
	status      string

	app    AppModel
	width  int
	height int
}

// NewMainModel builds the root model. user is non-nil when a cached
// token already authenticated, in which case the login screen is
// skipped.
func NewMainModel(ctx context.Context, backend Backend, cap *voice.Capture, user *models.User) MainModel {
	m := MainModel{
		state:   StateLogin,
		backend: backend,
		ctx:     ctx,
		cap:     cap,
	}

	if user != nil {
		m.state = StateApp
		m.app = NewAppModel(ctx, backend, cap, *user)
		return m
	}

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 255
	email.Width = 40
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 100
	pass.Width = 40

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = config.MaxNameLength
	name.Width = 40

	m.emailInput = email
	m.passInput = pass
	m.nameInput = name
	return m
}

func (m MainModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, textinput.Blink)
	if m.state == StateApp {
		cmds = append(cmds, m.app.Init())
	}
	return tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateApp {
			var cmd tea.Cmd
			m.app, cmd = m.app.Update(msg)
			return m, cmd
		}
	case logoutMsg:
		util.LogError("clear token", config.ClearToken())
		m.backend.SetToken("")
		fresh := NewMainModel(m.ctx, m.backend, m.cap, nil)
		fresh.width, fresh.height = m.width, m.height
		return fresh, textinput.Blink
	}

	switch m.state {
	case StateLogin:
		return m.updateLogin(msg)
	case StateApp:
		var cmd tea.Cmd
		m.app, cmd = m.app.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m MainModel) loginInputs() []*textinput.Model {
	if m.registering {
		return []*textinput.Model{&m.nameInput, &m.emailInput, &m.passInput}
	}
	return []*textinput.Model{&m.emailInput, &m.passInput}
}

func (m MainModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				m.status = "invalid email or password"
			} else {
				m.status = msg.err.Error()
			}
			return m, nil
		}
		util.LogError("save token", config.SaveToken(msg.resp.AccessToken))
		m.backend.SetToken(msg.resp.AccessToken)
		m.state = StateApp
		m.app = NewAppModel(m.ctx, m.backend, m.cap, msg.resp.User)
		m.app.width, m.app.height = m.width, m.height
		m.app.setSizes()
		return m, m.app.Init()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			inputs := m.loginInputs()
			if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
				m.focusIdx--
			} else {
				m.focusIdx++
			}
			m.focusIdx = (m.focusIdx + len(inputs)) % len(inputs)
			for i, in := range inputs {
				if i == m.focusIdx {
					in.Focus()
				} else {
					in.Blur()
				}
			}
			return m, nil
		case tea.KeyEnter:
			return m.submitLogin()
		}
		if msg.String() == "ctrl+r" {
			m.registering = !m.registering
			m.focusIdx = 0
			for i, in := range m.loginInputs() {
				if i == 0 {
					in.Focus()
				} else {
					in.Blur()
				}
			}
			m.status = ""
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	cmds = append(cmds, cmd)
	m.passInput, cmd = m.passInput.Update(msg)
	cmds = append(cmds, cmd)
	if m.registering {
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m MainModel) submitLogin() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	email := strings.TrimSpace(m.emailInput.Value())
	pass := m.passInput.Value()
	if email == "" || pass == "" {
		m.status = "email and password are required"
		return m, nil
	}
	if m.registering && strings.TrimSpace(m.nameInput.Value()) == "" {
		m.status = "display name is required"
		return m, nil
	}

	m.busy = true
	m.status = ""
	backend, ctx := m.backend, m.ctx
	registering := m.registering
	name := strings.TrimSpace(m.nameInput.Value())
	return m, func() tea.Msg {
		if registering {
			resp, err := backend.Register(ctx, api.RegisterRequest{Email: email, Password: pass, Name: name})
			return loginResultMsg{resp: resp, err: err}
		}
		resp, err := backend.Login(ctx, api.LoginRequest{Email: email, Password: pass})
		return loginResultMsg{resp: resp, err: err}
	}
}

func (m MainModel) View() string {
	if m.state == StateApp {
		return m.app.View()
	}

	theme := CurrentTheme
	title := "MileSync"
	mode := "Sign in"
	hint := "[enter] submit  [tab] next field  [ctrl+r] register  [ctrl+c] quit"
	if m.registering {
		mode = "Create account"
		hint = "[enter] submit  [tab] next field  [ctrl+r] back to sign in  [ctrl+c] quit"
	}

	var b strings.Builder
	b.WriteString("\n  " + theme.Header.Render(title) + "  " + theme.Dim.Render(mode) + "\n\n")
	if m.registering {
		b.WriteString("  " + m.nameInput.View() + "\n")
	}
	b.WriteString("  " + m.emailInput.View() + "\n")
	b.WriteString("  " + m.passInput.View() + "\n\n")
	if m.busy {
		b.WriteString("  " + theme.Dim.Render("signing in…") + "\n")
	}
	if m.status != "" {
		b.WriteString("  " + theme.ErrorBanner.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + theme.Dim.Render(hint) + "\n")
	return b.String()
}

// logoutMsg asks the root model to drop credentials and return to the
// login screen.
type logoutMsg struct{}

func logoutCmd() tea.Msg { return logoutMsg{} }
