package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
	"github.com/milesync/mscoach/internal/voice"
)

type sessionsLoadedMsg struct {
	sessions []models.ChatListItem
	err      error
}

type sessionOpenedMsg struct {
	gen  int
	data api.SessionWithMessages
	err  error
}

type chatStartedMsg struct {
	resp api.StartChatResponse
	err  error
}

type sessionDeletedMsg struct {
	sessionID int64
	err       error
}

type messageSentMsg struct {
	gen  int
	resp api.SendMessageResponse
	err  error
}

type chatFinalizedMsg struct {
	gen  int
	resp api.FinalizeResponse
	err  error
}

type capturePollMsg struct {
	view View
}

func pollCaptureCmd(v View) tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return capturePollMsg{view: v}
	})
}

const (
	chatModeList = iota
	chatModeConversation
)

// ChatModel drives coaching conversations: a session list, and the
// message view with optimistic sends.
type ChatModel struct {
	ctx context.Context
	b   Backend
	cap *voice.Capture

	// voiceText receives finalized transcripts from the capture
	// callback goroutine; drained on the update loop.
	voiceText  chan string
	voiceDrain bool

	width  int
	height int

	mode    int
	loading bool
	status  string

	sessions      []models.ChatListItem
	cursor        int
	confirmDelete bool

	gen      int
	session  models.ChatSession
	messages []models.ChatMessage
	pending  *models.ChatMessage
	sending  bool

	vp    viewport.Model
	input textinput.Model
	spin  spinner.Model
}

func NewChatModel(ctx context.Context, b Backend, cap *voice.Capture, voiceText chan string) ChatModel {
	input := textinput.New()
	input.Placeholder = "Tell your coach what's on your mind…"
	input.CharLimit = config.MaxMessageLength
	input.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return ChatModel{
		ctx:       ctx,
		b:         b,
		cap:       cap,
		voiceText: voiceText,
		vp:        viewport.New(80, 20),
		input:     input,
		spin:      spin,
	}
}

func (m *ChatModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.vp.Width = w
	m.vp.Height = util.Clamp(h-6, 3, h)
	if w > 20 {
		m.input.Width = w - 10
	}
	m.refreshViewport()
}

func (m ChatModel) inputActive() bool {
	return m.mode == chatModeConversation && m.input.Focused()
}

func (m ChatModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		sessions, err := b.ListSessions(ctx)
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func (m ChatModel) openSession(id int64) tea.Cmd {
	ctx, b := m.ctx, m.b
	gen := m.gen
	return func() tea.Msg {
		data, err := b.GetSession(ctx, id)
		return sessionOpenedMsg{gen: gen, data: data, err: err}
	}
}

func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.sessions = msg.sessions
		m.cursor = util.Clamp(m.cursor, 0, max(len(m.sessions)-1, 0))
		return m, nil

	case chatStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.gen++
		m.session = msg.resp.Session
		m.messages = []models.ChatMessage{msg.resp.InitialMessage}
		m.pending = nil
		m.sending = false
		m.mode = chatModeConversation
		m.input.Focus()
		m.refreshViewport()
		return m, textinput.Blink

	case sessionOpenedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.session = msg.data.Session
		m.messages = msg.data.Messages
		m.pending = nil
		m.sending = false
		m.mode = chatModeConversation
		if m.session.Status == models.ChatActive {
			m.input.Focus()
		}
		m.refreshViewport()
		return m, textinput.Blink

	case messageSentMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.sending = false
		if msg.err != nil {
			// Roll back the optimistic user message; no assistant
			// message may appear.
			m.pending = nil
			if api.IsQuotaError(msg.err) {
				m.status = "AI quota exhausted — try again after your quota resets"
			} else {
				m.status = "send failed: " + msg.err.Error()
			}
			m.refreshViewport()
			return m, nil
		}
		m.status = ""
		m.pending = nil
		m.messages = append(m.messages, msg.resp.UserMessage, msg.resp.AssistantMessage)
		m.refreshViewport()
		return m, nil

	case chatFinalizedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = "finalize failed: " + msg.err.Error()
			return m, nil
		}
		m.session = msg.resp.Session
		m.status = "roadmap generated: " + msg.resp.Goal.Title
		m.input.Blur()
		return m, nil

	case sessionDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.loading = true
		return m, m.load()

	case capturePollMsg:
		if msg.view != ViewChat {
			return m, nil
		}
		return m.pollVoice()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (ChatModel, tea.Cmd) {
	if m.mode == chatModeList {
		if m.confirmDelete {
			switch msg.String() {
			case "y":
				m.confirmDelete = false
				if m.cursor >= len(m.sessions) {
					return m, nil
				}
				ctx, b := m.ctx, m.b
				id := m.sessions[m.cursor].ID
				return m, func() tea.Msg {
					return sessionDeletedMsg{sessionID: id, err: b.DeleteSession(ctx, id)}
				}
			default:
				m.confirmDelete = false
			}
			return m, nil
		}

		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.load()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
		case "n":
			m.loading = true
			ctx, b := m.ctx, m.b
			return m, func() tea.Msg {
				resp, err := b.StartChat(ctx)
				return chatStartedMsg{resp: resp, err: err}
			}
		case "enter":
			if m.cursor < len(m.sessions) {
				m.gen++
				m.loading = true
				return m, m.openSession(m.sessions[m.cursor].ID)
			}
		case "d":
			if m.cursor < len(m.sessions) {
				m.confirmDelete = true
			}
		}
		return m, nil
	}

	// Conversation mode.
	switch msg.Type {
	case tea.KeyEsc:
		if m.cap.Capturing() {
			m.cap.End()
		}
		m.mode = chatModeList
		m.input.Blur()
		return m, m.load()
	case tea.KeyEnter:
		return m.send()
	}
	switch msg.String() {
	case "ctrl+f":
		if m.session.Status == models.ChatActive {
			m.loading = true
			ctx, b := m.ctx, m.b
			gen, id := m.gen, m.session.ID
			return m, func() tea.Msg {
				resp, err := b.FinalizeChat(ctx, id)
				return chatFinalizedMsg{gen: gen, resp: resp, err: err}
			}
		}
		return m, nil
	case "ctrl+v":
		return m.toggleVoice()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) send() (ChatModel, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" || m.sending || m.session.Status != models.ChatActive {
		return m, nil
	}

	// Optimistic append: visible immediately, replaced by the server
	// copy on success, removed on failure.
	m.pending = &models.ChatMessage{
		SessionID: m.session.ID,
		Role:      models.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	m.sending = true
	m.status = ""
	m.input.Reset()
	m.refreshViewport()

	ctx, b := m.ctx, m.b
	gen, id := m.gen, m.session.ID
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		resp, err := b.SendMessage(ctx, id, content)
		return messageSentMsg{gen: gen, resp: resp, err: err}
	})
}

func (m ChatModel) toggleVoice() (ChatModel, tea.Cmd) {
	if !m.cap.Available() {
		m.status = voice.CondUnsupported
		return m, nil
	}
	if m.cap.Capturing() {
		m.cap.End()
		return m, nil
	}
	ch := m.voiceText
	m.cap.Begin(func(text string) {
		select {
		case ch <- text:
		default:
		}
	})
	m.status = ""
	return m, pollCaptureCmd(ViewChat)
}

func (m ChatModel) pollVoice() (ChatModel, tea.Cmd) {
	select {
	case text := <-m.voiceText:
		m.voiceDrain = false
		cur := m.input.Value()
		if cur != "" && !strings.HasSuffix(cur, " ") {
			cur += " "
		}
		m.input.SetValue(cur + text)
		m.input.CursorEnd()
		return m, nil
	default:
	}
	if m.cap.Capturing() {
		m.voiceDrain = false
		return m, pollCaptureCmd(ViewChat)
	}
	if cond := m.cap.Condition(); cond != "" {
		m.voiceDrain = false
		m.status = cond
		return m, nil
	}
	// The transcript is published after the listening flag drops;
	// one extra tick catches a result landing in that window.
	if !m.voiceDrain {
		m.voiceDrain = true
		return m, pollCaptureCmd(ViewChat)
	}
	m.voiceDrain = false
	return m, nil
}

func (m *ChatModel) refreshViewport() {
	theme := CurrentTheme
	var b strings.Builder
	for _, msg := range m.messages {
		switch msg.Role {
		case models.RoleAssistant:
			b.WriteString(theme.Dim.Render("coach") + "\n")
			b.WriteString(renderMarkdown(msg.Content, m.vp.Width-2) + "\n\n")
		default:
			b.WriteString(theme.UserMsg.Render("you") + "\n")
			b.WriteString(wrapText(msg.Content, m.vp.Width-2) + "\n\n")
		}
	}
	if m.pending != nil {
		b.WriteString(theme.UserMsg.Render("you") + "\n")
		b.WriteString(theme.Pending.Render(wrapText(m.pending.Content, m.vp.Width-2)) + "\n\n")
	}
	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

func (m ChatModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	if m.mode == chatModeList {
		b.WriteString(" " + theme.Header.Render("Coaching sessions") + "\n\n")
		if m.status != "" {
			b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
		}
		if m.confirmDelete {
			b.WriteString(" " + theme.ErrorBanner.Render("delete this session and its messages? [y/n]") + "\n\n")
		}
		if m.loading && len(m.sessions) == 0 {
			return b.String() + " " + theme.Dim.Render("loading…") + "\n"
		}
		if len(m.sessions) == 0 {
			b.WriteString(" " + theme.Dim.Render("no sessions yet") + "\n")
		}
		for i, s := range m.sessions {
			cursor := "  "
			style := theme.Coach
			if i == m.cursor {
				cursor = "> "
				style = theme.Focused
			}
			title := util.Deref(s.Title)
			if title == "" {
				title = "(untitled)"
			}
			line := cursor + style.Render(util.Truncate(title, 40))
			line += theme.Dim.Render("  " + string(s.Status))
			if s.LastMessagePreview != nil {
				line += "  " + theme.Dim.Render(util.Preview(*s.LastMessagePreview, 40))
			}
			b.WriteString(fitLine(line, m.width) + "\n")
		}
		b.WriteString("\n " + theme.Dim.Render("[n] new session  [enter] open  [d] delete  [r] refresh") + "\n")
		return b.String()
	}

	title := util.Deref(m.session.Title)
	if title == "" {
		title = "Coaching chat"
	}
	b.WriteString(" " + theme.Header.Render(title) + "  " + theme.Dim.Render(string(m.session.Status)) + "\n\n")
	b.WriteString(m.vp.View() + "\n")

	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "\n")
	}
	if m.sending {
		b.WriteString(" " + m.spin.View() + theme.Dim.Render(" coach is thinking…") + "\n")
	}
	if m.cap.Capturing() {
		b.WriteString(" " + theme.Banner.Render("● listening… (ctrl+v to stop)") + "\n")
	}

	if m.session.Status == models.ChatActive {
		b.WriteString(" " + m.input.View() + "\n")
		hint := "[enter] send  [ctrl+f] finalize into goal  [esc] back"
		if m.cap.Available() {
			hint = "[enter] send  [ctrl+v] voice  [ctrl+f] finalize into goal  [esc] back"
		}
		b.WriteString(" " + theme.Dim.Render(hint) + "\n")
	} else {
		b.WriteString(" " + theme.Dim.Render("session completed — [esc] back") + "\n")
	}
	return b.String()
}
