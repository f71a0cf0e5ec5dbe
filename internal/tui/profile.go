package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
)

type profileSavedMsg struct {
	user models.User
	err  error
}

// ProfileModel shows the account and lets the user edit their display
// name and avatar URL, or log out.
type ProfileModel struct {
	ctx context.Context
	b   Backend

	width  int
	height int

	user    models.User
	status  string
	notice  string
	editing bool
	busy    bool

	nameInput   textinput.Model
	avatarInput textinput.Model
	focusIdx    int
}

func NewProfileModel(ctx context.Context, b Backend, user models.User) ProfileModel {
	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = config.MaxNameLength
	name.Width = 40

	avatar := textinput.New()
	avatar.Placeholder = "avatar URL"
	avatar.CharLimit = 500
	avatar.Width = 60

	return ProfileModel{ctx: ctx, b: b, user: user, nameInput: name, avatarInput: avatar}
}

func (m *ProfileModel) setSize(w, h int) {
	m.width, m.height = w, h
}

func (m ProfileModel) inputActive() bool {
	return m.editing
}

func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.notice = "profile saved"
		m.user = msg.user
		m.editing = false
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		switch msg.String() {
		case "e":
			m.editing = true
			m.notice = ""
			m.focusIdx = 0
			m.nameInput.SetValue(m.user.Name)
			m.avatarInput.SetValue(util.Deref(m.user.AvatarURL))
			m.nameInput.Focus()
			m.avatarInput.Blur()
			return m, textinput.Blink
		case "L":
			return m, logoutCmd
		}
	}
	return m, nil
}

func (m ProfileModel) handleEditKey(msg tea.KeyMsg) (ProfileModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.focusIdx = 1 - m.focusIdx
		if m.focusIdx == 0 {
			m.nameInput.Focus()
			m.avatarInput.Blur()
		} else {
			m.nameInput.Blur()
			m.avatarInput.Focus()
		}
		return m, nil
	case tea.KeyEnter:
		return m.save()
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.avatarInput, cmd = m.avatarInput.Update(msg)
	}
	return m, cmd
}

func (m ProfileModel) save() (ProfileModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.status = "name must not be empty"
		return m, nil
	}
	avatar := strings.TrimSpace(m.avatarInput.Value())

	update := api.ProfileUpdate{Name: &name}
	if avatar != "" {
		update.AvatarURL = &avatar
	}

	m.busy = true
	m.status = ""
	ctx, b := m.ctx, m.b
	return m, func() tea.Msg {
		user, err := b.UpdateProfile(ctx, update)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m ProfileModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(" " + theme.Header.Render("Profile") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(" " + theme.Banner.Render(m.notice) + "\n\n")
	}

	if m.editing {
		b.WriteString(" Name:   " + m.nameInput.View() + "\n")
		b.WriteString(" Avatar: " + m.avatarInput.View() + "\n\n")
		busy := ""
		if m.busy {
			busy = "  " + theme.Dim.Render("saving…")
		}
		b.WriteString(" " + theme.Dim.Render("[enter] save  [tab] switch field  [esc] cancel") + busy + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf(" %s  %s\n", theme.Focused.Render(m.user.Name), theme.Dim.Render(m.user.Email)))
	b.WriteString(" " + theme.Dim.Render("signed in via "+m.user.AuthProvider) + "\n")
	if m.user.IsSuperuser {
		b.WriteString(" " + theme.Highlight.Render("administrator") + "\n")
	}
	b.WriteString(fmt.Sprintf("\n AI tokens: %d used of %d\n", m.user.TokensUsed, m.user.TokenLimit))
	if m.user.QuotaResetAt != nil {
		b.WriteString(" " + theme.Dim.Render("quota resets "+m.user.QuotaResetAt.Format("2006-01-02 15:04")) + "\n")
	}
	b.WriteString(" " + theme.Dim.Render("member since "+m.user.CreatedAt.Format("2006-01-02")) + "\n")

	b.WriteString("\n " + theme.Dim.Render("[e] edit profile  [L] log out") + "\n")
	return b.String()
}
