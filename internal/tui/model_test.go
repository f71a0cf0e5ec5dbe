package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/voice"
)

func isolateHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvToken, "")
}

func newLoginModel(b Backend) MainModel {
	return NewMainModel(context.Background(), b, voice.NewCapture(nil), nil)
}

func TestLoginSuccessEntersApp(t *testing.T) {
	isolateHome(t)
	b := newMockBackend()
	b.loginResp = api.TokenResponse{
		AccessToken: "tok-123",
		User:        models.User{ID: 1, Email: "pat@example.com", Name: "Pat"},
	}
	m := newLoginModel(b)
	m.emailInput.SetValue("pat@example.com")
	m.passInput.SetValue("hunter2")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MainModel)
	result, ok := findMsg[loginResultMsg](collectMsgs(cmd))
	if !ok {
		t.Fatalf("no loginResultMsg produced")
	}
	model, _ = m.Update(result)
	m = model.(MainModel)

	if m.state != StateApp {
		t.Fatalf("state = %v after successful login", m.state)
	}
	if b.token != "tok-123" {
		t.Errorf("token not installed on the backend: %q", b.token)
	}
	if saved := config.LoadToken(); saved != "tok-123" {
		t.Errorf("token not cached: %q", saved)
	}
}

func TestLoginAuthFailureShowsFriendlyMessage(t *testing.T) {
	isolateHome(t)
	b := newMockBackend()
	b.loginErr = &api.APIError{Status: 401, Detail: "bad credentials"}
	m := newLoginModel(b)
	m.emailInput.SetValue("pat@example.com")
	m.passInput.SetValue("wrong")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MainModel)
	result, _ := findMsg[loginResultMsg](collectMsgs(cmd))
	model, _ = m.Update(result)
	m = model.(MainModel)

	if m.state != StateLogin {
		t.Fatalf("failed login left the login screen")
	}
	if m.status != "invalid email or password" {
		t.Errorf("status = %q", m.status)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	isolateHome(t)
	b := newMockBackend()
	m := newLoginModel(b)
	m.emailInput.SetValue("pat@example.com")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MainModel)
	if cmd != nil || b.callCounts["Login"] != 0 {
		t.Errorf("empty password still submitted")
	}
	if m.status == "" {
		t.Errorf("expected validation message")
	}
}

func TestRegisterToggleAddsNameField(t *testing.T) {
	isolateHome(t)
	m := newLoginModel(newMockBackend())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = model.(MainModel)
	if !m.registering {
		t.Fatalf("ctrl+r did not switch to register mode")
	}
	if !strings.Contains(m.View(), "Create account") {
		t.Errorf("register mode not rendered")
	}
}

func TestCachedUserSkipsLogin(t *testing.T) {
	isolateHome(t)
	user := models.User{ID: 1, Name: "Pat"}
	m := NewMainModel(context.Background(), newMockBackend(), voice.NewCapture(nil), &user)
	if m.state != StateApp {
		t.Errorf("cached user still sees the login screen")
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	isolateHome(t)
	if err := config.SaveToken("tok-123"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	b := newMockBackend()
	b.token = "tok-123"
	user := models.User{ID: 1, Name: "Pat"}
	m := NewMainModel(context.Background(), b, voice.NewCapture(nil), &user)

	model, _ := m.Update(logoutMsg{})
	m = model.(MainModel)

	if m.state != StateLogin {
		t.Errorf("logout did not return to the login screen")
	}
	if b.token != "" {
		t.Errorf("backend token not cleared")
	}
	if tok := config.LoadToken(); tok != "" {
		t.Errorf("cached token survived logout: %q", tok)
	}
}
