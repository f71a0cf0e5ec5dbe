package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/voice"
)

// collectMsgs runs a command tree and returns every message it
// produces, flattening batches.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first collected message matching the predicate.
func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if typed, ok := m.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func newConversationChat(b Backend) ChatModel {
	m := NewChatModel(context.Background(), b, voice.NewCapture(nil), make(chan string, 1))
	m.mode = chatModeConversation
	m.session = models.ChatSession{ID: 7, Status: models.ChatActive}
	m.messages = []models.ChatMessage{
		{ID: 1, SessionID: 7, Role: models.RoleAssistant, Content: "What would you like to work on?"},
	}
	m.input.Focus()
	return m
}

func TestSendAppendsPendingImmediately(t *testing.T) {
	b := newMockBackend()
	m := newConversationChat(b)
	m.input.SetValue("I want to run a marathon")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.pending == nil {
		t.Fatalf("expected a pending message right after send")
	}
	if m.pending.Content != "I want to run a marathon" {
		t.Errorf("pending content = %q", m.pending.Content)
	}
	if m.pending.Role != models.RoleUser {
		t.Errorf("pending role = %q, want user", m.pending.Role)
	}
	if !m.sending {
		t.Errorf("expected sending flag")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after send")
	}
	if cmd == nil {
		t.Fatalf("send produced no command")
	}
}

func TestSendSuccessReplacesPendingWithServerPair(t *testing.T) {
	b := newMockBackend()
	b.sendResp = api.SendMessageResponse{
		UserMessage:      models.ChatMessage{ID: 2, SessionID: 7, Role: models.RoleUser, Content: "I want to run a marathon"},
		AssistantMessage: models.ChatMessage{ID: 3, SessionID: 7, Role: models.RoleAssistant, Content: "Great. When is the race?"},
	}
	m := newConversationChat(b)
	m.input.SetValue("I want to run a marathon")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sent, ok := findMsg[messageSentMsg](collectMsgs(cmd))
	if !ok {
		t.Fatalf("no messageSentMsg produced")
	}
	m, _ = m.Update(sent)

	if m.pending != nil {
		t.Errorf("pending not cleared after success")
	}
	if m.sending {
		t.Errorf("sending flag not cleared")
	}
	if len(m.messages) != 3 {
		t.Fatalf("message count = %d, want 3", len(m.messages))
	}
	if m.messages[1].ID != 2 || m.messages[1].Role != models.RoleUser {
		t.Errorf("second message is not the server user copy: %+v", m.messages[1])
	}
	if m.messages[2].ID != 3 || m.messages[2].Role != models.RoleAssistant {
		t.Errorf("third message is not the assistant reply: %+v", m.messages[2])
	}
	if b.sentContent[0] != "I want to run a marathon" {
		t.Errorf("backend received %q", b.sentContent[0])
	}
}

func TestSendFailureRemovesPendingAndAppendsNothing(t *testing.T) {
	b := newMockBackend()
	b.sendErr = errBoom
	m := newConversationChat(b)
	m.input.SetValue("hello")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sent, ok := findMsg[messageSentMsg](collectMsgs(cmd))
	if !ok {
		t.Fatalf("no messageSentMsg produced")
	}
	m, _ = m.Update(sent)

	if m.pending != nil {
		t.Errorf("pending survived a failed send")
	}
	if len(m.messages) != 1 {
		t.Errorf("message count = %d, want 1 (no assistant message on failure)", len(m.messages))
	}
	if m.status == "" {
		t.Errorf("expected an error banner after failed send")
	}
}

func TestSendQuotaErrorGetsFriendlyBanner(t *testing.T) {
	b := newMockBackend()
	b.sendErr = &api.APIError{Status: 429, Detail: "quota exceeded"}
	m := newConversationChat(b)
	m.input.SetValue("hello")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sent, _ := findMsg[messageSentMsg](collectMsgs(cmd))
	m, _ = m.Update(sent)

	if m.status != "AI quota exhausted — try again after your quota resets" {
		t.Errorf("status = %q", m.status)
	}
}

func TestStaleSendResultIsDropped(t *testing.T) {
	b := newMockBackend()
	m := newConversationChat(b)
	m.gen = 5

	stale := messageSentMsg{gen: 4, resp: api.SendMessageResponse{
		AssistantMessage: models.ChatMessage{ID: 99, Role: models.RoleAssistant},
	}}
	m, _ = m.Update(stale)
	if len(m.messages) != 1 {
		t.Errorf("stale result mutated the conversation")
	}
}

func TestEmptyInputDoesNotSend(t *testing.T) {
	b := newMockBackend()
	m := newConversationChat(b)
	m.input.SetValue("   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.pending != nil || cmd != nil {
		t.Errorf("whitespace-only input should not send")
	}
}

func TestSessionListErrorKeepsOldData(t *testing.T) {
	b := newMockBackend()
	m := NewChatModel(context.Background(), b, voice.NewCapture(nil), make(chan string, 1))
	title := "old session"
	m.sessions = []models.ChatListItem{{ID: 1, Title: &title}}

	m, _ = m.Update(sessionsLoadedMsg{err: errBoom})
	if len(m.sessions) != 1 {
		t.Errorf("old sessions dropped on load failure")
	}
	if m.status == "" {
		t.Errorf("expected error banner")
	}

	m, _ = m.Update(sessionsLoadedMsg{sessions: []models.ChatListItem{{ID: 2}}})
	if m.status != "" {
		t.Errorf("banner not cleared by successful load")
	}
	if len(m.sessions) != 1 || m.sessions[0].ID != 2 {
		t.Errorf("sessions not replaced on success")
	}
}

func TestVoiceUnavailableSetsCondition(t *testing.T) {
	b := newMockBackend()
	m := newConversationChat(b)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if m.status != voice.CondUnsupported {
		t.Errorf("status = %q, want %q", m.status, voice.CondUnsupported)
	}
}

func TestDeleteSessionNeedsConfirmation(t *testing.T) {
	b := newMockBackend()
	title := "old plans"
	m := NewChatModel(context.Background(), b, voice.NewCapture(nil), make(chan string, 1))
	m.sessions = []models.ChatListItem{{ID: 9, Title: &title}}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if !m.confirmDelete {
		t.Fatalf("d did not ask for confirmation")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if cmd != nil || len(b.deletedSessions) != 0 {
		t.Fatalf("declined confirmation still deleted")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	deleted, ok := findMsg[sessionDeletedMsg](collectMsgs(cmd))
	if !ok {
		t.Fatalf("no sessionDeletedMsg produced")
	}
	if len(b.deletedSessions) != 1 || b.deletedSessions[0] != 9 {
		t.Fatalf("backend deletions = %v", b.deletedSessions)
	}

	m, cmd = m.Update(deleted)
	if m.status != "" {
		t.Errorf("unexpected banner after delete: %q", m.status)
	}
	if _, ok := findMsg[sessionsLoadedMsg](collectMsgs(cmd)); !ok {
		t.Errorf("session list not refreshed after delete")
	}
}

func TestDeleteSessionFailureKeepsList(t *testing.T) {
	b := newMockBackend()
	b.deleteSessionErr = errBoom
	m := NewChatModel(context.Background(), b, voice.NewCapture(nil), make(chan string, 1))
	m.sessions = []models.ChatListItem{{ID: 9}}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	deleted, _ := findMsg[sessionDeletedMsg](collectMsgs(cmd))
	m, _ = m.Update(deleted)

	if m.status == "" {
		t.Errorf("expected an error banner")
	}
	if len(m.sessions) != 1 {
		t.Errorf("list mutated on failed delete")
	}
}

func TestLateTranscriptIsDrainedByExtraPoll(t *testing.T) {
	b := newMockBackend()
	m := newConversationChat(b)

	// Capture has ended but the transcript has not been published yet:
	// the poll must schedule one more tick instead of giving up.
	m, cmd := m.Update(capturePollMsg{view: ViewChat})
	if cmd == nil {
		t.Fatalf("poll chain ended with a transcript still in flight")
	}
	poll, ok := findMsg[capturePollMsg](collectMsgs(cmd))
	if !ok || poll.view != ViewChat {
		t.Fatalf("expected a follow-up poll")
	}

	m.voiceText <- "buy running shoes"
	m, cmd = m.Update(poll)
	if got := m.input.Value(); got != "buy running shoes" {
		t.Errorf("input = %q", got)
	}
	if cmd != nil {
		t.Errorf("poll chain should end once the transcript is drained")
	}
}

func TestFinalizeMarksSessionCompleted(t *testing.T) {
	b := newMockBackend()
	b.finalizeResp = api.FinalizeResponse{
		Session: models.ChatSession{ID: 7, Status: models.ChatCompleted},
		Goal:    models.Goal{ID: 11, Title: "Run a marathon"},
	}
	m := newConversationChat(b)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	fin, ok := findMsg[chatFinalizedMsg](collectMsgs(cmd))
	if !ok {
		t.Fatalf("no chatFinalizedMsg produced")
	}
	m, _ = m.Update(fin)

	if m.session.Status != models.ChatCompleted {
		t.Errorf("session status = %q", m.session.Status)
	}
	if m.status == "" {
		t.Errorf("expected a roadmap banner")
	}
}
