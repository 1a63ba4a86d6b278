package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"agentchat/internal/agentapi"
	"agentchat/internal/app"
	"agentchat/internal/auth"
	"agentchat/internal/config"
	"agentchat/internal/logging"
	"agentchat/internal/models"
	"agentchat/internal/prefs"
	"agentchat/internal/selection"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testApp(t *testing.T) *app.App {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.URL = "http://127.0.0.1:1"
	cfg.API.AssistantID = "agent"
	cfg.API.Timeout = 1
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.Auth.Username = "admin"
	cfg.Auth.PasswordHash = string(hash)
	return app.NewWithStore(cfg, logging.Discard(), prefs.NewMemoryStore())
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func typeAndSubmit(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.input.SetValue(text)
	next, _ := m.Update(key("enter"))
	return next.(Model)
}

func TestPrompter_ConfirmRoundTrip(t *testing.T) {
	p := NewPrompter()
	p.Attach(func(msg tea.Msg) {
		req, ok := msg.(confirmRequestMsg)
		require.True(t, ok)
		assert.Equal(t, "Delete?", req.question)
		req.reply <- true
	})
	assert.True(t, p.Confirm(t.Context(), "Delete?"))
}

func TestPrompter_CancelledContext(t *testing.T) {
	p := NewPrompter()
	p.Attach(func(tea.Msg) {})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.False(t, p.Confirm(ctx, "Delete?"))
}

func TestPrompter_Detached(t *testing.T) {
	p := NewPrompter()
	assert.False(t, p.Confirm(t.Context(), "Delete?"))
	p.Alert(t.Context(), "ignored")
}

func TestHistoryState_Cursor(t *testing.T) {
	list := []agentapi.Thread{{ThreadID: "a"}, {ThreadID: "b"}, {ThreadID: "c"}}
	h := NewHistoryState()

	h.Up()
	got, ok := h.Selected(list)
	require.True(t, ok)
	assert.Equal(t, "a", got.ThreadID)

	h.Down(len(list))
	h.Down(len(list))
	h.Down(len(list))
	got, _ = h.Selected(list)
	assert.Equal(t, "c", got.ThreadID)

	h.Clamp(1)
	got, _ = h.Selected(list[:1])
	assert.Equal(t, "a", got.ThreadID)

	h.Clamp(0)
	_, ok = h.Selected(nil)
	assert.False(t, ok)
}

func TestHistoryState_Render(t *testing.T) {
	list := []agentapi.Thread{{
		ThreadID:  "abcdef0123456789",
		UpdatedAt: "2026-10-17T10:00:00Z",
		Values: map[string]any{"messages": []any{
			map[string]any{"type": "human", "content": "Show VLANs"},
		}},
	}}
	h := NewHistoryState()

	out := h.Render(list, false, true, "abcdef0123456789", "", 30)
	assert.Contains(t, out, "Chats")
	assert.Contains(t, out, "Show VLANs")

	out = h.Render(list, false, true, "", "abcdef0123456789", 30)
	assert.Contains(t, out, "deleting...")

	out = h.Render(nil, true, false, "", "", 30)
	assert.NotContains(t, out, "No chats yet.")

	out = h.Render(nil, false, false, "", "", 30)
	assert.Contains(t, out, "No chats yet.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel..", truncate("hello world", 5))
	assert.Equal(t, "¿Có..", truncate("¿Cómo estás?", 5))
}

func TestRenderMessages(t *testing.T) {
	msgs := []agentapi.Message{
		{Type: "human", Content: "ping"},
		{Type: "ai", Content: "**pong**"},
		{Type: "tool", Content: ""},
	}
	out := RenderMessages(msgs, "second", func(s string) string { return "<md>" + s + "</md>" })

	assert.Contains(t, out, "You:")
	assert.Contains(t, out, "  ping")
	assert.Contains(t, out, "Assistant:")
	assert.Contains(t, out, "<md>**pong**</md>")
	assert.NotContains(t, out, "Tool:")
	assert.Contains(t, out, "  second")
	assert.Contains(t, out, "waiting for the agent")
}

func TestModelPicker(t *testing.T) {
	p := NewModelPicker(models.Default())
	assert.Equal(t, models.ProviderOpenAI, p.Provider().ID)

	p.Update(key("right"))
	assert.Equal(t, models.ProviderOpenRouter, p.Provider().ID)

	for _, r := range "coder" {
		p.Update(key(string(r)))
	}
	list := p.Models()
	require.NotEmpty(t, list)
	for _, m := range list {
		assert.Equal(t, models.ProviderOpenRouter, m.Provider)
	}

	res, _ := p.Update(key("enter"))
	assert.Equal(t, pickerSelectModel, res.action)
	assert.Equal(t, list[0].ID, res.model.ID)

	res, _ = p.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, pickerSelectProvider, res.action)
	assert.Equal(t, models.ProviderOpenRouter, res.provider)

	res, _ = p.Update(key("esc"))
	assert.Equal(t, pickerClose, res.action)
}

func TestMCPPicker(t *testing.T) {
	state := selection.NewMCPState(prefs.NewMemoryStore(), logging.Discard())
	p := NewMCPPicker(state)

	// github row, then two enabled servers with their select-all and tools
	assert.Len(t, p.rows(), 1+(2+1)+(2+4))

	p.Update(key("space"))
	assert.True(t, state.Snapshot().IsServerEnabled("github"))
	assert.Len(t, p.rows(), (2+11)+(2+1)+(2+4))

	p.Update(key("down"))
	p.Update(key("space"))
	assert.True(t, state.Snapshot().AllToolsSelected("github"))

	p.Update(key("down"))
	p.Update(key("space"))
	assert.False(t, state.Snapshot().IsToolAllowed("github", "create_branch"))

	assert.Contains(t, p.Render(120, 60), "MCP SERVERS & TOOLS")
	assert.True(t, p.Update(key("esc")))
}

func TestModel_LoginFlow(t *testing.T) {
	a := testApp(t)
	m := sized(New(t.Context(), a, NewPrompter()))
	require.Equal(t, screenLogin, m.screen)

	next, _ := m.Update(loginResultMsg{result: auth.Result{Error: auth.MsgInvalidCredentials}})
	m = next.(Model)
	assert.Equal(t, screenLogin, m.screen)
	assert.Contains(t, m.View(), auth.MsgInvalidCredentials)

	result := a.Session.Login(t.Context(), "admin", "admin123")
	next, cmd := m.Update(loginResultMsg{result: result})
	m = next.(Model)
	assert.Equal(t, screenChat, m.screen)
	assert.NotNil(t, cmd)
}

func TestModel_SelectionCommands(t *testing.T) {
	a := testApp(t)
	a.Session.Login(t.Context(), "admin", "admin123")
	m := sized(New(t.Context(), a, NewPrompter()))
	require.Equal(t, screenChat, m.screen)

	m = typeAndSubmit(t, m, "/provider gemini")
	assert.Equal(t, models.ProviderGemini, a.Models.Snapshot().Config.Provider)

	m = typeAndSubmit(t, m, "/model openai-gpt-4o")
	assert.Equal(t, "gpt-4o", a.Models.Snapshot().Config.Model)

	m = typeAndSubmit(t, m, "/provider nope")
	assert.True(t, m.statusErr)
	assert.Equal(t, "gpt-4o", a.Models.Snapshot().Config.Model)

	m = typeAndSubmit(t, m, "/server github")
	assert.True(t, a.MCP.Snapshot().IsServerEnabled("github"))

	m = typeAndSubmit(t, m, "/tool netCommand list_eve_labs")
	assert.False(t, a.MCP.Snapshot().IsToolAllowed("netCommand", "list_eve_labs"))

	m = typeAndSubmit(t, m, "/bogus")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "/bogus")

	m = typeAndSubmit(t, m, "/threads")
	assert.True(t, m.historyOpen)
	assert.True(t, a.Flags.HistoryOpen())
	assert.True(t, strings.Contains(m.View(), "Chats"))
}

func TestModel_ConfirmModal(t *testing.T) {
	a := testApp(t)
	a.Session.Login(t.Context(), "admin", "admin123")
	m := sized(New(t.Context(), a, NewPrompter()))

	reply := make(chan bool, 1)
	next, _ := m.Update(confirmRequestMsg{question: "Delete this chat?", reply: reply})
	m = next.(Model)
	assert.Equal(t, overlayConfirm, m.overlay)
	assert.Contains(t, m.View(), "Delete this chat?")

	next, _ = m.Update(key("n"))
	m = next.(Model)
	assert.False(t, <-reply)
	assert.Equal(t, overlayNone, m.overlay)
}

func TestModel_SecondConfirmDeclinesFirst(t *testing.T) {
	a := testApp(t)
	a.Session.Login(t.Context(), "admin", "admin123")
	m := sized(New(t.Context(), a, NewPrompter()))

	first := make(chan bool, 1)
	second := make(chan bool, 1)
	next, _ := m.Update(confirmRequestMsg{question: "Delete this chat?", reply: first})
	m = next.(Model)
	next, _ = m.Update(confirmRequestMsg{question: "Delete this chat?", reply: second})
	m = next.(Model)

	assert.False(t, <-first)
	assert.Equal(t, overlayConfirm, m.overlay)

	next, _ = m.Update(key("y"))
	m = next.(Model)
	assert.True(t, <-second)
	assert.Equal(t, overlayNone, m.overlay)
}

func TestModel_FailedSendAdoptsCreatedThread(t *testing.T) {
	a := testApp(t)
	a.Session.Login(t.Context(), "admin", "admin123")
	m := sized(New(t.Context(), a, NewPrompter()))

	next, _ := m.Update(sentMsg{thread: agentapi.Thread{ThreadID: "t-new"}, text: "hi", err: errors.New("run failed")})
	m = next.(Model)

	assert.Equal(t, "t-new", m.current.ThreadID)
	assert.Equal(t, "t-new", a.Selection.Current())
	assert.Equal(t, "hi", m.input.Value())
	_, ok := m.threads.Find("t-new")
	assert.True(t, ok)
}

func TestModel_SentReplyUpdatesOpenChat(t *testing.T) {
	a := testApp(t)
	a.Session.Login(t.Context(), "admin", "admin123")
	m := sized(New(t.Context(), a, NewPrompter()))

	thread := agentapi.Thread{ThreadID: "t-1", Values: map[string]any{"messages": []any{
		map[string]any{"type": "human", "content": "hi"},
		map[string]any{"type": "ai", "content": "hello"},
	}}}
	next, _ := m.Update(sentMsg{thread: thread, text: "hi"})
	m = next.(Model)

	assert.Equal(t, "t-1", m.current.ThreadID)
	assert.Equal(t, "t-1", a.Selection.Current())
	_, ok := m.threads.Find("t-1")
	assert.True(t, ok)
}
