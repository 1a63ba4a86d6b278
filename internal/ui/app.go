// Package ui is the bubbletea front end: login, chat history, transcript and
// the model and MCP pickers.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentchat/internal/agentapi"
	"agentchat/internal/app"
	"agentchat/internal/commands"
	"agentchat/internal/config"
	"agentchat/internal/export"
	"agentchat/internal/models"
	"agentchat/internal/selection"
	"agentchat/internal/threads"
)

type screen int

const (
	screenLogin screen = iota
	screenChat
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayModels
	overlayMCP
	overlayConfirm
)

type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

const inputHeight = 3

type threadsLoadedMsg struct {
	err error
}

type threadDeletedMsg struct {
	id  string
	err error
}

type sentMsg struct {
	thread agentapi.Thread
	text   string
	err    error
}

type exportedMsg struct {
	path string
	err  error
}

type Model struct {
	ctx      context.Context
	app      *app.App
	threads  *threads.Controller
	prompter *Prompter

	width, height int
	ready         bool

	screen  screen
	overlay overlayKind
	focus   focusArea

	login       *LoginForm
	history     *HistoryState
	historyOpen bool
	transcript  *Transcript
	input       textarea.Model
	spinner     spinner.Model

	// current is the open thread; an empty ThreadID is a new chat
	current agentapi.Thread
	pending string
	sending bool

	confirm     *confirmRequestMsg
	modelPicker *ModelPicker
	mcpPicker   *MCPPicker

	status    string
	statusErr bool
}

func New(ctx context.Context, a *app.App, prompter *Prompter) Model {
	ta := textarea.New()
	ta.Placeholder = "Message the agent... (Enter to send, / for commands)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Cyan)

	m := Model{
		ctx:         ctx,
		app:         a,
		threads:     a.Threads(prompter),
		prompter:    prompter,
		login:       NewLoginForm(),
		history:     NewHistoryState(),
		historyOpen: a.Flags.HistoryOpen(),
		transcript:  NewTranscript(80, 20),
		input:       ta,
		spinner:     sp,
	}
	if a.Session.IsAuthenticated() {
		m.screen = screenChat
	}
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	prompter := NewPrompter()
	p := tea.NewProgram(New(ctx, a, prompter),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	prompter.Attach(p.Send)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.spinner.Tick}
	if m.screen == screenChat {
		cmds = append(cmds, m.enterChat())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginSubmitMsg:
		session, ctx := m.app.Session, m.ctx
		return m, func() tea.Msg {
			return loginResultMsg{result: session.Login(ctx, msg.username, msg.password)}
		}

	case loginResultMsg:
		m.login.Update(msg)
		if !msg.result.Success {
			return m, nil
		}
		m.screen = screenChat
		if u, ok := m.app.Session.Current(); ok {
			m.setStatus("Signed in as "+u.Username, false)
		}
		return m, m.enterChat()

	case threadsLoadedMsg:
		if msg.err != nil {
			m.setStatus("Could not load chats", true)
			return m, nil
		}
		list := m.threads.Threads()
		m.history.Clamp(len(list))
		if m.current.ThreadID == "" && m.pending == "" {
			if id := m.app.Selection.Current(); id != "" {
				m.openThread(id)
			}
		}
		return m, nil

	case threadDeletedMsg:
		switch {
		case errors.Is(msg.err, threads.ErrCancelled):
		case msg.err != nil:
			// the controller already raised an alert
		default:
			if m.current.ThreadID == msg.id {
				m.current = agentapi.Thread{}
				m.showCurrent()
			}
			m.history.Clamp(len(m.threads.Threads()))
			m.setStatus("Chat deleted", false)
		}
		return m, nil

	case confirmRequestMsg:
		// Only one modal at a time; an unanswered one is declined.
		m.answer(false)
		m.confirm = &msg
		m.overlay = overlayConfirm
		return m, nil

	case alertMsg:
		m.setStatus(msg.text, true)
		return m, nil

	case sentMsg:
		return m.handleSent(msg)

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("Export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Exported to "+msg.path, false)
		}
		return m, nil

	case tea.MouseMsg:
		if m.screen == screenChat && m.overlay == overlayNone {
			var cmd tea.Cmd
			m.transcript.Viewport, cmd = m.transcript.Viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenLogin {
		return m, m.login.Update(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.screen == screenLogin {
		return m, m.login.Update(msg)
	}

	switch m.overlay {
	case overlayConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			m.answer(true)
		case "n", "N", "esc":
			m.answer(false)
		}
		return m, nil

	case overlayHelp:
		switch msg.String() {
		case "esc", "f1", "q", "?":
			m.overlay = overlayNone
		}
		return m, nil

	case overlayModels:
		res, cmd := m.modelPicker.Update(msg)
		switch res.action {
		case pickerClose:
			m.overlay = overlayNone
		case pickerSelectModel:
			m.app.Models.SelectModel(res.model)
			m.overlay = overlayNone
			m.setStatus("Model: "+res.model.Name, false)
		case pickerSelectProvider:
			m.selectProvider(res.provider)
			m.overlay = overlayNone
		}
		return m, cmd

	case overlayMCP:
		if m.mcpPicker.Update(msg) {
			m.overlay = overlayNone
		}
		return m, nil
	}

	switch msg.String() {
	case "f1":
		m.overlay = overlayHelp
		return m, nil
	case "ctrl+b":
		m.toggleHistory()
		return m, nil
	case "ctrl+n":
		m.newChat()
		return m, nil
	case "ctrl+o":
		m.openModelPicker()
		return m, nil
	case "ctrl+t":
		m.openMCPPicker()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript.Viewport, cmd = m.transcript.Viewport.Update(msg)
		return m, cmd
	case "tab":
		if m.historyOpen {
			m.setFocus(1 - m.focus)
			return m, nil
		}
	}

	if m.focus == focusHistory {
		return m.handleHistoryKey(msg)
	}

	if msg.String() == "enter" {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.threads.Threads()
	switch msg.String() {
	case "up", "k":
		m.history.Up()
	case "down", "j":
		m.history.Down(len(list))
	case "enter":
		if t, ok := m.history.Selected(list); ok {
			m.openThread(t.ThreadID)
			m.setFocus(focusInput)
		}
	case "d", "delete":
		if t, ok := m.history.Selected(list); ok {
			return m, m.deleteThread(t.ThreadID)
		}
	case "r":
		return m, m.loadThreads()
	case "n":
		m.newChat()
		m.setFocus(focusInput)
	case "esc":
		m.setFocus(focusInput)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if cmd := commands.Parse(text); cmd != nil {
		m.input.Reset()
		return m.runCommand(cmd)
	}

	if m.sending {
		m.setStatus("Wait for the current reply", true)
		return m, nil
	}

	m.input.Reset()
	m.sending = true
	m.pending = text
	m.setStatus("", false)
	m.showCurrent()

	a, ctx, threadID := m.app, m.ctx, m.current.ThreadID
	return m, func() tea.Msg {
		t, err := a.Send(ctx, threadID, text)
		return sentMsg{thread: t, text: text, err: err}
	}
}

func (m Model) handleSent(msg sentMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	m.pending = ""

	if msg.err != nil {
		m.app.Log.WithError(msg.err).Error("sending message")
		// The thread exists on the server even though the run failed.
		if msg.thread.ThreadID != "" && m.current.ThreadID == "" {
			m.threads.Upsert(msg.thread)
			m.current = msg.thread
			m.app.Selection.Set(msg.thread.ThreadID)
		}
		m.input.SetValue(msg.text)
		m.setStatus("Send failed: "+msg.err.Error(), true)
		m.showCurrent()
		return m, nil
	}

	m.threads.Upsert(msg.thread)
	// A reply for a chat the user has since left only updates the list.
	if m.current.ThreadID == "" || m.current.ThreadID == msg.thread.ThreadID {
		m.current = msg.thread
		m.app.Selection.Set(msg.thread.ThreadID)
	}
	m.showCurrent()
	return m, nil
}

func (m Model) runCommand(cmd commands.Command) (tea.Model, tea.Cmd) {
	switch c := cmd.(type) {
	case commands.Help:
		m.overlay = overlayHelp
	case commands.NewThread:
		m.newChat()
	case commands.ToggleThreads:
		m.toggleHistory()
	case commands.OpenThread:
		m.openThread(c.ID)
	case commands.DeleteThread:
		id := c.ID
		if id == "" {
			id = m.current.ThreadID
		}
		if id == "" {
			m.setStatus("No chat open", true)
			return m, nil
		}
		return m, m.deleteThread(id)
	case commands.Refresh:
		return m, m.loadThreads()
	case commands.ShowModels:
		m.openModelPicker()
	case commands.SelectProvider:
		m.selectProvider(models.Provider(c.Provider))
	case commands.SelectModel:
		info, ok := models.ByID(c.ID)
		if !ok {
			m.setStatus("Unknown model: "+c.ID, true)
			return m, nil
		}
		m.app.Models.SelectModel(info)
		m.setStatus("Model: "+info.Name, false)
	case commands.ShowMCP:
		m.openMCPPicker()
	case commands.ToggleServer:
		if _, ok := selection.ServerByID(c.Server); !ok {
			m.setStatus("Unknown MCP server: "+c.Server, true)
			return m, nil
		}
		sel := m.app.MCP.ToggleServer(c.Server)
		m.setStatus(fmt.Sprintf("%s %s", c.Server, onOff(sel.IsServerEnabled(c.Server))), false)
	case commands.ToggleTool:
		sel := m.app.MCP.ToggleTool(c.Server, c.Tool)
		m.setStatus(fmt.Sprintf("%s/%s %s", c.Server, c.Tool, onOff(sel.IsToolAllowed(c.Server, c.Tool))), false)
	case commands.ToggleAllTools:
		if _, ok := selection.ServerByID(c.Server); !ok {
			m.setStatus("Unknown MCP server: "+c.Server, true)
			return m, nil
		}
		sel := m.app.MCP.ToggleAllTools(c.Server)
		m.setStatus(fmt.Sprintf("%s: %d tool(s) allowed", c.Server, len(sel.AllowedToolsByServer[c.Server])), false)
	case commands.Export:
		return m, m.exportCurrent(c.Path)
	case commands.Logout:
		return m.logout()
	case commands.Quit:
		return m.quit()
	case commands.Unknown:
		m.setStatus("Unknown command: "+c.Name+" (try /help)", true)
	case commands.ParseError:
		m.setStatus(c.Message, true)
	}
	return m, nil
}

func (m *Model) enterChat() tea.Cmd {
	m.layout()
	m.showCurrent()
	return m.loadThreads()
}

func (m *Model) loadThreads() tea.Cmd {
	ctrl, ctx := m.threads, m.ctx
	return func() tea.Msg {
		return threadsLoadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m *Model) deleteThread(id string) tea.Cmd {
	ctrl, ctx := m.threads, m.ctx
	return func() tea.Msg {
		return threadDeletedMsg{id: id, err: ctrl.Delete(ctx, id)}
	}
}

func (m *Model) exportCurrent(path string) tea.Cmd {
	if m.current.ThreadID == "" {
		m.setStatus("No chat open", true)
		return nil
	}
	sel := m.app.Models.Snapshot()
	exp := export.FromThread(m.current, sel.Model.Name, string(sel.Model.Provider), m.app.MCP.Snapshot().EnabledServers)
	return func() tea.Msg {
		dataDir, err := config.DataDir()
		if err != nil && path == "" {
			return exportedMsg{err: err}
		}
		out, err := export.WriteThread(exp, path, dataDir, time.Now())
		return exportedMsg{path: out, err: err}
	}
}

func (m *Model) openThread(id string) {
	t, ok := m.threads.Find(id)
	if !ok {
		m.setStatus("No chat with id "+id, true)
		return
	}
	m.current = t
	m.app.Selection.Set(id)
	m.showCurrent()
}

func (m *Model) newChat() {
	m.current = agentapi.Thread{}
	m.app.Selection.Clear()
	m.showCurrent()
	m.setStatus("New chat", false)
}

func (m *Model) selectProvider(p models.Provider) {
	sel, ok := m.app.Models.SelectProvider(p)
	if !ok {
		m.setStatus("Unknown provider: "+string(p), true)
		return
	}
	m.setStatus("Model: "+sel.Model.Name, false)
}

func (m *Model) openModelPicker() {
	m.modelPicker = NewModelPicker(m.app.Models.Snapshot().Model)
	m.overlay = overlayModels
}

func (m *Model) openMCPPicker() {
	m.mcpPicker = NewMCPPicker(m.app.MCP)
	m.overlay = overlayMCP
}

func (m *Model) toggleHistory() {
	m.historyOpen = !m.historyOpen
	m.app.Flags.SetHistoryOpen(m.historyOpen)
	if !m.historyOpen {
		m.setFocus(focusInput)
	}
	m.layout()
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) answer(ok bool) {
	if m.confirm != nil {
		m.confirm.reply <- ok
		m.confirm = nil
	}
	m.overlay = overlayNone
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.answer(false)
	m.app.Session.Logout()
	m.threads.Close()
	m.threads = m.app.Threads(m.prompter)
	m.current = agentapi.Thread{}
	m.pending = ""
	m.sending = false
	m.history = NewHistoryState()
	m.login.Reset()
	m.screen = screenLogin
	m.setStatus("", false)
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.answer(false)
	m.threads.Close()
	return m, tea.Quit
}

func (m *Model) showCurrent() {
	if m.current.ThreadID == "" {
		m.transcript.Empty(m.pending)
		return
	}
	m.transcript.Show(m.current, m.pending)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// layout sizes the panes for the current window
func (m *Model) layout() {
	if !m.ready {
		return
	}
	mainW := m.width
	if m.historyOpen {
		mainW -= sidebarWidth
	}
	// status bar, input box with border, transcript border
	transcriptH := m.height - 1 - (inputHeight + 2) - 2
	if transcriptH < 3 {
		transcriptH = 3
	}
	m.transcript.Resize(mainW-2, transcriptH)
	m.input.SetWidth(mainW - 4)
	m.history.SetMaxHeight(m.height - 1)
	m.showCurrent()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.screen == screenLogin {
		return m.login.View(m.width, m.height)
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayModels:
		return m.modelPicker.Render(m.width, m.height)
	case overlayMCP:
		return m.mcpPicker.Render(m.width, m.height)
	case overlayConfirm:
		return m.renderConfirm()
	}

	mainW := m.width
	if m.historyOpen {
		mainW -= sidebarWidth
	}

	transcriptBox := InactiveBox
	inputBox := ActiveBox
	if m.focus == focusHistory {
		inputBox = InactiveBox
	}
	main := lipgloss.JoinVertical(lipgloss.Left,
		transcriptBox.Width(mainW-2).Render(m.transcript.Viewport.View()),
		inputBox.Width(mainW-2).Render(m.input.View()),
	)

	body := main
	if m.historyOpen {
		sidebar := m.history.Render(m.threads.Threads(), m.threads.Loading(), m.focus == focusHistory,
			m.current.ThreadID, m.threads.Deleting(), m.height-1)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	sel := m.app.Models.Snapshot()
	mcp := m.app.MCP.Snapshot()

	provider := string(sel.Model.Provider)
	if info, ok := models.ProviderByID(sel.Model.Provider); ok {
		provider = info.Name
	}
	left := lipgloss.NewStyle().Foreground(ProviderColor(sel.Model.Provider)).Bold(true).Render("● "+sel.Model.Name) +
		DimStyle.Render(" ("+provider+")") +
		"  " + fmt.Sprintf("MCP: %d", len(mcp.EnabledServers))
	if u, ok := m.app.Session.Current(); ok {
		left += "  " + DimStyle.Render(u.Username)
	}

	var right string
	switch {
	case m.sending:
		right = m.spinner.View() + " waiting for the agent"
	case m.status != "" && m.statusErr:
		right = ErrorStyle.Render(m.status)
	case m.status != "":
		right = m.status
	default:
		right = DimStyle.Render("F1: Help")
	}

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderConfirm() string {
	question := ""
	if m.confirm != nil {
		question = m.confirm.question
	}
	content := StatusWarn.Render("Confirm") + "\n\n" +
		question + "\n\n" +
		DimStyle.Render("y: Yes | n: No")
	return overlay(content, m.width, m.height)
}

func onOff(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
