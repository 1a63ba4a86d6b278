package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentchat/internal/auth"
)

// loginSubmitMsg asks the root model to run the login
type loginSubmitMsg struct {
	username, password string
}

// loginResultMsg carries the outcome back into Update
type loginResultMsg struct {
	result auth.Result
}

// LoginForm is the username/password screen shown before the chat
type LoginForm struct {
	username   textinput.Model
	password   textinput.Model
	focus      int
	err        string
	submitting bool
}

func NewLoginForm() *LoginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "User:     "
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return &LoginForm{username: user, password: pass}
}

func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		f.submitting = false
		if !msg.result.Success {
			f.err = msg.result.Error
			f.password.SetValue("")
			f.setFocus(1)
		}
		return nil

	case tea.KeyMsg:
		if f.submitting {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % 2)
			return nil
		case "shift+tab", "up":
			f.setFocus((f.focus + 1) % 2)
			return nil
		case "enter":
			if f.focus == 0 {
				f.setFocus(1)
				return nil
			}
			username := strings.TrimSpace(f.username.Value())
			if username == "" || f.password.Value() == "" {
				f.err = "enter a username and password"
				return nil
			}
			f.err = ""
			f.submitting = true
			submit := loginSubmitMsg{username: username, password: f.password.Value()}
			return func() tea.Msg { return submit }
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

func (f *LoginForm) setFocus(i int) {
	f.focus = i
	if i == 0 {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.password.Focus()
		f.username.Blur()
	}
}

// Reset clears the form for the next sign-in
func (f *LoginForm) Reset() {
	f.username.SetValue("")
	f.password.SetValue("")
	f.err = ""
	f.submitting = false
	f.setFocus(0)
}

func (f *LoginForm) View(width, height int) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render("AGENTCHAT"))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render("Sign in to continue"))
	content.WriteString("\n\n")
	content.WriteString(f.username.View())
	content.WriteString("\n")
	content.WriteString(f.password.View())
	content.WriteString("\n\n")

	switch {
	case f.submitting:
		content.WriteString(StatusWarn.Render("Signing in..."))
	case f.err != "":
		content.WriteString(ErrorStyle.Render(f.err))
	default:
		content.WriteString(DimStyle.Render("Enter: Sign in | Tab: Next field | Ctrl+C: Quit"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 3).
		Width(52)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content.String()))
}
