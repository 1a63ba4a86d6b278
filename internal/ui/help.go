// internal/ui/help.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Yellow).
				MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	helpCmdStyle = lipgloss.NewStyle().
			Foreground(Magenta)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(White)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(Dim)
)

// HelpContent returns the formatted help overlay content
func HelpContent(width, height int) string {
	var content strings.Builder

	content.WriteString(helpTitleStyle.Render("AGENTCHAT HELP"))
	content.WriteString("\n\n")

	content.WriteString(helpSectionStyle.Render("KEYBINDINGS"))
	content.WriteString("\n\n")

	keybindings := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send message / run command"},
		{"Alt+Enter", "New line in the message"},
		{"Ctrl+B", "Show or hide the chat history"},
		{"Tab", "Move focus between history and input"},
		{"↑/↓ (history)", "Move through chats"},
		{"Enter (history)", "Open chat"},
		{"d (history)", "Delete chat"},
		{"r (history)", "Reload chat list"},
		{"Ctrl+N", "New chat"},
		{"Ctrl+O", "Choose model"},
		{"Ctrl+T", "Choose MCP servers and tools"},
		{"PgUp/PgDn", "Scroll the transcript"},
		{"F1", "Toggle this help overlay"},
		{"Esc", "Close overlay"},
		{"Ctrl+C", "Quit"},
	}

	for _, kb := range keybindings {
		key := helpKeyStyle.Width(16).Render(kb.key)
		desc := helpDescStyle.Render(kb.desc)
		content.WriteString("  " + key + "  " + desc + "\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("SLASH COMMANDS"))
	content.WriteString("\n\n")

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/new", "Start a new chat"},
		{"/threads", "Show or hide the chat history"},
		{"/open <id>", "Open a chat by thread id"},
		{"/delete [id]", "Delete a chat (the open one by default)"},
		{"/refresh", "Reload the chat history"},
		{"/models", "Open the model picker"},
		{"/provider <id>", "Switch provider, first model selected"},
		{"/model <id>", "Switch model by catalog id"},
		{"/mcp", "Open the MCP picker"},
		{"/server <id>", "Enable or disable an MCP server"},
		{"/tool <srv> <tool>", "Allow or block one tool"},
		{"/tools <srv>", "Select or clear every tool of a server"},
		{"/export [path]", "Export the open chat to markdown"},
		{"/logout", "Sign out"},
		{"/quit", "Exit"},
	}

	for _, cmd := range commands {
		cmdStr := helpCmdStyle.Width(20).Render(cmd.cmd)
		desc := helpDescStyle.Render(cmd.desc)
		content.WriteString("  " + cmdStr + "  " + desc + "\n")
	}

	content.WriteString("\n")
	footer := helpDimStyle.Render("Press F1 or Esc to close this help")
	content.WriteString(lipgloss.PlaceHorizontal(width-8, lipgloss.Center, footer))

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 3).
		MaxWidth(width - 10).
		MaxHeight(height - 4)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlayStyle.Render(content.String()),
	)
}

// renderHelp renders the help overlay (called from app.go)
func (m Model) renderHelp() string {
	return HelpContent(m.width, m.height)
}
