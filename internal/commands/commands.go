// Package commands parses the slash commands typed into the chat input.
package commands

import (
	"strings"
)

// Command interface for all command types
type Command interface {
	Type() string
}

// Help shows the command list
type Help struct{}

func (Help) Type() string { return "help" }

// NewThread starts an empty conversation
type NewThread struct{}

func (NewThread) Type() string { return "new" }

// ToggleThreads shows or hides the history sidebar
type ToggleThreads struct{}

func (ToggleThreads) Type() string { return "threads" }

// OpenThread switches to a thread by id
type OpenThread struct {
	ID string
}

func (OpenThread) Type() string { return "open" }

// DeleteThread deletes a thread. An empty ID means the open one.
type DeleteThread struct {
	ID string
}

func (DeleteThread) Type() string { return "delete" }

// Refresh reloads the thread list
type Refresh struct{}

func (Refresh) Type() string { return "refresh" }

// ShowModels opens the model picker
type ShowModels struct{}

func (ShowModels) Type() string { return "models" }

// SelectProvider switches provider and picks its first model
type SelectProvider struct {
	Provider string
}

func (SelectProvider) Type() string { return "provider" }

// SelectModel picks a model by catalog id
type SelectModel struct {
	ID string
}

func (SelectModel) Type() string { return "model" }

// ShowMCP opens the MCP picker
type ShowMCP struct{}

func (ShowMCP) Type() string { return "mcp" }

// ToggleServer enables or disables an MCP server
type ToggleServer struct {
	Server string
}

func (ToggleServer) Type() string { return "server" }

// ToggleTool allows or disallows one tool on a server
type ToggleTool struct {
	Server string
	Tool   string
}

func (ToggleTool) Type() string { return "tool" }

// ToggleAllTools selects or clears every tool on a server
type ToggleAllTools struct {
	Server string
}

func (ToggleAllTools) Type() string { return "tools" }

// Export writes the open thread to a markdown file. An empty Path uses a
// name derived from the thread title.
type Export struct {
	Path string
}

func (Export) Type() string { return "export" }

// Logout signs out and returns to the login screen
type Logout struct{}

func (Logout) Type() string { return "logout" }

// Quit exits the program
type Quit struct{}

func (Quit) Type() string { return "quit" }

// Unknown is a slash command that is not recognised
type Unknown struct {
	Name string
}

func (Unknown) Type() string { return "unknown" }

// ParseError is a known command used with the wrong arguments
type ParseError struct {
	Message string
}

func (ParseError) Type() string { return "error" }

// Parse parses user input and returns the appropriate Command.
// Returns nil if the input is not a slash command.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help", "/?":
		return Help{}

	case "/new":
		return NewThread{}

	case "/threads", "/history":
		return ToggleThreads{}

	case "/open":
		if len(args) == 0 {
			return ParseError{Message: "/open requires a thread id"}
		}
		return OpenThread{ID: args[0]}

	case "/delete":
		if len(args) == 0 {
			return DeleteThread{}
		}
		return DeleteThread{ID: args[0]}

	case "/refresh":
		return Refresh{}

	case "/models":
		return ShowModels{}

	case "/provider":
		if len(args) == 0 {
			return ParseError{Message: "/provider requires a provider id"}
		}
		return SelectProvider{Provider: strings.ToLower(args[0])}

	case "/model":
		if len(args) == 0 {
			return ParseError{Message: "/model requires a model id"}
		}
		return SelectModel{ID: args[0]}

	case "/mcp":
		return ShowMCP{}

	case "/server":
		if len(args) == 0 {
			return ParseError{Message: "/server requires a server id"}
		}
		return ToggleServer{Server: args[0]}

	case "/tool":
		if len(args) < 2 {
			return ParseError{Message: "/tool requires a server id and a tool name"}
		}
		return ToggleTool{Server: args[0], Tool: args[1]}

	case "/tools":
		if len(args) == 0 {
			return ParseError{Message: "/tools requires a server id"}
		}
		return ToggleAllTools{Server: args[0]}

	case "/export":
		return Export{Path: strings.Join(args, " ")}

	case "/logout":
		return Logout{}

	case "/quit", "/exit", "/q":
		return Quit{}

	default:
		return Unknown{Name: cmd}
	}
}

// HelpText returns the help text for all available commands.
func HelpText() string {
	return `Available commands:
  /help                  - Show this help
  /new                   - Start a new chat
  /threads               - Show or hide the chat history
  /open <id>             - Open a chat by thread id
  /delete [id]           - Delete a chat (the open one by default)
  /refresh               - Reload the chat history
  /models                - Choose provider and model
  /provider <id>         - Switch provider (openai, openrouter, gemini, lmstudio)
  /model <id>            - Switch model by id
  /mcp                   - Choose MCP servers and tools
  /server <id>           - Enable or disable an MCP server
  /tool <server> <tool>  - Allow or block one tool
  /tools <server>        - Select or clear all tools of a server
  /export [path]         - Export the open chat as markdown
  /logout                - Sign out
  /quit                  - Exit`
}
