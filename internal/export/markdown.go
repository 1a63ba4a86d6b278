// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agentchat/internal/agentapi"
	"agentchat/internal/threads"
)

// ThreadExport contains the data needed to export a conversation
type ThreadExport struct {
	ID       string
	Title    string
	Updated  string // already formatted for display
	Model    string // display name of the selected model
	Provider string
	Servers  []string // MCP servers enabled at export time
	Messages []agentapi.Message
}

// FromThread collects what the transcript needs from a thread.
func FromThread(t agentapi.Thread, model, provider string, servers []string) *ThreadExport {
	return &ThreadExport{
		ID:       t.ThreadID,
		Title:    threads.Title(t),
		Updated:  threads.Date(t),
		Model:    model,
		Provider: provider,
		Servers:  servers,
		Messages: t.Messages(),
	}
}

// ExportThread generates a formatted markdown transcript.
func ExportThread(exp *ThreadExport, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(exp.Title)
	sb.WriteString("\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Thread ID:** `%s`\n\n", exp.ID))
	sb.WriteString(fmt.Sprintf("**Last updated:** %s\n\n", exp.Updated))
	if exp.Model != "" {
		sb.WriteString(fmt.Sprintf("**Model:** %s (%s)\n\n", exp.Model, exp.Provider))
	}
	if len(exp.Servers) > 0 {
		sb.WriteString("**MCP servers:** ")
		sb.WriteString(strings.Join(exp.Servers, ", "))
		sb.WriteString("\n\n")
	}
	sb.WriteString("---\n\n")

	sb.WriteString("## Transcript\n\n")

	for i, msg := range exp.Messages {
		sb.WriteString(fmt.Sprintf("### %s\n\n", speaker(msg)))

		content := strings.TrimSpace(threads.ContentString(msg.Content))
		if containsCodeBlock(content) {
			sb.WriteString(content)
			sb.WriteString("\n")
		} else {
			for _, line := range strings.Split(content, "\n") {
				sb.WriteString("> ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")

		if i < len(exp.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from agentchat on %s*\n", now.Format("2006-01-02 15:04:05")))

	return sb.String()
}

// WriteThread writes the transcript to path. With an empty path the file
// goes to <baseDir>/exports/YYYY-MM-DD-<title>.md.
func WriteThread(exp *ThreadExport, path, baseDir string, now time.Time) (string, error) {
	if path == "" {
		filename := fmt.Sprintf("%s-%s.md", now.Format("2006-01-02"), sanitizeFilename(exp.Title))
		path = filepath.Join(baseDir, "exports", filename)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(ExportThread(exp, now)), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

func speaker(m agentapi.Message) string {
	if m.IsHuman() {
		return "User"
	}
	switch {
	case m.Type == "ai" || m.Role == "assistant":
		return "Assistant"
	case m.Type == "tool" || m.Role == "tool":
		return "Tool"
	case m.Type == "system" || m.Role == "system":
		return "System"
	case m.Type != "":
		return m.Type
	default:
		return "Message"
	}
}

// sanitizeFilename removes/replaces characters unsuitable for filenames
func sanitizeFilename(name string) string {
	name = strings.ToLower(strings.TrimSuffix(name, "..."))
	name = strings.ReplaceAll(name, " ", "-")

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' || r == '_':
			sb.WriteRune(r)
		}
	}

	result := sb.String()
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if result == "" {
		result = "chat"
	}
	if len(result) > 50 {
		result = strings.TrimRight(result[:50], "-")
	}

	return result
}

// containsCodeBlock checks if content already has markdown code blocks
func containsCodeBlock(content string) bool {
	return strings.Contains(content, "```")
}
