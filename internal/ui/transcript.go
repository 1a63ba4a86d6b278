// internal/ui/transcript.go
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"agentchat/internal/agentapi"
	"agentchat/internal/threads"
)

const (
	speakerUser      = "You"
	speakerAssistant = "Assistant"
	speakerTool      = "Tool"
	speakerSystem    = "System"
)

// Transcript shows the open thread in a scrolling viewport
type Transcript struct {
	Viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
}

func NewTranscript(width, height int) *Transcript {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	vp.MouseWheelEnabled = true

	t := &Transcript{Viewport: vp}
	t.setRenderer(width)
	return t
}

// Resize adjusts the viewport and rebuilds the markdown renderer for the
// new wrap width.
func (t *Transcript) Resize(width, height int) {
	t.Viewport.Width = width
	t.Viewport.Height = height
	if width != t.width {
		t.setRenderer(width)
	}
}

func (t *Transcript) setRenderer(width int) {
	t.width = width
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		t.renderer = nil
		return
	}
	t.renderer = r
}

// Show renders thread into the viewport and scrolls to the end. pending is
// a message that was sent but has no reply yet.
func (t *Transcript) Show(thread agentapi.Thread, pending string) {
	t.Viewport.SetContent(RenderMessages(thread.Messages(), pending, t.markdown))
	t.Viewport.GotoBottom()
}

// Empty shows the placeholder for a new chat
func (t *Transcript) Empty(pending string) {
	if pending != "" {
		t.Viewport.SetContent(RenderMessages(nil, pending, t.markdown))
		return
	}
	t.Viewport.SetContent(DimStyle.Render("\n  New chat. Type a message and press Enter.\n  /help lists the commands."))
}

func (t *Transcript) markdown(s string) string {
	if t.renderer == nil {
		return s
	}
	out, err := t.renderer.Render(s)
	if err != nil {
		return s
	}
	return strings.Trim(out, "\n")
}

// RenderMessages formats a message list. Assistant output goes through
// render; everything else is indented plain text.
func RenderMessages(msgs []agentapi.Message, pending string, render func(string) string) string {
	var sb strings.Builder

	for _, msg := range msgs {
		content := strings.TrimSpace(threads.ContentString(msg.Content))
		if content == "" {
			continue
		}
		who := speaker(msg)
		sb.WriteString(SpeakerStyle(who).Render(who + ":"))
		sb.WriteString("\n")

		if who == speakerAssistant && render != nil {
			sb.WriteString(render(content))
			sb.WriteString("\n")
		} else {
			writeIndented(&sb, content)
		}
		sb.WriteString("\n")
	}

	if pending != "" {
		sb.WriteString(UserStyle.Render(speakerUser + ":"))
		sb.WriteString("\n")
		writeIndented(&sb, pending)
		sb.WriteString("\n")
		sb.WriteString(DimStyle.Render("  waiting for the agent..."))
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeIndented(sb *strings.Builder, content string) {
	for _, line := range strings.Split(content, "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func speaker(m agentapi.Message) string {
	switch {
	case m.IsHuman():
		return speakerUser
	case m.Type == "ai" || m.Role == "assistant":
		return speakerAssistant
	case m.Type == "tool" || m.Role == "tool":
		return speakerTool
	case m.Type == "system" || m.Role == "system":
		return speakerSystem
	default:
		return m.Type
	}
}
