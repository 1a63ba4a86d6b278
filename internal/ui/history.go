// internal/ui/history.go
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"agentchat/internal/agentapi"
	"agentchat/internal/threads"
)

const sidebarWidth = 34

// HistoryState is the cursor over the chat history sidebar. The threads
// themselves live in the controller.
type HistoryState struct {
	cursor    int
	scrollTop int
	maxHeight int
}

// NewHistoryState creates a new history state
func NewHistoryState() *HistoryState {
	return &HistoryState{maxHeight: 20}
}

// Up moves the cursor up
func (h *HistoryState) Up() {
	if h.cursor > 0 {
		h.cursor--
		if h.cursor < h.scrollTop {
			h.scrollTop = h.cursor
		}
	}
}

// Down moves the cursor down within a list of n threads
func (h *HistoryState) Down(n int) {
	if h.cursor < n-1 {
		h.cursor++
		if h.cursor >= h.scrollTop+h.maxHeight {
			h.scrollTop = h.cursor - h.maxHeight + 1
		}
	}
}

// Clamp keeps the cursor inside a list that may have shrunk
func (h *HistoryState) Clamp(n int) {
	if h.cursor >= n {
		h.cursor = n - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
	if h.scrollTop > h.cursor {
		h.scrollTop = h.cursor
	}
}

// Selected returns the thread under the cursor
func (h *HistoryState) Selected(list []agentapi.Thread) (agentapi.Thread, bool) {
	if h.cursor >= 0 && h.cursor < len(list) {
		return list[h.cursor], true
	}
	return agentapi.Thread{}, false
}

// SetMaxHeight updates the max visible rows; each thread takes two lines
func (h *HistoryState) SetMaxHeight(height int) {
	h.maxHeight = (height - 6) / 2
	if h.maxHeight < 3 {
		h.maxHeight = 3
	}
}

// Render draws the sidebar. openID marks the thread shown in the
// transcript; deletingID marks a delete in flight.
func (h *HistoryState) Render(list []agentapi.Thread, loading, focused bool, openID, deletingID string, height int) string {
	var content strings.Builder
	inner := sidebarWidth - 4

	content.WriteString(TitleStyle.Render("Chats"))
	content.WriteString("\n\n")

	switch {
	case loading:
		for i := 0; i < 5; i++ {
			content.WriteString(DimStyle.Render(strings.Repeat("░", inner-6)))
			content.WriteString("\n\n")
		}
	case len(list) == 0:
		content.WriteString(DimStyle.Render("No chats yet."))
		content.WriteString("\n")
		content.WriteString(DimStyle.Render("Send a message to start one."))
	default:
		visibleEnd := h.scrollTop + h.maxHeight
		if visibleEnd > len(list) {
			visibleEnd = len(list)
		}

		for i := h.scrollTop; i < visibleEnd; i++ {
			t := list[i]

			cursor, marker := "  ", " "
			lineStyle := DimStyle
			if t.ThreadID == openID {
				marker = StatusOK.Render("●")
				lineStyle = lipgloss.NewStyle().Foreground(White)
			}
			if i == h.cursor && focused {
				cursor = "> "
				lineStyle = SelectedStyle
			}

			title := truncate(threads.Title(t), inner-3)
			date := threads.Date(t)
			if t.ThreadID == deletingID {
				date = StatusWarn.Render("deleting...")
			}

			content.WriteString(cursor + marker + " " + lineStyle.Render(title))
			content.WriteString("\n")
			content.WriteString("    " + DimStyle.Render(date))
			content.WriteString("\n")
		}

		if len(list) > h.maxHeight {
			content.WriteString("\n")
			content.WriteString(DimStyle.Render(fmt.Sprintf("%d-%d of %d", h.scrollTop+1, visibleEnd, len(list))))
		}
	}

	box := InactiveBox
	if focused {
		box = ActiveBox
	}
	return box.Width(sidebarWidth - 2).Height(height - 2).Render(content.String())
}

// truncate cuts s to n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 2 {
		return string(r[:n])
	}
	return string(r[:n-2]) + ".."
}
