package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"agentchat/internal/selection"
)

type mcpRowKind int

const (
	rowServer mcpRowKind = iota
	rowAllTools
	rowTool
)

type mcpRow struct {
	kind   mcpRowKind
	server selection.Server
	tool   string
}

// MCPPicker toggles servers and tools. Every toggle goes straight to the
// state container, which persists it.
type MCPPicker struct {
	state  *selection.MCPState
	cursor int
}

func NewMCPPicker(state *selection.MCPState) *MCPPicker {
	return &MCPPicker{state: state}
}

// rows lists the visible lines: each server, and for enabled servers the
// select-all line and their tools.
func (p *MCPPicker) rows() []mcpRow {
	sel := p.state.Snapshot()
	var rows []mcpRow
	for _, srv := range selection.Servers() {
		rows = append(rows, mcpRow{kind: rowServer, server: srv})
		if !sel.IsServerEnabled(srv.ID) {
			continue
		}
		rows = append(rows, mcpRow{kind: rowAllTools, server: srv})
		for _, tool := range srv.Tools {
			rows = append(rows, mcpRow{kind: rowTool, server: srv, tool: tool})
		}
	}
	return rows
}

func (p *MCPPicker) Update(msg tea.KeyMsg) (closed bool) {
	rows := p.rows()
	switch msg.String() {
	case "esc", "q":
		return true
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(rows)-1 {
			p.cursor++
		}
	case " ", "enter", "x":
		if p.cursor >= len(rows) {
			return false
		}
		row := rows[p.cursor]
		switch row.kind {
		case rowServer:
			p.state.ToggleServer(row.server.ID)
		case rowAllTools:
			p.state.ToggleAllTools(row.server.ID)
		case rowTool:
			p.state.ToggleTool(row.server.ID, row.tool)
		}
		p.clamp()
	}
	return false
}

func (p *MCPPicker) clamp() {
	if n := len(p.rows()); p.cursor >= n {
		p.cursor = n - 1
	}
}

func (p *MCPPicker) Render(width, height int) string {
	sel := p.state.Snapshot()
	var content strings.Builder

	content.WriteString(TitleStyle.Render("MCP SERVERS & TOOLS"))
	content.WriteString("\n\n")

	for i, row := range p.rows() {
		cursor := "  "
		if i == p.cursor {
			cursor = "> "
		}

		var line string
		switch row.kind {
		case rowServer:
			line = checkbox(sel.IsServerEnabled(row.server.ID)) + " " + row.server.Label
			if i == p.cursor {
				line = SelectedStyle.Bold(true).Render(line)
			} else {
				line = TitleStyle.Foreground(White).Render(line)
			}
		case rowAllTools:
			label := "Select all"
			if sel.AllToolsSelected(row.server.ID) {
				label = "Deselect all"
			}
			line = "    " + label
			if i == p.cursor {
				line = SelectedStyle.Render(line)
			} else {
				line = DimStyle.Render(line)
			}
		case rowTool:
			line = "    " + checkbox(sel.IsToolAllowed(row.server.ID, row.tool)) + " " + row.tool
			if i == p.cursor {
				line = SelectedStyle.Render(line)
			}
		}

		content.WriteString(cursor + line + "\n")
	}

	content.WriteString("\n")
	content.WriteString(DimStyle.Render(fmt.Sprintf("%d server(s) enabled", len(sel.EnabledServers))))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render("↑/↓: Move | Space: Toggle | Esc: Close"))

	return overlay(content.String(), width, height)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
