// internal/export/markdown_test.go
package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentchat/internal/agentapi"
)

var exportTime = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func sampleThread() agentapi.Thread {
	return agentapi.Thread{
		ThreadID:  "5b0e3f0c-1111-2222-3333-444455556666",
		UpdatedAt: "2026-10-16T18:45:00Z",
		Values: map[string]any{"messages": []any{
			map[string]any{"type": "human", "content": "Show the running config of R1"},
			map[string]any{"type": "ai", "content": "```\ninterface Gi0/0\n ip address 10.0.0.1 255.255.255.0\n```"},
			map[string]any{"type": "tool", "content": "ok"},
		}},
	}
}

func TestExportThread(t *testing.T) {
	exp := FromThread(sampleThread(), "GPT-4o Mini", "openai", []string{"networkAutomation", "netCommand"})
	result := ExportThread(exp, exportTime)

	assert.True(t, strings.HasPrefix(result, "# Show the running config of R1\n"))
	assert.Contains(t, result, "**Thread ID:** `5b0e3f0c-1111-2222-3333-444455556666`")
	assert.Contains(t, result, "**Model:** GPT-4o Mini (openai)")
	assert.Contains(t, result, "**MCP servers:** networkAutomation, netCommand")
	assert.Contains(t, result, "### User\n\n> Show the running config of R1\n")
	assert.Contains(t, result, "### Assistant\n\n```\ninterface Gi0/0")
	assert.Contains(t, result, "### Tool\n\n> ok\n")
	assert.Contains(t, result, "*Exported from agentchat on 2026-10-17 09:30:00*")
}

func TestExportThread_NoModelOrServers(t *testing.T) {
	exp := FromThread(agentapi.Thread{ThreadID: "abcdef0123456789"}, "", "", nil)
	result := ExportThread(exp, exportTime)

	assert.True(t, strings.HasPrefix(result, "# abcdef012345...\n"))
	assert.NotContains(t, result, "**Model:**")
	assert.NotContains(t, result, "**MCP servers:**")
}

func TestWriteThread_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	exp := FromThread(sampleThread(), "GPT-4o Mini", "openai", nil)

	path, err := WriteThread(exp, "", dir, exportTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "2026-10-17-show-the-running-config-of-r1.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Show the running config of R1")
}

func TestWriteThread_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.md")
	got, err := WriteThread(FromThread(sampleThread(), "", "", nil), path, "", exportTime)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.FileExists(t, path)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Configure VLAN 10 / trunk!", "configure-vlan-10-trunk"},
		{"abcdef012345...", "abcdef012345"},
		{"???", "chat"},
		{"", "chat"},
		{strings.Repeat("a", 60), strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
