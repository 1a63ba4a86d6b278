package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentchat/internal/logging"
	"agentchat/internal/prefs"
)

func TestDefaultMCPSelection(t *testing.T) {
	sel := DefaultMCPSelection()

	assert.Equal(t, []string{"networkAutomation", "netCommand"}, sel.EnabledServers)
	assert.Equal(t, []string{
		"execute_ssh_command",
		"execute_telnet_command",
		"list_eve_labs",
		"list_active_nodes",
	}, sel.AllowedToolsByServer["netCommand"])
	assert.Equal(t, []string{"generate_router_cisco_config"}, sel.AllowedToolsByServer["networkAutomation"])
	assert.False(t, sel.IsServerEnabled("github"))
}

func TestToggleServer_Involution(t *testing.T) {
	for _, id := range []string{"github", "netCommand", "not-in-catalog"} {
		start := DefaultMCPSelection()
		once := ToggleServer(start, id)
		twice := ToggleServer(once, id)

		assert.NotEqual(t, start.IsServerEnabled(id), once.IsServerEnabled(id), id)
		assert.ElementsMatch(t, start.EnabledServers, twice.EnabledServers, id)
		assert.Equal(t, start.AllowedToolsByServer, twice.AllowedToolsByServer, id)
	}
}

func TestToggleServer_DoesNotMutateInput(t *testing.T) {
	start := DefaultMCPSelection()
	_ = ToggleServer(start, "networkAutomation")

	assert.Equal(t, []string{"networkAutomation", "netCommand"}, start.EnabledServers)
}

func TestToggleServer_KeepsStaleAllowances(t *testing.T) {
	sel := ToggleServer(DefaultMCPSelection(), "netCommand")

	assert.False(t, sel.IsServerEnabled("netCommand"))
	assert.Len(t, sel.AllowedToolsByServer["netCommand"], 4)
}

func TestToggleTool_Involution(t *testing.T) {
	tests := []struct {
		server string
		tool   string
	}{
		{"netCommand", "list_eve_labs"},
		{"github", "get_me"},
		{"networkAutomation", "made_up_tool"},
		{"unknownServer", "anything"},
	}

	for _, tt := range tests {
		start := DefaultMCPSelection()
		once := ToggleTool(start, tt.server, tt.tool)
		twice := ToggleTool(once, tt.server, tt.tool)

		assert.NotEqual(t, start.IsToolAllowed(tt.server, tt.tool), once.IsToolAllowed(tt.server, tt.tool))
		assert.ElementsMatch(t,
			start.AllowedToolsByServer[tt.server],
			twice.AllowedToolsByServer[tt.server],
			"%s/%s", tt.server, tt.tool)
	}
}

func TestToggleTool_CreatesServerEntry(t *testing.T) {
	sel := ToggleTool(MCPSelection{}, "github", "push_files")

	assert.Equal(t, []string{"push_files"}, sel.AllowedToolsByServer["github"])
	assert.Empty(t, sel.EnabledServers)
}

func TestToggleAllTools_Cycle(t *testing.T) {
	full := DefaultMCPSelection()
	require.True(t, full.AllToolsSelected("netCommand"))

	cleared := ToggleAllTools(full, "netCommand")
	assert.Empty(t, cleared.AllowedToolsByServer["netCommand"])
	assert.NotNil(t, cleared.AllowedToolsByServer["netCommand"])

	refilled := ToggleAllTools(cleared, "netCommand")
	assert.Equal(t, catalogTools("netCommand"), refilled.AllowedToolsByServer["netCommand"])
}

func TestToggleAllTools_PartialFills(t *testing.T) {
	partial := ToggleTool(MCPSelection{}, "github", "get_me")

	got := ToggleAllTools(partial, "github")
	assert.Len(t, got.AllowedToolsByServer["github"], 11)
}

func TestToggleAllTools_SizeOnlyComparison(t *testing.T) {
	// One bogus name makes the size match the catalog without matching content.
	sel := MCPSelection{AllowedToolsByServer: map[string][]string{
		"networkAutomation": {"bogus_tool"},
	}}
	require.True(t, sel.AllToolsSelected("networkAutomation"))

	got := ToggleAllTools(sel, "networkAutomation")
	assert.Empty(t, got.AllowedToolsByServer["networkAutomation"])
}

func TestToggleAllTools_UnknownServer(t *testing.T) {
	// An unknown server has an empty catalog, so an empty list counts as full.
	got := ToggleAllTools(MCPSelection{}, "nope")
	assert.Empty(t, got.AllowedToolsByServer["nope"])
}

func TestMCPState_LoadAndPersist(t *testing.T) {
	store := prefs.NewMemoryStore()

	s := NewMCPState(store, logging.Discard())
	assert.Equal(t, DefaultMCPSelection(), s.Snapshot())

	s.ToggleServer("github")
	s.ToggleTool("github", "get_me")
	s.ToggleAllTools("netCommand")

	reloaded := NewMCPState(store, logging.Discard()).Snapshot()
	assert.Equal(t, []string{"networkAutomation", "netCommand", "github"}, reloaded.EnabledServers)
	assert.Equal(t, []string{"get_me"}, reloaded.AllowedToolsByServer["github"])
	assert.Empty(t, reloaded.AllowedToolsByServer["netCommand"])
}

func TestMCPState_FallsBackToDefault(t *testing.T) {
	tests := map[string]prefs.Store{
		"absent": prefs.NewMemoryStore(),
		"malformed": func() prefs.Store {
			s := prefs.NewMemoryStore()
			_ = s.Set(prefs.KeyMCPSelection, "not json")
			return s
		}(),
		"unreadable": failingStore{},
		"null":       storeWith(prefs.KeyMCPSelection, "null"),
		"empty":      storeWith(prefs.KeyMCPSelection, "{}"),
	}

	for name, store := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewMCPState(store, logging.Discard())
			assert.Equal(t, DefaultMCPSelection(), s.Snapshot())
		})
	}
}

func TestMCPState_KeepsEmptySavedSelection(t *testing.T) {
	store := storeWith(prefs.KeyMCPSelection, `{"enabledServers":[],"allowedToolsByServer":{}}`)

	s := NewMCPState(store, logging.Discard())
	assert.Empty(t, s.Snapshot().EnabledServers)
	assert.False(t, s.Snapshot().IsServerEnabled("netCommand"))
}

func storeWith(key, value string) prefs.Store {
	s := prefs.NewMemoryStore()
	_ = s.Set(key, value)
	return s
}

func TestMCPState_PersistFailureKeepsState(t *testing.T) {
	s := NewMCPState(failingStore{}, logging.Discard())

	got := s.ToggleServer("github")
	assert.True(t, got.IsServerEnabled("github"))
	assert.True(t, s.Snapshot().IsServerEnabled("github"))
}

func TestMCPState_SnapshotIsolated(t *testing.T) {
	s := NewMCPState(prefs.NewMemoryStore(), logging.Discard())

	snap := s.Snapshot()
	snap.EnabledServers[0] = "tampered"
	snap.AllowedToolsByServer["netCommand"] = nil

	fresh := s.Snapshot()
	assert.Equal(t, "networkAutomation", fresh.EnabledServers[0])
	assert.Len(t, fresh.AllowedToolsByServer["netCommand"], 4)
}

func TestConfigurable(t *testing.T) {
	temp := 0.7
	model := DefaultModelSelection()
	model.Config.Temperature = &temp

	mcp := ToggleServer(DefaultMCPSelection(), "networkAutomation")
	mcp = ToggleServer(mcp, "github")

	got := Configurable(model, mcp)

	llm := got["llm"].(map[string]any)
	assert.Equal(t, "openai", llm["provider"])
	assert.Equal(t, "gpt-4o-mini", llm["model"])
	assert.Equal(t, 0.7, llm["temperature"])

	m := got["mcp"].(map[string]any)
	assert.Equal(t, []string{"netCommand", "github"}, m["enabled_servers"])
	allowed := m["allowed_tools_by_server"].(map[string][]string)
	assert.Len(t, allowed["netCommand"], 4)
	assert.Equal(t, []string{}, allowed["github"])
	_, stale := allowed["networkAutomation"]
	assert.False(t, stale)
}
