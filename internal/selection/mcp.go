package selection

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"agentchat/internal/prefs"
)

// MCPSelection is which servers the agent may use and, per server, which of
// their tools. A server can keep allowances while disabled.
type MCPSelection struct {
	EnabledServers       []string            `json:"enabledServers"`
	AllowedToolsByServer map[string][]string `json:"allowedToolsByServer"`
}

// DefaultMCPSelection enables the two network servers with all their tools.
func DefaultMCPSelection() MCPSelection {
	return MCPSelection{
		EnabledServers: []string{"networkAutomation", "netCommand"},
		AllowedToolsByServer: map[string][]string{
			"networkAutomation": catalogTools("networkAutomation"),
			"netCommand":        catalogTools("netCommand"),
		},
	}
}

// Clone returns a deep copy
func (s MCPSelection) Clone() MCPSelection {
	out := MCPSelection{
		EnabledServers:       cloneStrings(s.EnabledServers),
		AllowedToolsByServer: make(map[string][]string, len(s.AllowedToolsByServer)),
	}
	for id, tools := range s.AllowedToolsByServer {
		out.AllowedToolsByServer[id] = cloneStrings(tools)
	}
	return out
}

func (s MCPSelection) IsServerEnabled(id string) bool {
	return slices.Contains(s.EnabledServers, id)
}

func (s MCPSelection) IsToolAllowed(id, tool string) bool {
	return slices.Contains(s.AllowedToolsByServer[id], tool)
}

// AllToolsSelected reports whether the allowed list is as long as the
// server's catalog. Only the sizes are compared.
func (s MCPSelection) AllToolsSelected(id string) bool {
	return len(s.AllowedToolsByServer[id]) == len(catalogTools(id))
}

// ToggleServer flips membership of id in the enabled servers.
func ToggleServer(sel MCPSelection, id string) MCPSelection {
	next := sel.Clone()
	next.EnabledServers = toggle(next.EnabledServers, id)
	return next
}

// ToggleTool flips membership of tool in the server's allowed list. Tool
// names are not checked against the catalog.
func ToggleTool(sel MCPSelection, id, tool string) MCPSelection {
	next := sel.Clone()
	next.AllowedToolsByServer[id] = toggle(next.AllowedToolsByServer[id], tool)
	return next
}

// ToggleAllTools clears the server's allowed list when it is "full",
// otherwise fills it with the whole catalog.
func ToggleAllTools(sel MCPSelection, id string) MCPSelection {
	next := sel.Clone()
	if sel.AllToolsSelected(id) {
		next.AllowedToolsByServer[id] = []string{}
	} else {
		next.AllowedToolsByServer[id] = catalogTools(id)
	}
	return next
}

// toggle removes v when present, appends it otherwise. The result is never nil.
func toggle(list []string, v string) []string {
	if slices.Contains(list, v) {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item != v {
				out = append(out, item)
			}
		}
		return out
	}
	return append(cloneStrings(list), v)
}

// MCPState is the MCP selection shared by the UI. Every change is persisted
// as one blob.
type MCPState struct {
	mu      sync.RWMutex
	store   prefs.Store
	log     logrus.FieldLogger
	current MCPSelection
}

// NewMCPState loads the stored selection, falling back to the default when
// it is absent, unreadable or malformed. A blob with neither field set
// (null, {}) counts as malformed; saved selections always carry both.
func NewMCPState(store prefs.Store, log logrus.FieldLogger) *MCPState {
	s := &MCPState{store: store, log: log, current: DefaultMCPSelection()}

	var saved MCPSelection
	found, err := prefs.GetJSON(store, prefs.KeyMCPSelection, &saved)
	switch {
	case err != nil:
		log.WithError(err).Error("loading MCP selection")
	case found && saved.EnabledServers == nil && saved.AllowedToolsByServer == nil:
		log.WithField("key", prefs.KeyMCPSelection).Warn("ignoring empty MCP selection")
	case found:
		s.current = saved.Clone()
	}
	return s
}

func (s *MCPState) Snapshot() MCPSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

func (s *MCPState) ToggleServer(id string) MCPSelection {
	return s.apply(func(sel MCPSelection) MCPSelection { return ToggleServer(sel, id) })
}

func (s *MCPState) ToggleTool(id, tool string) MCPSelection {
	return s.apply(func(sel MCPSelection) MCPSelection { return ToggleTool(sel, id, tool) })
}

func (s *MCPState) ToggleAllTools(id string) MCPSelection {
	return s.apply(func(sel MCPSelection) MCPSelection { return ToggleAllTools(sel, id) })
}

// Set replaces the whole selection
func (s *MCPState) Set(sel MCPSelection) MCPSelection {
	return s.apply(func(MCPSelection) MCPSelection { return sel.Clone() })
}

func (s *MCPState) apply(fn func(MCPSelection) MCPSelection) MCPSelection {
	s.mu.Lock()
	s.current = fn(s.current)
	snap := s.current.Clone()
	s.mu.Unlock()

	if err := prefs.SetJSON(s.store, prefs.KeyMCPSelection, snap); err != nil {
		s.log.WithError(err).Error("saving MCP selection")
	}
	return snap
}
