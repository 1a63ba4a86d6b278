package selection

// Server is an MCP server known to the backend and the tools it exposes.
// The list mirrors the backend's mcp-config.json.
type Server struct {
	ID    string
	Label string
	Tools []string
}

var servers = []Server{
	{
		ID:    "github",
		Label: "GitHub",
		Tools: []string{
			"create_branch",
			"create_or_update_file",
			"create_pull_request",
			"delete_file",
			"get_file_contents",
			"get_me",
			"list_branches",
			"list_commits",
			"list_pull_requests",
			"merge_pull_request",
			"push_files",
		},
	},
	{
		ID:    "networkAutomation",
		Label: "Network Automation",
		Tools: []string{"generate_router_cisco_config"},
	},
	{
		ID:    "netCommand",
		Label: "Net Command",
		Tools: []string{
			"execute_ssh_command",
			"execute_telnet_command",
			"list_eve_labs",
			"list_active_nodes",
		},
	},
}

// Servers returns the MCP server catalog in display order
func Servers() []Server {
	out := make([]Server, len(servers))
	for i, s := range servers {
		out[i] = Server{ID: s.ID, Label: s.Label, Tools: cloneStrings(s.Tools)}
	}
	return out
}

// ServerByID looks up a catalog server
func ServerByID(id string) (Server, bool) {
	for _, s := range servers {
		if s.ID == id {
			return Server{ID: s.ID, Label: s.Label, Tools: cloneStrings(s.Tools)}, true
		}
	}
	return Server{}, false
}

// catalogTools is the full tool list of a server, empty when unknown
func catalogTools(id string) []string {
	s, ok := ServerByID(id)
	if !ok {
		return []string{}
	}
	return s.Tools
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
