package selection

// Configurable builds the run-time configuration the agent backend reads.
// Allowances of disabled servers stay in local state but are not sent.
func Configurable(model ModelSelection, mcp MCPSelection) map[string]any {
	llm := map[string]any{
		"provider": string(model.Config.Provider),
		"model":    model.Config.Model,
	}
	if model.Config.Temperature != nil {
		llm["temperature"] = *model.Config.Temperature
	}

	enabled := cloneStrings(mcp.EnabledServers)
	if enabled == nil {
		enabled = []string{}
	}
	allowed := make(map[string][]string, len(enabled))
	for _, id := range enabled {
		tools := cloneStrings(mcp.AllowedToolsByServer[id])
		if tools == nil {
			tools = []string{}
		}
		allowed[id] = tools
	}

	return map[string]any{
		"llm": llm,
		"mcp": map[string]any{
			"enabled_servers":         enabled,
			"allowed_tools_by_server": allowed,
		},
	}
}
