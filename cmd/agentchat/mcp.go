package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"agentchat/internal/selection"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Choose which MCP servers and tools the agent may use",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the MCP selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMCP(cmd, func(s *selection.MCPState) selection.MCPSelection {
				return s.Snapshot()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle-server <server>",
		Short: "Enable or disable a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := knownServer(args[0]); err != nil {
				return err
			}
			return withMCP(cmd, func(s *selection.MCPState) selection.MCPSelection {
				return s.ToggleServer(args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle-tool <server> <tool>",
		Short: "Allow or block one tool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMCP(cmd, func(s *selection.MCPState) selection.MCPSelection {
				return s.ToggleTool(args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle-all <server>",
		Short: "Select every tool of a server, or clear them when all are selected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := knownServer(args[0]); err != nil {
				return err
			}
			return withMCP(cmd, func(s *selection.MCPState) selection.MCPSelection {
				return s.ToggleAllTools(args[0])
			})
		},
	})
	return cmd
}

func knownServer(id string) error {
	if _, ok := selection.ServerByID(id); !ok {
		return fmt.Errorf("unknown MCP server %q", id)
	}
	return nil
}

func withMCP(cmd *cobra.Command, fn func(*selection.MCPState) selection.MCPSelection) error {
	a, done, err := loadApp()
	if err != nil {
		return err
	}
	defer done()

	printMCP(cmd.OutOrStdout(), fn(a.MCP))
	return nil
}

func printMCP(out io.Writer, sel selection.MCPSelection) {
	for _, srv := range selection.Servers() {
		fmt.Fprintf(out, "%s %s (%s)\n", box(sel.IsServerEnabled(srv.ID)), srv.Label, srv.ID)
		if !sel.IsServerEnabled(srv.ID) {
			continue
		}
		for _, tool := range srv.Tools {
			fmt.Fprintf(out, "    %s %s\n", box(sel.IsToolAllowed(srv.ID, tool)), tool)
		}
	}
}

func box(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
