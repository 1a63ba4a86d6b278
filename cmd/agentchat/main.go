package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"agentchat/internal/app"
	"agentchat/internal/config"
	"agentchat/internal/logging"
	"agentchat/internal/ui"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z"
var Version = "0.0.0-dev"

var (
	configPath string
	logLevel   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agentchat",
		Short: "Terminal client for a LangGraph agent server",
		Long: `agentchat talks to a LangGraph agent server from the terminal.

Quick Start:
  agentchat                      Launch the chat UI (default)
  agentchat hash-password        Create a password hash for the config
  agentchat login                Sign in without the UI

Commands:
  login / logout / whoami        Manage the local session
  threads list                   List conversations on the server
  threads delete <id>            Delete a conversation
  models list / use <id>         Show or pick the LLM
  mcp show / toggle-*            Choose MCP servers and tools

Config: ~/.config/agentchat/config.yaml
Logs:   ~/.local/state/agentchat/agentchat.log`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := loadApp()
			if err != nil {
				return err
			}
			defer done()
			return ui.Run(cmd.Context(), a)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/agentchat/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newHashPasswordCmd())
	root.AddCommand(newThreadsCmd())
	root.AddCommand(newModelsCmd())
	root.AddCommand(newMCPCmd())
	return root
}

// loadApp reads .env and the config file and builds the application. The
// returned func releases the database and the log file.
func loadApp() (*app.App, func(), error) {
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, logFile, err := logging.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	a := app.New(cfg, logger)
	logger.WithField("version", Version).Debug("starting")

	return a, func() {
		if err := a.Close(); err != nil {
			logger.WithError(err).Warn("closing app")
		}
		closeQuietly(logFile)
	}, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
