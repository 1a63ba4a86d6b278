package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"agentchat/internal/threads"
)

// stdinPrompter answers the thread controller's questions on the terminal
type stdinPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func (p *stdinPrompter) Confirm(ctx context.Context, question string) bool {
	if p.assumeYes {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *stdinPrompter) Alert(ctx context.Context, message string) {
	fmt.Fprintln(p.out, message)
}

func newThreadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List or delete conversations",
	}
	cmd.AddCommand(newThreadsListCmd())
	cmd.AddCommand(newThreadsDeleteCmd())
	return cmd
}

func newThreadsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := loadApp()
			if err != nil {
				return err
			}
			defer done()
			if err := requireLogin(a); err != nil {
				return err
			}

			ctrl := a.Threads(&stdinPrompter{out: cmd.ErrOrStderr()})
			defer ctrl.Close()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return fmt.Errorf("failed to list threads: %w", err)
			}

			list := ctrl.Threads()
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No conversations yet")
				return nil
			}
			open := a.Selection.Current()
			for _, t := range list {
				marker := " "
				if t.ThreadID == open {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-36s  %-14s  %s\n", marker, t.ThreadID, threads.Date(t), threads.Title(t))
			}
			return nil
		},
	}
}

func newThreadsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <thread-id>",
		Short: "Delete a conversation and all of its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := loadApp()
			if err != nil {
				return err
			}
			defer done()
			if err := requireLogin(a); err != nil {
				return err
			}

			ctrl := a.Threads(&stdinPrompter{
				in:        bufio.NewReader(cmd.InOrStdin()),
				out:       cmd.ErrOrStderr(),
				assumeYes: yes,
			})
			defer ctrl.Close()

			err = ctrl.Delete(cmd.Context(), args[0])
			if errors.Is(err, threads.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
