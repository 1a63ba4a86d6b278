package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentchat/internal/models"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Show or choose the LLM the agent uses",
	}
	cmd.AddCommand(newModelsListCmd())
	cmd.AddCommand(newModelsUseCmd())
	cmd.AddCommand(newModelsProviderCmd())
	return cmd
}

func newModelsListCmd() *cobra.Command {
	var provider, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := loadApp()
			if err != nil {
				return err
			}
			defer done()

			current := a.Models.Snapshot().Model.ID
			out := cmd.OutOrStdout()

			for _, info := range models.Providers() {
				if provider != "" && string(info.ID) != provider {
					continue
				}
				list := models.Search(info.ID, search)
				if len(list) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s (%s)\n", info.Name, info.ID)
				for _, m := range list {
					marker := " "
					if m.ID == current {
						marker = "*"
					}
					tags := ""
					if t := m.Capabilities.Tags(); len(t) > 0 {
						tags = " [" + strings.Join(t, ", ") + "]"
					}
					fmt.Fprintf(out, "  %s %-32s %s%s\n", marker, m.ID, m.Name, tags)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "Only this provider (openai, openrouter, gemini, lmstudio)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, model or description")
	return cmd
}

func newModelsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <model-id>",
		Short: "Select a model by catalog id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := models.ByID(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q, see: agentchat models list", args[0])
			}

			a, done, err := loadApp()
			if err != nil {
				return err
			}
			defer done()

			sel := a.Models.SelectModel(info)
			fmt.Fprintf(cmd.OutOrStdout(), "Using %s (%s/%s)\n", sel.Model.Name, sel.Config.Provider, sel.Config.Model)
			return nil
		},
	}
}

func newModelsProviderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provider <provider-id>",
		Short: "Switch provider and select its first model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := loadApp()
			if err != nil {
				return err
			}
			defer done()

			sel, ok := a.Models.SelectProvider(models.Provider(args[0]))
			if !ok {
				return fmt.Errorf("unknown provider %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using %s (%s/%s)\n", sel.Model.Name, sel.Config.Provider, sel.Config.Model)
			return nil
		},
	}
}
