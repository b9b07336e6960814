package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/corpus/internal/config"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage saved strategy selections and default assumptions",
	Long: `Read and write per-user settings in the store chosen by --store.
Saved assumptions fill the parameters a plan file leaves out; a saved
strategy selection overrides the plan's income strategy default.

Examples:
  corpus settings set-selection 4% --user alice --store badger --badger-path ./data
  corpus settings get-assumptions --user alice --store redis
  corpus settings set-assumptions defaults.yaml --user alice --store badger --badger-path ./data`,
}

var getSelectionCmd = &cobra.Command{
	Use:   "get-selection",
	Short: "Print the saved income strategy",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(cmd *cobra.Command, repo storage.Repository, user string, args []string) error {
		sel, err := repo.GetSelection(cmd.Context(), user)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no saved selection for %s", user)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), saved %s\n", sel.Strategy, sel.Strategy.DisplayName(), sel.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	}),
}

var setSelectionCmd = &cobra.Command{
	Use:   "set-selection [strategy]",
	Short: "Save the income strategy used by default",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(cmd *cobra.Command, repo storage.Repository, user string, args []string) error {
		strategy, err := domain.ParseIncomeStrategy(args[0])
		if err != nil {
			return err
		}
		sel, err := repo.SaveSelection(cmd.Context(), user, strategy)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s for %s (id %s)\n", sel.Strategy.DisplayName(), user, sel.ID)
		return nil
	}),
}

var getAssumptionsCmd = &cobra.Command{
	Use:   "get-assumptions",
	Short: "Print the saved default assumptions as YAML",
	Args:  cobra.NoArgs,
	RunE: withRepository(func(cmd *cobra.Command, repo storage.Repository, user string, args []string) error {
		params, err := repo.GetAssumptions(cmd.Context(), user)
		source := "saved"
		if errors.Is(err, storage.ErrNotFound) {
			params, err, source = config.DefaultParameters(), nil, "built-in"
		}
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to encode assumptions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s assumptions for %s\n%s", source, user, data)
		return nil
	}),
}

var setAssumptionsCmd = &cobra.Command{
	Use:   "set-assumptions [yaml-file]",
	Short: "Save default assumptions from a YAML parameters document",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(cmd *cobra.Command, repo storage.Repository, user string, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}

		params := config.DefaultParameters()
		if err := yaml.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
		plan := &domain.Plan{Parameters: params}
		if err := config.NewInputParser().Prepare(plan); err != nil {
			return err
		}

		if err := repo.SaveAssumptions(cmd.Context(), user, plan.Parameters); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved assumptions for %s\n", user)
		return nil
	}),
}

// withRepository opens the settings store and requires --user
func withRepository(run func(cmd *cobra.Command, repo storage.Repository, user string, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		if strings.TrimSpace(user) == "" {
			return fmt.Errorf("--user is required")
		}
		repo, err := openRepository(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()
		return run(cmd, repo, user, args)
	}
}

func init() {
	settingsCmd.AddCommand(getSelectionCmd, setSelectionCmd, getAssumptionsCmd, setAssumptionsCmd)
}
