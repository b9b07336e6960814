package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/corpus/internal/output"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Project the corpus and size it against every income strategy",
	Long: `Project the corpus year by year, compute the required corpus and gap for
each income strategy, optimise the SIP step-up and evaluate what-if scenarios.

Examples:
  corpus calculate plan.yaml
  corpus calculate plan.yaml --format json
  corpus calculate plan.yaml --format markdown --user alice`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}

		result, err := newEngine(cmd).Run(cmd.Context(), plan)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format %q (valid: %s)", outputFormat,
				strings.Join(append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...), ", "))
		}

		report := output.NewReport(plan, result)
		if saveFile, _ := cmd.Flags().GetBool("save"); saveFile {
			filename, err := output.WriteFormatted(f, report, extensionFor(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return err
		}
		if f.Name() == "markdown" && isTerminal(cmd) {
			rendered, err := output.RenderMarkdown(data, 0)
			if err != nil {
				return err
			}
			data = []byte(rendered)
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid (%d investments, %d goals, %d loans)\n",
			args[0], len(plan.Investments), len(plan.Goals), len(plan.Loans))
		return nil
	},
}

// isTerminal reports whether the command writes straight to a terminal
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func extensionFor(formatter string) string {
	switch formatter {
	case "json":
		return "json"
	case "csv", "summary-csv":
		return "csv"
	case "markdown":
		return "md"
	}
	return "txt"
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, summary-csv, markdown)")
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
