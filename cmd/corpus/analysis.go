package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/compare"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/rgehrsitz/corpus/internal/transform"
	"github.com/rgehrsitz/corpus/internal/whatif"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [plan-file]",
	Short: "Find the earliest year the SIP step-up can stop",
	Long: `Show the corpus gap and the SIP step-up optimizer: for every possible stop
year, the corpus reached if step-ups freeze after that year, and the earliest
stop year that still meets the required corpus.

Examples:
  corpus optimize plan.yaml
  corpus optimize plan.yaml --mode approximate --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}
		if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
			plan.Parameters.OptimizerMode = domain.OptimizerMode(strings.ToLower(mode))
			if m := plan.Parameters.OptimizerMode; m != domain.OptimizerFull && m != domain.OptimizerApproximate {
				return fmt.Errorf("unknown optimizer mode %q (want full or approximate)", mode)
			}
		}

		result, err := newEngine(cmd).Run(cmd.Context(), plan)
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"gapAnalysis":        result.GapAnalysis,
				"stepUpOptimization": result.StepUpOptimization,
				"warnings":           result.Warnings,
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, output.FormatGap(result.GapAnalysis))
		if s := output.FormatStepUp(result.StepUpOptimization); s != "" {
			fmt.Fprint(out, s)
		} else {
			fmt.Fprintln(out, "No step-up schedule to optimise (no SIP or no step-up)")
		}
		return nil
	},
}

var whatifCmd = &cobra.Command{
	Use:   "whatif [plan-file]",
	Short: "Evaluate discrete decisions against the baseline projection",
	Long: `Evaluate what-if scenarios: selling illiquid assets, reinvesting maturities
and freed loan EMIs, raising SIPs, plus any scenario given with --scenario.

Scenario specs are "type:key=value,...":
  lumpsum:amount=3000000,year=5     invest a one-off sum in year 5
  reinvest:amount=650000,year=4     reinvest a maturity payout
  sip-increase:percent=15           raise SIPs by 15% from year 0
  sip-increase:amount=10000,year=2  add 10,000 a month from year 2

Examples:
  corpus whatif plan.yaml
  corpus whatif plan.yaml --scenario lumpsum:amount=3000000,year=5 --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := whatif.NewRegistry()
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, name := range registry.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("plan file required (use --list to see scenario types)")
		}

		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}
		specs, _ := cmd.Flags().GetStringArray("scenario")
		for _, s := range specs {
			spec, err := registry.Parse(s)
			if err != nil {
				return err
			}
			plan.Scenarios = append(plan.Scenarios, spec)
		}

		result, err := newEngine(cmd).Run(cmd.Context(), plan)
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"gapAnalysis": result.GapAnalysis,
				"whatIf":      result.WhatIf,
				"warnings":    result.Warnings,
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Baseline corpus: %s, required: %s\n\n",
			output.FormatCompactINR(result.WhatIf.BaselineCorpus), output.FormatCompactINR(result.GapAnalysis.RequiredCorpus))
		if s := output.FormatWhatIf(result.WhatIf); s != "" {
			fmt.Fprint(out, s)
		} else {
			fmt.Fprintln(out, "No what-if scenarios apply to this plan")
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "⚠ %s\n", w)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare the plan against alternative strategies",
	Long: `Compare the plan against built-in templates and ad-hoc transforms.

Examples:
  corpus compare plan.yaml --with retire_late,aggressive_step_up
  corpus compare plan.yaml --transform postpone_retirement:years=3 --format csv
  corpus compare --list-templates  # Show all available templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
		}

		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 && len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
		}

		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		compareEngine := compare.NewCompareEngine(newEngine(cmd))
		comparisonSet, err := compareEngine.Compare(cmd.Context(), plan, compare.CompareOptions{
			Templates:   templateNames,
			Transforms:  transforms,
			Concurrency: concurrency,
			ConfigPath:  args[0],
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		var out string
		switch strings.ToLower(outputFormat) {
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(comparisonSet)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
		case "table", "console", "":
			out = (&compare.TableFormatter{}).Format(comparisonSet)
		case "compact":
			out = (&compare.TableFormatter{}).FormatCompact(comparisonSet)
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [plan-file]",
	Short: "Find the smallest change that closes the corpus gap",
	Long: `Solve for the minimum extra monthly SIP, annual step-up or retirement age
that closes the corpus gap, or that reaches --target-corpus.

Examples:
  corpus break-even plan.yaml
  corpus break-even plan.yaml --target monthly_sip
  corpus break-even plan.yaml --goal target_corpus --target-corpus 150000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(cmd, args[0])
		if err != nil {
			return err
		}

		constraints := breakeven.DefaultConstraints()
		goalStr, _ := cmd.Flags().GetString("goal")
		goal := breakeven.OptimizationGoal(strings.ToLower(goalStr))
		switch goal {
		case breakeven.GoalCloseGap:
		case breakeven.GoalTargetCorpus:
			targetStr, _ := cmd.Flags().GetString("target-corpus")
			target, err := decimal.NewFromString(strings.ReplaceAll(targetStr, ",", ""))
			if err != nil {
				return fmt.Errorf("--target-corpus must be an amount in rupees: %w", err)
			}
			constraints.TargetCorpus = &target
		default:
			return fmt.Errorf("unknown goal %q (valid: close_gap, target_corpus)", goalStr)
		}
		if maxAge, _ := cmd.Flags().GetInt("max-retirement-age"); maxAge > 0 {
			constraints.MaxRetirementAge = &maxAge
		}

		solver := breakeven.NewDefaultSolver(newEngine(cmd))
		outputFormat, _ := cmd.Flags().GetString("format")
		targetStr, _ := cmd.Flags().GetString("target")
		target := breakeven.OptimizationTarget(strings.ToLower(targetStr))

		if target == breakeven.OptimizeAll {
			result, err := solver.OptimizeMultiDimensional(cmd.Context(), plan, constraints, goal)
			if err != nil {
				return err
			}
			if strings.EqualFold(outputFormat, "json") {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
			return nil
		}

		result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
			Plan:        plan,
			Target:      target,
			Goal:        goal,
			Constraints: constraints,
		})
		if err != nil {
			return err
		}
		if strings.EqualFold(outputFormat, "json") {
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

func jsonOutput(cmd *cobra.Command) bool {
	format, _ := cmd.Flags().GetString("format")
	return strings.EqualFold(format, "json")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	optimizeCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	optimizeCmd.Flags().String("mode", "", "Optimizer mode (full, approximate); defaults to the plan's")
	optimizeCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	whatifCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	whatifCmd.Flags().StringArray("scenario", nil, "Extra scenario, e.g. lumpsum:amount=3000000,year=5 (repeatable)")
	whatifCmd.Flags().Bool("list", false, "List the scenario types")
	whatifCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc transform, e.g. postpone_retirement:years=2 (repeatable)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Int("concurrency", compare.DefaultConcurrency, "Alternatives calculated at once")
	compareCmd.Flags().Bool("list-templates", false, "List all available plan templates")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	breakEvenCmd.Flags().String("target", string(breakeven.OptimizeAll), "Lever to solve (monthly_sip, step_up, retirement_age, all)")
	breakEvenCmd.Flags().String("goal", string(breakeven.GoalCloseGap), "Goal (close_gap, target_corpus)")
	breakEvenCmd.Flags().String("target-corpus", "", "Corpus to reach, in rupees, for the target_corpus goal")
	breakEvenCmd.Flags().Int("max-retirement-age", 0, "Latest retirement age the solver may choose")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakEvenCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
