package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/config"
)

func compareCmd() *cobra.Command {
	var (
		base         string
		scenarioList string
		format       string
		seed         int64
		simulations  int
		debugMode    bool
	)
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the scenarios of a scenario file on shared market paths",
		Long: `Simulate the base configuration and each named scenario with the same
seed, then rank them by success rate and median final net worth.

Examples:
  drawdown compare plan.yaml
  drawdown compare plan.yaml --scenarios "four percent,guardrails" --format csv
  drawdown compare plan.yaml --base "keep mortgage" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if seed != 0 {
				cfg.Simulation.Seed = seed
			}
			if simulations > 0 {
				cfg.Simulation.NumSimulations = simulations
			}

			engine := compare.NewCompareEngine()
			if debugMode {
				engine.Logger = simpleCLILogger{}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			compSet, err := engine.Compare(ctx, cfg, compare.CompareOptions{
				BaseScenarioName: base,
				Scenarios:        parseList(scenarioList),
				ConfigPath:       args[0],
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "table", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Scenario to measure the others against (default: the unmodified configuration)")
	cmd.Flags().StringVar(&scenarioList, "scenarios", "", "Comma-separated scenario names to compare (default: all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the shared random seed")
	cmd.Flags().IntVarP(&simulations, "simulations", "n", 0, "Override the number of trials per scenario")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	return cmd
}

// parseList splits a comma-separated flag value, dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
