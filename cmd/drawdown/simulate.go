package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/output"
)

// extensions maps formatter names to the file extension used with --output-dir.
var extensions = map[string]string{
	"csv":          "csv",
	"detailed-csv": "csv",
	"json":         "json",
	"html":         "html",
}

type simulateOptions struct {
	format      string
	outputDir   string
	scenario    string
	seed        int64
	simulations int
	years       int
	sequential  bool
	debug       bool
}

func simulateCmd() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Run the Monte Carlo simulation for a scenario file",
		Long: `Run the Monte Carlo simulation for a scenario file.

Examples:
  drawdown simulate plan.yaml
  drawdown simulate plan.yaml --scenario "four percent" --seed 42
  drawdown simulate plan.yaml --format html --output-dir reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Write the report to a timestamped file in this directory instead of stdout")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "Simulate a named scenario instead of the base configuration")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Override the random seed")
	cmd.Flags().IntVarP(&opts.simulations, "simulations", "n", 0, "Override the number of trials")
	cmd.Flags().IntVarP(&opts.years, "years", "y", 0, "Override the number of simulated years")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "Run trials on a single goroutine")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	return cmd
}

func runSimulate(cmd *cobra.Command, inputFile string, opts simulateOptions) error {
	formatter := output.GetFormatterByName(opts.format)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", opts.format,
			strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
	}

	cfg, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return err
	}
	if opts.scenario != "" {
		found := false
		for _, s := range cfg.Scenarios {
			if s.Name == opts.scenario {
				cfg, found = config.ResolveScenario(cfg, s), true
				break
			}
		}
		if !found {
			return fmt.Errorf("scenario %s not found in configuration", opts.scenario)
		}
	}
	if opts.seed != 0 {
		cfg.Simulation.Seed = opts.seed
	}
	if opts.simulations > 0 {
		cfg.Simulation.NumSimulations = opts.simulations
	}
	if opts.years > 0 {
		cfg.Simulation.Years = opts.years
	}
	if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
		return err
	}

	params, err := config.BuildParams(cfg)
	if err != nil {
		return err
	}
	if opts.sequential {
		params.Parallel = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := calculation.NewSimulator(params)
	if opts.debug {
		sim.SetLogger(simpleCLILogger{})
	}
	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if opts.outputDir != "" {
		ext, ok := extensions[formatter.Name()]
		if !ok {
			ext = "txt"
		}
		path, err := output.WriteFormatted(formatter, result, opts.outputDir, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := formatter.Format(result)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
