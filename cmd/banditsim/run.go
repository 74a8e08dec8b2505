package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n0madic/go-bandit-sim/dataset"
	"github.com/n0madic/go-bandit-sim/report"
	"github.com/n0madic/go-bandit-sim/simulate"
)

type runOptions struct {
	data        string
	labelColumn string
	ctrColumn   string
	horizon     int
	epsilon     float64
	seed        int64
	policies    []string
	chartPath   string
	csvPath     string
	jsonPath    string
	configPath  string
}

func buildRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bandit comparison against a CTR dataset",
		Long: `Load the ad banners, run every requested algorithm over the same arm
configuration with independent pulls, print the comparison table, and
write any requested artifacts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.data, "data", "", "CSV dataset of ad banners")
	flags.StringVar(&opts.labelColumn, "label-column", dataset.DefaultLabelColumn, "dataset column holding the banner labels")
	flags.StringVar(&opts.ctrColumn, "ctr-column", dataset.DefaultProbabilityColumn, "dataset column holding the true click probabilities")
	flags.IntVar(&opts.horizon, "horizon", simulate.DefaultHorizon, "number of pulls per algorithm")
	flags.Float64Var(&opts.epsilon, "epsilon", simulate.DefaultEpsilon, "exploration probability for epsilon-greedy")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 = time-derived)")
	flags.StringSliceVar(&opts.policies, "policies", nil, "algorithms to compare (default all)")
	flags.StringVar(&opts.chartPath, "chart", "", "write the HTML chart page to this file")
	flags.StringVar(&opts.csvPath, "csv", "", "write the cumulative series CSV to this file")
	flags.StringVar(&opts.jsonPath, "json", "", "write the JSON run report to this file")
	flags.StringVar(&opts.configPath, "config", "", "YAML scenario file (explicit flags override it)")

	return cmd
}

func runSimulation(cmd *cobra.Command, opts *runOptions) error {
	if opts.configPath != "" {
		sc, err := loadScenario(opts.configPath)
		if err != nil {
			return err
		}
		sc.apply(cmd.Flags(), opts)
	}
	if opts.data == "" {
		return errors.New("no dataset: set --data or the scenario's dataset field")
	}

	arms, err := dataset.LoadArms(opts.data,
		dataset.WithLabelColumn(opts.labelColumn),
		dataset.WithProbabilityColumn(opts.ctrColumn),
	)
	if err != nil {
		return err
	}
	slog.Info("dataset loaded", "path", opts.data, "arms", len(arms))

	kinds, err := parseKinds(opts.policies)
	if err != nil {
		return err
	}

	summary, err := simulate.Run(arms, simulate.Config{
		Horizon:  opts.horizon,
		Epsilon:  opts.epsilon,
		Seed:     opts.seed,
		Policies: kinds,
	})
	if err != nil {
		return err
	}
	slog.Info("simulation complete",
		"horizon", summary.Horizon,
		"seed", summary.Seed,
		"algorithms", len(summary.Results),
	)

	if err := report.Table(cmd.OutOrStdout(), summary); err != nil {
		return err
	}

	artifacts := []struct {
		path   string
		render func(io.Writer, *simulate.Summary) error
	}{
		{opts.chartPath, report.WriteChart},
		{opts.csvPath, report.WriteCSV},
		{opts.jsonPath, report.WriteJSON},
	}
	for _, a := range artifacts {
		if a.path == "" {
			continue
		}
		if err := writeArtifact(a.path, summary, a.render); err != nil {
			return err
		}
		slog.Info("artifact written", "path", a.path)
	}
	return nil
}

// parseKinds maps policy names to Kinds; nil input selects all of them.
func parseKinds(names []string) ([]simulate.Kind, error) {
	kinds := make([]simulate.Kind, 0, len(names))
	for _, name := range names {
		kind, err := simulate.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func writeArtifact(path string, summary *simulate.Summary, render func(io.Writer, *simulate.Summary) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}
	if err := render(f, summary); err != nil {
		f.Close()
		return fmt.Errorf("artifact %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}
	return nil
}
