// Package main provides the banditsim CLI, a multi-armed bandit simulator
// for ad banner selection.
//
// # Basic Usage
//
// Run the three-algorithm comparison against a CTR dataset:
//
//	banditsim run --data ads_dataset.csv --horizon 5000 --seed 42
//
// Inspect a dataset without simulating:
//
//	banditsim arms --data ads_dataset.csv
//
// A YAML scenario file can supply every parameter; explicitly set flags
// override scenario values:
//
//	banditsim run --config scenario.yaml
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	// Structured JSON logging on stderr; results go to stdout.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := buildRootCmd().Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
// Separated from main() to facilitate testing.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "banditsim",
		Short: "Multi-armed bandit simulator for ad banner selection",
		Long: `banditsim compares bandit algorithms (epsilon-greedy, UCB1, Thompson
Sampling) against a dataset of ad banners with known click-through rates,
reporting cumulative clicks and cumulative regret per algorithm.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		buildRunCmd(),
		buildArmsCmd(),
	)
	return rootCmd
}
