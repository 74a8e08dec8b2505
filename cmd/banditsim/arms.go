package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/n0madic/go-bandit-sim/bandit"
	"github.com/n0madic/go-bandit-sim/dataset"
)

func buildArmsCmd() *cobra.Command {
	var (
		data        string
		labelColumn string
		ctrColumn   string
	)

	cmd := &cobra.Command{
		Use:   "arms",
		Short: "Inspect a CTR dataset without simulating",
		RunE: func(cmd *cobra.Command, args []string) error {
			if data == "" {
				return errors.New("no dataset: set --data")
			}

			arms, err := dataset.LoadArms(data,
				dataset.WithLabelColumn(labelColumn),
				dataset.WithProbabilityColumn(ctrColumn),
			)
			if err != nil {
				return err
			}
			env, err := bandit.NewEnvironment(arms)
			if err != nil {
				return err
			}
			best, _ := env.BestArm()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tLABEL\tCTR\t")
			for i, arm := range arms {
				mark := ""
				if i == best {
					mark = "best"
				}
				fmt.Fprintf(tw, "%d\t%s\t%.3f\t%s\n", i, arm.Label, arm.Probability, mark)
			}
			return tw.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&data, "data", "", "CSV dataset of ad banners")
	flags.StringVar(&labelColumn, "label-column", dataset.DefaultLabelColumn, "dataset column holding the banner labels")
	flags.StringVar(&ctrColumn, "ctr-column", dataset.DefaultProbabilityColumn, "dataset column holding the true click probabilities")

	return cmd
}
