// Package report renders simulation summaries for people and pipelines: a
// console table, wide-format CSV, a JSON document, and an HTML chart page.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/n0madic/go-bandit-sim/simulate"
)

// Table writes the policy comparison with the oracle's best arm callout.
func Table(w io.Writer, summary *simulate.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tCLICKS\tREGRET")
	for _, res := range summary.Results {
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f\n", res.Kind, res.FinalReward(), res.FinalRegret())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nBEST AD → %s (CTR = %.3f)\n", summary.BestLabel, summary.BestProbability)
	return err
}

// WriteCSV writes the cumulative series in wide format: one row per step
// with a reward and a regret column for every policy.
func WriteCSV(w io.Writer, summary *simulate.Summary) error {
	cw := csv.NewWriter(w)

	header := []string{"step"}
	for _, res := range summary.Results {
		name := res.Kind.String()
		header = append(header, name+"_cum_reward", name+"_cum_regret")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < summary.Horizon; i++ {
		row[0] = strconv.Itoa(i + 1)
		for j, res := range summary.Results {
			row[1+2*j] = strconv.FormatFloat(res.CumulativeReward[i], 'g', -1, 64)
			row[2+2*j] = strconv.FormatFloat(res.CumulativeRegret[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Report is the JSON artifact describing one simulation run.
type Report struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Horizon     int               `json:"horizon"`
	Seed        int64             `json:"seed"`
	BestArm     BestArm           `json:"best_arm"`
	Algorithms  []AlgorithmReport `json:"algorithms"`
}

// BestArm identifies the arm with the highest true click probability.
type BestArm struct {
	Index       int     `json:"index"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// AlgorithmReport carries one policy's totals and full series.
type AlgorithmReport struct {
	Name             string    `json:"name"`
	FinalReward      float64   `json:"final_reward"`
	FinalRegret      float64   `json:"final_regret"`
	CumulativeReward []float64 `json:"cumulative_reward"`
	CumulativeRegret []float64 `json:"cumulative_regret"`
}

// NewReport assembles the JSON document for a summary, stamped with a fresh
// run ID and the current UTC time.
func NewReport(summary *simulate.Summary) Report {
	r := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Horizon:     summary.Horizon,
		Seed:        summary.Seed,
		BestArm: BestArm{
			Index:       summary.BestArm,
			Label:       summary.BestLabel,
			Probability: summary.BestProbability,
		},
	}
	for _, res := range summary.Results {
		r.Algorithms = append(r.Algorithms, AlgorithmReport{
			Name:             res.Kind.String(),
			FinalReward:      res.FinalReward(),
			FinalRegret:      res.FinalRegret(),
			CumulativeReward: res.CumulativeReward,
			CumulativeRegret: res.CumulativeRegret,
		})
	}
	return r
}

// WriteJSON writes the indented JSON report.
func WriteJSON(w io.Writer, summary *simulate.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(summary))
}
