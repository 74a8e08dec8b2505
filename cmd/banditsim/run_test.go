package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bannersCSV = `Ad,CTR
banner-a,0.2
banner-b,0.9
banner-c,0.5
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := buildRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	data := writeFile(t, "ads.csv", bannersCSV)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "summary.json")
	csvPath := filepath.Join(dir, "series.csv")
	chartPath := filepath.Join(dir, "chart.html")

	out, err := execute(t, "run",
		"--data", data,
		"--horizon", "50",
		"--seed", "3",
		"--json", jsonPath,
		"--csv", csvPath,
		"--chart", chartPath,
	)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	for _, want := range []string{"epsilon-greedy", "ucb1", "thompson-sampling", "BEST AD → banner-b"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	var doc struct {
		Horizon    int   `json:"horizon"`
		Seed       int64 `json:"seed"`
		Algorithms []struct {
			Name             string    `json:"name"`
			CumulativeReward []float64 `json:"cumulative_reward"`
		} `json:"algorithms"`
	}
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Horizon != 50 || doc.Seed != 3 {
		t.Errorf("json (horizon, seed) = (%v, %v), want (50, 3)", doc.Horizon, doc.Seed)
	}
	if len(doc.Algorithms) != 3 {
		t.Fatalf("json algorithms = %v, want 3", len(doc.Algorithms))
	}
	for _, algo := range doc.Algorithms {
		if len(algo.CumulativeReward) != 50 {
			t.Errorf("%s series length = %v, want 50", algo.Name, len(algo.CumulativeReward))
		}
	}

	series, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(series), "\n"); lines != 51 {
		t.Errorf("csv artifact has %v lines, want 51 (header + 50 steps)", lines)
	}

	chart, err := os.ReadFile(chartPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(chart), "Cumulative Clicks") {
		t.Error("chart artifact missing the clicks panel")
	}
}

func TestRunCommandScenarioPrecedence(t *testing.T) {
	data := writeFile(t, "ads.csv", bannersCSV)
	jsonPath := filepath.Join(t.TempDir(), "summary.json")
	config := writeFile(t, "scenario.yaml", fmt.Sprintf(`
dataset: %s
horizon: 30
seed: 11
policies: [ucb1]
`, data))

	// --horizon is explicit and must beat the scenario; seed and policies
	// come from the file.
	if _, err := execute(t, "run",
		"--config", config,
		"--horizon", "10",
		"--json", jsonPath,
	); err != nil {
		t.Fatalf("run error = %v", err)
	}

	var doc struct {
		Horizon    int   `json:"horizon"`
		Seed       int64 `json:"seed"`
		Algorithms []struct {
			Name string `json:"name"`
		} `json:"algorithms"`
	}
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Horizon != 10 {
		t.Errorf("horizon = %v, want the explicit flag value 10", doc.Horizon)
	}
	if doc.Seed != 11 {
		t.Errorf("seed = %v, want the scenario value 11", doc.Seed)
	}
	if len(doc.Algorithms) != 1 || doc.Algorithms[0].Name != "ucb1" {
		t.Errorf("algorithms = %+v, want just ucb1", doc.Algorithms)
	}
}

func TestRunCommandNoDataset(t *testing.T) {
	if _, err := execute(t, "run"); err == nil {
		t.Fatal("run error = nil, want missing-dataset error")
	}
}

func TestRunCommandUnknownPolicy(t *testing.T) {
	data := writeFile(t, "ads.csv", bannersCSV)
	_, err := execute(t, "run", "--data", data, "--policies", "exp3")
	if err == nil {
		t.Fatal("run error = nil, want unknown-policy error")
	}
	if !strings.Contains(err.Error(), "exp3") {
		t.Errorf("error = %v, want mention of the unknown policy", err)
	}
}

func TestArmsCommand(t *testing.T) {
	data := writeFile(t, "ads.csv", bannersCSV)

	out, err := execute(t, "arms", "--data", data)
	if err != nil {
		t.Fatalf("arms error = %v", err)
	}

	if !strings.Contains(out, "banner-b") {
		t.Fatalf("output missing banner-b:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "best") && !strings.Contains(line, "banner-b") {
			t.Errorf("best mark on wrong row: %q", line)
		}
	}
	if !strings.Contains(out, "best") {
		t.Errorf("no best mark in output:\n%s", out)
	}
}
