package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML description of one simulation run. Every field is
// optional; flags set explicitly on the command line take precedence over
// scenario values.
type Scenario struct {
	Dataset     string          `yaml:"dataset"`
	LabelColumn string          `yaml:"label_column"`
	CTRColumn   string          `yaml:"ctr_column"`
	Horizon     int             `yaml:"horizon"`
	Epsilon     *float64        `yaml:"epsilon"`
	Seed        int64           `yaml:"seed"`
	Policies    []string        `yaml:"policies"`
	Outputs     ScenarioOutputs `yaml:"outputs"`
}

// ScenarioOutputs names the artifact files a run should write.
type ScenarioOutputs struct {
	Chart string `yaml:"chart"`
	CSV   string `yaml:"csv"`
	JSON  string `yaml:"json"`
}

// loadScenario reads and decodes a YAML scenario file. Unknown keys are
// rejected so typos surface instead of silently using defaults.
func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// apply copies scenario values into opts for every flag the user did not
// set explicitly, implementing the flag-over-file precedence.
func (sc *Scenario) apply(flags *pflag.FlagSet, opts *runOptions) {
	if sc.Dataset != "" && !flags.Changed("data") {
		opts.data = sc.Dataset
	}
	if sc.LabelColumn != "" && !flags.Changed("label-column") {
		opts.labelColumn = sc.LabelColumn
	}
	if sc.CTRColumn != "" && !flags.Changed("ctr-column") {
		opts.ctrColumn = sc.CTRColumn
	}
	if sc.Horizon != 0 && !flags.Changed("horizon") {
		opts.horizon = sc.Horizon
	}
	if sc.Epsilon != nil && !flags.Changed("epsilon") {
		opts.epsilon = *sc.Epsilon
	}
	if sc.Seed != 0 && !flags.Changed("seed") {
		opts.seed = sc.Seed
	}
	if len(sc.Policies) > 0 && !flags.Changed("policies") {
		opts.policies = sc.Policies
	}
	if sc.Outputs.Chart != "" && !flags.Changed("chart") {
		opts.chartPath = sc.Outputs.Chart
	}
	if sc.Outputs.CSV != "" && !flags.Changed("csv") {
		opts.csvPath = sc.Outputs.CSV
	}
	if sc.Outputs.JSON != "" && !flags.Changed("json") {
		opts.jsonPath = sc.Outputs.JSON
	}
}
