// Package dataset loads ad banner arms from CSV click-through-rate data.
//
// The expected layout is one banner per row with a label column and a CTR
// column; extra columns are ignored and column matching is case-insensitive.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/n0madic/go-bandit-sim/bandit"
)

// Default column names for ad banner datasets.
const (
	DefaultLabelColumn       = "Ad"
	DefaultProbabilityColumn = "CTR"
)

type loader struct {
	labelColumn string
	probColumn  string
}

// Option defines a functional option for configuring the loader.
type Option func(*loader)

// WithLabelColumn selects the column holding the banner labels.
func WithLabelColumn(name string) Option {
	return func(l *loader) {
		l.labelColumn = name
	}
}

// WithProbabilityColumn selects the column holding the true click
// probabilities.
func WithProbabilityColumn(name string) Option {
	return func(l *loader) {
		l.probColumn = name
	}
}

// LoadArms reads a CSV file of banners into arm definitions.
func LoadArms(path string, options ...Option) ([]bandit.Arm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	defer f.Close()

	arms, err := ReadArms(f, options...)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return arms, nil
}

// ReadArms parses CSV banner data from r into arm definitions. The first
// record must be a header naming the label and probability columns; every
// following record becomes one arm, in file order.
func ReadArms(r io.Reader, options ...Option) ([]bandit.Arm, error) {
	l := &loader{
		labelColumn: DefaultLabelColumn,
		probColumn:  DefaultProbabilityColumn,
	}
	for _, opt := range options {
		opt(l)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row")
	}
	if err != nil {
		return nil, err
	}

	labelIdx, probIdx := -1, -1
	for i, name := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(name), l.labelColumn):
			labelIdx = i
		case strings.EqualFold(strings.TrimSpace(name), l.probColumn):
			probIdx = i
		}
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header %v", l.labelColumn, header)
	}
	if probIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header %v", l.probColumn, header)
	}

	var arms []bandit.Arm
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		label := strings.TrimSpace(rec[labelIdx])
		raw := strings.TrimSpace(rec[probIdx])
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse %s: %w", row, l.probColumn, err)
		}
		if p < 0 || p > 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("row %d (%q): %s must be in [0, 1], got %v", row, label, l.probColumn, p)
		}

		arms = append(arms, bandit.Arm{Label: label, Probability: p})
	}

	if len(arms) == 0 {
		return nil, fmt.Errorf("no data rows after header")
	}
	return arms, nil
}
