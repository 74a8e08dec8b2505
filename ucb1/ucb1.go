package ucb1

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/n0madic/go-bandit-sim/bandit"
)

// DefaultExploration is the numerator constant of the classic UCB1
// confidence radius.
const DefaultExploration = 2

// Policy implements the UCB1 strategy for Bernoulli bandits.
// Features:
// - per-arm upper confidence bound value[a] + sqrt(c·ln(t+1)/count[a])
// - counts start at 1 so every arm is immediately informative and the
//   radius never divides by zero
// - fully deterministic: selection uses no randomness at all
//
// A Policy is not safe for concurrent use; each simulation run owns its own
// instance.
type Policy struct {
	exploration float64
	counts      []int
	values      []float64
	bounds      []float64 // scratch for per-arm confidence bounds
}

var _ bandit.Policy = (*Policy)(nil)

// Option defines a functional option for configuring a Policy.
type Option func(*Policy)

// WithExploration sets the numerator constant c of the confidence radius
// sqrt(c·ln(t+1)/count). The default 2 gives the classic UCB1 bound;
// larger values explore more aggressively. Must be positive.
func WithExploration(c float64) Option {
	return func(p *Policy) {
		p.exploration = c
	}
}

// New creates a UCB1 policy over the given number of arms.
func New(arms int, options ...Option) (*Policy, error) {
	if arms < 1 {
		return nil, fmt.Errorf("arm count must be at least 1, got %d", arms)
	}

	p := &Policy{
		exploration: DefaultExploration,
		counts:      make([]int, arms),
		values:      make([]float64, arms),
		bounds:      make([]float64, arms),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.exploration <= 0 || math.IsNaN(p.exploration) {
		return nil, fmt.Errorf("exploration constant must be positive, got %v", p.exploration)
	}

	for i := range p.counts {
		p.counts[i] = 1
	}
	return p, nil
}

// SelectArm returns the arm with the highest upper confidence bound at the
// given 0-indexed step. Ties resolve to the lowest index. At step 0 the
// radius term ln(1) vanishes, so the all-zero value estimates make arm 0
// the first selection.
func (p *Policy) SelectArm(step int) int {
	logT := math.Log(float64(step + 1))
	for a := range p.bounds {
		p.bounds[a] = p.values[a] + math.Sqrt(p.exploration*logT/float64(p.counts[a]))
	}
	return floats.MaxIdx(p.bounds)
}

// Update folds one observed reward into the pulled arm's running mean.
// Counts start at 1, so the mean carries one zero pseudo-observation.
// It panics if arm is out of range.
func (p *Policy) Update(arm int, reward float64) {
	p.counts[arm]++
	p.values[arm] += (reward - p.values[arm]) / float64(p.counts[arm])
}

// Exploration returns the configured exploration constant.
func (p *Policy) Exploration() float64 {
	return p.exploration
}

// Counts returns a copy of the per-arm counts (including the initial
// pseudo-count of 1).
func (p *Policy) Counts() []int {
	out := make([]int, len(p.counts))
	copy(out, p.counts)
	return out
}

// Values returns a copy of the per-arm value estimates.
func (p *Policy) Values() []float64 {
	out := make([]float64, len(p.values))
	copy(out, p.values)
	return out
}

// Reset restores the freshly-constructed state: counts return to 1 and
// value estimates to zero.
func (p *Policy) Reset() {
	for i := range p.counts {
		p.counts[i] = 1
		p.values[i] = 0
	}
}
