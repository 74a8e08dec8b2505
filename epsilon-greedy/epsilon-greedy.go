package epsilongreedy

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/n0madic/go-bandit-sim/bandit"
)

// Policy implements the epsilon-greedy strategy for Bernoulli bandits.
// Features:
// - explores a uniformly random arm with probability epsilon
// - exploits the highest value estimate otherwise, ties to the lowest index
// - exact incremental-mean value updates, one observation at a time
//
// A Policy is not safe for concurrent use; each simulation run owns its own
// instance.
type Policy struct {
	epsilon float64
	counts  []int
	values  []float64
	rng     *rand.Rand
}

var _ bandit.Policy = (*Policy)(nil)

// Option defines a functional option for configuring a Policy.
type Option func(*Policy)

// WithRandomSeed seeds the policy's random stream. Seed 0 selects a
// time-derived seed.
func WithRandomSeed(seed int64) Option {
	return func(p *Policy) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		p.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
}

// WithSource supplies the random source directly, letting the caller share
// one deterministic stream between the policy and its environment.
func WithSource(src rand.Source) Option {
	return func(p *Policy) {
		p.rng = rand.New(src)
	}
}

// New creates an epsilon-greedy policy over the given number of arms.
// Epsilon is the exploration probability and must lie in [0, 1]; epsilon 0
// is fully greedy and epsilon 1 fully random.
func New(arms int, epsilon float64, options ...Option) (*Policy, error) {
	if arms < 1 {
		return nil, fmt.Errorf("arm count must be at least 1, got %d", arms)
	}
	if epsilon < 0 || epsilon > 1 || math.IsNaN(epsilon) {
		return nil, fmt.Errorf("epsilon must be in [0, 1], got %v", epsilon)
	}

	now := time.Now().UnixNano()
	p := &Policy{
		epsilon: epsilon,
		counts:  make([]int, arms),
		values:  make([]float64, arms),
		rng:     rand.New(rand.NewPCG(uint64(now), uint64(now))),
	}
	for _, opt := range options {
		opt(p)
	}

	return p, nil
}

// SelectArm returns the arm to pull: with probability epsilon a uniformly
// random arm, otherwise the arm with the highest value estimate (first
// maximum on ties). The step index is unused; exploration pressure is
// constant over time.
func (p *Policy) SelectArm(step int) int {
	if p.rng.Float64() < p.epsilon {
		return p.rng.IntN(len(p.counts))
	}
	return floats.MaxIdx(p.values)
}

// Update folds one observed reward into the pulled arm's running mean.
// It panics if arm is out of range.
func (p *Policy) Update(arm int, reward float64) {
	p.counts[arm]++
	p.values[arm] += (reward - p.values[arm]) / float64(p.counts[arm])
}

// Epsilon returns the configured exploration probability.
func (p *Policy) Epsilon() float64 {
	return p.epsilon
}

// Counts returns a copy of the per-arm pull counts.
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

// Reset restores the freshly-constructed state: all counts and value
// estimates return to zero. The random stream is not rewound.
func (p *Policy) Reset() {
	for i := range p.counts {
		p.counts[i] = 0
		p.values[i] = 0
	}
}
