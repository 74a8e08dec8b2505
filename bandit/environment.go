// Package bandit defines the reward environment and the shared policy
// contract for Bernoulli multi-armed bandit simulations.
package bandit

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Arm is one selectable option (an ad banner) with a hidden true success
// probability. Immutable once constructed.
type Arm struct {
	Label       string
	Probability float64
}

// Environment simulates binary feedback for a fixed set of arms: each pull
// of an arm reports a click (1) with the arm's true probability, otherwise
// no click (0).
// Features:
// - Bernoulli rewards drawn from an explicitly seeded PCG stream
// - immutable arm configuration after construction
// - oracle access (ExpectedRewards, BestArm) separated from pulls so that
//   policies never observe the true probabilities
//
// An Environment is not safe for concurrent use; each simulation run owns
// its own instance.
type Environment struct {
	arms  []Arm
	probs []float64
	rng   *rand.Rand
}

// Option defines a functional option for configuring an Environment.
type Option func(*Environment)

// WithRandomSeed seeds the environment's random stream. Seed 0 selects a
// time-derived seed.
func WithRandomSeed(seed int64) Option {
	return func(e *Environment) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
}

// WithSource supplies the random source directly, letting the caller share
// one deterministic stream between the environment and a policy.
func WithSource(src rand.Source) Option {
	return func(e *Environment) {
		e.rng = rand.New(src)
	}
}

// NewEnvironment creates an environment over the given arms. At least one
// arm is required and every probability must lie in [0, 1].
func NewEnvironment(arms []Arm, options ...Option) (*Environment, error) {
	if len(arms) < 1 {
		return nil, fmt.Errorf("arm count must be at least 1, got %d", len(arms))
	}

	now := time.Now().UnixNano()
	e := &Environment{
		arms:  make([]Arm, len(arms)),
		probs: make([]float64, len(arms)),
		rng:   rand.New(rand.NewPCG(uint64(now), uint64(now))),
	}
	copy(e.arms, arms)
	for i, arm := range arms {
		p := arm.Probability
		if p < 0 || p > 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("arm %d (%q): probability must be in [0, 1], got %v", i, arm.Label, p)
		}
		e.probs[i] = p
	}

	for _, opt := range options {
		opt(e)
	}

	return e, nil
}

// K returns the number of arms.
func (e *Environment) K() int {
	return len(e.arms)
}

// Arms returns a copy of the arm definitions.
func (e *Environment) Arms() []Arm {
	out := make([]Arm, len(e.arms))
	copy(out, e.arms)
	return out
}

// Pull simulates one pull of the given arm: it draws one uniform sample u
// from the environment's stream and returns 1 if u is below the arm's true
// probability, else 0. An out-of-range index is a programming error and
// panics.
func (e *Environment) Pull(arm int) float64 {
	if arm < 0 || arm >= len(e.probs) {
		panic(fmt.Sprintf("bandit: arm index %d out of range [0, %d)", arm, len(e.probs)))
	}
	if e.rng.Float64() < e.probs[arm] {
		return 1
	}
	return 0
}

// ExpectedRewards returns a copy of the true success probabilities. This is
// the evaluation oracle used for regret accounting; it must never feed arm
// selection.
func (e *Environment) ExpectedRewards() []float64 {
	out := make([]float64, len(e.probs))
	copy(out, e.probs)
	return out
}

// BestArm returns the index and true probability of the arm with the
// highest expected reward. Ties resolve to the lowest index.
func (e *Environment) BestArm() (int, float64) {
	idx := floats.MaxIdx(e.probs)
	return idx, e.probs[idx]
}
