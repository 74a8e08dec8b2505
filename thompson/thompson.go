// Package thompson implements Thompson Sampling for Bernoulli bandits with
// a Beta posterior per arm.
package thompson

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/n0madic/go-bandit-sim/bandit"
)

// Policy implements Thompson Sampling over binary rewards.
// Features:
// - independent Beta(alpha, beta) posterior per arm, uniform Beta(1, 1) prior
// - selection by sampling every posterior and taking the first maximum
// - conjugate updates: a click raises alpha, a miss raises beta
//
// A Policy is not safe for concurrent use; each simulation run owns its own
// instance.
type Policy struct {
	priorAlpha float64
	priorBeta  float64
	alphas     []float64
	betas      []float64
	samples    []float64
	src        rand.Source
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
		p.src = rand.NewPCG(uint64(seed), uint64(seed))
	}
}

// WithSource supplies the random source directly, letting the caller share
// one deterministic stream between the policy and its environment.
func WithSource(src rand.Source) Option {
	return func(p *Policy) {
		p.src = src
	}
}

// WithPrior replaces the uniform Beta(1, 1) prior. Both pseudo-counts must
// be positive.
func WithPrior(alpha, beta float64) Option {
	return func(p *Policy) {
		p.priorAlpha = alpha
		p.priorBeta = beta
	}
}

// New creates a Thompson Sampling policy over the given number of arms.
func New(arms int, options ...Option) (*Policy, error) {
	if arms < 1 {
		return nil, fmt.Errorf("arm count must be at least 1, got %d", arms)
	}

	now := time.Now().UnixNano()
	p := &Policy{
		priorAlpha: 1,
		priorBeta:  1,
		alphas:     make([]float64, arms),
		betas:      make([]float64, arms),
		samples:    make([]float64, arms),
		src:        rand.NewPCG(uint64(now), uint64(now)),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.priorAlpha <= 0 || math.IsNaN(p.priorAlpha) {
		return nil, fmt.Errorf("prior alpha must be positive, got %v", p.priorAlpha)
	}
	if p.priorBeta <= 0 || math.IsNaN(p.priorBeta) {
		return nil, fmt.Errorf("prior beta must be positive, got %v", p.priorBeta)
	}

	for i := range p.alphas {
		p.alphas[i] = p.priorAlpha
		p.betas[i] = p.priorBeta
	}

	return p, nil
}

// SelectArm draws one sample from every arm's Beta posterior and returns
// the arm whose sample is largest (first maximum on ties). The step index
// is unused; exploration pressure comes from posterior width alone.
func (p *Policy) SelectArm(step int) int {
	for a := range p.samples {
		p.samples[a] = distuv.Beta{
			Alpha: p.alphas[a],
			Beta:  p.betas[a],
			Src:   p.src,
		}.Rand()
	}
	return floats.MaxIdx(p.samples)
}

// Update folds one observed reward into the pulled arm's posterior: the
// reward adds to alpha and its complement to beta, so a click sharpens the
// posterior upward and a miss downward. It panics if arm is out of range.
func (p *Policy) Update(arm int, reward float64) {
	p.alphas[arm] += reward
	p.betas[arm] += 1 - reward
}

// Posterior returns copies of the per-arm alpha and beta pseudo-counts.
func (p *Policy) Posterior() (alphas, betas []float64) {
	alphas = make([]float64, len(p.alphas))
	betas = make([]float64, len(p.betas))
	copy(alphas, p.alphas)
	copy(betas, p.betas)
	return alphas, betas
}

// Reset restores every posterior to the prior. The random stream is not
// rewound.
func (p *Policy) Reset() {
	for i := range p.alphas {
		p.alphas[i] = p.priorAlpha
		p.betas[i] = p.priorBeta
	}
}
