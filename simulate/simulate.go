// Package simulate runs the supported bandit policies head to head against
// one shared arm configuration and aggregates the cumulative reward and
// regret series for each.
package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/n0madic/go-bandit-sim/bandit"
	epsilongreedy "github.com/n0madic/go-bandit-sim/epsilon-greedy"
	"github.com/n0madic/go-bandit-sim/thompson"
	"github.com/n0madic/go-bandit-sim/ucb1"
)

// Default simulation parameters, applied by the command-line front end when
// a scenario leaves them unset.
const (
	DefaultHorizon = 5000
	DefaultEpsilon = 0.1
)

// Kind identifies one of the supported bandit policies.
type Kind int

const (
	EpsilonGreedy Kind = iota
	UCB1
	ThompsonSampling
)

// String returns the canonical policy name.
func (k Kind) String() string {
	switch k {
	case EpsilonGreedy:
		return "epsilon-greedy"
	case UCB1:
		return "ucb1"
	case ThompsonSampling:
		return "thompson-sampling"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a canonical policy name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "epsilon-greedy":
		return EpsilonGreedy, nil
	case "ucb1":
		return UCB1, nil
	case "thompson-sampling":
		return ThompsonSampling, nil
	}
	return 0, fmt.Errorf("unknown policy %q (want epsilon-greedy, ucb1 or thompson-sampling)", name)
}

// Kinds returns every supported policy in canonical comparison order.
func Kinds() []Kind {
	return []Kind{EpsilonGreedy, UCB1, ThompsonSampling}
}

// Config describes one simulation.
type Config struct {
	// Horizon is the number of pulls each policy gets.
	Horizon int
	// Epsilon is the exploration probability of the epsilon-greedy policy.
	Epsilon float64
	// Seed drives every random stream of the simulation. Seed 0 selects a
	// time-derived seed; the seed actually used is recorded in the Summary.
	Seed int64
	// Policies lists the policies to compare. Empty means all of them.
	Policies []Kind
}

// Result holds one policy's full run: the raw trace plus the running totals
// derived from it. Element i of each series covers pulls 1 through i+1.
type Result struct {
	Kind             Kind
	Trace            bandit.Trace
	CumulativeReward []float64
	CumulativeRegret []float64
}

// FinalReward returns the total reward collected over the horizon.
func (r Result) FinalReward() float64 {
	if len(r.CumulativeReward) == 0 {
		return 0
	}
	return r.CumulativeReward[len(r.CumulativeReward)-1]
}

// FinalRegret returns the total regret accumulated over the horizon.
func (r Result) FinalRegret() float64 {
	if len(r.CumulativeRegret) == 0 {
		return 0
	}
	return r.CumulativeRegret[len(r.CumulativeRegret)-1]
}

// Summary packages the per-policy results with the oracle's view of the arm
// configuration and the parameters the runs actually used.
type Summary struct {
	Results         []Result
	BestArm         int
	BestLabel       string
	BestProbability float64
	Horizon         int
	Seed            int64
}

// Run simulates every requested policy over the same arms and horizon. Each
// policy gets a fresh environment on its own substream of the seed, so the
// runs are independent: adding or removing a policy never perturbs the
// rewards the others see.
//
// Regret is charged against the best arm's true probability: every pull
// adds (best probability - realized reward) to the running total, so the
// series can dip locally when a lucky pull beats the expectation.
func Run(arms []bandit.Arm, cfg Config) (*Summary, error) {
	if cfg.Horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1, got %d", cfg.Horizon)
	}
	if cfg.Epsilon < 0 || cfg.Epsilon > 1 || math.IsNaN(cfg.Epsilon) {
		return nil, fmt.Errorf("epsilon must be in [0, 1], got %v", cfg.Epsilon)
	}

	// The oracle instance validates the arms and fixes the regret baseline;
	// it is never pulled.
	oracle, err := bandit.NewEnvironment(arms)
	if err != nil {
		return nil, err
	}
	bestArm, bestProb := oracle.BestArm()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	policies := cfg.Policies
	if len(policies) == 0 {
		policies = Kinds()
	}

	summary := &Summary{
		Results:         make([]Result, 0, len(policies)),
		BestArm:         bestArm,
		BestLabel:       arms[bestArm].Label,
		BestProbability: bestProb,
		Horizon:         cfg.Horizon,
		Seed:            seed,
	}

	for _, kind := range policies {
		// Substreams are keyed by kind, so a policy replays the same run
		// whether it is simulated alone or as part of the full comparison.
		src := rand.NewPCG(uint64(seed), uint64(kind)+1)
		env, err := bandit.NewEnvironment(arms, bandit.WithSource(src))
		if err != nil {
			return nil, err
		}
		policy, err := newPolicy(kind, env.K(), cfg.Epsilon, src)
		if err != nil {
			return nil, err
		}
		trace, err := bandit.Run(env, policy, cfg.Horizon)
		if err != nil {
			return nil, err
		}
		summary.Results = append(summary.Results, aggregate(kind, trace, bestProb))
	}

	return summary, nil
}

// newPolicy builds one policy instance sharing the run's random source.
// UCB1 is deterministic and ignores the source.
func newPolicy(kind Kind, arms int, epsilon float64, src rand.Source) (bandit.Policy, error) {
	switch kind {
	case EpsilonGreedy:
		return epsilongreedy.New(arms, epsilon, epsilongreedy.WithSource(src))
	case UCB1:
		return ucb1.New(arms)
	case ThompsonSampling:
		return thompson.New(arms, thompson.WithSource(src))
	}
	return nil, fmt.Errorf("unsupported policy %v", kind)
}

// aggregate turns a raw trace into the cumulative reward and regret series.
func aggregate(kind Kind, trace bandit.Trace, optimal float64) Result {
	reward := make([]float64, trace.Len())
	copy(reward, trace.Rewards)
	floats.CumSum(reward, reward)

	regret := make([]float64, trace.Len())
	for t, r := range trace.Rewards {
		regret[t] = optimal - r
	}
	floats.CumSum(regret, regret)

	return Result{
		Kind:             kind,
		Trace:            trace,
		CumulativeReward: reward,
		CumulativeRegret: regret,
	}
}
