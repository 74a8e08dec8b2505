package bandit

import "fmt"

// Policy is the select-and-update capability shared by every bandit
// algorithm. Implementations must derive selections only from rewards they
// observed through Update, never from environment internals.
type Policy interface {
	// SelectArm returns the arm to pull at the given 0-indexed step.
	SelectArm(step int) int
	// Update folds the reward observed for the pulled arm into the
	// policy state.
	Update(arm int, reward float64)
}

// Puller is the single environment capability a policy run consumes.
// *Environment satisfies it; tests substitute scripted implementations.
type Puller interface {
	Pull(arm int) float64
}

// Trace records one policy run as parallel, step-indexed rewards and arm
// choices. It is written once by Run and read-only afterward.
type Trace struct {
	Rewards []float64
	Arms    []int
}

// Len returns the number of recorded steps.
func (t Trace) Len() int {
	return len(t.Rewards)
}

// Run drives one policy against one environment for the given horizon.
// Per step it selects an arm, pulls it, updates the policy, and records
// the (reward, arm) pair at that step index, strictly in that order. The
// returned trace has exactly horizon entries.
func Run(env Puller, p Policy, horizon int) (Trace, error) {
	if horizon < 1 {
		return Trace{}, fmt.Errorf("horizon must be at least 1, got %d", horizon)
	}

	tr := Trace{
		Rewards: make([]float64, horizon),
		Arms:    make([]int, horizon),
	}
	for t := 0; t < horizon; t++ {
		arm := p.SelectArm(t)
		reward := env.Pull(arm)
		p.Update(arm, reward)
		tr.Rewards[t] = reward
		tr.Arms[t] = arm
	}
	return tr, nil
}
