package epsilongreedy

import (
	"testing"

	"github.com/n0madic/go-bandit-sim/bandit"
)

// BenchmarkSelectArm measures pure selection over a mid-sized arm set.
func BenchmarkSelectArm(b *testing.B) {
	const (
		arms    = 10
		epsilon = 0.1
		seed    = 42
	)

	p, err := New(arms, epsilon, WithRandomSeed(seed))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		p.SelectArm(i)
	}
}

// BenchmarkUpdate measures the incremental mean update.
func BenchmarkUpdate(b *testing.B) {
	const (
		arms    = 10
		epsilon = 0.1
		seed    = 42
	)

	p, err := New(arms, epsilon, WithRandomSeed(seed))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		p.Update(i%arms, float64(i%2))
	}
}

// BenchmarkRun measures a full select-pull-update loop against a seeded
// environment.
func BenchmarkRun(b *testing.B) {
	const (
		horizon = 1000
		epsilon = 0.1
		seed    = 42
	)

	arms := []bandit.Arm{
		{Label: "a", Probability: 0.03},
		{Label: "b", Probability: 0.05},
		{Label: "c", Probability: 0.07},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		env, err := bandit.NewEnvironment(arms, bandit.WithRandomSeed(seed))
		if err != nil {
			b.Fatalf("NewEnvironment() error = %v", err)
		}
		p, err := New(len(arms), epsilon, WithRandomSeed(seed))
		if err != nil {
			b.Fatalf("New() error = %v", err)
		}
		if _, err := bandit.Run(env, p, horizon); err != nil {
			b.Fatalf("Run() error = %v", err)
		}
	}
}
