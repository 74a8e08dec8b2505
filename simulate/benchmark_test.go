package simulate

import (
	"testing"

	"github.com/n0madic/go-bandit-sim/bandit"
)

func BenchmarkRun(b *testing.B) {
	const (
		arms    = 5
		horizon = 1000
	)

	specs := make([]bandit.Arm, arms)
	for a := range specs {
		specs[a] = bandit.Arm{
			Label:       string(rune('a' + a)),
			Probability: float64(a+1) / float64(arms+1),
		}
	}
	cfg := Config{Horizon: horizon, Epsilon: 0.1, Seed: 42}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Run(specs, cfg); err != nil {
			b.Fatalf("Run() error = %v", err)
		}
	}
}
