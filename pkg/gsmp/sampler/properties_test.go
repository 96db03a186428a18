package sampler

import (
	"math/rand"
	"testing"

	"github.com/gsmp-sim/gsmp/internal/statcheck"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
)

func drawFirstToFireSamples(d dist.Distribution, te float64, tNow float64, n int, seed int64) []float64 {
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		s := NewFirstToFire[int]()
		rng := rand.New(rand.NewSource(seed + int64(i)))
		s.Enable(1, d, te, tNow, rng)
		fire, _, _ := s.Next(tNow, rng)
		samples[i] = fire
	}
	return samples
}

// Property 2: distributional fidelity. A single Weibull(1,1) clock
// enabled at t=0; 1,000 independent firing times must pass a KS test
// against the reference Weibull(1,1) (p > 0.04).
func TestDistributionalFidelityWeibull(t *testing.T) {
	w := dist.Weibull{Shape: 1, Scale: 1}
	samples := drawFirstToFireSamples(w, 0, 0, 1000, 10000)
	d := statcheck.KSStatistic(samples, func(x float64) float64 { return 1 - w.CCDF(x) })
	p := statcheck.KSPValue(d, len(samples))
	if p <= 0.04 {
		t.Fatalf("KS p-value = %v, want > 0.04 (D=%v)", p, d)
	}
}

// Property 3: left-truncation correctness. Enable Weibull(1,1) at t=0;
// draw firing times conditioned on not firing before t=0.7. All samples
// must exceed 0.7, and a KS test against truncated(Weibull(1,1), 0.7, ∞)
// must return p > 0.04.
func TestLeftTruncationCorrectness(t *testing.T) {
	w := dist.Weibull{Shape: 1, Scale: 1}
	samples := drawFirstToFireSamples(w, 0, 0.7, 1000, 20000)
	for _, s := range samples {
		if s <= 0.7 {
			t.Fatalf("sample %v must exceed the truncation point 0.7", s)
		}
	}
	truncated := dist.TruncatedAt(w, 0.7)
	cdf := func(x float64) float64 { return 1 - truncated.CCDF(x-0.7) }
	d := statcheck.KSStatistic(samples, cdf)
	p := statcheck.KSPValue(d, len(samples))
	if p <= 0.04 {
		t.Fatalf("KS p-value = %v, want > 0.04 (D=%v)", p, d)
	}
}

// Property 4: future-enabling correctness. Enable Weibull(1,1) with
// te=2.7 at enable time 0; all firing times must exceed 2.7, and the
// shifted samples (τ − 2.7) must follow Weibull(1,1) (KS p > 0.04).
func TestFutureEnablingCorrectness(t *testing.T) {
	w := dist.Weibull{Shape: 1, Scale: 1}
	samples := drawFirstToFireSamples(w, 2.7, 0, 1000, 30000)
	shifted := make([]float64, len(samples))
	for i, s := range samples {
		if s <= 2.7 {
			t.Fatalf("sample %v must exceed the future enable point 2.7", s)
		}
		shifted[i] = s - 2.7
	}
	d := statcheck.KSStatistic(shifted, func(x float64) float64 { return 1 - w.CCDF(x) })
	p := statcheck.KSPValue(d, len(shifted))
	if p <= 0.04 {
		t.Fatalf("KS p-value = %v, want > 0.04 (D=%v)", p, d)
	}
}
