package sampler

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
)

func byKeyParity(k int, d dist.Distribution) string {
	if k%2 == 0 {
		return "even"
	}
	return "odd"
}

func TestMultiSamplerRoutesByClassifier(t *testing.T) {
	subs := map[string]Sampler[int]{
		"even": NewFirstToFire[int](),
		"odd":  NewFirstToFire[int](),
	}
	s := NewMultiSampler[int](subs, byKeyParity)
	rng := rand.New(rand.NewSource(1))
	s.Enable(2, dist.Exponential{Rate: 1}, 0, 0, rng)
	s.Enable(3, dist.Exponential{Rate: 1}, 0, 0, rng)

	if !subs["even"].IsEnabled(2) {
		t.Fatalf("key 2 should have routed to the even sub-sampler")
	}
	if !subs["odd"].IsEnabled(3) {
		t.Fatalf("key 3 should have routed to the odd sub-sampler")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestMultiSamplerUnknownSubSamplerFails(t *testing.T) {
	subs := map[string]Sampler[int]{"even": NewFirstToFire[int]()}
	s := NewMultiSampler[int](subs, byKeyParity)
	rng := rand.New(rand.NewSource(1))
	if err := s.Enable(3, dist.Exponential{Rate: 1}, 0, 0, rng); err == nil {
		t.Fatalf("classifying key 3 to the missing 'odd' sub-sampler should fail")
	}
}

// Scenario 3: enable clock 1 Exponential(1.7), 2 Gamma(9,0.5), 3
// Gamma(2,2.0); disable clock 2 at t=0.5. The next firing is either 1 or
// 3. Across 100 trials, the minimum firing time falls below 0.53.
func TestFirstToFireThreeClockRaceScenario(t *testing.T) {
	minFire := math.Inf(1)
	for trial := 0; trial < 100; trial++ {
		s := NewFirstToFire[int]()
		rng := rand.New(rand.NewSource(int64(2000 + trial)))
		s.Enable(1, dist.Exponential{Rate: 1.7}, 0, 0, rng)
		s.Enable(2, dist.Gamma{Shape: 9, Rate: 0.5}, 0, 0, rng)
		s.Enable(3, dist.Gamma{Shape: 2, Rate: 2.0}, 0, 0, rng)
		s.Disable(2, 0.5)

		fire, key, ok := s.Next(0.5, rng)
		if !ok {
			t.Fatalf("trial %d: expected a firing", trial)
		}
		if key != 1 && key != 3 {
			t.Fatalf("trial %d: firing key = %v, want 1 or 3", trial, key)
		}
		if fire < minFire {
			minFire = fire
		}
	}
	if minFire >= 0.53 {
		t.Fatalf("minimum next firing time over 100 trials = %v, want below 0.53", minFire)
	}
}

// Scenario 4: enable clock 1 with Never; next must return (+∞, ⊥). Enable
// clock 2 with Exponential(1); next returns a finite time with key=2.
func TestNeverDistributionScenario(t *testing.T) {
	s := NewFirstToFire[int]()
	rng := rand.New(rand.NewSource(1))
	s.Enable(1, dist.Never{}, 0, 0, rng)

	_, _, ok := s.Next(0, rng)
	if ok {
		t.Fatalf("a sampler with only a Never clock should report exhausted")
	}

	s.Enable(2, dist.Exponential{Rate: 1}, 0, 0, rng)
	fire, key, ok := s.Next(0, rng)
	if !ok || key != 2 {
		t.Fatalf("Next() = (%v, %v, %v), want a finite time with key 2", fire, key, ok)
	}
}
