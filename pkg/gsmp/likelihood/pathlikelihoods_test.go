package likelihood

import (
	"math"
	"testing"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
)

func twoTrackVector(a, b dist.Distribution) []dist.Distribution {
	return []dist.Distribution{a, b}
}

func TestPathLikelihoodsRejectsMismatchedVectorLength(t *testing.T) {
	p := NewPathLikelihoods[int](2)
	err := p.Enable(1, []dist.Distribution{dist.Exponential{Rate: 1}}, 0, 0)
	if err == nil {
		t.Fatalf("expected a configuration error for a short distribution vector")
	}
}

func TestPathLikelihoodsEnableNoOpOnIdenticalParams(t *testing.T) {
	p := NewPathLikelihoods[int](2)
	ds := twoTrackVector(dist.Exponential{Rate: 1}, dist.Exponential{Rate: 2})
	if err := p.Enable(1, ds, 0, 0); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := p.Enable(1, ds, 0, 5); err != nil {
		t.Fatalf("enable: %v", err)
	}
	got := p.PathLogLikelihood(5)
	want := []float64{
		StepContribution(dist.Exponential{Rate: 1}, 0, 0, 5, false),
		StepContribution(dist.Exponential{Rate: 2}, 0, 0, 5, false),
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("track %d = %v, want %v (no-op re-enable must not reset t0)", i, got[i], want[i])
		}
	}
}

// Each track is credited the PDF term at the fired clock's firing time and
// the CCDF term for every other live clock, across every track uniformly.
func TestPathLikelihoodsFireChargesEveryTrackUniformly(t *testing.T) {
	p := NewPathLikelihoods[int](2)
	fired := twoTrackVector(dist.Exponential{Rate: 1}, dist.Exponential{Rate: 3})
	other := twoTrackVector(dist.Exponential{Rate: 2}, dist.Exponential{Rate: 4})

	if err := p.Enable(1, fired, 0, 0); err != nil {
		t.Fatalf("enable 1: %v", err)
	}
	if err := p.Enable(2, other, 0, 0); err != nil {
		t.Fatalf("enable 2: %v", err)
	}
	if err := p.Fire(1, 0.4); err != nil {
		t.Fatalf("fire: %v", err)
	}

	got := p.PathLogLikelihood(0.4)
	wantTrack0 := StepContribution(dist.Exponential{Rate: 1}, 0, 0, 0.4, true) +
		StepContribution(dist.Exponential{Rate: 2}, 0, 0, 0.4, false)
	wantTrack1 := StepContribution(dist.Exponential{Rate: 3}, 0, 0, 0.4, true) +
		StepContribution(dist.Exponential{Rate: 4}, 0, 0, 0.4, false)

	if math.Abs(got[0]-wantTrack0) > 1e-9 {
		t.Fatalf("track 0 = %v, want %v", got[0], wantTrack0)
	}
	if math.Abs(got[1]-wantTrack1) > 1e-9 {
		t.Fatalf("track 1 = %v, want %v", got[1], wantTrack1)
	}

	// Firing key 1 must be removed; key 2 remains live and further
	// PathLogLikelihood calls must keep accruing its survival tail.
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after firing key 1", p.Len())
	}
	later := p.PathLogLikelihood(0.9)
	wantLaterTrack0 := wantTrack0 + StepContribution(dist.Exponential{Rate: 2}, 0, 0.4, 0.9, false)
	if math.Abs(later[0]-wantLaterTrack0) > 1e-9 {
		t.Fatalf("track 0 after further survival = %v, want %v", later[0], wantLaterTrack0)
	}
}

func TestPathLikelihoodsDisableUnknownKeyFails(t *testing.T) {
	p := NewPathLikelihoods[int](1)
	if err := p.Disable(1, 0); err == nil {
		t.Fatalf("expected a lookup error for an unknown key")
	}
}

func TestPathLikelihoodsFireUnknownKeyFails(t *testing.T) {
	p := NewPathLikelihoods[int](1)
	if err := p.Fire(1, 0); err == nil {
		t.Fatalf("expected a lookup error for an unknown key")
	}
}
