package likelihood

import (
	"math"
	"testing"

	"github.com/gsmp-sim/gsmp/internal/statcheck"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
)

func TestAccountantBasicFireAccumulates(t *testing.T) {
	a := NewAccountant[int]()
	if err := a.Enable(1, dist.Exponential{Rate: 2}, 0, 0); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := a.Fire(1, 0.5); err != nil {
		t.Fatalf("fire: %v", err)
	}
	want := math.Log(2 * math.Exp(-2*0.5))
	got := a.PathLogLikelihood(0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("PathLogLikelihood = %v, want %v", got, want)
	}
}

func TestAccountantDisableUnknownKeyFails(t *testing.T) {
	a := NewAccountant[int]()
	if err := a.Disable(1, 0); err == nil {
		t.Fatalf("disabling an unknown key should fail")
	}
}

// Property 6: enable Gamma(2,1) at t=0; disable at t=0.3. The carried
// survival charged into cumulative at disable must equal
// logccdf(Gamma(2,1), 0.3) exactly (spec.md §8 scenario 6).
func TestAccountantMemorySemanticsCarriedSurvival(t *testing.T) {
	g := dist.Gamma{Shape: 2, Rate: 1}
	a := NewAccountant[int]()
	a.Enable(1, g, 0, 0)
	if err := a.Disable(1, 0.3); err != nil {
		t.Fatalf("disable: %v", err)
	}
	want := g.LogCCDF(0.3)
	got := a.PathLogLikelihood(0.3)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("carried survival = %v, want logccdf(Gamma(2,1),0.3) = %v", got, want)
	}

	// Re-enable at t=0.5 (fresh segment) and fire at t=0.8; the disable's
	// carried contribution must still be present in the final total.
	a.Enable(1, g, 0, 0.5)
	if err := a.Fire(1, 0.8); err != nil {
		t.Fatalf("fire: %v", err)
	}
	fireContribution := StepContribution(g, 0, 0.5, 0.8, true)
	wantTotal := want + fireContribution
	gotTotal := a.PathLogLikelihood(0.8)
	if math.Abs(gotTotal-wantTotal) > 1e-9 {
		t.Fatalf("path log-likelihood after reenable+fire = %v, want %v", gotTotal, wantTotal)
	}
}

// Property 5: the step likelihood, integrated over the density of the
// next firing time and summed over possible firing keys, must equal 1 to
// within 1e-6 (spec.md §8 scenario 5). Checked here for two competing
// exponential clocks by first-principles quadrature against
// StepContribution.
func TestStepLikelihoodSumToOne(t *testing.T) {
	d1 := dist.Exponential{Rate: 1.0}
	d2 := dist.Exponential{Rate: 1.5}
	t0 := 0.0

	integrand := func(t1 float64) float64 {
		total := 0.0
		// Probability density that clock 1 fires at t1 (clock 2 survives).
		total += math.Exp(StepContribution(d1, 0, t0, t1, true)) * math.Exp(StepContribution(d2, 0, t0, t1, false))
		// Probability density that clock 2 fires at t1 (clock 1 survives).
		total += math.Exp(StepContribution(d2, 0, t0, t1, true)) * math.Exp(StepContribution(d1, 0, t0, t1, false))
		return total
	}
	got := statcheck.Simpson(integrand, 0, 60, 20000)
	if math.Abs(got-1) > 1e-6 {
		t.Fatalf("sum-to-one integral = %v, want ~1", got)
	}
}

func TestAccountantRightShiftedActivationInsideInterval(t *testing.T) {
	d := dist.Exponential{Rate: 1}
	a := NewAccountant[int]()
	// Enabled with a future zero-point (te=2): from [0, 1] it contributes
	// nothing (not yet active).
	if err := a.Enable(1, d, 2, 0); err != nil {
		t.Fatalf("enable: %v", err)
	}
	got := a.PathLogLikelihood(1)
	if got != 0 {
		t.Fatalf("clock not yet active should contribute 0, got %v", got)
	}
	got = a.PathLogLikelihood(3)
	want := d.LogCCDF(3 - 2)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("right-shifted survival contribution = %v, want %v", got, want)
	}
}
