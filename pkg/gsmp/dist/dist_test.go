package dist

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestExponentialRoundTrip(t *testing.T) {
	e := Exponential{Rate: 1.7}
	for _, tau := range []float64{0, 0.1, 1, 5} {
		logS := e.LogCCDF(tau)
		approxEqual(t, e.InvLogCCDF(logS), tau, 1e-9, "InvLogCCDF(LogCCDF(tau))")
		u := e.CCDF(tau)
		approxEqual(t, e.CQuantile(u), tau, 1e-9, "CQuantile(CCDF(tau))")
	}
}

func TestWeibullRoundTrip(t *testing.T) {
	w := Weibull{Shape: 2, Scale: 3}
	for _, tau := range []float64{0.01, 0.5, 1, 4} {
		logS := w.LogCCDF(tau)
		approxEqual(t, w.InvLogCCDF(logS), tau, 1e-9, "weibull InvLogCCDF")
	}
}

func TestGammaRoundTrip(t *testing.T) {
	g := Gamma{Shape: 2, Rate: 1}
	for _, tau := range []float64{0.1, 0.3, 1, 3, 7} {
		u := g.CCDF(tau)
		approxEqual(t, g.CQuantile(u), tau, 1e-6, "gamma CQuantile(CCDF(tau))")
	}
	// Shape 9 / rate 0.5 (the Gamma(9, 0.5) the scenario 3 fixture uses).
	g2 := Gamma{Shape: 9, Rate: 0.5}
	for _, tau := range []float64{1, 5, 10, 20} {
		logS := g2.LogCCDF(tau)
		approxEqual(t, g2.InvLogCCDF(logS), tau, 1e-5, "gamma(9,0.5) InvLogCCDF")
	}
}

func TestGammaMemoryExample(t *testing.T) {
	// Scenario 6: Gamma(2,1) disabled at 0.3 carries logccdf(Gamma(2,1),
	// 0.3) as its survival; this test checks only that the value is
	// strictly negative.
	g := Gamma{Shape: 2, Rate: 1}
	got := g.LogCCDF(0.3)
	if got >= 0 {
		t.Fatalf("expected strictly negative log-survival, got %v", got)
	}
}

func TestBetaRoundTrip(t *testing.T) {
	b := Beta{Alpha: 2, Beta: 5}
	for _, tau := range []float64{0.05, 0.2, 0.5, 0.8} {
		u := b.CCDF(tau)
		approxEqual(t, b.CQuantile(u), tau, 1e-4, "beta CQuantile(CCDF(tau))")
	}
}

func TestNormalRoundTrip(t *testing.T) {
	n := Normal{Mu: 2, Sigma: 1.5}
	for _, tau := range []float64{-1, 0, 2, 4} {
		u := n.CCDF(tau)
		approxEqual(t, n.CQuantile(u), tau, 1e-6, "normal CQuantile(CCDF(tau))")
	}
}

func TestLogNormalRoundTrip(t *testing.T) {
	ln := LogNormal{Mu: 0, Sigma: 0.5}
	for _, tau := range []float64{0.2, 1, 3} {
		u := ln.CCDF(tau)
		approxEqual(t, ln.CQuantile(u), tau, 1e-6, "lognormal CQuantile(CCDF(tau))")
	}
}

func TestParetoRoundTrip(t *testing.T) {
	p := Pareto{Xm: 1, Alpha: 3}
	for _, tau := range []float64{1.5, 2, 10} {
		logS := p.LogCCDF(tau)
		approxEqual(t, p.InvLogCCDF(logS), tau, 1e-9, "pareto InvLogCCDF")
	}
}

func TestUniformRoundTrip(t *testing.T) {
	u := Uniform{Lo: 1, Hi: 4}
	for _, tau := range []float64{1.2, 2, 3.9} {
		p := u.CCDF(tau)
		approxEqual(t, u.CQuantile(p), tau, 1e-9, "uniform CQuantile(CCDF(tau))")
	}
}

func TestLaplaceRoundTrip(t *testing.T) {
	l := Laplace{Scale: 2}
	for _, tau := range []float64{-3, -0.5, 0, 0.5, 3} {
		u := l.CCDF(tau)
		approxEqual(t, l.CQuantile(u), tau, 1e-9, "laplace CQuantile(CCDF(tau))")
	}
}

func TestNeverNeverFires(t *testing.T) {
	var n Never
	if n.CCDF(1e9) != 1 {
		t.Fatalf("Never.CCDF must be 1 everywhere")
	}
	if !math.IsInf(n.CQuantile(0.5), 1) {
		t.Fatalf("Never.CQuantile must be +Inf")
	}
	if n.PDF(3) != 0 {
		t.Fatalf("Never.PDF must be 0 everywhere")
	}
}

func TestTruncatedAt(t *testing.T) {
	base := Weibull{Shape: 1, Scale: 1}
	tr := TruncatedAt(base, 0.7)
	// The truncated distribution's own tau=0 must have full survival.
	approxEqual(t, tr.CCDF(0), 1, 1e-12, "truncated CCDF(0)")
	// Shifting back: base.CCDF(0.7+tau) == tr.CCDF(tau) * base.CCDF(0.7).
	baseSurv := base.CCDF(0.7)
	for _, tau := range []float64{0.1, 1, 3} {
		want := base.CCDF(0.7+tau) / baseSurv
		approxEqual(t, tr.CCDF(tau), want, 1e-9, "truncated CCDF consistency")
	}
}

func TestTruncatedAtZeroIsIdentity(t *testing.T) {
	base := Exponential{Rate: 1}
	tr := TruncatedAt(base, 0)
	if tr != Distribution(base) {
		// TruncatedAt(d, 0) returns d unchanged; compare behavior instead
		// of identity, since interface values compare by dynamic type+value.
		approxEqual(t, tr.CCDF(1), base.CCDF(1), 1e-12, "truncated-at-zero behaves like base")
	}
}
