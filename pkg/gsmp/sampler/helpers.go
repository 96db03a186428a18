package sampler

import (
	"math"
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
)

// inf is the canonical "no clock will fire" return value (spec.md §4.5
// Next, "+∞").
func inf() float64 { return math.Inf(1) }

// freshFiringTime draws a brand-new firing time for a clock enabled with
// distribution d, zero-point te, at simulation time tNow. If te < tNow the
// draw is taken from the left-truncated distribution conditioned on
// survival past tNow (spec.md §4.5.1/§4.5.2/§4.5.4's shared truncation
// rule), so the result always respects invariant 3 (firing_time > tNow).
func freshFiringTime(d dist.Distribution, te, tNow float64, rng *rand.Rand) float64 {
	lowerBound := tNow - te
	if lowerBound < 0 {
		lowerBound = 0
	}
	eff := dist.TruncatedAt(d, lowerBound)
	tau := eff.CQuantile(rng.Float64())
	return te + lowerBound + tau
}

// sameParams reports whether two (distribution, te) pairs are identical,
// per spec.md §4.5's "no-op on an unchanged enable!" rule. Distribution
// values in this package are all plain structs of float64/int fields, so
// interface equality (==) is well defined and panics only if a caller
// supplies a distribution with a non-comparable field, which none of
// pkg/gsmp/dist's families do.
func sameParams(d1, d2 dist.Distribution, te1, te2 float64) bool {
	return te1 == te2 && d1 == d2
}
