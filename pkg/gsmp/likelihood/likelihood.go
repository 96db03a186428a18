// Package likelihood implements the trajectory log-likelihood accountant
// of spec.md §4.6: given the sequence of enable/disable/fire events a
// sampler produces, it tracks the log-likelihood of the observed
// trajectory, and can report the likelihood of the survival-only tail
// still pending for every currently enabled clock.
package likelihood

import (
	"math"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// record is the per-clock bookkeeping state: which distribution and
// zero-point currently apply, and t0, the checkpoint up to which this
// clock's contribution to the cumulative log-likelihood has already been
// charged. t0 advances independently per clock — at this clock's own
// Disable or Fire, or at any OTHER clock's Fire (which charges every
// still-live clock through the new boundary) — so clocks enabled at
// different wall-clock times are each credited against their own
// history rather than a single trajectory-wide checkpoint.
type record struct {
	dist dist.Distribution
	te   float64
	t0   float64
}

// logpdf computes log(PDF(tau)) directly; -Inf when PDF is exactly zero
// (firing at a point the distribution assigns no density, e.g. before
// its own zero-point).
func logpdf(d dist.Distribution, tau float64) float64 {
	p := d.PDF(tau)
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}

// StepContribution evaluates spec.md §4.6's four-way case split for one
// clock's contribution to the interval (t0, t1], crediting the PDF term
// instead of the CCDF term when fired is true. It is exported standalone
// so the sum-to-one self-check (property 5) and the memory-semantics
// check (property 6) can exercise it directly against a single clock,
// without going through the stateful Accountant.
func StepContribution(d dist.Distribution, te, t0, t1 float64, fired bool) float64 {
	switch {
	case t0 < te && te > t1:
		// Distribution not yet active during this interval.
		return 0
	case t0 < te && te <= t1:
		// Right-shifted: first activation happens inside the interval, no
		// baseline subtraction since the clock carries no prior exposure.
		if fired {
			return logpdf(d, t1-te)
		}
		return d.LogCCDF(t1 - te)
	default:
		// te <= t0: enabled fresh at t0, or left-shifted with memory.
		var val float64
		if fired {
			val = logpdf(d, t1-te)
		} else {
			val = d.LogCCDF(t1 - te)
		}
		if t0 > te {
			val -= d.LogCCDF(t0 - te)
		}
		return val
	}
}

// Accountant tracks the log-likelihood of a single observed trajectory
// (spec.md §4.6).
type Accountant[K comparable] struct {
	live       map[K]record
	cumulative float64
}

func NewAccountant[K comparable]() *Accountant[K] {
	return &Accountant[K]{live: make(map[K]record)}
}

// Enable adds or updates clock k's record. A parameter change on an
// already-live clock closes out its pending survival-only contribution up
// through tNow before resetting its checkpoint, mirroring the sampler
// contract's "last-write" semantics for changed parameters.
func (a *Accountant[K]) Enable(k K, d dist.Distribution, te, tNow float64) error {
	if rec, ok := a.live[k]; ok {
		if rec.dist == d && rec.te == te {
			return nil
		}
		a.cumulative += StepContribution(rec.dist, rec.te, rec.t0, tNow, false)
		a.live[k] = record{dist: d, te: te, t0: tNow}
		return nil
	}
	a.live[k] = record{dist: d, te: te, t0: tNow}
	return nil
}

// Disable charges k's own pending contribution through tNow and drops its
// record; a later Enable of the same key starts a fresh, unrelated
// segment (spec.md §4.5's "fire! ... promise that the next enable! starts
// a fresh draw" convention, applied to the likelihood side too).
func (a *Accountant[K]) Disable(k K, tNow float64) error {
	rec, ok := a.live[k]
	if !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	a.cumulative += StepContribution(rec.dist, rec.te, rec.t0, tNow, false)
	delete(a.live, k)
	return nil
}

// Fire charges every live clock's contribution through t1 (crediting
// firedKey's PDF term and every other live clock's CCDF term), advances
// every surviving clock's checkpoint to t1, and removes firedKey.
func (a *Accountant[K]) Fire(k K, t1 float64) error {
	if _, ok := a.live[k]; !ok {
		return gsmperr.NewLookupError("fire", k)
	}
	for key, rec := range a.live {
		a.cumulative += StepContribution(rec.dist, rec.te, rec.t0, t1, key == k)
		if key == k {
			continue
		}
		rec.t0 = t1
		a.live[key] = rec
	}
	delete(a.live, k)
	return nil
}

// PathLogLikelihood returns the cumulative log-likelihood of every
// fire charged so far, plus the survival-only contribution through tEnd
// of every clock still enabled (spec.md §4.6's path_loglikelihood).
func (a *Accountant[K]) PathLogLikelihood(tEnd float64) float64 {
	total := a.cumulative
	for _, rec := range a.live {
		total += StepContribution(rec.dist, rec.te, rec.t0, tEnd, false)
	}
	return total
}

func (a *Accountant[K]) IsEnabled(k K) bool { _, ok := a.live[k]; return ok }
func (a *Accountant[K]) Len() int           { return len(a.live) }
