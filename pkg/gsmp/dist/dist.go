// Package dist provides uniform access to the survival-function arithmetic
// every sampler in pkg/gsmp/sampler needs, over a small set of continuous
// univariate distributions.
package dist

import "math"

// SamplingSpace classifies a Distribution by which representation of its
// survival function is numerically stable to invert.
type SamplingSpace int

const (
	// LogSampling distributions invert stably in log-survival space
	// (Exponential, Gamma, Weibull, Erlang, Laplace).
	LogSampling SamplingSpace = iota
	// LinearSampling distributions invert stably in linear-survival space
	// (Normal, Uniform, LogNormal, Beta, Pareto).
	LinearSampling
)

func (s SamplingSpace) String() string {
	switch s {
	case LogSampling:
		return "log"
	case LinearSampling:
		return "linear"
	default:
		return "unknown"
	}
}

// Distribution is the contract every clock's waiting-time law must
// satisfy. Implementations classify themselves via Space so that callers
// can dispatch fresh draws and survival bookkeeping to the stable
// representation without a type switch on the hot path.
type Distribution interface {
	// PDF returns the probability density at tau (tau measured from the
	// distribution's own zero-point).
	PDF(tau float64) float64
	// LogCCDF returns log(1 - CDF(tau)), computed directly (never via
	// log(1-CDF(tau))) so it stays finite deep into the tail.
	LogCCDF(tau float64) float64
	// InvLogCCDF inverts LogCCDF: given a target log-survival logS <= 0,
	// returns the tau at which LogCCDF(tau) == logS.
	InvLogCCDF(logS float64) float64
	// CCDF returns 1 - CDF(tau) directly.
	CCDF(tau float64) float64
	// CQuantile inverts CCDF: given u in [0,1], returns the tau at which
	// CCDF(tau) == u.
	CQuantile(u float64) float64
	// Space reports the distribution's preferred sampling space.
	Space() SamplingSpace
}

// ExhaustedSentinel returns the "fully consumed" remaining-survival value
// for a sampling space: -Inf in log space, 0 in linear space.
func ExhaustedSentinel(space SamplingSpace) float64 {
	if space == LogSampling {
		return math.Inf(-1)
	}
	return 0
}

// FreshDraw returns the remaining-survival value of a brand-new clock, in
// its natural sampling space: an Exp(1) draw (negated, since survival is
// stored as log(1-CDF) which starts at 0 and decreases) for LogSampling,
// or a Uniform(0,1) draw for LinearSampling.
func FreshDraw(space SamplingSpace, u01 func() float64) float64 {
	if space == LogSampling {
		// -Exp(1): CCDF of Exp(1) evaluated at a Exp(1)-distributed point
		// is itself Uniform(0,1); in log space this is log(U) = -Exp(1).
		return math.Log(u01())
	}
	return u01()
}
