package dist

import "math"

// truncated is the left-truncated view of a Distribution, conditioned on
// survival past lowerBound. Its own tau argument is measured relative to
// lowerBound, i.e. truncated.CCDF(0) == 1.
type truncated struct {
	base       Distribution
	lowerBound float64
	// logBaseSurvival is LogCCDF(base, lowerBound), cached since every
	// other operation divides (or subtracts, in log space) by it.
	logBaseSurvival float64
}

// TruncatedAt returns d conditioned on survival past lowerBound: the
// distribution FirstReaction (spec.md §4.5.2) and CombinedNextReaction's
// truncated initial draw (spec.md §4.5.4) both need when a clock's
// enabling time te precedes the current simulation time t_now.
//
// If lowerBound <= 0, d is returned unchanged (no truncation needed).
func TruncatedAt(d Distribution, lowerBound float64) Distribution {
	if lowerBound <= 0 {
		return d
	}
	return truncated{
		base:            d,
		lowerBound:      lowerBound,
		logBaseSurvival: d.LogCCDF(lowerBound),
	}
}

func (t truncated) Space() SamplingSpace { return t.base.Space() }

func (t truncated) PDF(tau float64) float64 {
	if tau < 0 {
		return 0
	}
	return t.base.PDF(t.lowerBound+tau) / math.Exp(t.logBaseSurvival)
}

func (t truncated) LogCCDF(tau float64) float64 {
	if tau < 0 {
		return 0
	}
	return t.base.LogCCDF(t.lowerBound+tau) - t.logBaseSurvival
}

func (t truncated) InvLogCCDF(logS float64) float64 {
	return t.base.InvLogCCDF(logS+t.logBaseSurvival) - t.lowerBound
}

func (t truncated) CCDF(tau float64) float64 {
	return math.Exp(t.LogCCDF(tau))
}

func (t truncated) CQuantile(u float64) float64 {
	if u <= 0 {
		return math.Inf(1)
	}
	logU := math.Log(u)
	return t.InvLogCCDF(logU)
}
