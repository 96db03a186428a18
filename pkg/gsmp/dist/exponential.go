package dist

import "math"

// Exponential is the memoryless waiting-time distribution with the given
// rate. It is the only family DirectCall (Gillespie Direct) accepts.
type Exponential struct {
	Rate float64
}

func (e Exponential) Space() SamplingSpace { return LogSampling }

func (e Exponential) PDF(tau float64) float64 {
	if tau < 0 {
		return 0
	}
	return e.Rate * math.Exp(-e.Rate*tau)
}

func (e Exponential) LogCCDF(tau float64) float64 {
	if tau < 0 {
		return 0
	}
	return -e.Rate * tau
}

func (e Exponential) InvLogCCDF(logS float64) float64 {
	return -logS / e.Rate
}

func (e Exponential) CCDF(tau float64) float64 {
	if tau < 0 {
		return 1
	}
	return math.Exp(-e.Rate * tau)
}

func (e Exponential) CQuantile(u float64) float64 {
	return -math.Log(u) / e.Rate
}
