package dist

import "math"

// LogNormal is parameterized by the mean Mu and standard deviation Sigma of
// the underlying normal distribution of log(tau).
type LogNormal struct {
	Mu    float64
	Sigma float64
}

func (l LogNormal) Space() SamplingSpace { return LinearSampling }

func (l LogNormal) PDF(tau float64) float64 {
	if tau <= 0 {
		return 0
	}
	z := (math.Log(tau) - l.Mu) / l.Sigma
	return math.Exp(-0.5*z*z) / (tau * l.Sigma * math.Sqrt(2*math.Pi))
}

func (l LogNormal) CCDF(tau float64) float64 {
	if tau <= 0 {
		return 1
	}
	z := (math.Log(tau) - l.Mu) / (l.Sigma * math.Sqrt2)
	return 0.5 * math.Erfc(z)
}

func (l LogNormal) LogCCDF(tau float64) float64 {
	c := l.CCDF(tau)
	if c <= 0 {
		return math.Inf(-1)
	}
	return math.Log(c)
}

func (l LogNormal) CQuantile(u float64) float64 {
	z := math.Sqrt2 * math.Erfinv(1-2*u)
	return math.Exp(l.Mu + l.Sigma*z)
}

func (l LogNormal) InvLogCCDF(logS float64) float64 {
	return l.CQuantile(math.Exp(logS))
}
