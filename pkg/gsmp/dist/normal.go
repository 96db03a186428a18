package dist

import "math"

// Normal is parameterized by mean Mu and standard deviation Sigma.
type Normal struct {
	Mu    float64
	Sigma float64
}

func (n Normal) Space() SamplingSpace { return LinearSampling }

func (n Normal) PDF(tau float64) float64 {
	z := (tau - n.Mu) / n.Sigma
	return math.Exp(-0.5*z*z) / (n.Sigma * math.Sqrt(2*math.Pi))
}

func (n Normal) CCDF(tau float64) float64 {
	z := (tau - n.Mu) / (n.Sigma * math.Sqrt2)
	return 0.5 * math.Erfc(z)
}

func (n Normal) LogCCDF(tau float64) float64 {
	c := n.CCDF(tau)
	if c <= 0 {
		return math.Inf(-1)
	}
	return math.Log(c)
}

func (n Normal) CQuantile(u float64) float64 {
	return n.Mu + n.Sigma*math.Sqrt2*math.Erfinv(1-2*u)
}

func (n Normal) InvLogCCDF(logS float64) float64 {
	return n.CQuantile(math.Exp(logS))
}
