package dist

import "math"

// Uniform is the continuous uniform distribution on [Lo, Hi].
type Uniform struct {
	Lo float64
	Hi float64
}

func (u Uniform) Space() SamplingSpace { return LinearSampling }

func (u Uniform) width() float64 { return u.Hi - u.Lo }

func (u Uniform) PDF(tau float64) float64 {
	if tau < u.Lo || tau > u.Hi {
		return 0
	}
	return 1 / u.width()
}

func (u Uniform) CCDF(tau float64) float64 {
	switch {
	case tau <= u.Lo:
		return 1
	case tau >= u.Hi:
		return 0
	default:
		return (u.Hi - tau) / u.width()
	}
}

func (u Uniform) LogCCDF(tau float64) float64 {
	c := u.CCDF(tau)
	if c <= 0 {
		return math.Inf(-1)
	}
	return math.Log(c)
}

func (u Uniform) CQuantile(p float64) float64 {
	return u.Hi - p*u.width()
}

func (u Uniform) InvLogCCDF(logS float64) float64 {
	return u.CQuantile(math.Exp(logS))
}
