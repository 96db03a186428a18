package dist

import "math"

// Never is the sentinel distribution for "enabled but will never fire
// unaided" (spec.md §4.1). Its CCDF is 1 everywhere, PDF is 0 everywhere,
// and its quantile/inversion functions are +Inf.
type Never struct{}

func (Never) Space() SamplingSpace           { return LogSampling }
func (Never) PDF(float64) float64            { return 0 }
func (Never) LogCCDF(float64) float64        { return 0 }
func (Never) InvLogCCDF(float64) float64     { return math.Inf(1) }
func (Never) CCDF(float64) float64           { return 1 }
func (Never) CQuantile(float64) float64      { return math.Inf(1) }
