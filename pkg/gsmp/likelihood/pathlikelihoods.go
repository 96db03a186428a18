package likelihood

import (
	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// tracksRecord mirrors record but carries Tracks parallel distributions
// per clock, one per importance-sampling proposal (spec.md §4.6's
// PathLikelihoods extension).
type tracksRecord struct {
	dists []dist.Distribution
	te    float64
	t0    float64
}

// PathLikelihoods computes Tracks parallel log-likelihood tracks per
// clock — one likelihood track per target/proposal distribution supplied
// at Enable — for importance-sampling variance reduction (spec.md §4.6).
type PathLikelihoods[K comparable] struct {
	tracks     int
	live       map[K]tracksRecord
	cumulative []float64
}

// NewPathLikelihoods returns an accountant tracking `tracks` parallel
// log-likelihoods per clock.
func NewPathLikelihoods[K comparable](tracks int) *PathLikelihoods[K] {
	return &PathLikelihoods[K]{
		tracks:     tracks,
		live:       make(map[K]tracksRecord),
		cumulative: make([]float64, tracks),
	}
}

func (p *PathLikelihoods[K]) checkVectorLen(ds []dist.Distribution) error {
	if len(ds) != p.tracks {
		return gsmperr.NewConfigurationError("PathLikelihoods: distribution vector length does not match the configured track count")
	}
	return nil
}

// Enable adds or updates clock k with one distribution per track.
func (p *PathLikelihoods[K]) Enable(k K, ds []dist.Distribution, te, tNow float64) error {
	if err := p.checkVectorLen(ds); err != nil {
		return err
	}
	if rec, ok := p.live[k]; ok {
		if rec.te == te && sameDists(rec.dists, ds) {
			return nil
		}
		p.chargeVector(rec, tNow, false)
		p.live[k] = tracksRecord{dists: ds, te: te, t0: tNow}
		return nil
	}
	p.live[k] = tracksRecord{dists: ds, te: te, t0: tNow}
	return nil
}

func sameDists(a, b []dist.Distribution) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// chargeVector adds each track's StepContribution for rec through t1
// into p.cumulative; fired applies uniformly across every track, since a
// single physical firing event is shared by all K proposal tracks.
func (p *PathLikelihoods[K]) chargeVector(rec tracksRecord, t1 float64, fired bool) {
	for i, d := range rec.dists {
		p.cumulative[i] += StepContribution(d, rec.te, rec.t0, t1, fired)
	}
}

func (p *PathLikelihoods[K]) Disable(k K, tNow float64) error {
	rec, ok := p.live[k]
	if !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	p.chargeVector(rec, tNow, false)
	delete(p.live, k)
	return nil
}

// Fire charges every live clock's vector contribution through t1,
// crediting firedKey's PDF term on every track, then removes firedKey.
func (p *PathLikelihoods[K]) Fire(k K, t1 float64) error {
	rec, ok := p.live[k]
	if !ok {
		return gsmperr.NewLookupError("fire", k)
	}
	p.chargeVector(rec, t1, true)
	for key, other := range p.live {
		if key == k {
			continue
		}
		p.chargeVector(other, t1, false)
		other.t0 = t1
		p.live[key] = other
	}
	delete(p.live, k)
	return nil
}

// PathLogLikelihood returns the K-vector of cumulative log-likelihoods
// plus the survival-only tail of every still-enabled clock through tEnd.
func (p *PathLikelihoods[K]) PathLogLikelihood(tEnd float64) []float64 {
	total := append([]float64(nil), p.cumulative...)
	for _, rec := range p.live {
		for i, d := range rec.dists {
			total[i] += StepContribution(d, rec.te, rec.t0, tEnd, false)
		}
	}
	return total
}

func (p *PathLikelihoods[K]) Len() int { return len(p.live) }
