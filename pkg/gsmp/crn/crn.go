// Package crn implements the common-random-numbers decorator of
// spec.md §4.7: a Sampler[K] wrapper that caches the single Uniform(0,1)
// draw backing each clock's first enable and can replay it, so that two
// runs over the same clock keys with different global RNGs reproduce
// the same firing times for the keys they share.
package crn

import (
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/sampler"
)

// maxInt63 is the largest value sampler.Sampler implementations may see
// from a *rand.Rand's Int63(), used to rescale a cached quantile back
// into a replayable Int63 draw.
const maxInt63 int64 = (1 << 63) - 1

// fixedFirstSource is a rand.Source whose first Int63 call returns a
// fixed value; every subsequent call delegates to fallback. Wrapping one
// in a *rand.Rand lets a cached Uniform(0,1) quantile stand in for the
// single draw a sampler's enable! consumes to seed a clock, while any
// further draws that same call might need (e.g. a Next-Reaction family
// truncated redraw) still come from a live RNG.
type fixedFirstSource struct {
	used     bool
	first    int64
	fallback rand.Source
}

func (s *fixedFirstSource) Int63() int64 {
	if !s.used {
		s.used = true
		return s.first
	}
	return s.fallback.Int63()
}

func (s *fixedFirstSource) Seed(seed int64) { s.fallback.Seed(seed) }

// cachedRand returns a *rand.Rand whose first draw reproduces u exactly
// (to the precision Int63/(1<<63) allows), falling back to fallback for
// any further draws.
func cachedRand(u float64, fallback *rand.Rand) *rand.Rand {
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	first := int64(u * float64(maxInt63))
	return rand.New(&fixedFirstSource{first: first, fallback: fallback})
}

// Recorder wraps any sampler.Sampler[K], intercepting enable! to consult
// a per-key cache of previously drawn Uniform(0,1) quantiles (spec.md
// §4.7). While recording (the default), every enable! draws a fresh
// quantile and overwrites the cache for that key. After Freeze, a key
// already present in the cache replays its stored quantile instead of
// drawing a new one; a key never seen before still draws fresh and is
// added to the cache, frozen or not ("new keys receive fresh draws as
// before").
type Recorder[K comparable] struct {
	inner  sampler.Sampler[K]
	cache  map[K]float64
	frozen bool
}

// NewRecorder wraps inner in a fresh, empty, recording-mode cache.
func NewRecorder[K comparable](inner sampler.Sampler[K]) *Recorder[K] {
	return &Recorder[K]{inner: inner, cache: make(map[K]float64)}
}

// NewRecorderFromCache wraps inner in a frozen Recorder pre-seeded with
// cache, so a second run can replay the quantiles a first run recorded
// for the keys they share.
func NewRecorderFromCache[K comparable](inner sampler.Sampler[K], cache map[K]float64) *Recorder[K] {
	seeded := make(map[K]float64, len(cache))
	for k, v := range cache {
		seeded[k] = v
	}
	return &Recorder[K]{inner: inner, cache: seeded, frozen: true}
}

// Freeze transitions the cache from recording to replay mode.
func (r *Recorder[K]) Freeze() { r.frozen = true }

// Cache returns a copy of the current key→quantile cache, suitable for
// seeding a second Recorder via NewRecorderFromCache.
func (r *Recorder[K]) Cache() map[K]float64 {
	out := make(map[K]float64, len(r.cache))
	for k, v := range r.cache {
		out[k] = v
	}
	return out
}

func (r *Recorder[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	var u float64
	if v, ok := r.cache[k]; ok && r.frozen {
		u = v
	} else {
		u = rng.Float64()
		r.cache[k] = u
	}
	return r.inner.Enable(k, d, te, tNow, cachedRand(u, rng))
}

func (r *Recorder[K]) Disable(k K, tNow float64) error { return r.inner.Disable(k, tNow) }

func (r *Recorder[K]) Fire(k K, t float64) error { return r.inner.Fire(k, t) }

func (r *Recorder[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	return r.inner.Next(tNow, rng)
}

func (r *Recorder[K]) Enabled() []K { return r.inner.Enabled() }

func (r *Recorder[K]) IsEnabled(k K) bool { return r.inner.IsEnabled(k) }

func (r *Recorder[K]) Peek(k K) (float64, error) { return r.inner.Peek(k) }

func (r *Recorder[K]) Len() int { return r.inner.Len() }

func (r *Recorder[K]) Clone() sampler.Sampler[K] {
	clone := &Recorder[K]{inner: r.inner.Clone(), cache: make(map[K]float64, len(r.cache)), frozen: r.frozen}
	for k, v := range r.cache {
		clone.cache[k] = v
	}
	return clone
}

func (r *Recorder[K]) Reset() {
	r.inner.Reset()
	r.cache = make(map[K]float64)
	r.frozen = false
}

func (r *Recorder[K]) CopyClocksFrom(src sampler.Sampler[K]) error {
	other, ok := src.(*Recorder[K])
	if !ok {
		return gsmperr.NewConfigurationError("crn: CopyClocksFrom requires another *Recorder[K]")
	}
	if err := r.inner.CopyClocksFrom(other.inner); err != nil {
		return err
	}
	r.cache = other.Cache()
	r.frozen = other.frozen
	return nil
}
