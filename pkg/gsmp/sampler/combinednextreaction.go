package sampler

import (
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/eventheap"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// cnrRecord is the per-clock state CombinedNextReaction carries: the
// distribution and zero-point currently in force, the checkpoint time t0
// at which remaining was last established, the remaining-survival value
// itself (in the distribution's natural sampling space), the live heap
// handle (zero value if the clock is currently frozen/disabled), and the
// firing time last inverted from remaining (cached for Peek).
type cnrRecord[K comparable] struct {
	dist      dist.Distribution
	te        float64
	t0        float64
	remaining float64
	handle    eventheap.Handle
	fire      float64
}

// CombinedNextReaction unifies the Next-Reaction and Modified-Next-Reaction
// methods: every clock's remaining survival, in its natural sampling
// space, is kept while the clock is disabled. Re-enabling a frozen clock
// with a changed (d, te) re-inverts that carried value under
// PolicyPreserveSurvival; re-enabling it with unchanged (d, te) draws a
// fresh remaining survival truncated at the local time already survived at
// the disable, so the firing time realized before the disable is not
// reused in that case (spec.md §4.5.4).
type CombinedNextReaction[K comparable] struct {
	heap   *eventheap.Heap[K]
	live   map[K]*cnrRecord[K]
	frozen map[K]*cnrRecord[K]
	policy Policy
}

func NewCombinedNextReaction[K comparable]() *CombinedNextReaction[K] {
	return NewCombinedNextReactionWithPolicy[K](PolicyPreserveSurvival)
}

// NewCombinedNextReactionWithPolicy resolves spec.md §9's open question
// for a changed (d, te) on an already-known key: PolicyPreserveSurvival
// re-inverts the carried remaining survival (this sampler's native
// behavior), PolicyRedrawOnChange discards it and draws fresh instead.
func NewCombinedNextReactionWithPolicy[K comparable](policy Policy) *CombinedNextReaction[K] {
	return &CombinedNextReaction[K]{
		heap:   eventheap.New[K](),
		live:   make(map[K]*cnrRecord[K]),
		frozen: make(map[K]*cnrRecord[K]),
		policy: policy,
	}
}

// invertRemaining inverts a stored remaining-survival value under (d, te):
// the tau at which d's survival function equals remaining, shifted to an
// absolute time by te.
func invertRemaining(d dist.Distribution, te, remaining float64) float64 {
	var tau float64
	if d.Space() == dist.LogSampling {
		tau = d.InvLogCCDF(remaining)
	} else {
		tau = d.CQuantile(remaining)
	}
	return te + tau
}

// freshRemainingSurvival draws a brand-new remaining-survival value in d's
// natural sampling space, truncated so the inverted firing time respects
// anchor as a lower bound (spec.md §4.5.4's truncated initial draw). It
// returns both the stored (te-relative, global) remaining-survival value
// and the absolute firing time it inverts to.
func freshRemainingSurvival(d dist.Distribution, te, anchor float64, rng *rand.Rand) (remaining, firingTime float64) {
	lowerBound := anchor - te
	if lowerBound < 0 {
		lowerBound = 0
	}
	space := d.Space()
	local := dist.FreshDraw(space, rng.Float64)
	eff := dist.TruncatedAt(d, lowerBound)
	var tau float64
	if space == dist.LogSampling {
		tau = eff.InvLogCCDF(local)
	} else {
		tau = eff.CQuantile(local)
	}
	absTau := lowerBound + tau
	firingTime = te + absTau
	if space == dist.LogSampling {
		remaining = d.LogCCDF(absTau)
	} else {
		remaining = d.CCDF(absTau)
	}
	return remaining, firingTime
}

// resolveFiringTime applies s.policy to an already-known key's changed
// (d, te): PolicyPreserveSurvival re-inverts rec's carried remaining
// survival, PolicyRedrawOnChange overwrites it with a fresh draw.
func (s *CombinedNextReaction[K]) resolveFiringTime(rec *cnrRecord[K], d dist.Distribution, te, tNow float64, rng *rand.Rand) float64 {
	if s.policy == PolicyRedrawOnChange {
		remaining, fireT := freshRemainingSurvival(d, te, tNow, rng)
		rec.remaining = remaining
		return fireT
	}
	return invertRemaining(d, te, rec.remaining)
}

func (s *CombinedNextReaction[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	if rec, ok := s.live[k]; ok {
		if sameParams(rec.dist, d, rec.te, te) {
			return nil
		}
		fireT := s.resolveFiringTime(rec, d, te, tNow, rng)
		rec.dist, rec.te, rec.t0, rec.fire = d, te, tNow, fireT
		s.heap.Update(rec.handle, fireT)
		return nil
	}
	if rec, ok := s.frozen[k]; ok {
		if sameParams(rec.dist, d, rec.te, te) {
			// No hazard accumulates while frozen, so the carried
			// remaining from before the disable no longer reflects any
			// single coherent draw: re-enabling must draw fresh,
			// truncated at the local time already survived when the
			// clock was disabled, to reproduce the clock's original
			// conditional firing law.
			remaining, fireT := freshRemainingSurvival(d, te, rec.t0, rng)
			rec.remaining, rec.t0, rec.fire = remaining, tNow, fireT
			rec.handle = s.heap.Push(fireT, k)
			delete(s.frozen, k)
			s.live[k] = rec
			return nil
		}
		fireT := s.resolveFiringTime(rec, d, te, tNow, rng)
		rec.dist, rec.te, rec.t0, rec.fire = d, te, tNow, fireT
		rec.handle = s.heap.Push(fireT, k)
		delete(s.frozen, k)
		s.live[k] = rec
		return nil
	}
	remaining, fireT := freshRemainingSurvival(d, te, tNow, rng)
	handle := s.heap.Push(fireT, k)
	s.live[k] = &cnrRecord[K]{dist: d, te: te, t0: tNow, remaining: remaining, handle: handle, fire: fireT}
	return nil
}

// Disable freezes k: no hazard accrues while frozen, so remaining is left
// untouched here. A changed-(d,te) re-enable re-inverts it under
// PolicyPreserveSurvival, while an unchanged-(d,te) re-enable supersedes
// it with a fresh truncated draw (see Enable's frozen branch). t0 is
// overwritten with the disable time so a later re-enable knows how much
// local time was already survived.
func (s *CombinedNextReaction[K]) Disable(k K, tNow float64) error {
	rec, ok := s.live[k]
	if !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	s.heap.Delete(rec.handle)
	rec.t0 = tNow
	rec.handle = 0
	delete(s.live, k)
	s.frozen[k] = rec
	return nil
}

func (s *CombinedNextReaction[K]) Fire(k K, t float64) error {
	rec, ok := s.live[k]
	if !ok {
		return gsmperr.NewLookupError("fire", k)
	}
	s.heap.Delete(rec.handle)
	delete(s.live, k)
	delete(s.frozen, k)
	return nil
}

func (s *CombinedNextReaction[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	p, k, _, ok := s.heap.Peek()
	if !ok || p == inf() {
		var zero K
		return inf(), zero, false
	}
	return p, k, true
}

func (s *CombinedNextReaction[K]) Enabled() []K {
	out := make([]K, 0, len(s.live))
	for k := range s.live {
		out = append(out, k)
	}
	return out
}

func (s *CombinedNextReaction[K]) IsEnabled(k K) bool {
	_, ok := s.live[k]
	return ok
}

func (s *CombinedNextReaction[K]) Peek(k K) (float64, error) {
	rec, ok := s.live[k]
	if !ok {
		return 0, gsmperr.NewLookupError("peek", k)
	}
	return rec.fire, nil
}

func (s *CombinedNextReaction[K]) Len() int { return len(s.live) }

func (s *CombinedNextReaction[K]) Reset() {
	s.heap = eventheap.New[K]()
	s.live = make(map[K]*cnrRecord[K])
	s.frozen = make(map[K]*cnrRecord[K])
}

func (s *CombinedNextReaction[K]) Clone() Sampler[K] {
	clone := NewCombinedNextReactionWithPolicy[K](s.policy)
	for k, rec := range s.live {
		handle := clone.heap.Push(rec.fire, k)
		cp := *rec
		cp.handle = handle
		clone.live[k] = &cp
	}
	for k, rec := range s.frozen {
		cp := *rec
		clone.frozen[k] = &cp
	}
	return clone
}

func (s *CombinedNextReaction[K]) CopyClocksFrom(src Sampler[K]) error {
	other, ok := src.(*CombinedNextReaction[K])
	if !ok {
		return gsmperr.NewConfigurationError("CopyClocksFrom: mismatched sampler types")
	}
	cloned := other.Clone().(*CombinedNextReaction[K])
	s.heap = cloned.heap
	s.live = cloned.live
	s.frozen = cloned.frozen
	return nil
}

// Jitter resamples every clock's remaining survival in place — live
// clocks get a fresh truncated draw anchored at tNow and their heap entry
// updated; frozen clocks get a fresh draw anchored at their own freeze
// checkpoint, so a later re-enable still inverts to a valid firing time.
// Intended for statistical-test fixtures that need to decorrelate a
// sampler's state from whatever randomness constructed it (spec.md
// §4.5.4).
func (s *CombinedNextReaction[K]) Jitter(tNow float64, rng *rand.Rand) {
	for _, rec := range s.live {
		remaining, fireT := freshRemainingSurvival(rec.dist, rec.te, tNow, rng)
		rec.remaining, rec.fire, rec.t0 = remaining, fireT, tNow
		s.heap.Update(rec.handle, fireT)
	}
	for _, rec := range s.frozen {
		remaining, _ := freshRemainingSurvival(rec.dist, rec.te, rec.t0, rng)
		rec.remaining = remaining
	}
}
