package sampler

import (
	"errors"
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// ErrPeekUnsupported is returned by FirstReaction.Peek and DirectCall.Peek:
// neither sampler carries a committed per-clock firing time between Next
// calls (spec.md §4.5.2 — FirstReaction resamples every enabled clock on
// every Next, DirectCall draws the next event from the total rate), so
// there is nothing to report without drawing randomness, which Peek's
// signature (no rng parameter) does not allow.
var ErrPeekUnsupported = errors.New("gsmp: sampler does not support Peek")

// FirstReaction is the O(n)-per-step reference sampler: it keeps no
// sampled firing time between calls, resampling every enabled clock's
// conditional firing time (given survival past tNow) on each Next call
// (spec.md §4.5.2). It is correct but quadratic in simulation length for n
// clocks, and deliberately NOT idempotent between successive Next calls
// with no intervening mutation (DirectCall behaves the same way) — each
// call consumes fresh randomness by design.
type FirstReaction[K comparable] struct {
	records map[K]frRecord
}

type frRecord struct {
	dist dist.Distribution
	te   float64
	t0   float64
}

func NewFirstReaction[K comparable]() *FirstReaction[K] {
	return &FirstReaction[K]{records: make(map[K]frRecord)}
}

func (s *FirstReaction[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	if rec, ok := s.records[k]; ok && sameParams(rec.dist, d, rec.te, te) {
		return nil
	}
	s.records[k] = frRecord{dist: d, te: te, t0: tNow}
	return nil
}

func (s *FirstReaction[K]) Disable(k K, tNow float64) error {
	if _, ok := s.records[k]; !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	delete(s.records, k)
	return nil
}

func (s *FirstReaction[K]) Fire(k K, t float64) error {
	return s.Disable(k, t)
}

func (s *FirstReaction[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	best := inf()
	var bestKey K
	found := false
	for k, rec := range s.records {
		fire := freshFiringTime(rec.dist, rec.te, tNow, rng)
		if !found || fire < best {
			best, bestKey, found = fire, k, true
		}
	}
	if !found || best == inf() {
		var zero K
		return inf(), zero, false
	}
	return best, bestKey, true
}

func (s *FirstReaction[K]) Enabled() []K {
	out := make([]K, 0, len(s.records))
	for k := range s.records {
		out = append(out, k)
	}
	return out
}

func (s *FirstReaction[K]) IsEnabled(k K) bool {
	_, ok := s.records[k]
	return ok
}

func (s *FirstReaction[K]) Peek(k K) (float64, error) {
	if _, ok := s.records[k]; !ok {
		return 0, gsmperr.NewLookupError("peek", k)
	}
	return 0, ErrPeekUnsupported
}

func (s *FirstReaction[K]) Len() int { return len(s.records) }

func (s *FirstReaction[K]) Reset() { s.records = make(map[K]frRecord) }

func (s *FirstReaction[K]) Clone() Sampler[K] {
	clone := NewFirstReaction[K]()
	for k, rec := range s.records {
		clone.records[k] = rec
	}
	return clone
}

func (s *FirstReaction[K]) CopyClocksFrom(src Sampler[K]) error {
	other, ok := src.(*FirstReaction[K])
	if !ok {
		return gsmperr.NewConfigurationError("CopyClocksFrom: mismatched sampler types")
	}
	s.records = make(map[K]frRecord, len(other.records))
	for k, rec := range other.records {
		s.records[k] = rec
	}
	return nil
}
