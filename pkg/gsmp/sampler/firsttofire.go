package sampler

import (
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/eventheap"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// FirstToFire pre-samples the firing time of every enabled clock into a
// priority queue (spec.md §4.5.1). It supports any distribution, and does
// not preserve memory across a disable/re-enable cycle.
type FirstToFire[K comparable] struct {
	heap    *eventheap.Heap[K]
	records map[K]*ftfRecord
}

type ftfRecord struct {
	dist   dist.Distribution
	te     float64
	fire   float64
	handle eventheap.Handle
}

func NewFirstToFire[K comparable]() *FirstToFire[K] {
	return &FirstToFire[K]{
		heap:    eventheap.New[K](),
		records: make(map[K]*ftfRecord),
	}
}

func (s *FirstToFire[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	if rec, ok := s.records[k]; ok {
		if sameParams(rec.dist, d, rec.te, te) {
			return nil
		}
		fire := freshFiringTime(d, te, tNow, rng)
		rec.dist, rec.te, rec.fire = d, te, fire
		s.heap.Update(rec.handle, fire)
		return nil
	}
	fire := freshFiringTime(d, te, tNow, rng)
	handle := s.heap.Push(fire, k)
	s.records[k] = &ftfRecord{dist: d, te: te, fire: fire, handle: handle}
	return nil
}

func (s *FirstToFire[K]) Disable(k K, tNow float64) error {
	rec, ok := s.records[k]
	if !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	s.heap.Delete(rec.handle)
	delete(s.records, k)
	return nil
}

func (s *FirstToFire[K]) Fire(k K, t float64) error {
	return s.Disable(k, t)
}

func (s *FirstToFire[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	p, k, _, ok := s.heap.Peek()
	if !ok || p == inf() {
		var zero K
		return inf(), zero, false
	}
	return p, k, true
}

func (s *FirstToFire[K]) Enabled() []K {
	out := make([]K, 0, len(s.records))
	for k := range s.records {
		out = append(out, k)
	}
	return out
}

func (s *FirstToFire[K]) IsEnabled(k K) bool {
	_, ok := s.records[k]
	return ok
}

func (s *FirstToFire[K]) Peek(k K) (float64, error) {
	rec, ok := s.records[k]
	if !ok {
		return 0, gsmperr.NewLookupError("peek", k)
	}
	return rec.fire, nil
}

func (s *FirstToFire[K]) Len() int { return len(s.records) }

func (s *FirstToFire[K]) Reset() {
	s.heap = eventheap.New[K]()
	s.records = make(map[K]*ftfRecord)
}

func (s *FirstToFire[K]) Clone() Sampler[K] {
	clone := NewFirstToFire[K]()
	for k, rec := range s.records {
		handle := clone.heap.Push(rec.fire, k)
		clone.records[k] = &ftfRecord{dist: rec.dist, te: rec.te, fire: rec.fire, handle: handle}
	}
	return clone
}

func (s *FirstToFire[K]) CopyClocksFrom(src Sampler[K]) error {
	other, ok := src.(*FirstToFire[K])
	if !ok {
		return gsmperr.NewConfigurationError("CopyClocksFrom: mismatched sampler types")
	}
	cloned := other.Clone().(*FirstToFire[K])
	s.heap = cloned.heap
	s.records = cloned.records
	return nil
}
