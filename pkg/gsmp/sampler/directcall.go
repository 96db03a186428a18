package sampler

import (
	"fmt"
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/keyedindex"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/pqsum"
)

// Storage selects one of DirectCall's four {keep,removal}×{tree,cumsum}
// backings (spec.md §4.5.3). All four obey the identical Sampler contract;
// the choice is purely a performance tradeoff between disable-time
// compaction (Removal) and disable/re-enable slot stability (Keep), and
// between logarithmic (BinaryTree) and constant-time (CumulativeScan)
// update cost.
type Storage int

const (
	KeepTree Storage = iota
	KeepScan
	RemovalTree
	RemovalScan
)

// rateIndex is the subset of keyedindex.Removal/keyedindex.Keep's method
// set DirectCall needs; both satisfy it regardless of their pqsum.Tree
// backing.
type rateIndex[K comparable] interface {
	Set(k K, weight float64)
	Remove(k K) bool
	Contains(k K) bool
	Len() int
	Sum() float64
	Choose(u float64) K
}

// DirectCall is the Gillespie Direct method: exponential clocks only, a
// keyed prefix-sum structure over their rates stands in for per-clock
// firing times (spec.md §4.5.3).
type DirectCall[K comparable] struct {
	storage Storage
	index   rateIndex[K]
	records map[K]dist.Exponential
}

func newRateIndex[K comparable](storage Storage) rateIndex[K] {
	switch storage {
	case KeepTree:
		return keyedindex.NewKeep[K](pqsum.NewBinaryTree(8))
	case KeepScan:
		return keyedindex.NewKeep[K](pqsum.NewCumulativeScan(8))
	case RemovalTree:
		return keyedindex.NewRemoval[K](pqsum.NewBinaryTree(8))
	case RemovalScan:
		return keyedindex.NewRemoval[K](pqsum.NewCumulativeScan(8))
	default:
		return keyedindex.NewRemoval[K](pqsum.NewBinaryTree(8))
	}
}

func NewDirectCall[K comparable](storage Storage) *DirectCall[K] {
	return &DirectCall[K]{
		storage: storage,
		index:   newRateIndex[K](storage),
		records: make(map[K]dist.Exponential),
	}
}

func (s *DirectCall[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	exp, ok := d.(dist.Exponential)
	if !ok {
		return gsmperr.NewCapabilityError("DirectCall", k, fmt.Sprintf("%T", d))
	}
	if rec, ok := s.records[k]; ok && rec == exp {
		return nil
	}
	s.records[k] = exp
	s.index.Set(k, exp.Rate)
	return nil
}

func (s *DirectCall[K]) Disable(k K, tNow float64) error {
	if _, ok := s.records[k]; !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	s.index.Remove(k)
	delete(s.records, k)
	return nil
}

func (s *DirectCall[K]) Fire(k K, t float64) error {
	return s.Disable(k, t)
}

// Next draws a fresh (Δ, firing key) pair on every call, per spec.md
// §4.5.3: Λ is the total rate, Δ ∼ Exp(Λ), and the firing key is chosen by
// weighted sampling over the rate index. Like FirstReaction, DirectCall is
// therefore a deliberate exception to the general "next is idempotent
// between mutations" rule — it is the Gillespie Direct method, whose
// defining property is a fresh per-step draw.
func (s *DirectCall[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	lambda := s.index.Sum()
	if lambda <= 0 {
		var zero K
		return inf(), zero, false
	}
	delta := rng.ExpFloat64() / lambda
	u := rng.Float64() * lambda
	key := s.index.Choose(u)
	return tNow + delta, key, true
}

func (s *DirectCall[K]) Enabled() []K {
	out := make([]K, 0, len(s.records))
	for k := range s.records {
		out = append(out, k)
	}
	return out
}

func (s *DirectCall[K]) IsEnabled(k K) bool {
	_, ok := s.records[k]
	return ok
}

// Peek is unsupported: DirectCall has no per-key scheduled firing time,
// only an aggregate rate, so there is nothing to report without drawing
// randomness.
func (s *DirectCall[K]) Peek(k K) (float64, error) {
	if _, ok := s.records[k]; !ok {
		return 0, gsmperr.NewLookupError("peek", k)
	}
	return 0, ErrPeekUnsupported
}

func (s *DirectCall[K]) Len() int { return len(s.records) }

func (s *DirectCall[K]) Reset() {
	s.index = newRateIndex[K](s.storage)
	s.records = make(map[K]dist.Exponential)
}

func (s *DirectCall[K]) Clone() Sampler[K] {
	clone := &DirectCall[K]{
		storage: s.storage,
		index:   newRateIndex[K](s.storage),
		records: make(map[K]dist.Exponential, len(s.records)),
	}
	for k, rec := range s.records {
		clone.records[k] = rec
		clone.index.Set(k, rec.Rate)
	}
	return clone
}

func (s *DirectCall[K]) CopyClocksFrom(src Sampler[K]) error {
	other, ok := src.(*DirectCall[K])
	if !ok {
		return gsmperr.NewConfigurationError("CopyClocksFrom: mismatched sampler types")
	}
	s.records = make(map[K]dist.Exponential, len(other.records))
	s.storage = other.storage
	s.index = newRateIndex[K](s.storage)
	for k, rec := range other.records {
		s.records[k] = rec
		s.index.Set(k, rec.Rate)
	}
	return nil
}
