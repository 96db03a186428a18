package sampler

import (
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
)

// Classifier decides, for a clock being enabled, which named sub-sampler
// should own it (spec.md §4.5.5).
type Classifier[K comparable] func(k K, d dist.Distribution) string

// MultiSampler routes each clock to one of a fixed set of named
// sub-samplers via a caller-supplied Classifier, and answers Next by
// taking the earliest candidate across all of them (spec.md §4.5.5). It
// is itself a Sampler, so it composes with the CRN decorator and with
// context.Context like any other variant.
type MultiSampler[K comparable] struct {
	subs       map[string]Sampler[K]
	classifier Classifier[K]
	owner      map[K]string
}

func NewMultiSampler[K comparable](subs map[string]Sampler[K], classifier Classifier[K]) *MultiSampler[K] {
	return &MultiSampler[K]{
		subs:       subs,
		classifier: classifier,
		owner:      make(map[K]string),
	}
}

func (s *MultiSampler[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	name := s.classifier(k, d)
	sub, ok := s.subs[name]
	if !ok {
		return gsmperr.NewConfigurationError("MultiSampler: classifier returned unknown sub-sampler " + name)
	}
	if prev, tracked := s.owner[k]; tracked && prev != name {
		return gsmperr.NewConfigurationError("MultiSampler: classifier reassigned a key from sub-sampler " + prev + " to " + name + " mid-lifetime")
	}
	if err := sub.Enable(k, d, te, tNow, rng); err != nil {
		return err
	}
	s.owner[k] = name
	return nil
}

func (s *MultiSampler[K]) Disable(k K, tNow float64) error {
	name, ok := s.owner[k]
	if !ok {
		return gsmperr.NewLookupError("disable", k)
	}
	if err := s.subs[name].Disable(k, tNow); err != nil {
		return err
	}
	delete(s.owner, k)
	return nil
}

func (s *MultiSampler[K]) Fire(k K, t float64) error {
	name, ok := s.owner[k]
	if !ok {
		return gsmperr.NewLookupError("fire", k)
	}
	if err := s.subs[name].Fire(k, t); err != nil {
		return err
	}
	delete(s.owner, k)
	return nil
}

func (s *MultiSampler[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	best := inf()
	var bestKey K
	found := false
	for _, sub := range s.subs {
		fire, key, ok := sub.Next(tNow, rng)
		if ok && (!found || fire < best) {
			best, bestKey, found = fire, key, true
		}
	}
	if !found {
		var zero K
		return inf(), zero, false
	}
	return best, bestKey, true
}

func (s *MultiSampler[K]) Enabled() []K {
	out := make([]K, 0, len(s.owner))
	for k := range s.owner {
		out = append(out, k)
	}
	return out
}

func (s *MultiSampler[K]) IsEnabled(k K) bool {
	_, ok := s.owner[k]
	return ok
}

func (s *MultiSampler[K]) Peek(k K) (float64, error) {
	name, ok := s.owner[k]
	if !ok {
		return 0, gsmperr.NewLookupError("peek", k)
	}
	return s.subs[name].Peek(k)
}

func (s *MultiSampler[K]) Len() int { return len(s.owner) }

func (s *MultiSampler[K]) Reset() {
	for _, sub := range s.subs {
		sub.Reset()
	}
	s.owner = make(map[K]string)
}

func (s *MultiSampler[K]) Clone() Sampler[K] {
	clone := &MultiSampler[K]{
		subs:       make(map[string]Sampler[K], len(s.subs)),
		classifier: s.classifier,
		owner:      make(map[K]string, len(s.owner)),
	}
	for name, sub := range s.subs {
		clone.subs[name] = sub.Clone()
	}
	for k, name := range s.owner {
		clone.owner[k] = name
	}
	return clone
}

func (s *MultiSampler[K]) CopyClocksFrom(src Sampler[K]) error {
	other, ok := src.(*MultiSampler[K])
	if !ok {
		return gsmperr.NewConfigurationError("CopyClocksFrom: mismatched sampler types")
	}
	if len(other.subs) != len(s.subs) {
		return gsmperr.NewConfigurationError("CopyClocksFrom: mismatched sub-sampler set sizes")
	}
	for name, sub := range s.subs {
		otherSub, ok := other.subs[name]
		if !ok {
			return gsmperr.NewConfigurationError("CopyClocksFrom: missing sub-sampler " + name)
		}
		if err := sub.CopyClocksFrom(otherSub); err != nil {
			return err
		}
	}
	s.owner = make(map[K]string, len(other.owner))
	for k, name := range other.owner {
		s.owner[k] = name
	}
	return nil
}
