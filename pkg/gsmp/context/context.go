// Package context implements the public sampling facade of spec.md §2's
// data-flow diagram: a Context owns exactly one sampler, optionally
// wrapped in a common-random-numbers recorder, and separately feeds a
// likelihood accountant and a metrics decorator every lifecycle call
// sees, regardless of which concrete sampler variant is in use.
package context

import (
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/sampler"
)

// Likelihood is the subset of likelihood.Accountant[K] that Context
// needs to drive alongside the sampler chain. likelihood.PathLikelihoods
// takes a distribution vector rather than a single dist.Distribution, so
// it is not driven through this interface: builder.BuildPathLikelihoods
// returns it for the caller to drive directly. Context only wires in a
// single-track Accountant.
type Likelihood[K comparable] interface {
	Enable(k K, d dist.Distribution, te, tNow float64) error
	Disable(k K, tNow float64) error
	Fire(k K, t1 float64) error
}

// Metrics is the subset of metrics.Decorator that Context drives
// alongside the sampler chain, independent of whether a Prometheus
// registry was wired in at all.
type Metrics interface {
	ObserveEnable()
	ObserveDisable()
	ObserveFire(interFireTime float64)
}

// Context is the public facade composing one sampler with whichever
// optional collaborators the builder assembled for it (spec.md §4.8).
type Context[K comparable] struct {
	sampler    sampler.Sampler[K]
	likelihood Likelihood[K]
	metrics    Metrics
	lastFire   float64
	haveFire   bool
}

// New composes a Context around sampler s (typically a crn.Recorder
// wrapping a concrete sampler, or the concrete sampler directly),
// optionally feeding every lifecycle event to a likelihood accountant
// and/or a metrics decorator. Either may be nil.
func New[K comparable](s sampler.Sampler[K], likelihood Likelihood[K], metrics Metrics) *Context[K] {
	return &Context[K]{sampler: s, likelihood: likelihood, metrics: metrics}
}

func (c *Context[K]) Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error {
	if err := c.sampler.Enable(k, d, te, tNow, rng); err != nil {
		return err
	}
	if c.likelihood != nil {
		if err := c.likelihood.Enable(k, d, te, tNow); err != nil {
			return err
		}
	}
	if c.metrics != nil {
		c.metrics.ObserveEnable()
	}
	return nil
}

func (c *Context[K]) Disable(k K, tNow float64) error {
	if err := c.sampler.Disable(k, tNow); err != nil {
		return err
	}
	if c.likelihood != nil {
		if err := c.likelihood.Disable(k, tNow); err != nil {
			return err
		}
	}
	if c.metrics != nil {
		c.metrics.ObserveDisable()
	}
	return nil
}

func (c *Context[K]) Fire(k K, t float64) error {
	if err := c.sampler.Fire(k, t); err != nil {
		return err
	}
	if c.likelihood != nil {
		if err := c.likelihood.Fire(k, t); err != nil {
			return err
		}
	}
	if c.metrics != nil {
		if c.haveFire {
			c.metrics.ObserveFire(t - c.lastFire)
		} else {
			c.metrics.ObserveFire(t)
		}
	}
	c.lastFire = t
	c.haveFire = true
	return nil
}

func (c *Context[K]) Next(tNow float64, rng *rand.Rand) (float64, K, bool) {
	return c.sampler.Next(tNow, rng)
}

func (c *Context[K]) Enabled() []K { return c.sampler.Enabled() }

func (c *Context[K]) IsEnabled(k K) bool { return c.sampler.IsEnabled(k) }

func (c *Context[K]) Peek(k K) (float64, error) { return c.sampler.Peek(k) }

func (c *Context[K]) Len() int { return c.sampler.Len() }

// Sampler exposes the underlying sampler chain for inspection (e.g. by
// CopyClocksFrom in tests, or a CLI printing the raw trajectory).
func (c *Context[K]) Sampler() sampler.Sampler[K] { return c.sampler }
