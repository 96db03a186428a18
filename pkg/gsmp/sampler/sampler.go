// Package sampler implements the competing-clock samplers of spec.md §4.5:
// FirstToFire, FirstReaction, DirectCall (Gillespie Direct, in four
// {keep,removal}×{tree,cumsum} storage variants), CombinedNextReaction
// (unified Next-Reaction / Modified-Next-Reaction), and MultiSampler. All
// variants satisfy the same Sampler contract so pkg/gsmp/context and the
// CRN decorator work with any of them uniformly.
package sampler

import (
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
)

// Policy resolves spec.md §9's open question: what happens when enable!
// is called again for an already-enabled key, but with a different
// (distribution, te) pair.
type Policy int

const (
	// PolicyPreserveSurvival re-inverts the carried remaining_survival
	// under the new (d, te) rather than redrawing — the convention
	// CombinedNextReaction adopts natively, and the builder's default.
	PolicyPreserveSurvival Policy = iota
	// PolicyRedrawOnChange discards the carried survival and draws fresh.
	PolicyRedrawOnChange
)

// Sampler is the common contract every competing-clock algorithm in this
// package implements (spec.md §4.5).
type Sampler[K comparable] interface {
	// Enable adds or updates clock k. rng is consulted only when a fresh
	// draw is required; which cases need one depends on the variant (a
	// brand-new key; any parameter change in FirstToFire; a parameter
	// change under PolicyRedrawOnChange or an unchanged re-enable of a
	// disabled clock in CombinedNextReaction).
	Enable(k K, d dist.Distribution, te, tNow float64, rng *rand.Rand) error
	// Disable marks k ineligible to fire, returning a *gsmperr.LookupError
	// if k was not enabled.
	Disable(k K, tNow float64) error
	// Fire records that k fired at time t; equivalent to Disable followed
	// by a promise that k's next Enable starts a fresh draw.
	Fire(k K, t float64) error
	// Next returns the earliest firing at or after tNow. ok is false (and
	// tFire is +Inf) when no clock is enabled or every enabled clock has
	// been fully consumed — spec.md §7's "normal terminal signal."
	Next(tNow float64, rng *rand.Rand) (tFire float64, key K, ok bool)
	// Enabled lists the currently enabled keys, in unspecified order.
	Enabled() []K
	IsEnabled(k K) bool
	// Peek returns k's currently scheduled firing time, or a
	// *gsmperr.LookupError if k is not enabled. FirstReaction and
	// DirectCall keep no scheduled time and return ErrPeekUnsupported.
	Peek(k K) (float64, error)
	Len() int
	// Clone returns a deep, independent copy of the sampler.
	Clone() Sampler[K]
	// Reset wipes all clocks.
	Reset()
	// CopyClocksFrom replaces this sampler's clock set with a copy of
	// src's (spec.md §4.5 "copy_clocks!"). src must share the same
	// concrete implementation type, or a *gsmperr.ConfigurationError is
	// returned.
	CopyClocksFrom(src Sampler[K]) error
}
