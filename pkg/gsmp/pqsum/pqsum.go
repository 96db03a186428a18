// Package pqsum implements the two prefix-sum search structures spec.md
// §4.2 calls for: a binary tree (logarithmic update and search) and a
// cumulative scan (constant-time update, linear search). Both satisfy the
// same Tree contract so callers (pkg/gsmp/keyedindex) can swap one for the
// other without changing call sites.
package pqsum

// Tree supports point update, total-sum query, and weighted-index sampling
// over a dense set of non-negative weights addressed by slot index.
type Tree interface {
	// Set assigns the weight at slot i, growing the tree if i is beyond
	// its current capacity.
	Set(i int, v float64)
	// Sum returns the total of all weights.
	Sum() float64
	// Choose returns the smallest index i such that the prefix sum of
	// weights[0..i] is >= u. u must be in (0, Sum()]; behavior for u
	// outside that range is to clamp to the first or last live index.
	Choose(u float64) int
	// Len returns the number of slots the tree currently tracks.
	Len() int
}
