// Package keyedindex maps arbitrary caller-chosen clock keys onto the dense
// integer slots pkg/gsmp/pqsum's prefix-sum trees operate over (spec.md
// §4.3). Two variants are provided: Removal compacts its live set on
// disable (renumbering keys, which needs O(log n) reweighting after a
// swap), and Keep zeros a disabled key's slot but never reassigns it,
// so a key keeps the same slot across a disable/re-enable cycle.
// Either variant can be backed by either
// pqsum.Tree implementation (spec.md §4.5.3's four DirectCall storage
// variants), though BinaryTree naturally suits Removal's reweighting and
// CumulativeScan naturally suits Keep's append-only growth.
package keyedindex

import "github.com/gsmp-sim/gsmp/pkg/gsmp/pqsum"

// Removal is a keyed index that swaps the last live slot into a freed one
// and shrinks.
type Removal[K comparable] struct {
	tree      pqsum.Tree
	keyToSlot map[K]int
	slotToKey []K
	weights   []float64
}

func NewRemoval[K comparable](tree pqsum.Tree) *Removal[K] {
	return &Removal[K]{
		tree:      tree,
		keyToSlot: make(map[K]int),
	}
}

// Set assigns or updates the weight for k, adding it if not already
// tracked.
func (r *Removal[K]) Set(k K, weight float64) {
	if slot, ok := r.keyToSlot[k]; ok {
		r.weights[slot] = weight
		r.tree.Set(slot, weight)
		return
	}
	slot := len(r.slotToKey)
	r.keyToSlot[k] = slot
	r.slotToKey = append(r.slotToKey, k)
	r.weights = append(r.weights, weight)
	r.tree.Set(slot, weight)
}

// Remove drops k, swapping the last slot into its place. Returns false if
// k was not tracked.
func (r *Removal[K]) Remove(k K) bool {
	slot, ok := r.keyToSlot[k]
	if !ok {
		return false
	}
	last := len(r.slotToKey) - 1
	if slot != last {
		movedKey := r.slotToKey[last]
		r.slotToKey[slot] = movedKey
		r.weights[slot] = r.weights[last]
		r.keyToSlot[movedKey] = slot
		r.tree.Set(slot, r.weights[slot])
	}
	r.slotToKey = r.slotToKey[:last]
	r.weights = r.weights[:last]
	r.tree.Set(last, 0)
	delete(r.keyToSlot, k)
	return true
}

func (r *Removal[K]) Contains(k K) bool { _, ok := r.keyToSlot[k]; return ok }
func (r *Removal[K]) Len() int          { return len(r.slotToKey) }
func (r *Removal[K]) Sum() float64      { return r.tree.Sum() }

// Choose returns the key whose cumulative weight range contains u.
func (r *Removal[K]) Choose(u float64) K {
	return r.slotToKey[r.tree.Choose(u)]
}

// Keep is a keyed index that zeros a disabled key's weight but never
// reassigns its slot. New keys always receive fresh, ever-increasing slot
// numbers.
type Keep[K comparable] struct {
	tree      pqsum.Tree
	keyToSlot map[K]int
	slotToKey []K
	live      map[K]bool
}

func NewKeep[K comparable](tree pqsum.Tree) *Keep[K] {
	return &Keep[K]{
		tree:      tree,
		keyToSlot: make(map[K]int),
		live:      make(map[K]bool),
	}
}

func (k *Keep[K]) Set(key K, weight float64) {
	if slot, ok := k.keyToSlot[key]; ok {
		k.tree.Set(slot, weight)
		k.live[key] = true
		return
	}
	slot := len(k.slotToKey)
	k.keyToSlot[key] = slot
	k.slotToKey = append(k.slotToKey, key)
	k.tree.Set(slot, weight)
	k.live[key] = true
}

// Remove zeros key's weight but keeps its slot reserved, so a later Set
// for the same key lands on the identical slot index.
func (k *Keep[K]) Remove(key K) bool {
	slot, ok := k.keyToSlot[key]
	if !ok || !k.live[key] {
		return false
	}
	k.tree.Set(slot, 0)
	delete(k.live, key)
	return true
}

func (k *Keep[K]) Contains(key K) bool { return k.live[key] }
func (k *Keep[K]) Len() int            { return len(k.live) }
func (k *Keep[K]) Sum() float64        { return k.tree.Sum() }

func (k *Keep[K]) Choose(u float64) K {
	return k.slotToKey[k.tree.Choose(u)]
}
