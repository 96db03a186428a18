// Package eventheap implements the mutable-handle min-heap spec.md §4.4
// calls for, generalizing the container/heap.Interface idiom used by
// github.com/joeycumines/go-eventloop's timerHeap (a plain []timer ordered
// by when) to support Update and Delete by a stable handle, via a map from
// handle to element, each element recording its current heap index.
// Handles increase monotonically and are never reused.
package eventheap

import "container/heap"

// Handle identifies a pushed element independent of its current position
// in the heap.
type Handle int

type item[K comparable] struct {
	priority float64
	key      K
	seq      uint64 // tie-break: insertion order, for a stable secondary key
	handle   Handle
	index    int // position in the backing slice; -1 once popped
}

// Heap is a binary min-heap ordered by priority (ties broken by insertion
// order), supporting decrease/increase-key via Update and removal from any
// position via Delete.
type Heap[K comparable] struct {
	data       heapData[K]
	byHandle   map[Handle]*item[K]
	nextHandle Handle
	nextSeq    uint64
}

func New[K comparable]() *Heap[K] {
	return &Heap[K]{byHandle: make(map[Handle]*item[K])}
}

func (h *Heap[K]) Len() int { return len(h.data) }

// Push adds key with the given priority and returns a handle for later
// Update/Delete calls.
func (h *Heap[K]) Push(priority float64, key K) Handle {
	h.nextHandle++
	handle := h.nextHandle
	it := &item[K]{priority: priority, key: key, seq: h.nextSeq, handle: handle}
	h.nextSeq++
	h.byHandle[handle] = it
	heap.Push(&h.data, it)
	return handle
}

// Update changes the priority of the element identified by handle,
// restoring the heap invariant. It is a no-op if handle is unknown (e.g.
// already deleted).
func (h *Heap[K]) Update(handle Handle, priority float64) {
	it, ok := h.byHandle[handle]
	if !ok {
		return
	}
	it.priority = priority
	heap.Fix(&h.data, it.index)
}

// Delete removes the element identified by handle. It is a no-op if
// handle is unknown.
func (h *Heap[K]) Delete(handle Handle) {
	it, ok := h.byHandle[handle]
	if !ok {
		return
	}
	heap.Remove(&h.data, it.index)
	delete(h.byHandle, handle)
}

// Peek returns the minimum-priority element without removing it. ok is
// false if the heap is empty.
func (h *Heap[K]) Peek() (priority float64, key K, handle Handle, ok bool) {
	if len(h.data) == 0 {
		var zero K
		return 0, zero, 0, false
	}
	top := h.data[0]
	return top.priority, top.key, top.handle, true
}

// heapData implements container/heap.Interface over []*item[K].
type heapData[K comparable] []*item[K]

func (d heapData[K]) Len() int { return len(d) }

func (d heapData[K]) Less(i, j int) bool {
	if d[i].priority != d[j].priority {
		return d[i].priority < d[j].priority
	}
	return d[i].seq < d[j].seq
}

func (d heapData[K]) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
	d[i].index = i
	d[j].index = j
}

func (d *heapData[K]) Push(x any) {
	it := x.(*item[K])
	it.index = len(*d)
	*d = append(*d, it)
}

func (d *heapData[K]) Pop() any {
	old := *d
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*d = old[:n-1]
	return it
}
