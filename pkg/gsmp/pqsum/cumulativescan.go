package pqsum

// CumulativeScan is a flat slice of weights plus a cumulative array that is
// regenerated lazily (on the next Sum or Choose) after any Set. Update is
// O(1); search is O(n). Used by the keyed-keep index (pkg/gsmp/keyedindex),
// which never renumbers slots, so stale cumulative sums only ever need a
// full O(n) rescan, not per-slot propagation.
type CumulativeScan struct {
	values []float64
	prefix []float64
	dirty  bool
}

func NewCumulativeScan(capacity int) *CumulativeScan {
	return &CumulativeScan{
		values: make([]float64, 0, capacity),
		prefix: make([]float64, 0, capacity),
	}
}

func (c *CumulativeScan) Len() int { return len(c.values) }

func (c *CumulativeScan) Set(i int, v float64) {
	for i >= len(c.values) {
		c.values = append(c.values, 0)
	}
	c.values[i] = v
	c.dirty = true
}

func (c *CumulativeScan) rescan() {
	if !c.dirty {
		return
	}
	if cap(c.prefix) < len(c.values) {
		c.prefix = make([]float64, len(c.values))
	} else {
		c.prefix = c.prefix[:len(c.values)]
	}
	running := 0.0
	for i, v := range c.values {
		running += v
		c.prefix[i] = running
	}
	c.dirty = false
}

func (c *CumulativeScan) Sum() float64 {
	c.rescan()
	if len(c.prefix) == 0 {
		return 0
	}
	return c.prefix[len(c.prefix)-1]
}

func (c *CumulativeScan) Choose(u float64) int {
	c.rescan()
	for i, p := range c.prefix {
		if p >= u {
			return i
		}
	}
	return len(c.prefix) - 1
}
