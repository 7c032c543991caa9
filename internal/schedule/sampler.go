package schedule

import "math/rand"

// Weighted pairs an item with its selection weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

const minSampleWeight = 1e-9

// WeightedSample draws k items without replacement. Each draw lands on an
// item with probability proportional to its weight among the items still in
// the pool. If k >= len(items) every item is returned once, in input order.
// Non-positive weights are bumped to a tiny epsilon so a degenerate pool
// still yields k distinct items.
func WeightedSample[T any](items []Weighted[T], k int, rng *rand.Rand) []T {
	if k >= len(items) {
		out := make([]T, len(items))
		for i, w := range items {
			out[i] = w.Item
		}
		return out
	}

	pool := make([]Weighted[T], len(items))
	copy(pool, items)

	out := make([]T, 0, k)
	for len(out) < k {
		total := 0.0
		for _, w := range pool {
			total += effectiveWeight(w.Weight)
		}

		r := rng.Float64() * total
		idx := len(pool) - 1
		cum := 0.0
		for i, w := range pool {
			cum += effectiveWeight(w.Weight)
			if r < cum {
				idx = i
				break
			}
		}

		out = append(out, pool[idx].Item)
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

func effectiveWeight(w float64) float64 {
	if w <= 0 {
		return minSampleWeight
	}
	return w
}
