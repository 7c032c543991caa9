package schedule

import (
	"math/rand"
	"testing"
)

func TestWeightedSample_KAtLeastN(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []Weighted[string]{
		{Item: "a", Weight: 1},
		{Item: "b", Weight: 5},
		{Item: "c", Weight: 2},
	}

	for _, k := range []int{3, 4, 10} {
		got := WeightedSample(items, k, rng)
		if len(got) != 3 {
			t.Fatalf("WeightedSample(k=%d) returned %d items, want 3", k, len(got))
		}
		seen := map[string]int{}
		for _, item := range got {
			seen[item]++
		}
		for _, name := range []string{"a", "b", "c"} {
			if seen[name] != 1 {
				t.Errorf("k=%d: item %q appeared %d times, want exactly once", k, name, seen[name])
			}
		}
	}
}

func TestWeightedSample_DistinctItems(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := make([]Weighted[int], 10)
	for i := range items {
		items[i] = Weighted[int]{Item: i, Weight: float64(i + 1)}
	}

	for trial := 0; trial < 200; trial++ {
		got := WeightedSample(items, 4, rng)
		if len(got) != 4 {
			t.Fatalf("trial %d: got %d items, want 4", trial, len(got))
		}
		seen := map[int]bool{}
		for _, item := range got {
			if seen[item] {
				t.Fatalf("trial %d: item %d drawn twice", trial, item)
			}
			seen[item] = true
		}
	}
}

func TestWeightedSample_HeavyItemsDrawnMore(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := []Weighted[string]{
		{Item: "light", Weight: 1},
		{Item: "heavy", Weight: 10},
		{Item: "mid", Weight: 3},
	}

	counts := map[string]int{}
	trials := 5000
	for i := 0; i < trials; i++ {
		got := WeightedSample(items, 1, rng)
		counts[got[0]]++
	}

	if counts["heavy"] <= counts["mid"] || counts["mid"] <= counts["light"] {
		t.Errorf("draw counts did not follow weights: heavy=%d mid=%d light=%d",
			counts["heavy"], counts["mid"], counts["light"])
	}

	// heavy holds 10/14 of the mass; allow a generous band around it
	frac := float64(counts["heavy"]) / float64(trials)
	if frac < 0.60 || frac > 0.83 {
		t.Errorf("heavy item drawn %.2f of the time, expected near 0.71", frac)
	}
}

func TestWeightedSample_ZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	items := []Weighted[string]{
		{Item: "a", Weight: 0},
		{Item: "b", Weight: 0},
		{Item: "c", Weight: 0},
	}

	got := WeightedSample(items, 2, rng)
	if len(got) != 2 {
		t.Fatalf("got %d items from zero-weight pool, want 2", len(got))
	}
	if got[0] == got[1] {
		t.Errorf("zero-weight pool drew the same item twice: %q", got[0])
	}
}

func TestWeightedSample_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	got := WeightedSample([]Weighted[string]{}, 3, rng)
	if len(got) != 0 {
		t.Errorf("got %d items from empty pool, want 0", len(got))
	}
}
