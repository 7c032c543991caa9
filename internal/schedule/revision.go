package schedule

import (
	"math"
	"math/rand"
)

// revisionPickCount is how many topics a weekly revision round covers.
const revisionPickCount = 4

// RevisionWeight returns the selection weight of the i-th topic among n
// topics ordered oldest to newest: 1 + sqrt(i/n)*3. Recently covered topics
// weigh more, but nothing is ever weightless.
func RevisionWeight(i, n int) float64 {
	return 1 + math.Sqrt(float64(i)/float64(n))*3
}

// SelectRevisionTopics picks topics for a weekly revision round from a list
// ordered oldest to newest. Four or fewer topics are all picked; otherwise
// four are drawn by weighted sampling without replacement.
func SelectRevisionTopics(topics []string, rng *rand.Rand) []string {
	if len(topics) <= revisionPickCount {
		out := make([]string, len(topics))
		copy(out, topics)
		return out
	}

	items := make([]Weighted[string], len(topics))
	for i, t := range topics {
		items[i] = Weighted[string]{Item: t, Weight: RevisionWeight(i, len(topics))}
	}
	return WeightedSample(items, revisionPickCount, rng)
}
