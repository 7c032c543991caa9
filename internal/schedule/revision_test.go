package schedule

import (
	"math/rand"
	"testing"
)

func TestSelectRevisionTopics_FewTopics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for n := 0; n <= 4; n++ {
		topics := make([]string, n)
		for i := range topics {
			topics[i] = string(rune('a' + i))
		}
		got := SelectRevisionTopics(topics, rng)
		if len(got) != n {
			t.Errorf("n=%d: got %d topics, want all %d", n, len(got), n)
		}
		for i, topic := range got {
			if topic != topics[i] {
				t.Errorf("n=%d: topic %d = %q, want %q", n, i, topic, topics[i])
			}
		}
	}
}

func TestSelectRevisionTopics_PicksFour(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	topics := []string{"sets", "relations", "lattices", "groups", "rings", "fields", "modules"}

	for trial := 0; trial < 100; trial++ {
		got := SelectRevisionTopics(topics, rng)
		if len(got) != 4 {
			t.Fatalf("trial %d: got %d topics, want 4", trial, len(got))
		}
		seen := map[string]bool{}
		for _, topic := range got {
			if seen[topic] {
				t.Fatalf("trial %d: topic %q picked twice", trial, topic)
			}
			seen[topic] = true
		}
	}
}

func TestRevisionWeight_Monotonic(t *testing.T) {
	n := 10
	prev := RevisionWeight(0, n)
	if prev != 1 {
		t.Errorf("RevisionWeight(0, %d) = %v, want 1", n, prev)
	}
	for i := 1; i < n; i++ {
		w := RevisionWeight(i, n)
		if w <= prev {
			t.Errorf("RevisionWeight(%d, %d) = %v, not greater than previous %v", i, n, w, prev)
		}
		prev = w
	}
	if max := RevisionWeight(n-1, n); max >= 4 {
		t.Errorf("RevisionWeight(%d, %d) = %v, want below 4", n-1, n, max)
	}
}

func TestSelectRevisionTopics_RecentTopicsFavored(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	topics := make([]string, 12)
	for i := range topics {
		topics[i] = string(rune('a' + i))
	}

	oldest, newest := 0, 0
	trials := 3000
	for i := 0; i < trials; i++ {
		for _, topic := range SelectRevisionTopics(topics, rng) {
			if topic == topics[0] {
				oldest++
			}
			if topic == topics[len(topics)-1] {
				newest++
			}
		}
	}

	if newest <= oldest {
		t.Errorf("newest topic picked %d times, oldest %d; weights should favor recent coverage", newest, oldest)
	}
}
